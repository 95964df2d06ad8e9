package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(v float64) *float64 { return &v }

func TestDailyRainfall(t *testing.T) {
	full := make([]ForecastEntry, 40)
	for i := range full {
		full[i].Rain3h = ptr(float64(i) / 10)
	}
	sparse := make([]ForecastEntry, 40)
	sparse[8].Rain3h = ptr(1.25)
	sparse[31].Rain3h = ptr(9)

	tests := []struct {
		name    string
		entries []ForecastEntry
		want    []float64
	}{
		{name: "40 entries", entries: full, want: []float64{0, 0.8, 1.6, 2.4, 3.2}},
		{name: "absent rain is zero", entries: sparse, want: []float64{0, 1.25, 0, 0, 0}},
		{name: "short forecast padded", entries: full[:17], want: []float64{0, 0.8, 1.6, 0, 0}},
		{name: "empty", entries: nil, want: []float64{0, 0, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DailyRainfall(tt.entries)
			assert.Len(t, got, ForecastDays)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDailyRainfallDeterministic(t *testing.T) {
	entries := []ForecastEntry{{Rain3h: ptr(2)}}
	assert.Equal(t, DailyRainfall(entries), DailyRainfall(entries))
}

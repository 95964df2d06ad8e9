package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Rainfall is a daily rainfall series in millimetres, stored as a JSON array.
// A nil Rainfall is stored as NULL.
type Rainfall []float64

// Value implements driver.Valuer.
func (r Rainfall) Value() (driver.Value, error) {
	if r == nil {
		return nil, nil
	}
	b, err := json.Marshal([]float64(r))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (r *Rainfall) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*r = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("rainfall: unsupported source type %T", src)
	}

	var series []float64
	if err := json.Unmarshal(raw, &series); err != nil {
		return fmt.Errorf("rainfall: %w", err)
	}
	*r = series
	return nil
}

// Observation is one persisted weather snapshot for a location. Observations are never updated.
type Observation struct {
	ID          string    `json:"id"`
	LocationID  string    `json:"locationId"`
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
	WindSpeed   float64   `json:"windSpeed"`
	RainFall    Rainfall  `json:"rainFall"`
	RecordedAt  time.Time `json:"recordedAt"`
}

// TimeRange is an inclusive [From, To] interval.
type TimeRange struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t lies within the range, bounds included.
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.From) && !t.After(r.To)
}

// ObservationResponse is returned by the fetch endpoint: the stored row plus the location name.
type ObservationResponse struct {
	Observation
	Name string `json:"name"`
}

// WeatherSnapshot is the enriched view returned by the current-weather endpoint.
type WeatherSnapshot struct {
	Location    string    `json:"location"`
	Temperature float64   `json:"temperature"`
	FeelsLike   float64   `json:"feelsLike"`
	Humidity    float64   `json:"humidity"`
	WindSpeed   float64   `json:"windSpeed"`
	Description string    `json:"description"`
	RainFall    []float64 `json:"rainFall"`
}

// PurgeResponse reports how many observations were removed.
type PurgeResponse struct {
	Count int64 `json:"count"`
}

package weather

// ForecastDays is the length of the daily rainfall series.
const ForecastDays = 5

// entriesPerDay is the number of 3-hour forecast steps in 24 hours.
const entriesPerDay = 8

// ForecastEntry is one 3-hour step of a forecast. Rain3h is nil when the
// provider reported no rain block for the step.
type ForecastEntry struct {
	Rain3h *float64
}

// DailyRainfall samples every 8th forecast entry, i.e. one per day, and returns
// its 3-hour rain accumulation. The result always has ForecastDays elements;
// steps missing from a short forecast count as 0.
func DailyRainfall(entries []ForecastEntry) []float64 {
	series := make([]float64, ForecastDays)
	for day := range series {
		i := day * entriesPerDay
		if i >= len(entries) {
			break
		}
		if rain := entries[i].Rain3h; rain != nil {
			series[day] = *rain
		}
	}
	return series
}

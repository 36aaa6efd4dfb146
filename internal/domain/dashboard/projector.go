package dashboard

import "time"

// ProjectHourly derives the bounded forward-looking slice from the raw hourly
// series: entries with timestamp at or after now, in original order, at most
// limit of them. The series is assumed time-ascending as delivered upstream.
func ProjectHourly(series HourlySeries, now time.Time, limit int) []HourlyEntry {
	if limit <= 0 {
		return nil
	}
	entries := make([]HourlyEntry, 0, limit)
	for i, ts := range series.Times {
		if ts.Before(now) {
			continue
		}
		code := intAt(series.WeatherCode, i)
		entries = append(entries, HourlyEntry{
			Time:                     ts,
			Temperature:              floatAt(series.Temperature, i),
			PrecipitationProbability: intAt(series.PrecipitationProbability, i),
			WeatherCode:              code,
			Category:                 CategoryForCode(code),
		})
		if len(entries) == limit {
			break
		}
	}
	return entries
}

// ProjectDaily takes the first min(limit, len) days verbatim; the series is
// assumed to already start at today.
func ProjectDaily(series DailySeries, limit int) []DailyEntry {
	if limit <= 0 {
		return nil
	}
	if limit > len(series.Times) {
		limit = len(series.Times)
	}
	entries := make([]DailyEntry, 0, limit)
	for i := 0; i < limit; i++ {
		code := intAt(series.WeatherCode, i)
		entries = append(entries, DailyEntry{
			Date:                     series.Times[i],
			WeatherCode:              code,
			Category:                 CategoryForCode(code),
			TemperatureMax:           floatAt(series.TemperatureMax, i),
			TemperatureMin:           floatAt(series.TemperatureMin, i),
			PrecipitationProbability: intAt(series.PrecipitationProbability, i),
		})
	}
	return entries
}

// Parallel-array access: an index past the end of a field array means the
// upstream did not offer the field there, so the zero value stands in.
func floatAt(values []float64, i int) float64 {
	if i < 0 || i >= len(values) {
		return 0
	}
	return values[i]
}

func intAt(values []int, i int) int {
	if i < 0 || i >= len(values) {
		return 0
	}
	return values[i]
}

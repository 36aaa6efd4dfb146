package dashboard

import (
	"context"
	"time"
)

// Coordinates is a WGS 84 latitude/longitude pair.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Place is the canonical descriptor produced by geocoding.
type Place struct {
	DisplayName string      `json:"displayName"`
	CountryCode string      `json:"countryCode"`
	Coords      Coordinates `json:"coordinates"`
}

// Tag renders the history tag for a place, "{name}, {countryCode}".
func (p Place) Tag() string {
	if p.CountryCode == "" {
		return p.DisplayName
	}
	return p.DisplayName + ", " + p.CountryCode
}

// CurrentConditions is the snapshot of observed weather, expressed in the
// unit system that was in effect when it was fetched.
type CurrentConditions struct {
	Time                     time.Time         `json:"time"`
	Temperature              float64           `json:"temperature"`
	ApparentTemperature      float64           `json:"apparentTemperature"`
	Humidity                 int               `json:"humidity"`
	Precipitation            float64           `json:"precipitation"`
	PrecipitationProbability int               `json:"precipitationProbability"`
	WindSpeed                float64           `json:"windSpeed"`
	WindDirection            int               `json:"windDirection"`
	WeatherCode              int               `json:"weatherCode"`
	Category                 ConditionCategory `json:"category"`
}

// HourlySeries holds the raw hourly forecast as parallel arrays indexed by
// timestamp. A field array shorter than Times means the upstream did not
// offer that field, not an error.
type HourlySeries struct {
	Times                    []time.Time
	Temperature              []float64
	PrecipitationProbability []int
	WeatherCode              []int
}

// DailySeries holds the raw daily forecast as parallel arrays, assumed
// chronologically ordered starting at today.
type DailySeries struct {
	Times                    []time.Time
	WeatherCode              []int
	TemperatureMax           []float64
	TemperatureMin           []float64
	PrecipitationProbability []int
}

// ForecastBundle is everything one upstream call returns.
type ForecastBundle struct {
	Units            UnitSystem
	UTCOffsetSeconds int
	Current          CurrentConditions
	Hourly           HourlySeries
	Daily            DailySeries
}

// HourlyEntry is one projected hourly sample ready for display.
type HourlyEntry struct {
	Time                     time.Time         `json:"time"`
	Temperature              float64           `json:"temperature"`
	PrecipitationProbability int               `json:"precipitationProbability"`
	WeatherCode              int               `json:"weatherCode"`
	Category                 ConditionCategory `json:"category"`
}

// DailyEntry is one projected day ready for display.
type DailyEntry struct {
	Date                     time.Time         `json:"date"`
	WeatherCode              int               `json:"weatherCode"`
	Category                 ConditionCategory `json:"category"`
	TemperatureMax           float64           `json:"temperatureMax"`
	TemperatureMin           float64           `json:"temperatureMin"`
	PrecipitationProbability int               `json:"precipitationProbability"`
}

// State names the controller position in the lookup flow.
type State string

const (
	StateIdle      State = "idle"
	StateResolving State = "resolving"
	StateFetching  State = "fetching"
	StateReady     State = "ready"
	StateError     State = "error"
)

// Snapshot is the full per-session view served to the frontend.
type Snapshot struct {
	State            State              `json:"state"`
	Units            UnitSystem         `json:"units"`
	UnitLabels       UnitLabels         `json:"unitLabels"`
	DarkMode         bool               `json:"darkMode"`
	Message          string             `json:"message,omitempty"`
	Place            *Place             `json:"place,omitempty"`
	Current          *CurrentConditions `json:"current,omitempty"`
	UTCOffsetSeconds int                `json:"utcOffsetSeconds"`
	Hourly           []HourlyEntry      `json:"hourly"`
	Daily            []DailyEntry       `json:"daily"`
	History          []string           `json:"history"`
}

// GeocodingClient resolves free-text queries and coordinate pairs to places.
// ResolveByCoordinates returns (nil, nil) when the lookup yields no place.
type GeocodingClient interface {
	ResolveByName(ctx context.Context, query string) (*Place, error)
	ResolveByCoordinates(ctx context.Context, lat, lon float64) (*Place, error)
}

// ForecastClient retrieves current conditions plus hourly and daily series.
type ForecastClient interface {
	FetchForecast(ctx context.Context, lat, lon float64, units UnitSystem) (*ForecastBundle, error)
}

// PlaceCache remembers forward geocoding results keyed by normalized query.
type PlaceCache interface {
	Lookup(ctx context.Context, query string) (*Place, bool, error)
	Store(ctx context.Context, query string, place Place) error
}

// PrefStore is the injected key-value persistence capability holding the
// serialized history list and the theme flag.
type PrefStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Config wires runtime limits for the dashboard domain.
type Config struct {
	HourlyWindow int
	DailyWindow  int
	HistoryLimit int
}

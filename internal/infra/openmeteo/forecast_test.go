package openmeteo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lequoctrung8581/weather-app-group-project-asm3/internal/domain/dashboard"
)

const forecastPayload = `{
	"utc_offset_seconds": 25200,
	"current": {
		"time": 1719835200,
		"temperature_2m": 31.4,
		"apparent_temperature": 36.1,
		"relative_humidity_2m": 74,
		"precipitation": 0.3,
		"precipitation_probability": 55,
		"weather_code": 80,
		"wind_speed_10m": 3.6,
		"wind_direction_10m": 190
	},
	"hourly": {
		"time": [1719835200, 1719838800, 1719842400],
		"temperature_2m": [31.4, 30.9, 30.1],
		"precipitation_probability": [55, 60, 62],
		"weather_code": [80, 80, 61]
	},
	"daily": {
		"time": [1719792000, 1719878400],
		"weather_code": [80, 3],
		"temperature_2m_max": [33.0, 32.1],
		"temperature_2m_min": [26.5, 26.0],
		"precipitation_probability_max": [70, 40]
	}
}`

func TestFetchForecastMetricParams(t *testing.T) {
	var got url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		_, _ = w.Write([]byte(forecastPayload))
	}))
	defer server.Close()

	client := NewForecastClient(server.URL, time.Second)

	bundle, err := client.FetchForecast(context.Background(), 21.03, 105.85, dashboard.UnitsMetric)
	require.NoError(t, err)

	require.Equal(t, "21.03", got.Get("latitude"))
	require.Equal(t, "105.85", got.Get("longitude"))
	require.Equal(t, "celsius", got.Get("temperature_unit"))
	require.Equal(t, "ms", got.Get("wind_speed_unit"))
	require.Equal(t, "auto", got.Get("timezone"))
	require.Equal(t, "unixtime", got.Get("timeformat"))
	require.Equal(t, dashboard.UnitsMetric, bundle.Units)
}

func TestFetchForecastImperialParams(t *testing.T) {
	var got url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		_, _ = w.Write([]byte(forecastPayload))
	}))
	defer server.Close()

	client := NewForecastClient(server.URL, time.Second)

	bundle, err := client.FetchForecast(context.Background(), 40.71, -74.01, dashboard.UnitsImperial)
	require.NoError(t, err)

	require.Equal(t, "fahrenheit", got.Get("temperature_unit"))
	require.Equal(t, "mph", got.Get("wind_speed_unit"))
	require.Equal(t, dashboard.UnitsImperial, bundle.Units)
}

func TestFetchForecastParsesBundle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(forecastPayload))
	}))
	defer server.Close()

	client := NewForecastClient(server.URL, time.Second)

	bundle, err := client.FetchForecast(context.Background(), 21.03, 105.85, dashboard.UnitsMetric)
	require.NoError(t, err)

	require.Equal(t, 25200, bundle.UTCOffsetSeconds)
	require.Equal(t, time.Unix(1719835200, 0).UTC(), bundle.Current.Time)
	require.Equal(t, 31.4, bundle.Current.Temperature)
	require.Equal(t, 74, bundle.Current.Humidity)
	require.Equal(t, 80, bundle.Current.WeatherCode)

	require.Len(t, bundle.Hourly.Times, 3)
	require.Equal(t, time.Unix(1719838800, 0).UTC(), bundle.Hourly.Times[1])
	require.Equal(t, []float64{31.4, 30.9, 30.1}, bundle.Hourly.Temperature)
	require.Equal(t, []int{55, 60, 62}, bundle.Hourly.PrecipitationProbability)

	require.Len(t, bundle.Daily.Times, 2)
	require.Equal(t, []float64{33.0, 32.1}, bundle.Daily.TemperatureMax)
	require.Equal(t, []int{70, 40}, bundle.Daily.PrecipitationProbability)
}

func TestFetchForecastToleratesMissingFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"utc_offset_seconds":0,"current":{"time":1719835200,"temperature_2m":20.0}}`))
	}))
	defer server.Close()

	client := NewForecastClient(server.URL, time.Second)

	bundle, err := client.FetchForecast(context.Background(), 0, 0, dashboard.UnitsMetric)
	require.NoError(t, err)
	require.Equal(t, 20.0, bundle.Current.Temperature)
	require.Zero(t, bundle.Current.WeatherCode)
	require.Empty(t, bundle.Hourly.Times)
	require.Empty(t, bundle.Daily.Times)
}

func TestFetchForecastUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"reason":"invalid coordinates"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewForecastClient(server.URL, time.Second)

	_, err := client.FetchForecast(context.Background(), 21.03, 105.85, dashboard.UnitsMetric)
	require.Error(t, err)
	require.Contains(t, err.Error(), "status=400")
	require.Contains(t, err.Error(), "invalid coordinates")
}

func TestFetchForecastBadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"current":`))
	}))
	defer server.Close()

	client := NewForecastClient(server.URL, time.Second)

	_, err := client.FetchForecast(context.Background(), 21.03, 105.85, dashboard.UnitsMetric)
	require.Error(t, err)
	require.Contains(t, err.Error(), "decode forecast response")
}

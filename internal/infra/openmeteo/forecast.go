package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/lequoctrung8581/weather-app-group-project-asm3/internal/domain/dashboard"
)

const defaultForecastURL = "https://api.open-meteo.com/v1/forecast"

const (
	currentVariables = "temperature_2m,apparent_temperature,relative_humidity_2m,precipitation,precipitation_probability,weather_code,wind_speed_10m,wind_direction_10m"
	hourlyVariables  = "temperature_2m,precipitation_probability,weather_code"
	dailyVariables   = "weather_code,temperature_2m_max,temperature_2m_min,precipitation_probability_max"
)

// ForecastClient fetches current, hourly and daily weather from the
// Open-Meteo forecast API in a single call, time-zone adjusted upstream.
type ForecastClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewForecastClient builds a forecast client. An empty base URL falls back
// to the public endpoint.
func NewForecastClient(baseURL string, timeout time.Duration) *ForecastClient {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultForecastURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ForecastClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type forecastResponse struct {
	UTCOffsetSeconds int `json:"utc_offset_seconds"`
	Current          struct {
		Time                     int64   `json:"time"`
		Temperature              float64 `json:"temperature_2m"`
		ApparentTemperature      float64 `json:"apparent_temperature"`
		Humidity                 int     `json:"relative_humidity_2m"`
		Precipitation            float64 `json:"precipitation"`
		PrecipitationProbability int     `json:"precipitation_probability"`
		WeatherCode              int     `json:"weather_code"`
		WindSpeed                float64 `json:"wind_speed_10m"`
		WindDirection            int     `json:"wind_direction_10m"`
	} `json:"current"`
	Hourly struct {
		Time                     []int64   `json:"time"`
		Temperature              []float64 `json:"temperature_2m"`
		PrecipitationProbability []int     `json:"precipitation_probability"`
		WeatherCode              []int     `json:"weather_code"`
	} `json:"hourly"`
	Daily struct {
		Time                     []int64   `json:"time"`
		WeatherCode              []int     `json:"weather_code"`
		TemperatureMax           []float64 `json:"temperature_2m_max"`
		TemperatureMin           []float64 `json:"temperature_2m_min"`
		PrecipitationProbability []int     `json:"precipitation_probability_max"`
	} `json:"daily"`
}

// FetchForecast retrieves the co-located current/hourly/daily bundle for the
// coordinates in the requested unit system. Fields the upstream omits stay at
// their zero values; only a non-success response is an error.
func (c *ForecastClient) FetchForecast(ctx context.Context, lat, lon float64, units dashboard.UnitSystem) (*dashboard.ForecastBundle, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("current", currentVariables)
	params.Set("hourly", hourlyVariables)
	params.Set("daily", dailyVariables)
	params.Set("timezone", "auto")
	params.Set("timeformat", "unixtime")
	if units == dashboard.UnitsImperial {
		params.Set("temperature_unit", "fahrenheit")
		params.Set("wind_speed_unit", "mph")
	} else {
		params.Set("temperature_unit", "celsius")
		params.Set("wind_speed_unit", "ms")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build forecast request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("forecast request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("forecast request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	var raw forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode forecast response: %w", err)
	}

	return &dashboard.ForecastBundle{
		Units:            units,
		UTCOffsetSeconds: raw.UTCOffsetSeconds,
		Current: dashboard.CurrentConditions{
			Time:                     time.Unix(raw.Current.Time, 0).UTC(),
			Temperature:              raw.Current.Temperature,
			ApparentTemperature:      raw.Current.ApparentTemperature,
			Humidity:                 raw.Current.Humidity,
			Precipitation:            raw.Current.Precipitation,
			PrecipitationProbability: raw.Current.PrecipitationProbability,
			WeatherCode:              raw.Current.WeatherCode,
			WindSpeed:                raw.Current.WindSpeed,
			WindDirection:            raw.Current.WindDirection,
		},
		Hourly: dashboard.HourlySeries{
			Times:                    toTimes(raw.Hourly.Time),
			Temperature:              raw.Hourly.Temperature,
			PrecipitationProbability: raw.Hourly.PrecipitationProbability,
			WeatherCode:              raw.Hourly.WeatherCode,
		},
		Daily: dashboard.DailySeries{
			Times:                    toTimes(raw.Daily.Time),
			WeatherCode:              raw.Daily.WeatherCode,
			TemperatureMax:           raw.Daily.TemperatureMax,
			TemperatureMin:           raw.Daily.TemperatureMin,
			PrecipitationProbability: raw.Daily.PrecipitationProbability,
		},
	}, nil
}

func toTimes(seconds []int64) []time.Time {
	times := make([]time.Time, 0, len(seconds))
	for _, sec := range seconds {
		times = append(times, time.Unix(sec, 0).UTC())
	}
	return times
}

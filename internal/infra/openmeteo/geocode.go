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

const (
	defaultSearchURL  = "https://geocoding-api.open-meteo.com/v1/search"
	defaultReverseURL = "https://api.bigdatacloud.net/data/reverse-geocode-client"
	defaultLanguage   = "en"
)

// GeocodeClient resolves place names via the Open-Meteo geocoding API and
// coordinates via the BigDataCloud reverse endpoint. Both are unauthenticated
// query-parameterized GETs returning JSON.
type GeocodeClient struct {
	searchURL  string
	reverseURL string
	language   string
	httpClient *http.Client
}

// NewGeocodeClient builds a geocoding client. Empty arguments fall back to
// the public endpoints.
func NewGeocodeClient(searchURL, reverseURL, language string, timeout time.Duration) *GeocodeClient {
	if strings.TrimSpace(searchURL) == "" {
		searchURL = defaultSearchURL
	}
	if strings.TrimSpace(reverseURL) == "" {
		reverseURL = defaultReverseURL
	}
	if strings.TrimSpace(language) == "" {
		language = defaultLanguage
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &GeocodeClient{
		searchURL:  strings.TrimRight(searchURL, "/"),
		reverseURL: strings.TrimRight(reverseURL, "/"),
		language:   language,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type searchResponse struct {
	Results []searchResult `json:"results"`
}

type searchResult struct {
	Name        string  `json:"name"`
	Admin1      string  `json:"admin1"`
	Country     string  `json:"country"`
	CountryCode string  `json:"country_code"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// ResolveByName resolves a free-text query to its first match.
func (c *GeocodeClient) ResolveByName(ctx context.Context, query string) (*dashboard.Place, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}

	params := url.Values{}
	params.Set("name", trimmed)
	params.Set("count", "1")
	params.Set("language", c.language)
	params.Set("format", "json")

	var raw searchResponse
	if err := c.getJSON(ctx, c.searchURL+"?"+params.Encode(), &raw); err != nil {
		return nil, fmt.Errorf("geocoding request: %w", err)
	}
	if len(raw.Results) == 0 {
		return nil, fmt.Errorf("no matching place for %q", trimmed)
	}

	match := raw.Results[0]
	if match.Name == "" {
		return nil, fmt.Errorf("geocoding match for %q has no name", trimmed)
	}

	display := match.Name
	if match.Admin1 != "" {
		display += ", " + match.Admin1
	}
	return &dashboard.Place{
		DisplayName: display,
		CountryCode: countryFallback(match.CountryCode, match.Country),
		Coords: dashboard.Coordinates{
			Latitude:  match.Latitude,
			Longitude: match.Longitude,
		},
	}, nil
}

type reverseResponse struct {
	City                 string `json:"city"`
	Locality             string `json:"locality"`
	PrincipalSubdivision string `json:"principalSubdivision"`
	CountryName          string `json:"countryName"`
	CountryCode          string `json:"countryCode"`
}

// ResolveByCoordinates reverse-geocodes a coordinate pair. A lookup that
// yields no place returns (nil, nil), which callers treat as recoverable.
func (c *GeocodeClient) ResolveByCoordinates(ctx context.Context, lat, lon float64) (*dashboard.Place, error) {
	if lat < -90 || lat > 90 {
		return nil, fmt.Errorf("latitude %v out of range", lat)
	}
	if lon < -180 || lon > 180 {
		return nil, fmt.Errorf("longitude %v out of range", lon)
	}

	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("localityLanguage", c.language)

	var raw reverseResponse
	if err := c.getJSON(ctx, c.reverseURL+"?"+params.Encode(), &raw); err != nil {
		return nil, fmt.Errorf("reverse geocoding request: %w", err)
	}

	name := raw.City
	if name == "" {
		name = raw.Locality
	}
	if name == "" {
		return nil, nil
	}

	display := name
	if raw.PrincipalSubdivision != "" && raw.PrincipalSubdivision != name {
		display += ", " + raw.PrincipalSubdivision
	}
	if country := countryFallback("", raw.CountryName); country != "" {
		display += ", " + country
	}
	return &dashboard.Place{
		DisplayName: display,
		CountryCode: countryFallback(raw.CountryCode, raw.CountryName),
		Coords: dashboard.Coordinates{
			Latitude:  lat,
			Longitude: lon,
		},
	}, nil
}

// countryFallback applies the code -> full name -> empty chain.
func countryFallback(code, name string) string {
	if code != "" {
		return strings.ToUpper(code)
	}
	return name
}

func (c *GeocodeClient) getJSON(ctx context.Context, endpoint string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, string(payload))
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

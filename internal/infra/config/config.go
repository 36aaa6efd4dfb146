package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Geocoding  GeocodingConfig  `yaml:"geocoding"`
	Forecast   ForecastConfig   `yaml:"forecast"`
	History    HistoryConfig    `yaml:"history"`
	Session    SessionConfig    `yaml:"session"`
	Prefs      PrefsConfig      `yaml:"prefs"`
	PlaceCache PlaceCacheConfig `yaml:"placeCache"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address      string          `yaml:"address"`
	ReadTimeout  time.Duration   `yaml:"readTimeout"`
	WriteTimeout time.Duration   `yaml:"writeTimeout"`
	RateLimit    RateLimitConfig `yaml:"rateLimit"`
	Retry        RetryConfig     `yaml:"retry"`
	CORS         CORSConfig      `yaml:"cors"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// RetryConfig configures best-effort retries for idempotent requests.
type RetryConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseBackoff time.Duration `yaml:"baseBackoff"`
	Exclude     []string      `yaml:"exclude"`
}

// CORSConfig lists the origins allowed to call the API from a browser.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// GeocodingConfig points at the place resolution upstreams.
type GeocodingConfig struct {
	SearchURL  string        `yaml:"searchUrl"`
	ReverseURL string        `yaml:"reverseUrl"`
	Language   string        `yaml:"language"`
	Timeout    time.Duration `yaml:"timeout"`
}

// ForecastConfig points at the forecast upstream and bounds the display slices.
type ForecastConfig struct {
	BaseURL      string        `yaml:"baseUrl"`
	Timeout      time.Duration `yaml:"timeout"`
	HourlyWindow int           `yaml:"hourlyWindow"`
	DailyWindow  int           `yaml:"dailyWindow"`
}

// HistoryConfig bounds the recent searches list.
type HistoryConfig struct {
	Limit int `yaml:"limit"`
}

// SessionConfig controls dashboard session tokens.
type SessionConfig struct {
	Secret   string        `yaml:"secret"`
	TokenTTL time.Duration `yaml:"tokenTtl"`
}

// PrefsConfig contains connection information for the preference store.
type PrefsConfig struct {
	Valkey ValkeyConfig `yaml:"valkey"`
}

// ValkeyConfig contains connection information for cache storage.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// PlaceCacheConfig controls the resolved place cache.
type PlaceCacheConfig struct {
	TTL      time.Duration  `yaml:"ttl"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("GEOCODING_SEARCH_URL"); v != "" {
		cfg.Geocoding.SearchURL = v
	}
	if v := os.Getenv("GEOCODING_REVERSE_URL"); v != "" {
		cfg.Geocoding.ReverseURL = v
	}
	if v := os.Getenv("GEOCODING_LANGUAGE"); v != "" {
		cfg.Geocoding.Language = v
	}
	if v := os.Getenv("FORECAST_BASE_URL"); v != "" {
		cfg.Forecast.BaseURL = v
	}
	if v := os.Getenv("FORECAST_HOURLY_WINDOW"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Forecast.HourlyWindow = parsed
		}
	}
	if v := os.Getenv("FORECAST_DAILY_WINDOW"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Forecast.DailyWindow = parsed
		}
	}
	if v := os.Getenv("HISTORY_LIMIT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.History.Limit = parsed
		}
	}
	if v := os.Getenv("SESSION_SECRET"); v != "" {
		cfg.Session.Secret = v
	}
	if v := os.Getenv("SESSION_TOKEN_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Session.TokenTTL = parsed
		}
	}
	if v := os.Getenv("PREFS_VALKEY_ENABLED"); v != "" {
		cfg.Prefs.Valkey.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("PREFS_VALKEY_ADDR"); v != "" {
		cfg.Prefs.Valkey.Addr = v
	}
	if v := os.Getenv("PLACE_CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.PlaceCache.TTL = parsed
		}
	}
	if v := os.Getenv("PLACE_CACHE_POSTGRES_DSN"); v != "" {
		cfg.PlaceCache.Postgres.DSN = v
	}
	if v := os.Getenv("PLACE_CACHE_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.PlaceCache.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("PLACE_CACHE_POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.PlaceCache.Postgres.MinConns = int32(parsed)
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_ENABLED"); v != "" {
		cfg.HTTP.Retry.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("HTTP_RETRY_MAX_ATTEMPTS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.Retry.MaxAttempts = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_BASE_BACKOFF"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.Retry.BaseBackoff = parsed
		}
	}
	if v := os.Getenv("HTTP_CORS_ALLOWED_ORIGINS"); v != "" {
		parts := strings.Split(v, ",")
		origins := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
		cfg.HTTP.CORS.AllowedOrigins = origins
	}
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
			Retry: RetryConfig{
				Enabled:     true,
				MaxAttempts: 3,
				BaseBackoff: 150 * time.Millisecond,
				Exclude: []string{
					"/api/v1/dashboard/units/toggle",
					"/api/v1/dashboard/theme/toggle",
				},
			},
		},
		Geocoding: GeocodingConfig{
			SearchURL:  "https://geocoding-api.open-meteo.com/v1/search",
			ReverseURL: "https://api.bigdatacloud.net/data/reverse-geocode-client",
			Language:   "en",
			Timeout:    10 * time.Second,
		},
		Forecast: ForecastConfig{
			BaseURL:      "https://api.open-meteo.com/v1/forecast",
			Timeout:      10 * time.Second,
			HourlyWindow: 24,
			DailyWindow:  5,
		},
		History: HistoryConfig{
			Limit: 8,
		},
		Session: SessionConfig{
			Secret:   "dev-only-session-secret",
			TokenTTL: 30 * 24 * time.Hour,
		},
		Prefs: PrefsConfig{
			Valkey: ValkeyConfig{
				Enabled: false,
				Addr:    "",
			},
		},
		PlaceCache: PlaceCacheConfig{
			TTL: 24 * time.Hour,
			Postgres: PostgresConfig{
				DSN:      "",
				MaxConns: 4,
				MinConns: 0,
			},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.Geocoding.SearchURL == "" {
		return errors.New("geocoding.searchUrl cannot be empty")
	}
	if c.Geocoding.ReverseURL == "" {
		return errors.New("geocoding.reverseUrl cannot be empty")
	}
	if c.Forecast.BaseURL == "" {
		return errors.New("forecast.baseUrl cannot be empty")
	}
	if c.Forecast.HourlyWindow <= 0 {
		return errors.New("forecast.hourlyWindow must be positive")
	}
	if c.Forecast.DailyWindow <= 0 {
		return errors.New("forecast.dailyWindow must be positive")
	}
	if c.History.Limit <= 0 {
		return errors.New("history.limit must be positive")
	}
	if strings.TrimSpace(c.Session.Secret) == "" {
		return errors.New("session.secret cannot be empty")
	}
	if c.Session.TokenTTL <= 0 {
		return errors.New("session.tokenTtl must be positive")
	}
	if c.Prefs.Valkey.Enabled && strings.TrimSpace(c.Prefs.Valkey.Addr) == "" {
		return errors.New("prefs.valkey.addr cannot be empty when valkey is enabled")
	}
	if c.PlaceCache.TTL < 0 {
		return errors.New("placeCache.ttl cannot be negative")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.HTTP.Retry.Enabled {
		if c.HTTP.Retry.MaxAttempts <= 0 {
			return errors.New("http.retry.maxAttempts must be positive")
		}
		if c.HTTP.Retry.BaseBackoff <= 0 {
			return errors.New("http.retry.baseBackoff must be positive")
		}
	}
	return nil
}

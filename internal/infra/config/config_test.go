package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.HTTP.Address)
	require.Equal(t, 24, cfg.Forecast.HourlyWindow)
	require.Equal(t, 5, cfg.Forecast.DailyWindow)
	require.Equal(t, 8, cfg.History.Limit)
	require.True(t, cfg.HTTP.RateLimit.Enabled)
	require.Contains(t, cfg.HTTP.Retry.Exclude, "/api/v1/dashboard/units/toggle")
	require.False(t, cfg.Prefs.Valkey.Enabled)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  address: ":9090"
forecast:
  hourlyWindow: 12
history:
  limit: 4
session:
  secret: file-secret
`), 0o600))
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, ":9090", cfg.HTTP.Address)
	require.Equal(t, 12, cfg.Forecast.HourlyWindow)
	require.Equal(t, 4, cfg.History.Limit)
	require.Equal(t, "file-secret", cfg.Session.Secret)
	// untouched fields keep their defaults
	require.Equal(t, 5, cfg.Forecast.DailyWindow)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http:\n  address: \":9090\"\n"), 0o600))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("HTTP_ADDRESS", ":7070")
	t.Setenv("FORECAST_HOURLY_WINDOW", "6")
	t.Setenv("SESSION_TOKEN_TTL", "48h")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, ":7070", cfg.HTTP.Address)
	require.Equal(t, 6, cfg.Forecast.HourlyWindow)
	require.Equal(t, 48*time.Hour, cfg.Session.TokenTTL)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(cfg *Config)
	}{
		{"empty address", func(cfg *Config) { cfg.HTTP.Address = "" }},
		{"zero hourly window", func(cfg *Config) { cfg.Forecast.HourlyWindow = 0 }},
		{"zero daily window", func(cfg *Config) { cfg.Forecast.DailyWindow = 0 }},
		{"zero history limit", func(cfg *Config) { cfg.History.Limit = 0 }},
		{"blank session secret", func(cfg *Config) { cfg.Session.Secret = "  " }},
		{"valkey enabled without addr", func(cfg *Config) { cfg.Prefs.Valkey.Enabled = true }},
		{"rate limit without rpm", func(cfg *Config) { cfg.HTTP.RateLimit.RequestsPerMinute = 0 }},
		{"retry without attempts", func(cfg *Config) { cfg.HTTP.Retry.MaxAttempts = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http: [not a map"), 0o600))
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	require.Error(t, err)
}

package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/lequoctrung8581/weather-app-group-project-asm3/internal/domain/dashboard"
	"github.com/lequoctrung8581/weather-app-group-project-asm3/internal/domain/session"
	"github.com/lequoctrung8581/weather-app-group-project-asm3/internal/infra/config"
	"github.com/lequoctrung8581/weather-app-group-project-asm3/internal/infra/openmeteo"
	"github.com/lequoctrung8581/weather-app-group-project-asm3/internal/infra/placecache"
	"github.com/lequoctrung8581/weather-app-group-project-asm3/internal/infra/prefstore"
)

func provideDashboardConfig(cfg *config.Config) dashboard.Config {
	return dashboard.Config{
		HourlyWindow: cfg.Forecast.HourlyWindow,
		DailyWindow:  cfg.Forecast.DailyWindow,
		HistoryLimit: cfg.History.Limit,
	}
}

func provideSessionConfig(cfg *config.Config) session.Config {
	return session.Config{
		Secret:   cfg.Session.Secret,
		TokenTTL: cfg.Session.TokenTTL,
	}
}

func provideGeocodeClient(cfg *config.Config) *openmeteo.GeocodeClient {
	return openmeteo.NewGeocodeClient(cfg.Geocoding.SearchURL, cfg.Geocoding.ReverseURL, cfg.Geocoding.Language, cfg.Geocoding.Timeout)
}

func provideForecastClient(cfg *config.Config) *openmeteo.ForecastClient {
	return openmeteo.NewForecastClient(cfg.Forecast.BaseURL, cfg.Forecast.Timeout)
}

func providePrefStore(cfg *config.Config, logger *slog.Logger) dashboard.PrefStore {
	if cfg.Prefs.Valkey.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
			return prefstore.NewMemoryStore()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory store", "error", err)
			return prefstore.NewMemoryStore()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory store", "error", err)
		} else {
			logger.Info("valkey preference store enabled", "addr", cfg.Prefs.Valkey.Addr)
			return prefstore.NewValkeyStore(client, "prefs")
		}
	}
	return prefstore.NewMemoryStore()
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Prefs.Valkey.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Prefs.Valkey.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Prefs.Valkey.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}

func providePlaceCache(cfg *config.Config, logger *slog.Logger) dashboard.PlaceCache {
	fallback := placecache.NewMemoryCache(cfg.PlaceCache.TTL)
	dsn := strings.TrimSpace(cfg.PlaceCache.Postgres.DSN)
	if dsn == "" {
		logger.Info("place cache postgres dsn not set, using memory cache")
		return fallback
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory cache", "error", err)
		return fallback
	}
	if cfg.PlaceCache.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.PlaceCache.Postgres.MaxConns
	}
	if cfg.PlaceCache.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.PlaceCache.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory cache", "error", err)
		return fallback
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory cache", "error", err)
		pool.Close()
		return fallback
	}
	logger.Info("place cache postgres backend enabled")
	return placecache.NewPostgresCache(pool, cfg.PlaceCache.TTL)
}

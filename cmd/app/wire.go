//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/lequoctrung8581/weather-app-group-project-asm3/internal/bootstrap"
	"github.com/lequoctrung8581/weather-app-group-project-asm3/internal/domain/dashboard"
	"github.com/lequoctrung8581/weather-app-group-project-asm3/internal/domain/session"
	"github.com/lequoctrung8581/weather-app-group-project-asm3/internal/infra/config"
	"github.com/lequoctrung8581/weather-app-group-project-asm3/internal/infra/openmeteo"
	httpiface "github.com/lequoctrung8581/weather-app-group-project-asm3/internal/interface/http"
	"github.com/lequoctrung8581/weather-app-group-project-asm3/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideDashboardConfig,
		provideSessionConfig,
		provideGeocodeClient,
		provideForecastClient,
		providePrefStore,
		providePlaceCache,
		dashboard.NewService,
		session.NewService,
		wire.Bind(new(dashboard.GeocodingClient), new(*openmeteo.GeocodeClient)),
		wire.Bind(new(dashboard.ForecastClient), new(*openmeteo.ForecastClient)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}

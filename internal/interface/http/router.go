package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lequoctrung8581/weather-app-group-project-asm3/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(handler.logger),
		corsMiddleware(cfg.HTTP.CORS.AllowedOrigins),
		rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger),
		errorHandlingMiddleware(handler.logger),
	)

	api := router.Group("/api/v1")
	{
		api.POST("/sessions", handler.CreateSession)

		board := api.Group("/dashboard", sessionMiddleware(handler.sessionSvc))
		{
			board.GET("", handler.GetSnapshot)
			board.POST("/search", handler.Search)
			board.POST("/locate", handler.Locate)
			board.POST("/units/toggle", handler.ToggleUnits)
			board.POST("/theme/toggle", handler.ToggleTheme)
			board.GET("/history", handler.History)
		}
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        withRetry(router, cfg.HTTP.Retry, handler.logger),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}

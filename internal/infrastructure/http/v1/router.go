// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"textile/internal/domain/reports"
	"textile/internal/infrastructure/http/v1/handlers"
	"textile/internal/infrastructure/http/v1/middleware"
	"textile/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// DB is pinged by the readiness probe
	DB handlers.Pinger

	// Logger for request logging
	Logger *logger.Logger

	// ReportsService serves the report endpoints
	ReportsService *reports.Service

	// Development switches Gin to debug mode
	Development bool
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Development {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.Recovery())

	healthHandler := handlers.NewHealthHandler(cfg.DB)
	healthHandler.RegisterRoutes(router.Group("/health"))

	base := handlers.NewBaseHandler()
	api := router.Group("/api/v1")

	reportsHandler := handlers.NewReportsHandler(base, cfg.ReportsService)
	reportsHandler.RegisterRoutes(api.Group("/reports"))

	return router
}

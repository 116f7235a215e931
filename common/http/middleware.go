package http

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/narender/anime-explorer/common/middleware"
	"github.com/narender/anime-explorer/common/telemetry/metric"
)

// MiddlewareConfig selects the middleware registered by RegisterMiddleware.
type MiddlewareConfig struct {
	Logger         *slog.Logger
	Metrics        *metric.HTTPMetrics
	EnableOTel     bool
	EnableLogger   bool
	EnableCORS     bool
	EnableRecovery bool
	SkipPaths      []string
	CORSConfig     cors.Config
}

// DefaultMiddlewareConfig returns default middleware configuration
func DefaultMiddlewareConfig() MiddlewareConfig {
	return MiddlewareConfig{
		EnableOTel:     true,
		EnableLogger:   true,
		EnableCORS:     true,
		EnableRecovery: true,
		SkipPaths:      []string{"/health"},
		CORSConfig: cors.Config{
			AllowOrigins:  "*",
			AllowHeaders:  "Origin, Content-Type, Accept, Authorization, " + middleware.RequestIDHeader,
			ExposeHeaders: middleware.RequestIDHeader,
		},
	}
}

// RegisterMiddleware registers the common middleware. Metrics wrap request
// logging, which invokes the error handler, so they record final statuses.
func RegisterMiddleware(app *fiber.App, cfg MiddlewareConfig) {
	if cfg.EnableCORS {
		app.Use(cors.New(cfg.CORSConfig))
	}
	if cfg.EnableRecovery {
		app.Use(middleware.RecoverMiddleware(cfg.Logger))
	}
	if cfg.EnableOTel {
		app.Use(middleware.OtelMiddleware())
	}
	app.Use(middleware.ContextLoggerMiddleware(cfg.Logger))
	if cfg.Metrics != nil {
		app.Use(middleware.MetricsMiddleware(cfg.Metrics))
	}
	if cfg.EnableLogger {
		app.Use(middleware.RequestLoggerMiddleware(cfg.SkipPaths...))
	}
}

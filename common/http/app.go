// Package http builds the service's Fiber application with the standard
// middleware chain and error envelope.
package http

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/narender/anime-explorer/common/config"
	"github.com/narender/anime-explorer/common/middleware"
)

// AppConfig holds configuration for the Fiber app
type AppConfig struct {
	Name              string
	Logger            *slog.Logger
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	BodyLimit         int
	DisableStartupLog bool
	MiddlewareConfig  MiddlewareConfig
}

// DefaultAppConfig returns default app configuration for cfg.
func DefaultAppConfig(cfg *config.Config) AppConfig {
	appCfg := AppConfig{
		Name:              "anime-explorer",
		Logger:            slog.Default(),
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		BodyLimit:         1024 * 1024,
		DisableStartupLog: true,
		MiddlewareConfig:  DefaultMiddlewareConfig(),
	}
	if cfg != nil {
		appCfg.Name = cfg.ServiceName
		appCfg.MiddlewareConfig.EnableOTel = cfg.OtelEnabled
	}
	return appCfg
}

// NewApp creates a Fiber app answering errors with the standard envelope and
// registers the common middleware.
func NewApp(cfg AppConfig) *fiber.App {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	app := fiber.New(fiber.Config{
		AppName:               cfg.Name,
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		IdleTimeout:           cfg.IdleTimeout,
		BodyLimit:             cfg.BodyLimit,
		DisableStartupMessage: cfg.DisableStartupLog,
		ErrorHandler:          middleware.ErrorHandler(cfg.Logger),
	})

	cfg.MiddlewareConfig.Logger = cfg.Logger
	RegisterMiddleware(app, cfg.MiddlewareConfig)

	logrus.WithFields(logrus.Fields{
		"app":        cfg.Name,
		"otel":       cfg.MiddlewareConfig.EnableOTel,
		"body_limit": cfg.BodyLimit,
	}).Debug("Fiber app configured")
	return app
}

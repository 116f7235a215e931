package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/narender/anime-explorer/anime-service/src/auth"
	"github.com/narender/anime-explorer/anime-service/src/handlers"
	"github.com/narender/anime-explorer/anime-service/src/repositories"
	"github.com/narender/anime-explorer/anime-service/src/services"
	"github.com/narender/anime-explorer/anime-service/src/store"
	"github.com/narender/anime-explorer/common/config"
	"github.com/narender/anime-explorer/common/db"
	"github.com/narender/anime-explorer/common/globals"
	commonhttp "github.com/narender/anime-explorer/common/http"
	"github.com/narender/anime-explorer/common/httpclient"
	"github.com/narender/anime-explorer/common/lifecycle"
	commonlog "github.com/narender/anime-explorer/common/log"
	"github.com/narender/anime-explorer/common/telemetry/metric"
)

func runServe(cmd *cobra.Command, _ []string) error {
	// --- Configuration, logging and telemetry ---
	if err := globals.Init(configFile, flagOptions(cmd)...); err != nil {
		return err
	}
	cfg := globals.Cfg()
	logger := globals.Logger()
	defer commonlog.Cleanup()
	cfg.Log()

	ctx, cancel := context.WithCancelCause(cmd.Context())
	defer cancel(nil)

	// --- Persistence ---
	storage, err := db.Open(cfg, logger)
	if err != nil {
		logger.Error("Failed to open storage", slog.String("driver", cfg.StorageDriver), slog.Any("error", err))
		return err
	}

	comp, err := buildComponents(ctx, cfg, logger, storage)
	if err != nil {
		return err
	}

	// --- HTTP server ---
	appCfg := commonhttp.DefaultAppConfig(cfg)
	appCfg.Logger = logger
	appCfg.MiddlewareConfig.Metrics = comp.httpMetrics
	app := commonhttp.NewApp(appCfg)
	comp.handler.RegisterRoutes(app)
	logger.Info("All routes registered successfully", slog.Int("routes", len(app.GetRoutes(true))))

	addr := fmt.Sprintf(":%s", cfg.Port)
	listenErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting to listen", slog.String("address", addr))
		if err := app.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server listener failed", slog.Any("error", err))
			listenErr <- err
			cancel(err)
		}
	}()

	shutdownErr := lifecycle.WaitForGracefulShutdown(ctx, cfg,
		lifecycle.ServerTask(cfg, lifecycle.FiberServer(app)),
		lifecycle.CloserTask("catalog client", cfg.ShutdownServerTimeout, func() error {
			comp.client.CloseIdleConnections()
			return nil
		}),
		lifecycle.CloserTask("storage", cfg.ShutdownServerTimeout, storage.Close),
		lifecycle.TelemetryTask(cfg, globals.TelemetryShutdown()),
	)

	select {
	case err := <-listenErr:
		return errors.Join(err, shutdownErr)
	default:
		return shutdownErr
	}
}

// components are the collaborators built on top of the opened storage.
type components struct {
	client      *httpclient.Client
	handler     *handlers.AnimeHandler
	httpMetrics *metric.HTTPMetrics
}

// buildComponents wires the catalog client, accounts and handlers. On error
// storage is closed before returning.
func buildComponents(ctx context.Context, cfg *config.Config, logger *slog.Logger, storage db.Storage) (comp components, err error) {
	defer func() {
		if err != nil {
			if closeErr := storage.Close(); closeErr != nil {
				logger.Warn("Failed to close storage", slog.Any("error", closeErr))
			}
		}
	}()

	// --- Catalog client ---
	meter := metric.Meter()
	apiMetrics, err := metric.NewAPIMetrics(meter)
	if err != nil {
		return components{}, err
	}
	httpMetrics, err := metric.NewHTTPMetrics(meter)
	if err != nil {
		return components{}, err
	}

	client, err := httpclient.New(cfg.JikanBaseURL,
		httpclient.WithTimeout(cfg.HTTPClientTimeout),
		httpclient.WithLogger(commonlog.NewAPILogger(logger)),
		httpclient.WithMetrics(apiMetrics),
		httpclient.WithErrorDecoder(services.DecodeJikanError))
	if err != nil {
		logger.Error("Invalid catalog base URL", slog.String("url", cfg.JikanBaseURL), slog.Any("error", err))
		return components{}, err
	}
	animeService := services.NewAnimeService(client, logger)
	logger.Debug("Anime service initialized", slog.String("base_url", client.BaseURL()))

	// --- Accounts and browsing state ---
	authService := auth.NewService(
		auth.NewMockProvider(cfg.AuthSimulatedDelay, logger),
		repositories.NewSessionRepository(storage, logger),
		logger)
	if restored, appErr := authService.Restore(ctx); appErr != nil {
		logger.Warn("Failed to restore sessions", slog.String("error_code", appErr.Code))
	} else {
		logger.Debug("Sessions restored", slog.Int("count", restored))
	}

	stores := store.NewRegistry(animeService, repositories.NewFavoritesRepository(storage, logger), logger,
		store.WithMaxFavorites(cfg.MaxFavorites))

	handler := handlers.NewAnimeHandler(handlers.Dependencies{
		Service:            animeService,
		Auth:               authService,
		Stores:             stores,
		LoginMaxAttempts:   cfg.LoginMaxAttempts,
		LoginAttemptWindow: cfg.LoginAttemptWindow,
		Logger:             logger,
	})

	return components{client: client, handler: handler, httpMetrics: httpMetrics}, nil
}

package globals

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/narender/anime-explorer/common/config"
	"github.com/narender/anime-explorer/common/log"
	"github.com/narender/anime-explorer/common/logging"
	"github.com/narender/anime-explorer/common/telemetry"
)

var (
	cfg               *config.Config
	logger            *slog.Logger
	telemetryShutdown func(context.Context) error
	// once ensures that initialization logic runs exactly once.
	once sync.Once
	err  error
)

// Init loads configuration from path (may be empty) and sets up logrus, the
// slog logger and telemetry. It runs once; later calls return the first result.
func Init(path string, opts ...config.Option) error {
	once.Do(func() {
		cfg, err = config.Load(path, opts...)
		if err != nil {
			err = fmt.Errorf("failed to load config during init: %w", err)
			return
		}

		logging.SetupLogrus(cfg)

		telemetryShutdown, err = telemetry.InitTelemetry(context.Background(), cfg)
		if err != nil {
			err = fmt.Errorf("failed to initialize telemetry setup during init: %w", err)
			return
		}

		logger = log.Init(cfg)
	})

	return err
}

// Cfg returns the loaded configuration, panicking if Init hasn't been successfully called.
func Cfg() *config.Config {
	if cfg == nil {
		panic("configuration not initialized: call globals.Init() first and check error")
	}
	return cfg
}

// Logger returns the initialized logger, panicking if Init hasn't been successfully called.
func Logger() *slog.Logger {
	if logger == nil {
		panic("logger not initialized: call globals.Init() first and check error")
	}
	return logger
}

// TelemetryShutdown returns the function flushing telemetry providers.
func TelemetryShutdown() func(context.Context) error {
	if telemetryShutdown == nil {
		return func(context.Context) error { return nil }
	}
	return telemetryShutdown
}

// GetCfg returns the loaded configuration, potentially nil if Init failed or wasn't called.
func GetCfg() *config.Config {
	return cfg
}

// GetLogger returns the initialized logger, potentially nil if Init failed or wasn't called.
func GetLogger() *slog.Logger {
	return logger
}

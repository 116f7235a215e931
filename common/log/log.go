// Package log builds the service's slog logger: a console handler (tint for
// text, JSON otherwise) fanned out to the OpenTelemetry log bridge when
// telemetry is enabled.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	slogmulti "github.com/samber/slog-multi"
	"go.opentelemetry.io/contrib/bridges/otelslog"

	"github.com/narender/anime-explorer/common/config"
)

// Global slog logger instance
var L *slog.Logger

// Init builds the logger from cfg, stores it in L and makes it the slog default.
func Init(cfg *config.Config) *slog.Logger {
	L = slog.New(NewHandler(cfg, os.Stdout))
	slog.SetDefault(L)

	L.Info("Logger initialized",
		slog.String("environment", cfg.Environment),
		slog.String("level", ParseLevel(cfg.LogLevel).String()),
		slog.String("format", cfg.LogFormat),
		slog.Bool("otel", cfg.OtelEnabled))
	return L
}

// NewHandler returns the handler chain for cfg writing console output to w.
func NewHandler(cfg *config.Config, w io.Writer) slog.Handler {
	level := ParseLevel(cfg.LogLevel)

	var console slog.Handler
	if cfg.LogFormat == "json" {
		console = slog.NewJSONHandler(w, &slog.HandlerOptions{
			AddSource: cfg.IsProduction(),
			Level:     level,
		})
	} else {
		console = tint.NewHandler(w, &tint.Options{
			AddSource:  !cfg.IsProduction(),
			Level:      level,
			TimeFormat: time.TimeOnly,
			NoColor:    cfg.IsProduction(),
		})
	}

	if !cfg.OtelEnabled {
		return console
	}
	return slogmulti.Fanout(console, otelslog.NewHandler(cfg.ServiceName))
}

// ParseLevel converts a level name, defaulting to info.
func ParseLevel(name string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return level
}

type loggerKey struct{}

// NewContext returns a copy of ctx carrying logger.
func NewContext(ctx context.Context, logger *slog.Logger) context.Context {
	if logger == nil {
		return ctx
	}
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the request logger stored in ctx, falling back to L and
// then to the slog default.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && logger != nil {
			return logger
		}
	}
	if L != nil {
		return L
	}
	return slog.Default()
}

// Cleanup flushes nothing today; kept so callers can defer it symmetrically with Init.
func Cleanup() {
	if L != nil {
		L.Debug("Logger cleanup called")
	}
}

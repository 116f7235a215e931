// Package logging configures the logrus logger used while the service boots
// and shuts down, before and after the slog pipeline is available.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/uptrace/opentelemetry-go-extra/otellogrus"

	"github.com/narender/anime-explorer/common/config"
)

// SetupLogrus configures the standard logrus logger from cfg and returns it.
func SetupLogrus(cfg *config.Config) *logrus.Logger {
	return setup(cfg, os.Stderr)
}

func setup(cfg *config.Config, out io.Writer) *logrus.Logger {
	logger := logrus.StandardLogger()
	logger.SetOutput(out)
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warnf("Invalid log level '%s', defaulting to 'info': %v", cfg.LogLevel, err)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	switch strings.ToLower(cfg.LogFormat) {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		})
	case "text":
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339Nano,
		})
	default:
		logger.Warnf("Invalid log format '%s', defaulting to 'text'", cfg.LogFormat)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339Nano,
		})
	}
	if cfg.OtelEnabled {
		// Entries logged with a context carrying a span become span events.
		logger.AddHook(otellogrus.NewHook(otellogrus.WithLevels(
			logrus.PanicLevel,
			logrus.FatalLevel,
			logrus.ErrorLevel,
			logrus.WarnLevel,
			logrus.InfoLevel,
		)))
	}

	logger.Infof("Logrus initialized with level '%s' and format '%s'.", logger.GetLevel(), cfg.LogFormat)
	return logger
}

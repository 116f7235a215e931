package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/narender/anime-explorer/common/config"
)

// Task is one step of the shutdown sequence.
type Task struct {
	Name     string
	Timeout  time.Duration
	Shutdown func(context.Context) error
}

// ServerTask shuts down server within the configured server timeout.
func ServerTask(cfg *config.Config, server Shutdowner) Task {
	t := Task{Name: "server", Timeout: cfg.ShutdownServerTimeout}
	if server != nil {
		t.Shutdown = server.Shutdown
	}
	return t
}

// TelemetryTask flushes telemetry within the configured otel timeout.
func TelemetryTask(cfg *config.Config, shutdown func(context.Context) error) Task {
	return Task{Name: "telemetry", Timeout: cfg.ShutdownOtelTimeout, Shutdown: shutdown}
}

// CloserTask wraps a Close method that takes no context.
func CloserTask(name string, timeout time.Duration, closeFn func() error) Task {
	return Task{Name: name, Timeout: timeout, Shutdown: func(context.Context) error { return closeFn() }}
}

// WaitForGracefulShutdown blocks until a SIGINT or SIGTERM signal is received
// or ctx is done, then runs the shutdown tasks in order.
func WaitForGracefulShutdown(ctx context.Context, cfg *config.Config, tasks ...Task) error {
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()

	logrus.StandardLogger().WithField("cause", context.Cause(sigCtx)).Info("Received shutdown signal, initiating graceful shutdown...")
	return Shutdown(cfg, tasks...)
}

// Shutdown runs tasks sequentially. Each task gets its own timeout bounded by
// cfg.ShutdownTotalTimeout; once the total budget is spent remaining tasks
// are skipped.
func Shutdown(cfg *config.Config, tasks ...Task) error {
	logger := logrus.StandardLogger()

	shutdownTotalTimeout := cfg.ShutdownTotalTimeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTotalTimeout)
	defer cancel()

	var shutdownErrs error
	for _, task := range tasks {
		if task.Shutdown == nil {
			logger.Debugf("Skipping shutdown for %s (nil function)", task.Name)
			continue
		}

		timeout := task.Timeout
		if timeout <= 0 {
			timeout = shutdownTotalTimeout
		}
		taskCtx, taskCancel := context.WithTimeout(shutdownCtx, timeout)

		logger.Infof("Attempting to shut down %s (timeout: %s)...", task.Name, timeout)
		if err := task.Shutdown(taskCtx); err != nil {
			logger.WithError(err).Errorf("Error during %s shutdown", task.Name)
			shutdownErrs = errors.Join(shutdownErrs, fmt.Errorf("%s shutdown error: %w", task.Name, err))
			if errors.Is(err, context.DeadlineExceeded) {
				logger.Warnf("%s shutdown timed out after %s", task.Name, timeout)
			}
		} else {
			logger.Infof("%s shutdown complete", task.Name)
		}
		taskCancel()

		if shutdownCtx.Err() != nil {
			logger.Warnf("Overall shutdown timeout (%s) exceeded during %s shutdown. Aborting further steps.", shutdownTotalTimeout, task.Name)
			if !errors.Is(shutdownErrs, context.DeadlineExceeded) {
				shutdownErrs = errors.Join(shutdownErrs, fmt.Errorf("overall shutdown timeout exceeded: %w", shutdownCtx.Err()))
			}
			break
		}
	}

	if shutdownErrs != nil {
		logger.WithError(shutdownErrs).Error("Application shutdown completed with errors")
		return shutdownErrs
	}
	logger.Info("Application shutdown completed successfully")
	return nil
}

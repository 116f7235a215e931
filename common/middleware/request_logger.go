package middleware

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	commonlog "github.com/narender/anime-explorer/common/log"
)

// RequestLoggerMiddleware logs one line per request once the handler chain
// and the error handler have run. Successful requests to skipPaths are not
// logged.
func RequestLoggerMiddleware(skipPaths ...string) fiber.Handler {
	skip := make(map[string]bool, len(skipPaths))
	for _, path := range skipPaths {
		skip[path] = true
	}

	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()
		if err != nil {
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		statusCode := c.Response().StatusCode()
		if skip[path] && statusCode < 400 {
			return nil
		}

		attrs := []slog.Attr{
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status_code", statusCode),
			slog.Duration("duration", time.Since(start)),
			slog.String("ip", c.IP()),
			slog.String("user_agent", c.Get(fiber.HeaderUserAgent)),
		}

		level := slog.LevelInfo
		switch {
		case statusCode >= 500:
			level = slog.LevelError
		case statusCode >= 400:
			level = slog.LevelWarn
		}

		ctx := c.UserContext()
		commonlog.FromContext(ctx).LogAttrs(ctx, level, "Request completed", attrs...)
		return nil
	}
}

package middleware

import (
	"context"
	"log/slog"
	"runtime/debug"
	"time"

	otelfiber "github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.opentelemetry.io/otel/attribute"

	"github.com/narender/anime-explorer/common/telemetry/metric"
)

// OtelMiddleware starts a server span per request.
func OtelMiddleware(opts ...otelfiber.Option) fiber.Handler {
	return otelfiber.Middleware(opts...)
}

// MetricsMiddleware records request duration and in-flight requests.
func MetricsMiddleware(m *metric.HTTPMetrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		start := time.Now()
		m.AddActiveRequest(ctx, 1, attribute.String("http.request.method", c.Method()))
		defer m.AddActiveRequest(ctx, -1, attribute.String("http.request.method", c.Method()))

		err := c.Next()

		route := c.Route().Path
		m.RecordHTTPRequestDuration(ctx, time.Since(start),
			attribute.String("http.request.method", c.Method()),
			attribute.String("http.route", route),
			attribute.Int("http.response.status_code", c.Response().StatusCode()),
		)
		return err
	}
}

// RecoverMiddleware turns handler panics into 500 responses and logs the stack.
func RecoverMiddleware(logger *slog.Logger) fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e any) {
			if logger == nil {
				return
			}
			ctx := c.UserContext()
			if ctx == nil {
				ctx = context.Background()
			}
			logger.ErrorContext(ctx, "CRITICAL: Unhandled panic recovered",
				slog.Any("panic", e),
				slog.String("stack", string(debug.Stack())),
				slog.String("path", c.Path()),
				slog.String("method", c.Method()),
			)
		},
	})
}

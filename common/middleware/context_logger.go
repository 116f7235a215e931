package middleware

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	commonlog "github.com/narender/anime-explorer/common/log"
)

const (
	// RequestIDHeader carries the request id in and out.
	RequestIDHeader = "X-Request-ID"
	// RequestIDKey is the fiber.Locals key holding the request id.
	RequestIDKey = "requestid"
)

// ContextLoggerMiddleware stores a request-scoped logger in the user context,
// tagged with the request id and, when a span is active, its trace and span ids.
func ContextLoggerMiddleware(baseLogger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()

		requestID := c.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Locals(RequestIDKey, requestID)
		c.Set(RequestIDHeader, requestID)

		base := baseLogger
		if base == nil {
			base = commonlog.FromContext(ctx)
		}
		requestLogger := base.With(slog.String("request_id", requestID))

		if spanCtx := trace.SpanFromContext(ctx).SpanContext(); spanCtx.IsValid() {
			requestLogger = requestLogger.With(
				slog.String("trace_id", spanCtx.TraceID().String()),
				slog.String("span_id", spanCtx.SpanID().String()),
			)
		}

		c.SetUserContext(commonlog.NewContext(ctx, requestLogger))
		return c.Next()
	}
}

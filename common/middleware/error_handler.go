package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/narender/anime-explorer/common/apierrors"
	"github.com/narender/anime-explorer/common/apiresponses"
	commonlog "github.com/narender/anime-explorer/common/log"
	"github.com/narender/anime-explorer/common/telemetry/trace"
)

// ErrorHandler creates a Fiber error handler that writes the standard error
// envelope. 4xx responses are logged at warn, 5xx at error.
func ErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		statusCode := http.StatusInternalServerError
		errCode := apierrors.ErrCodeUnknown
		reason := ""
		message := "An unexpected error occurred"
		var details map[string]any

		var appErr *apierrors.AppError
		var fiberErr *fiber.Error
		var netErr net.Error
		var jsonErr *json.SyntaxError

		switch {
		case errors.As(err, &appErr):
			statusCode = appErr.HTTPStatus()
			errCode = appErr.Code
			reason = appErr.Reason
			message = appErr.Message
			details = appErr.Context

		case errors.As(err, &fiberErr):
			statusCode = fiberErr.Code
			message = fiberErr.Message
			switch {
			case statusCode == http.StatusNotFound:
				errCode = "ROUTE_NOT_FOUND"
			case statusCode < 500:
				errCode = apierrors.ErrCodeRequestValidation
			}

		case errors.As(err, &jsonErr):
			errCode = apierrors.ErrCodeMalformedData
			statusCode = http.StatusBadRequest
			message = "Invalid data format in request"

		case errors.Is(err, context.DeadlineExceeded):
			errCode = apierrors.ErrCodeRequestTimeout
			statusCode = http.StatusRequestTimeout
			message = "Request processing timed out"

		case errors.Is(err, context.Canceled):
			errCode = apierrors.ErrCodeRequestTimeout
			statusCode = http.StatusRequestTimeout
			message = "Request was canceled"

		case errors.As(err, &netErr):
			errCode = apierrors.ErrCodeNetworkError
			statusCode = http.StatusServiceUnavailable
			message = "Network connectivity issue occurred"
		}

		ctx := c.UserContext()
		if span := oteltrace.SpanFromContext(ctx); span.IsRecording() && statusCode >= 500 {
			trace.RecordSpanError(span, err, attribute.String("error.code", errCode))
		}

		level := slog.LevelWarn
		if statusCode >= 500 {
			level = slog.LevelError
		}
		l := logger
		if l == nil {
			l = commonlog.FromContext(ctx)
		}
		l.LogAttrs(ctx, level, fmt.Sprintf("HTTP Error: %s %s -> %d", c.Method(), c.Path(), statusCode),
			slog.String("error_code", errCode),
			slog.String("reason", reason),
			slog.String("message", message),
			slog.String("error", err.Error()),
			slog.String("route", c.Route().Path),
			slog.String("ip", c.IP()),
		)

		resp := apiresponses.NewErrorResponse(errCode, reason, message, details)
		if id, ok := c.Locals(RequestIDKey).(string); ok {
			resp = resp.WithRequestID(id)
		}
		return c.Status(statusCode).JSON(resp)
	}
}

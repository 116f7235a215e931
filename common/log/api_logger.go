package log

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// APILogger records outbound API traffic and user actions. It satisfies
// apicall.Logger. Logging never panics: a failing handler is swallowed.
type APILogger struct {
	base *slog.Logger
}

// NewAPILogger wraps base. A nil base uses the request logger from the context.
func NewAPILogger(base *slog.Logger) *APILogger {
	return &APILogger{base: base}
}

func (a *APILogger) logger(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && logger != nil {
			return logger
		}
	}
	if a != nil && a.base != nil {
		return a.base
	}
	return FromContext(ctx)
}

func (a *APILogger) emit(ctx context.Context, level slog.Level, msg string, attrs []slog.Attr) {
	defer func() { _ = recover() }()
	if ctx == nil {
		ctx = context.Background()
	}
	a.logger(ctx).LogAttrs(ctx, level, msg, attrs...)
}

// APIRequest logs an outbound request.
func (a *APILogger) APIRequest(ctx context.Context, method, url string, attrs ...slog.Attr) {
	a.emit(ctx, slog.LevelDebug, fmt.Sprintf("API Request: %s %s", strings.ToUpper(method), url), attrs)
}

// APIResponse logs a successful response.
func (a *APILogger) APIResponse(ctx context.Context, status int, url string, attrs ...slog.Attr) {
	a.emit(ctx, slog.LevelDebug, fmt.Sprintf("API Response: %d %s", status, url), attrs)
}

// APIError logs a failed exchange.
func (a *APILogger) APIError(ctx context.Context, status int, url string, err error, attrs ...slog.Attr) {
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	a.emit(ctx, slog.LevelError, fmt.Sprintf("API Error: %d %s", status, url), attrs)
}

// Error logs an unexpected failure.
func (a *APILogger) Error(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	a.emit(ctx, slog.LevelError, msg, attrs)
}

// UserAction logs something a user did.
func (a *APILogger) UserAction(ctx context.Context, action string, attrs ...slog.Attr) {
	a.emit(ctx, slog.LevelInfo, "User Action: "+action, attrs)
}

package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/narender/anime-explorer/common/apierrors"
	"github.com/narender/anime-explorer/common/apiresponses"
	commonlog "github.com/narender/anime-explorer/common/log"
	"github.com/narender/anime-explorer/common/telemetry/metric"
)

func newApp(buf *bytes.Buffer, handler fiber.Handler) *fiber.App {
	logger := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(logger)})
	app.Use(RecoverMiddleware(logger))
	app.Use(ContextLoggerMiddleware(logger))
	app.Get("/test", handler)
	return app
}

func decodeError(t *testing.T, resp *http.Response) apiresponses.ErrorResponse {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out apiresponses.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestErrorHandler(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantReason string
		wantLevel  string
	}{
		{
			name:       "business app error",
			err:        apierrors.NewBusinessError(apierrors.ErrCodeAuthRequired, "AUTH_REQUIRED", http.StatusUnauthorized, "Authentication required"),
			wantStatus: http.StatusUnauthorized,
			wantCode:   apierrors.ErrCodeAuthRequired,
			wantReason: "AUTH_REQUIRED",
			wantLevel:  "WARN",
		},
		{
			name:       "generic app error",
			err:        apierrors.NewGenericError(apierrors.ErrCodeNetworkError, apierrors.ReasonGenericError, http.StatusBadGateway, "Gateway error"),
			wantStatus: http.StatusBadGateway,
			wantCode:   apierrors.ErrCodeNetworkError,
			wantReason: apierrors.ReasonGenericError,
			wantLevel:  "ERROR",
		},
		{
			name:       "fiber error",
			err:        fiber.NewError(http.StatusBadRequest, "bad page"),
			wantStatus: http.StatusBadRequest,
			wantCode:   apierrors.ErrCodeRequestValidation,
			wantLevel:  "WARN",
		},
		{
			name:       "deadline",
			err:        context.DeadlineExceeded,
			wantStatus: http.StatusRequestTimeout,
			wantCode:   apierrors.ErrCodeRequestTimeout,
			wantLevel:  "WARN",
		},
		{
			name:       "plain error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   apierrors.ErrCodeUnknown,
			wantLevel:  "ERROR",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			app := newApp(&buf, func(*fiber.Ctx) error { return tc.err })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/test", nil))
			require.NoError(t, err)
			assert.Equal(t, tc.wantStatus, resp.StatusCode)

			body := decodeError(t, resp)
			assert.Equal(t, "error", body.Status)
			assert.Equal(t, tc.wantCode, body.Error.Code)
			assert.Equal(t, tc.wantReason, body.Error.Reason)
			assert.NotEmpty(t, body.Error.RequestID)
			assert.Equal(t, resp.Header.Get(RequestIDHeader), body.Error.RequestID)

			assert.Contains(t, buf.String(), `"level":"`+tc.wantLevel+`"`)
			assert.Contains(t, buf.String(), "HTTP Error: GET /test")
		})
	}
}

func TestErrorHandler_ExposesContext(t *testing.T) {
	var buf bytes.Buffer
	app := newApp(&buf, func(*fiber.Ctx) error {
		return apierrors.NewBusinessError(apierrors.ErrCodeFavoritesLimitReached, "FAVORITES_LIMIT_REACHED", http.StatusConflict, "limit").
			WithContext("max", 100)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/test", nil))
	require.NoError(t, err)
	body := decodeError(t, resp)
	assert.Equal(t, float64(100), body.Error.Details["max"])
}

func TestRecoverMiddleware(t *testing.T) {
	var buf bytes.Buffer
	app := newApp(&buf, func(*fiber.Ctx) error { panic("kaboom") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/test", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, buf.String(), "Unhandled panic recovered")
}

func TestContextLoggerMiddleware_KeepsIncomingRequestID(t *testing.T) {
	var buf bytes.Buffer
	app := newApp(&buf, func(c *fiber.Ctx) error {
		commonlog.FromContext(c.UserContext()).InfoContext(c.UserContext(), "inside handler")
		return c.SendStatus(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "req-123", resp.Header.Get(RequestIDHeader))
	assert.Contains(t, buf.String(), `"request_id":"req-123"`)
}

func TestRequestLoggerMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(logger)})
	app.Use(ContextLoggerMiddleware(logger))
	app.Use(RequestLoggerMiddleware())
	app.Get("/missing", func(*fiber.Ctx) error { return fiber.ErrNotFound })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, buf.String(), "Request completed")
	assert.Contains(t, buf.String(), `"status_code":404`)
}

func TestMetricsMiddleware(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	m, err := metric.NewHTTPMetrics(provider.Meter("test"))
	require.NoError(t, err)

	app := fiber.New()
	app.Use(MetricsMiddleware(m))
	app.Get("/anime/:id", func(c *fiber.Ctx) error { return c.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/anime/1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.NotEmpty(t, rm.ScopeMetrics)

	names := map[string]bool{}
	for _, sm := range rm.ScopeMetrics {
		for _, mm := range sm.Metrics {
			names[mm.Name] = true
		}
	}
	assert.True(t, names["http.server.request.count"])
	assert.True(t, names["http.server.request.duration"])
	assert.True(t, names["http.server.active_requests"])
}

package metric

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"
)

const (
	httpServerRequestCount    = "http.server.request.count"
	httpServerRequestDuration = "http.server.request.duration"
	httpServerActiveRequests  = "http.server.active_requests"
)

// HTTPMetrics holds the inbound request instruments.
type HTTPMetrics struct {
	httpReqCounter          otelmetric.Int64Counter
	httpReqDurationHist     otelmetric.Float64Histogram
	httpActiveRequestsGauge otelmetric.Int64UpDownCounter
}

// NewHTTPMetrics creates the inbound request instruments on meter.
func NewHTTPMetrics(meter otelmetric.Meter) (*HTTPMetrics, error) {
	var err error
	appMetrics := &HTTPMetrics{}

	appMetrics.httpReqCounter, err = meter.Int64Counter(
		httpServerRequestCount,
		otelmetric.WithDescription("Number of HTTP requests received"),
		otelmetric.WithUnit("{requests}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s counter: %w", httpServerRequestCount, err)
	}

	appMetrics.httpReqDurationHist, err = meter.Float64Histogram(
		httpServerRequestDuration,
		otelmetric.WithDescription("Duration of HTTP requests"),
		otelmetric.WithUnit("ms"),
		otelmetric.WithExplicitBucketBoundaries(
			5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s histogram: %w", httpServerRequestDuration, err)
	}

	appMetrics.httpActiveRequestsGauge, err = meter.Int64UpDownCounter(
		httpServerActiveRequests,
		otelmetric.WithDescription("Number of active HTTP requests"),
		otelmetric.WithUnit("{requests}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s updowncounter: %w", httpServerActiveRequests, err)
	}

	return appMetrics, nil
}

// RecordHTTPRequestDuration counts a finished request and records its duration.
func (m *HTTPMetrics) RecordHTTPRequestDuration(ctx context.Context, duration time.Duration, attributes ...attribute.KeyValue) {
	if m == nil {
		return
	}
	opt := otelmetric.WithAttributes(attributes...)
	m.httpReqCounter.Add(ctx, 1, opt)
	m.httpReqDurationHist.Record(ctx, float64(duration.Milliseconds()), opt)
}

// AddActiveRequest moves the in-flight gauge by delta.
func (m *HTTPMetrics) AddActiveRequest(ctx context.Context, delta int64, attributes ...attribute.KeyValue) {
	if m == nil {
		return
	}
	m.httpActiveRequestsGauge.Add(ctx, delta, otelmetric.WithAttributes(attributes...))
}

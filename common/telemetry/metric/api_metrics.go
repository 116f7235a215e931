package metric

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"
)

const (
	apiClientCallCount    = "api.client.call.count"
	apiClientCallDuration = "api.client.call.duration"
	apiClientCallFailures = "api.client.call.failures"
)

// APIMetrics counts outbound catalog API calls.
type APIMetrics struct {
	calls    otelmetric.Int64Counter
	failures otelmetric.Int64Counter
	duration otelmetric.Float64Histogram
}

// NewAPIMetrics creates the outbound call instruments on meter.
func NewAPIMetrics(meter otelmetric.Meter) (*APIMetrics, error) {
	m := &APIMetrics{}
	var err error

	m.calls, err = meter.Int64Counter(apiClientCallCount,
		otelmetric.WithDescription("Number of outbound API calls"),
		otelmetric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s counter: %w", apiClientCallCount, err)
	}

	m.failures, err = meter.Int64Counter(apiClientCallFailures,
		otelmetric.WithDescription("Number of outbound API calls that failed"),
		otelmetric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s counter: %w", apiClientCallFailures, err)
	}

	m.duration, err = meter.Float64Histogram(apiClientCallDuration,
		otelmetric.WithDescription("Duration of outbound API calls"),
		otelmetric.WithUnit("ms"),
		otelmetric.WithExplicitBucketBoundaries(25, 50, 100, 250, 500, 1000, 2500, 5000, 10000),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s histogram: %w", apiClientCallDuration, err)
	}

	return m, nil
}

// RecordCall records one finished call. status is 0 when no response arrived.
func (m *APIMetrics) RecordCall(ctx context.Context, route string, status int, failed bool, duration time.Duration) {
	if m == nil {
		return
	}
	attrs := otelmetric.WithAttributes(
		attribute.String("api.route", route),
		attribute.Int("http.response.status_code", status),
	)
	m.calls.Add(ctx, 1, attrs)
	m.duration.Record(ctx, float64(duration.Microseconds())/1000.0, attrs)
	if failed {
		m.failures.Add(ctx, 1, attrs)
	}
}

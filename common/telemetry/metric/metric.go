// Package metric defines the service's OpenTelemetry instruments.
package metric

import (
	"go.opentelemetry.io/otel"
	otelmetric "go.opentelemetry.io/otel/metric"
)

// InstrumentationName is the meter scope for instruments defined here.
const InstrumentationName = "github.com/narender/anime-explorer/common/telemetry/metric"

// Meter returns the meter from the global provider.
func Meter() otelmetric.Meter {
	return otel.Meter(InstrumentationName)
}

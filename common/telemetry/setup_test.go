package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/narender/anime-explorer/common/config"
)

func TestInitTelemetry_Disabled(t *testing.T) {
	shutdown, err := InitTelemetry(context.Background(), config.NewConfig(config.WithOtel(false, "")))
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestNewResource(t *testing.T) {
	cfg := config.NewConfig(config.WithServiceName("anime-test"), config.WithEnvironment("staging"))

	res, err := NewResource(context.Background(), cfg)
	require.NoError(t, err)

	set := res.Set()
	name, ok := set.Value(attribute.Key("service.name"))
	require.True(t, ok)
	assert.Equal(t, "anime-test", name.AsString())

	env, ok := set.Value(attribute.Key("deployment.environment"))
	require.True(t, ok)
	assert.Equal(t, "staging", env.AsString())
}

func TestNewSampler(t *testing.T) {
	sampled := func(s sdktrace.Sampler) sdktrace.SamplingDecision {
		return s.ShouldSample(sdktrace.SamplingParameters{
			ParentContext: context.Background(),
			TraceID:       trace.TraceID{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
			Name:          "root",
		}).Decision
	}

	assert.Equal(t, sdktrace.RecordAndSample, sampled(NewSampler(1)))
	assert.Equal(t, sdktrace.Drop, sampled(NewSampler(0)))
	assert.Contains(t, NewSampler(0.5).Description(), "TraceIDRatioBased")
}

func TestDialOptions(t *testing.T) {
	assert.Len(t, DialOptions(config.NewConfig()), 1)
	cfg := config.NewConfig()
	cfg.OtelInsecure = false
	assert.Len(t, DialOptions(cfg), 1)
}

func TestDeltaTemporality(t *testing.T) {
	assert.Equal(t, metricdata.DeltaTemporality, deltaTemporality(sdkmetric.InstrumentKindCounter))
	assert.Equal(t, metricdata.DeltaTemporality, deltaTemporality(sdkmetric.InstrumentKindHistogram))
	assert.Equal(t, metricdata.CumulativeTemporality, deltaTemporality(sdkmetric.InstrumentKindUpDownCounter))
}

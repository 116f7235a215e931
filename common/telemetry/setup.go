// Package telemetry wires the OpenTelemetry SDK: traces, metrics and logs are
// exported over OTLP/gRPC, and runtime and host metrics are collected.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/host"
	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/narender/anime-explorer/common/config"
)

const metricInterval = 15 * time.Second

// InitTelemetry installs the global providers and returns a function that
// flushes and stops them. With telemetry disabled only the propagator is set
// and the returned shutdown is a no-op.
func InitTelemetry(ctx context.Context, cfg *config.Config) (shutdown func(context.Context) error, err error) {
	logger := logrus.StandardLogger()

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	var shutdownFuncs []func(context.Context) error
	shutdown = func(ctx context.Context) error {
		var shutdownErr error
		for i := len(shutdownFuncs) - 1; i >= 0; i-- {
			shutdownErr = errors.Join(shutdownErr, shutdownFuncs[i](ctx))
		}
		shutdownFuncs = nil
		return shutdownErr
	}

	if !cfg.OtelEnabled {
		logger.Info("OpenTelemetry export disabled")
		return shutdown, nil
	}

	defer func() {
		if err != nil {
			logger.WithError(err).Error("OpenTelemetry SDK initialization failed")
			if shutdownErr := shutdown(context.Background()); shutdownErr != nil {
				logger.WithError(shutdownErr).Error("Error during OTel cleanup after setup failure")
			}
		}
	}()

	res, err := NewResource(ctx, cfg)
	if err != nil {
		return shutdown, err
	}
	dialOpts := DialOptions(cfg)

	traceExporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(cfg.OtelEndpoint),
		otlptracegrpc.WithDialOption(dialOpts...),
	)
	if err != nil {
		return shutdown, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSampler(NewSampler(cfg.OtelSampleRatio)),
		sdktrace.WithBatcher(traceExporter),
	)
	otel.SetTracerProvider(tp)
	shutdownFuncs = append(shutdownFuncs, tp.Shutdown)

	metricExporter, err := otlpmetricgrpc.New(ctx,
		otlpmetricgrpc.WithEndpoint(cfg.OtelEndpoint),
		otlpmetricgrpc.WithDialOption(dialOpts...),
		otlpmetricgrpc.WithTemporalitySelector(deltaTemporality),
	)
	if err != nil {
		return shutdown, fmt.Errorf("failed to create OTLP metric exporter: %w", err)
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter, sdkmetric.WithInterval(metricInterval))),
	)
	otel.SetMeterProvider(mp)
	shutdownFuncs = append(shutdownFuncs, mp.Shutdown)

	logExporter, err := otlploggrpc.New(ctx,
		otlploggrpc.WithEndpoint(cfg.OtelEndpoint),
		otlploggrpc.WithDialOption(dialOpts...),
	)
	if err != nil {
		return shutdown, fmt.Errorf("failed to create OTLP log exporter: %w", err)
	}
	lp := sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(sdklog.NewBatchProcessor(logExporter)),
	)
	global.SetLoggerProvider(lp)
	shutdownFuncs = append(shutdownFuncs, lp.Shutdown)

	if err = runtime.Start(runtime.WithMeterProvider(mp)); err != nil {
		return shutdown, fmt.Errorf("failed to start runtime instrumentation: %w", err)
	}
	if err = host.Start(host.WithMeterProvider(mp)); err != nil {
		return shutdown, fmt.Errorf("failed to start host instrumentation: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"endpoint":     cfg.OtelEndpoint,
		"insecure":     cfg.OtelInsecure,
		"sample_ratio": cfg.OtelSampleRatio,
	}).Info("OpenTelemetry SDK initialized (traces, metrics, logs)")

	return shutdown, nil
}

// DialOptions returns the gRPC options shared by all OTLP exporters.
func DialOptions(cfg *config.Config) []grpc.DialOption {
	if cfg.OtelInsecure {
		return []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}
	}
	return []grpc.DialOption{grpc.WithTransportCredentials(credentials.NewClientTLSFromCert(nil, ""))}
}

// NewSampler samples root spans by ratio and follows the parent decision otherwise.
func NewSampler(ratio float64) sdktrace.Sampler {
	switch {
	case ratio >= 1:
		return sdktrace.ParentBased(sdktrace.AlwaysSample())
	case ratio <= 0:
		return sdktrace.ParentBased(sdktrace.NeverSample())
	default:
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
	}
}

func deltaTemporality(kind sdkmetric.InstrumentKind) metricdata.Temporality {
	if kind == sdkmetric.InstrumentKindCounter || kind == sdkmetric.InstrumentKindHistogram {
		return metricdata.DeltaTemporality
	}
	return metricdata.CumulativeTemporality
}

// NewResource describes this service instance.
func NewResource(ctx context.Context, cfg *config.Config) (*resource.Resource, error) {
	res, err := resource.New(ctx,
		resource.WithFromEnv(),
		resource.WithProcess(),
		resource.WithTelemetrySDK(),
		resource.WithHost(),
		resource.WithAttributes(resourceAttributes(cfg)...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTel resource: %w", err)
	}
	return res, nil
}

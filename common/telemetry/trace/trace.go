// Package trace starts and ends spans named after the calling function.
package trace

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/narender/anime-explorer/common/utils"
)

// TracerName is the instrumentation scope for spans started by this package.
const TracerName = "github.com/narender/anime-explorer"

// StatusMapperFunc decides the span status for a failed operation.
type StatusMapperFunc func(error) codes.Code

// DefaultStatusMapper marks every error as codes.Error.
func DefaultStatusMapper(err error) codes.Code {
	if err == nil {
		return codes.Ok
	}
	return codes.Error
}

// StartSpan begins an internal span named after the caller.
func StartSpan(ctx context.Context, initialAttrs ...attribute.KeyValue) (context.Context, trace.Span) {
	operationName := utils.GetCallerFunctionName(3)
	return start(ctx, operationName, trace.SpanKindInternal, initialAttrs)
}

// StartNamedSpan begins a span with an explicit name and kind.
func StartNamedSpan(ctx context.Context, name string, kind trace.SpanKind, initialAttrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return start(ctx, name, kind, initialAttrs)
}

func start(ctx context.Context, name string, kind trace.SpanKind, attrs []attribute.KeyValue) (context.Context, trace.Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	opts := []trace.SpanStartOption{
		trace.WithSpanKind(kind),
		trace.WithAttributes(semconv.CodeFunctionKey.String(name)),
	}
	if len(attrs) > 0 {
		opts = append(opts, trace.WithAttributes(attrs...))
	}
	return otel.Tracer(TracerName).Start(ctx, name, opts...)
}

// EndSpan ends span, recording *errPtr when it is non-nil.
func EndSpan(span trace.Span, errPtr *error, statusMapper StatusMapperFunc, options ...trace.SpanEndOption) {
	defer span.End(options...)

	if errPtr == nil || *errPtr == nil {
		span.SetStatus(codes.Ok, "")
		return
	}

	err := *errPtr
	span.RecordError(err, trace.WithStackTrace(true))

	mapper := statusMapper
	if mapper == nil {
		mapper = DefaultStatusMapper
	}
	statusCode := mapper(err)

	statusMsg := ""
	if statusCode == codes.Error {
		statusMsg = err.Error()
	}
	span.SetStatus(statusCode, statusMsg)
}

// RecordSpanError marks span as failed with err.
func RecordSpanError(span trace.Span, err error, attrs ...attribute.KeyValue) {
	if span == nil || !span.IsRecording() || err == nil {
		return
	}

	allAttrs := append([]attribute.KeyValue{
		semconv.ExceptionMessageKey.String(err.Error()),
		semconv.ExceptionTypeKey.String(fmt.Sprintf("%T", err)),
	}, attrs...)

	span.RecordError(err, trace.WithAttributes(allAttrs...))
	span.SetStatus(codes.Error, err.Error())
}

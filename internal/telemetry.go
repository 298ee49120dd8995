package internal

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "bulkio"

// Telemetry groups the logger, the tracer and the meter of a component.
// It uses the global OpenTelemetry providers, which are no-op unless installed.
type Telemetry struct {
	kind string
	name string

	l *Logger

	tracer trace.Tracer
	meter  metric.Meter
}

func NewTelemetry(kind, name string) *Telemetry {
	return &Telemetry{
		kind: kind,
		name: name,

		l: NewLogger(kind, name),

		tracer: otel.GetTracerProvider().Tracer(instrumentationName),
		meter:  otel.GetMeterProvider().Meter(instrumentationName),
	}
}

func (t *Telemetry) Logger() *Logger {
	return t.l
}

func (t *Telemetry) LogDebug(msg string, args ...any) {
	t.l.Debug(msg, args...)
}

func (t *Telemetry) LogInfo(msg string, args ...any) {
	t.l.Info(msg, args...)
}

func (t *Telemetry) LogWarn(msg string, args ...any) {
	t.l.Warn(msg, args...)
}

func (t *Telemetry) LogError(msg string, err error, args ...any) {
	t.l.Error(msg, err, args...)
}

func (t *Telemetry) setDefaultAttributes(span trace.Span) {
	span.SetAttributes(
		attribute.String("bulkio.kind", t.kind),
		attribute.String("bulkio.name", t.name),
	)
}

func (t *Telemetry) NewTrace(ctx context.Context, spanName string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	ctx, span := t.tracer.Start(ctx, spanName, opts...)
	t.setDefaultAttributes(span)
	return ctx, span
}

func (t *Telemetry) getMeterName(name string) string {
	return fmt.Sprintf("%s_%s_%s", t.kind, t.name, name)
}

func (t *Telemetry) NewCounter(name string, opts ...metric.Int64CounterOption) metric.Int64Counter {
	counterName := t.getMeterName(name)
	counter, err := t.meter.Int64Counter(counterName, opts...)
	if err != nil {
		t.LogError("failed to create counter", err, "name", name)
	}

	t.LogDebug("created counter", "name", counterName)

	return counter
}

func (t *Telemetry) NewUpDownCounter(name string, opts ...metric.Int64UpDownCounterOption) metric.Int64UpDownCounter {
	counterName := t.getMeterName(name)
	counter, err := t.meter.Int64UpDownCounter(counterName, opts...)
	if err != nil {
		t.LogError("failed to create up/down counter", err, "name", name)
	}

	t.LogDebug("created up/down counter", "name", counterName)

	return counter
}

// Copyright 2025 Quittance Labs
// SPDX-License-Identifier: AGPL-3.0

package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

var _ TracingInterface = (*Tracer)(nil)

type Tracer struct {
	tracer trace.Tracer
}

func (t *Tracer) Start(ctx context.Context, spanName string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, spanName, opts...)
}

// NewTracer sets the global TracerProvider and returns a tracer for the
// service. When tracing is disabled a noop tracer is returned and the
// global provider is left untouched.
func NewTracer(c *Config) *Tracer {
	t := new(Tracer)

	if !c.Enabled {
		t.tracer = noop.NewTracerProvider().Tracer("property-service")
		return t
	}

	exporter, err := newExporter(c)
	if err != nil {
		c.Logger.Errorf("failed to create otel exporter, tracing disabled: %v", err)
		t.tracer = noop.NewTracerProvider().Tracer("property-service")
		return t
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
	)
	otel.SetTracerProvider(tp)

	t.tracer = tp.Tracer("property-service")
	return t
}

func newExporter(c *Config) (sdktrace.SpanExporter, error) {
	switch {
	case c.OtelGRPCEndpoint != "":
		return otlptrace.New(
			context.Background(),
			otlptracegrpc.NewClient(
				otlptracegrpc.WithEndpoint(c.OtelGRPCEndpoint),
				otlptracegrpc.WithInsecure(),
			),
		)
	case c.OtelHTTPEndpoint != "":
		return otlptrace.New(
			context.Background(),
			otlptracehttp.NewClient(
				otlptracehttp.WithEndpoint(c.OtelHTTPEndpoint),
				otlptracehttp.WithInsecure(),
			),
		)
	default:
		return stdouttrace.New()
	}
}

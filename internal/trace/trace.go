// Package trace wires OpenTelemetry tracing. Spans are exported over OTLP
// to Atla Insights when ATLA_INSIGHTS_TOKEN is set; otherwise tracing is a
// no-op and Tracer() hands out the global default.
package trace

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const (
	serviceName = "scout"

	// DefaultEndpoint is the Atla Insights OTLP ingestion host.
	DefaultEndpoint = "otel.atla-ai.com"
)

// Setup configures the global tracer provider. It returns a shutdown
// function that flushes pending spans; with an empty token both are no-ops.
func Setup(ctx context.Context, token, endpoint, environment string) (func(context.Context) error, error) {
	if token == "" {
		log.Debug().Msg("tracing disabled - no insights token configured")
		return func(context.Context) error { return nil }, nil
	}
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithHeaders(map[string]string{
			"Authorization": "Bearer " + token,
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("create OTLP exporter: %w", err)
	}

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(serviceName),
		attribute.String("deployment.environment", environment),
	))
	if err != nil {
		return nil, fmt.Errorf("build resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	log.Info().Str("endpoint", endpoint).Msg("tracing enabled")
	return tp.Shutdown, nil
}

// Tracer returns the tracer all scout spans are created from.
func Tracer() oteltrace.Tracer {
	return otel.Tracer(serviceName)
}

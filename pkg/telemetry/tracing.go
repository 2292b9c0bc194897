package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// Config — параметры трейсинга.
type Config struct {
	ServiceName string
	Endpoint    string // host:port OTLP/HTTP коллектора
	SampleRatio float64
	SessionID   string // сессия витрины, пишется в ресурс
}

const defaultEndpoint = "localhost:4318"

// SetupTracing — OTLP/HTTP экспорт, семплинг, глобальный провайдер и пропагаторы.
// Пропагатор нужен и для исходящих запросов к API (otelhttp), и для входящих (otelgin).
// Возвращает Shutdown провайдера.
func SetupTracing(ctx context.Context, cfg Config) (func(context.Context) error, error) {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	traceProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ClampRatio(cfg.SampleRatio)))),
		sdktrace.WithResource(newResource(cfg)),
	)

	otel.SetTracerProvider(traceProvider)
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{}, propagation.Baggage{},
		),
	)

	return traceProvider.Shutdown, nil
}

// ClampRatio — доля семплинга в границах [0..1].
func ClampRatio(r float64) float64 {
	switch {
	case r < 0:
		return 0
	case r > 1:
		return 1
	default:
		return r
	}
}

func newResource(cfg Config) *resource.Resource {
	attrs := []attribute.KeyValue{
		semconv.ServiceName(cfg.ServiceName),
		attribute.String("telemetry.sdk", "opentelemetry"),
	}
	if cfg.SessionID != "" {
		attrs = append(attrs, attribute.String("storefront.session_id", cfg.SessionID))
	}
	return resource.NewWithAttributes(semconv.SchemaURL, attrs...)
}

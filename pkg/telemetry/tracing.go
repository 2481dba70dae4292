package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// DefaultEndpoint — OTLP/HTTP коллектор по умолчанию.
const DefaultEndpoint = "localhost:4318"

// Config — параметры экспорта трейсов.
type Config struct {
	ServiceName string
	Endpoint    string  // host:port OTLP/HTTP
	SampleRatio float64 // доля корневых трейсов, [0..1]
	Environment string  // deployment.environment
}

// normalized — дефолтный endpoint и границы семплинга.
func (c Config) normalized() Config {
	if c.Endpoint == "" {
		c.Endpoint = DefaultEndpoint
	}
	c.SampleRatio = min(max(c.SampleRatio, 0), 1)
	return c
}

// Sampler — родительское решение уважается; корневые спаны семплируются с долей SampleRatio.
// Так спан обработки записи продолжает трейс продюсера, если тот был семплирован.
func (c Config) Sampler() sdktrace.Sampler {
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(c.normalized().SampleRatio))
}

// Resource — атрибуты сервиса для всех спанов.
func (c Config) Resource() *resource.Resource {
	attrs := []attribute.KeyValue{
		semconv.ServiceName(c.ServiceName),
		attribute.String("telemetry.sdk", "opentelemetry"),
	}
	if c.Environment != "" {
		attrs = append(attrs, semconv.DeploymentEnvironment(c.Environment))
	}
	return resource.NewWithAttributes(semconv.SchemaURL, attrs...)
}

// SetupTracing настраивает OTLP/HTTP экспорт, семплинг и глобальные пропагаторы.
// Возвращает функцию корректного завершения провайдера.
func SetupTracing(ctx context.Context, cfg Config) (func(context.Context) error, error) {
	cfg = cfg.normalized()
	if cfg.ServiceName == "" {
		return nil, fmt.Errorf("tracing: service name is required")
	}

	// Экспортёр OTLP/HTTP без TLS; соединение устанавливается лениво при первом экспорте.
	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(cfg.Endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("tracing: otlp exporter: %w", err)
	}

	traceProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(cfg.Sampler()),
		sdktrace.WithResource(cfg.Resource()),
	)

	// Глобальный провайдер и пропагатор (TraceContext + Baggage): kotel и otelgin берут их отсюда.
	otel.SetTracerProvider(traceProvider)
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{}, propagation.Baggage{},
		),
	)

	return traceProvider.Shutdown, nil
}

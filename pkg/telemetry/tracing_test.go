package telemetry_test

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/Gunvolt24/notifier/pkg/telemetry"
)

func TestSetupTracing_RequiresServiceName(t *testing.T) {
	if _, err := telemetry.SetupTracing(context.Background(), telemetry.Config{}); err == nil {
		t.Fatalf("want error for empty service name")
	}
}

func TestSetupTracing_InstallsGlobalProvider(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	shutdown, err := telemetry.SetupTracing(context.Background(), telemetry.Config{
		ServiceName: "notifier-test",
		SampleRatio: 1,
	})
	if err != nil {
		t.Fatalf("SetupTracing: %v", err)
	}
	if _, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider); !ok {
		t.Fatalf("global provider must be the sdk provider, got %T", otel.GetTracerProvider())
	}
	// Спанов не было — экспорт пустой, сеть не нужна.
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestConfig_SamplerRespectsParent(t *testing.T) {
	never := telemetry.Config{ServiceName: "s", SampleRatio: -1}.Sampler()

	root := never.ShouldSample(sdktrace.SamplingParameters{ParentContext: context.Background(), Name: "root"})
	if root.Decision != sdktrace.Drop {
		t.Fatalf("ratio 0 must drop root spans, got %v", root.Decision)
	}

	parent := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{1},
		SpanID:     trace.SpanID{1},
		TraceFlags: trace.FlagsSampled,
		Remote:     true,
	}))
	child := never.ShouldSample(sdktrace.SamplingParameters{ParentContext: parent, Name: "child"})
	if child.Decision != sdktrace.RecordAndSample {
		t.Fatalf("sampled parent must be followed, got %v", child.Decision)
	}
}

func TestConfig_ResourceAttributes(t *testing.T) {
	res := telemetry.Config{ServiceName: "notifier", Environment: "prod"}.Resource()

	got := map[attribute.Key]string{}
	for _, kv := range res.Attributes() {
		got[kv.Key] = kv.Value.Emit()
	}
	if got["service.name"] != "notifier" || got["deployment.environment"] != "prod" {
		t.Fatalf("unexpected attributes: %v", got)
	}
}

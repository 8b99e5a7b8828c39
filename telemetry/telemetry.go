// Package telemetry traces mission runs with OpenTelemetry.
//
// Tracing is off by default: Tracer hands out no-op tracers until a provider
// is installed, either by Setup when an OTLP endpoint is configured or by
// Install (tests use it with an in-memory recorder).
package telemetry

import (
	"context"
	"os"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const serviceName = "marsrover"

var (
	mu       sync.RWMutex
	provider trace.TracerProvider
)

// Enabled reports whether an OTLP endpoint is configured in the environment
func Enabled() bool {
	return os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != "" ||
		os.Getenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT") != ""
}

// Setup exports mission spans over OTLP HTTP using the standard OTEL_*
// environment variables, tagged with the given service version.
// The returned shutdown flushes pending spans.
func Setup(ctx context.Context, version string) (shutdown func(context.Context) error, err error) {
	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", version),
		),
		resource.WithHost(),
		resource.WithOS(),
		resource.WithProcessRuntimeName(),
		resource.WithProcessRuntimeVersion(),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	Install(tp)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// Install routes every tracer from Tracer through tp. A nil tp turns tracing
// off again. The returned func restores the previous provider.
func Install(tp trace.TracerProvider) (restore func()) {
	mu.Lock()
	previous := provider
	provider = tp
	mu.Unlock()

	return func() {
		mu.Lock()
		provider = previous
		mu.Unlock()
	}
}

// Tracer returns the tracer for a component, scoped as marsrover/<component>.
// It is a no-op tracer while no provider is installed.
func Tracer(component string) trace.Tracer {
	mu.RLock()
	tp := provider
	mu.RUnlock()

	if tp == nil {
		return NoopTracer()
	}
	return tp.Tracer(serviceName + "/" + component)
}

// NoopTracer returns a tracer whose spans are never recorded
func NoopTracer() trace.Tracer {
	return noop.NewTracerProvider().Tracer(serviceName)
}

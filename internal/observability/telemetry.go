package observability

import (
	"context"
	"time"

	"github.com/annel0/nitworld/internal/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

var log = logging.GetComponentLogger("observability")

// ServiceNamespace объединяет все процессы симуляции в трассировке
const ServiceNamespace = "nitworld"

// TraceSettings описывает, какую симуляцию трассируем и куда отправляем спаны
type TraceSettings struct {
	ServiceName string
	Endpoint    string  // пусто: переменные OTEL_EXPORTER_OTLP_* или localhost:4318
	SampleRatio float64 // доля корневых спанов тиков; 0 отключает запись
	Seed        int64
	WorldSize   [3]int
}

// resourceAttributes описывает симуляцию: один сид и размер мира дают одну историю,
// поэтому их удобно видеть рядом с каждым спаном тика
func (s TraceSettings) resourceAttributes() []attribute.KeyValue {
	return []attribute.KeyValue{
		semconv.ServiceName(s.ServiceName),
		semconv.ServiceNamespace(ServiceNamespace),
		attribute.Int64("nitsim.seed", s.Seed),
		attribute.IntSlice("nitsim.world.size", s.WorldSize[:]),
	}
}

func (s TraceSettings) sampler() trace.Sampler {
	if s.SampleRatio >= 1 {
		return trace.ParentBased(trace.AlwaysSample())
	}
	return trace.ParentBased(trace.TraceIDRatioBased(s.SampleRatio))
}

// InitTelemetry подключает OTLP/HTTP экспортер и делает провайдер глобальным,
// так что спаны world.Step уходят в коллектор.
// Возвращённый shutdown дописывает буфер спанов при остановке симуляции.
func InitTelemetry(ctx context.Context, settings TraceSettings) (func(context.Context) error, error) {
	var opts []otlptracehttp.Option
	if settings.Endpoint != "" {
		opts = append(opts, otlptracehttp.WithEndpoint(settings.Endpoint), otlptracehttp.WithInsecure())
	}
	exp, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return installProvider(ctx, settings, trace.WithBatcher(exp))
}

func installProvider(ctx context.Context, settings TraceSettings, opts ...trace.TracerProviderOption) (func(context.Context) error, error) {
	res, err := resource.New(ctx, resource.WithAttributes(settings.resourceAttributes()...))
	if err != nil {
		return nil, err
	}

	opts = append(opts, trace.WithResource(res), trace.WithSampler(settings.sampler()))
	tp := trace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	log.Info("📡 Трассировка тиков включена: %s/%s, сид %d, мир %v, доля %.2f",
		ServiceNamespace, settings.ServiceName, settings.Seed, settings.WorldSize, settings.SampleRatio)

	shutdown := func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return tp.Shutdown(ctx)
	}
	return shutdown, nil
}

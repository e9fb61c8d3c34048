package tracing

import (
	"context"
	"fmt"

	"signal_bot/pkg/logger"

	"github.com/opentracing/opentracing-go"
	"github.com/uber/jaeger-client-go"
	jCfg "github.com/uber/jaeger-client-go/config"
	"github.com/uber/jaeger-lib/metrics"
)

var (
	// Неверное не самое элегантное решение, но лучше чем выносить константу в отдельный пакет
	// лучше инициализирвоать при инстанцировании через аргументы.
	serviceName = "default"
)

func SetServiceName(newName string) string {
	oldName := serviceName
	serviceName = newName

	return oldName
}

type Config struct {
	Host string
	Port int
}

// Enabled — без хоста агента трейсинг не поднимаем, остаётся noop-трейсер.
func (c Config) Enabled() bool { return c.Host != "" }

func InitTracer(conf Config) (opentracing.Tracer, func(), error) {
	if !conf.Enabled() {
		return opentracing.NoopTracer{}, func() {}, nil
	}

	cfg := &jCfg.Configuration{
		ServiceName: serviceName,
		Sampler: &jCfg.SamplerConfig{
			Type:  "const",
			Param: 1,
		},
		Reporter: &jCfg.ReporterConfig{
			LogSpans:           true,
			LocalAgentHostPort: fmt.Sprintf("%s:%d", conf.Host, conf.Port),
		},
	}

	jMetricsFactory := metrics.NullFactory
	tracer, closer, err := cfg.NewTracer(
		jCfg.Metrics(jMetricsFactory),
	)
	if err != nil {
		return nil, nil, err
	}

	opentracing.SetGlobalTracer(tracer)
	return tracer, func() {
		if err := closer.Close(); err != nil {
			logger.Error("Error closing Jaeger tracer: %v", err)
		}
	}, nil
}

// StartSpan открывает span и кладёт его в ctx. nil tracer => глобальный.
func StartSpan(ctx context.Context, tracer opentracing.Tracer, operation string, tags opentracing.Tags) (opentracing.Span, context.Context) {
	if tracer == nil {
		tracer = opentracing.GlobalTracer()
	}
	opts := make([]opentracing.StartSpanOption, 0, 1)
	if len(tags) > 0 {
		opts = append(opts, tags)
	}
	return opentracing.StartSpanFromContextWithTracer(ctx, tracer, operation, opts...)
}

// TraceID — id трейса для логов, "" для noop-трейсера.
func TraceID(span opentracing.Span) string {
	if span == nil {
		return ""
	}
	if sc, ok := span.Context().(jaeger.SpanContext); ok {
		return sc.TraceID().String()
	}
	return ""
}

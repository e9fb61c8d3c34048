package tracing

import (
	"context"

	"signal_bot/internal/modules/config"
	"signal_bot/pkg/logger"
	"signal_bot/pkg/tracing"

	"github.com/opentracing/opentracing-go"
	"go.uber.org/fx"
)

const serviceName = "signal_bot"

// NewTracer ставит jaeger глобальным трейсером, если задан агент.
func NewTracer(lc fx.Lifecycle, cfg *config.Config) (opentracing.Tracer, error) {
	tracing.SetServiceName(serviceName)

	conf := tracing.Config{Host: cfg.Tracing.Host, Port: cfg.Tracing.Port}
	tracer, closer, err := tracing.InitTracer(conf)
	if err != nil {
		return nil, err
	}
	if !conf.Enabled() {
		logger.Info("[TRACING] jaeger host is empty, tracing disabled")
		return tracer, nil
	}

	logger.Info("[TRACING] reporting to %s:%d", conf.Host, conf.Port)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			closer()
			return nil
		},
	})
	return tracer, nil
}

func Module() fx.Option {
	return fx.Module("tracing",
		fx.Provide(
			NewTracer,
		),
	)
}

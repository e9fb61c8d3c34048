package main

import (
	"context"

	"signal_bot/internal/modules/config"
	"signal_bot/internal/modules/feed"
	"signal_bot/internal/modules/health"
	"signal_bot/internal/modules/postgres"
	"signal_bot/internal/modules/tracing"
	"signal_bot/internal/modules/webhook"

	telegram "signal_bot/internal/modules/telegram_bot"

	"signal_bot/internal/runner"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func main() {
	fx.New(
		fx.Provide(
			func() context.Context {
				return context.Background()
			},
		),
		fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l}
		}),
		config.Module(),
		tracing.Module(),
		postgres.Module(),
		feed.Module(),
		runner.Module(),
		telegram.Module(),
		health.Module(),
		webhook.Module(),
	).Run()
}

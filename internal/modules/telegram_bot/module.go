package telegram

import (
	"context"

	"signal_bot/internal/modules/config"
	feed "signal_bot/internal/modules/feed/service"
	"signal_bot/internal/notify"
	"signal_bot/pkg/logger"

	"go.uber.org/fx"
)

type Params struct {
	fx.In

	Lc       fx.Lifecycle
	Cfg      *config.Config
	Balances notify.BalanceSource
	Hub      *feed.Hub `optional:"true"`
}

// NewNotifier: Telegram, если есть токен и чат и бот поднялся, иначе лог.
// Лента /ws получает то же самое.
func NewNotifier(p Params) notify.Notifier {
	var primary notify.Notifier = notify.NewStdout()

	if p.Cfg.TelegramEnabled() {
		tg, err := notify.NewTelegram(p.Cfg.Telegram.Token, p.Cfg.Telegram.ChatID, p.Cfg.NotifyTimeout, p.Balances)
		if err != nil {
			logger.Error("[TG] %v, falling back to stdout", err)
		} else {
			primary = tg
			attach(p.Lc, tg)
		}
	} else {
		logger.Warn("[TG] TELEGRAM_BOT_TOKEN/TELEGRAM_CHAT_ID not set, notifications go to log")
	}

	if p.Hub == nil {
		return primary
	}
	return notify.Multi{primary, p.Hub}
}

// Запуск long-polling через Lifecycle
func attach(lc fx.Lifecycle, tg *notify.Telegram) {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			return tg.Start(ctx)
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			return tg.Stop(stopCtx)
		},
	})
}

func Module() fx.Option {
	return fx.Module("telegram",
		fx.Provide(
			NewNotifier,
		),
	)
}

package runner

import (
	"signal_bot/internal/notify"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("runner",
		fx.Provide(
			NewCalculatorFromConfig, // *Calculator
			NewAccountFromConfig,    // *Account, один на процесс
			New,                     // *Runner
			// /balance в телеграме и /healthz читают тот же счёт
			func(a *Account) notify.BalanceSource { return a },
		),
	)
}

package runner

import (
	"context"
	"fmt"
	"time"

	"signal_bot/internal/journal"
	"signal_bot/internal/models"
	"signal_bot/internal/notify"
	"signal_bot/pkg/logger"
)

// HandleSignal разбирает одно событие вебхука:
//   - BUY/SELL: считаем TP/SL/лот от снимка баланса, баланс не меняется;
//   - TP HIT/SL HIT: меняем баланс;
//   - остальное: ничего не делаем и не шлём.
//
// Уведомление отправляется в фоне и на результат не влияет.
func (r *Runner) HandleSignal(ctx context.Context, ev models.Event) (Result, error) {
	res := Result{Event: ev}
	if r.observer != nil {
		defer r.observer.TouchEvent(time.Now())
	}

	switch {
	case ev.Action.IsEntry():
		inst := r.calc.Instrument(ev.Ticker)
		balance := r.account.Balance()

		params := r.calc.CalcTradeParams(models.TradeSignal{
			Instrument: inst.Symbol,
			EntryPrice: ev.Price,
			Side:       ev.Action.Side(),
		}, balance, r.account.RiskFraction())

		res.Instrument = inst
		res.Params = &params

		logger.Info("[RUNNER] %s %s @ %v -> tp=%v sl=%v lot=%v (balance=%v)",
			ev.Action, inst.Symbol, ev.Price, params.TakeProfit, params.StopLoss, params.LotSize, balance)

		r.notifier.Send(notify.FormatEntry(inst.Symbol, ev.Action.Side(), ev.Price, params))
		res.Notified = true

		rec := journal.NewRecord(ev)
		rec.Ticker = inst.Symbol
		rec.BalanceBefore, rec.BalanceAfter = balance, balance
		rec.Params = &params
		r.record(ctx, rec)

	case ev.Action.IsOutcome():
		tr, err := r.account.Apply(ev.Action)
		if err != nil {
			return res, fmt.Errorf("apply %s: %w", ev.Action, err)
		}
		res.Transition = &tr

		label := models.NormalizeTicker(ev.Ticker)
		if label == "" {
			label = "account"
		}

		logger.Info("[RUNNER] %s %s: balance %v -> %v (%.2f%%)",
			ev.Action, label, tr.BalanceBefore, tr.BalanceAfter, tr.Percent)

		r.notifier.Send(notify.FormatTransition(label, tr))
		res.Notified = true

		rec := journal.NewRecord(ev)
		rec.Ticker = label
		rec.BalanceBefore, rec.BalanceAfter = tr.BalanceBefore, tr.BalanceAfter
		r.record(ctx, rec)

	default:
		logger.Warn("[RUNNER] unknown action %q for %s, ignored", ev.RawAction, ev.Ticker)
	}

	return res, nil
}

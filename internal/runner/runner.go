package runner

import (
	"context"
	"time"

	"signal_bot/internal/journal"
	"signal_bot/internal/models"
	"signal_bot/internal/modules/config"
	"signal_bot/internal/notify"
	"signal_bot/pkg/logger"

	"go.uber.org/fx"
)

const journalTimeout = 5 * time.Second

// EventObserver получает отметку о каждом обработанном событии (health).
type EventObserver interface {
	TouchEvent(t time.Time)
}

// Result — что произошло с событием. Нужен хендлеру и тестам.
type Result struct {
	Event      models.Event
	Instrument models.InstrumentSpec
	Params     *models.OrderParameters
	Transition *models.Transition
	Notified   bool
}

// Runner — одна учётка: расчёт входа, TP/SL по балансу, уведомления.
type Runner struct {
	calc     *Calculator
	account  *Account
	notifier notify.Notifier
	journal  journal.Journal
	observer EventObserver
}

type Params struct {
	fx.In

	Calc     *Calculator
	Account  *Account
	Notifier notify.Notifier
	Journal  journal.Journal
	Observer EventObserver `optional:"true"`
}

func New(p Params) *Runner {
	j := p.Journal
	if j == nil {
		j = journal.Noop{}
	}
	return &Runner{
		calc:     p.Calc,
		account:  p.Account,
		notifier: p.Notifier,
		journal:  j,
		observer: p.Observer,
	}
}

func NewCalculatorFromConfig(cfg *config.Config) *Calculator {
	return NewCalculator(NewInstrumentTable(cfg.Instruments), cfg.SLMultiplier, cfg.TPMultiplier)
}

func NewAccountFromConfig(cfg *config.Config) *Account {
	return NewAccount(cfg.InitialBalance, cfg.RiskFraction)
}

func (r *Runner) Account() *Account { return r.account }

// SetBalance — ручная установка баланса с уведомлением.
func (r *Runner) SetBalance(v float64) error {
	if err := r.account.SetBalance(v); err != nil {
		return err
	}
	logger.Info("[RUNNER] balance set to %v", v)
	r.notifier.Send(notify.FormatBalanceUpdated(v))
	return nil
}

// record пишет в журнал в фоне: запрос не ждёт БД, ошибка только в лог.
func (r *Runner) record(ctx context.Context, rec journal.Record) {
	go func() {
		jctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), journalTimeout)
		defer cancel()
		if err := r.journal.Record(jctx, rec); err != nil {
			logger.Error("[JOURNAL] record %s %s: %v", rec.Action, rec.Ticker, err)
		}
	}()
}

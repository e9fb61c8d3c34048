// Package journal пишет аудит обработанных событий вебхука.
// Баланс из журнала никогда не восстанавливается: после рестарта он всегда берётся из конфига.
package journal

import (
	"context"
	"time"

	"signal_bot/internal/models"

	"github.com/google/uuid"
)

type Record struct {
	ID            uuid.UUID
	ReceivedAt    time.Time
	Ticker        string
	Action        models.Action
	Price         float64
	BalanceBefore float64
	BalanceAfter  float64
	Params        *models.OrderParameters // только для входа
}

// NewRecord заполняет ID и время, если их нет.
func NewRecord(ev models.Event) Record {
	id, err := uuid.Parse(ev.ID)
	if err != nil {
		id = uuid.New()
	}
	at := ev.ReceivedAt
	if at.IsZero() {
		at = time.Now()
	}
	return Record{
		ID:         id,
		ReceivedAt: at,
		Ticker:     ev.Ticker,
		Action:     ev.Action,
		Price:      ev.Price,
	}
}

type Journal interface {
	Record(ctx context.Context, r Record) error
}

// Noop — журнал выключен (нет DATABASE_DSN).
type Noop struct{}

func (Noop) Record(context.Context, Record) error { return nil }

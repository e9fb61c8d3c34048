package journal

import (
	"context"
	"fmt"

	"signal_bot/pkg/db"

	"github.com/jackc/pgx/v5"
)

const schema = `
CREATE TABLE IF NOT EXISTS signal_events (
	id             UUID PRIMARY KEY,
	received_at    TIMESTAMPTZ NOT NULL,
	ticker         TEXT NOT NULL,
	action         TEXT NOT NULL,
	price          DOUBLE PRECISION NOT NULL DEFAULT 0,
	balance_before DOUBLE PRECISION NOT NULL,
	balance_after  DOUBLE PRECISION NOT NULL,
	take_profit    DOUBLE PRECISION,
	stop_loss      DOUBLE PRECISION,
	lot_size       DOUBLE PRECISION
)`

const insertEvent = `
INSERT INTO signal_events
	(id, received_at, ticker, action, price, balance_before, balance_after, take_profit, stop_loss, lot_size)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

type Postgres struct {
	tx db.TxManager
}

func NewPostgres(tx db.TxManager) *Postgres {
	return &Postgres{tx: tx}
}

func (p *Postgres) Migrate(ctx context.Context) error {
	if _, err := p.tx.Conn().Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate signal_events: %w", err)
	}
	return nil
}

func (p *Postgres) Record(ctx context.Context, r Record) error {
	var tp, sl, lot *float64
	if r.Params != nil {
		tp, sl, lot = &r.Params.TakeProfit, &r.Params.StopLoss, &r.Params.LotSize
	}

	return p.tx.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctxTx, insertEvent,
			r.ID, r.ReceivedAt, r.Ticker, string(r.Action), r.Price,
			r.BalanceBefore, r.BalanceAfter, tp, sl, lot,
		)
		return err
	})
}

// Count — сколько событий записано (для тестов и отладки).
func (p *Postgres) Count(ctx context.Context) (int64, error) {
	var n int64
	err := p.tx.Conn().QueryRow(ctx, `SELECT count(*) FROM signal_events`).Scan(&n)
	return n, err
}

package postgres

import (
	"context"
	"fmt"

	"signal_bot/internal/journal"
	"signal_bot/internal/modules/config"
	"signal_bot/pkg/db"
	"signal_bot/pkg/logger"

	"go.uber.org/fx"
)

// NewJournal: без DATABASE_DSN журнал выключен, с ним — пул, ping и миграция.
func NewJournal(lc fx.Lifecycle, ctx context.Context, cfg *config.Config) (journal.Journal, error) {
	if cfg.DB == "" {
		logger.Info("[PG] db_dsn is empty, event journal disabled")
		return journal.Noop{}, nil
	}

	poolMaster, err := db.NewPool(ctx, db.PoolConfig{
		DSN: cfg.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create poolMaster: %w", err)
	}

	if err = poolMaster.Ping(ctx); err != nil {
		poolMaster.Close()
		return nil, err
	}

	txm := db.NewPgTxManager(poolMaster)
	pg := journal.NewPostgres(txm)
	if err = pg.Migrate(ctx); err != nil {
		txm.Close()
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			txm.Close()
			return nil
		},
	})
	return pg, nil
}

func Module() fx.Option {
	return fx.Module("postgres",
		fx.Provide(
			NewJournal,
		),
	)
}

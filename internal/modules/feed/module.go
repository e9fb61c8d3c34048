package feed

import (
	"context"

	"signal_bot/internal/modules/feed/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("feed",
		fx.Provide(
			service.NewHub, // *service.Hub
		),
		fx.Invoke(func(lc fx.Lifecycle, hub *service.Hub) {
			lc.Append(fx.Hook{
				OnStop: func(ctx context.Context) error {
					hub.Close()
					return nil
				},
			})
		}),
	)
}

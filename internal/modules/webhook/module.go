package webhook

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"signal_bot/internal/modules/config"
	feed "signal_bot/internal/modules/feed/service"
	health "signal_bot/internal/modules/health/service"
	"signal_bot/internal/modules/webhook/service"
	"signal_bot/internal/runner"
	"signal_bot/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/fx"
)

type HandlerParams struct {
	fx.In

	Runner *runner.Runner
	Hub    *feed.Hub          `optional:"true"`
	Tracer opentracing.Tracer `optional:"true"`
}

func NewHandler(p HandlerParams) *service.Handler {
	var f service.Feed
	if p.Hub != nil {
		f = p.Hub
	}
	return service.NewHandler(p.Runner, f, p.Tracer)
}

func NewLimiter(cfg *config.Config) *service.IPRateLimiter {
	return service.NewIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
}

func NewEngine(h *service.Handler, limiter *service.IPRateLimiter) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	return service.NewRouter(h, limiter)
}

type RunParams struct {
	fx.In

	Lc      fx.Lifecycle
	Cfg     *config.Config
	Engine  *gin.Engine
	Limiter *service.IPRateLimiter
	State   *health.State `optional:"true"`
}

// RunHTTP поднимает публичный порт; готовность выставляется после Listen.
func RunHTTP(p RunParams) {
	addr := p.Cfg.PublicAddr()
	srv := &http.Server{
		Addr:              addr,
		Handler:           p.Engine,
		ReadHeaderTimeout: 5 * time.Second,
	}
	ctx, cancel := context.WithCancel(context.Background())

	p.Lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ln, err := net.Listen("tcp", addr)
			if err != nil {
				cancel()
				return err
			}
			logger.Info("[WEBHOOK] listening on %s", addr)

			go p.Limiter.Run(ctx)
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("[WEBHOOK] serve: %v", err)
				}
			}()
			if p.State != nil {
				p.State.SetReady(true)
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if p.State != nil {
				p.State.SetReady(false)
			}
			cancel()
			return srv.Shutdown(ctx)
		},
	})
}

func Module() fx.Option {
	return fx.Module("webhook",
		fx.Provide(
			NewHandler,
			NewLimiter,
			NewEngine,
		),
		fx.Invoke(RunHTTP),
	)
}

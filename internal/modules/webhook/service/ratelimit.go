package service

import (
	"context"
	"net/http"
	"sync"
	"time"

	"signal_bot/pkg/logger"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const limiterTTL = time.Hour

// IPRateLimiter — token bucket на каждый IP.
type IPRateLimiter struct {
	mu  sync.Mutex
	ips map[string]*rate.Limiter
	r   rate.Limit
	b   int
}

// NewIPRateLimiter: rps <= 0 выключает ограничение.
func NewIPRateLimiter(rps float64, burst int) *IPRateLimiter {
	r := rate.Limit(rps)
	if rps <= 0 {
		r = rate.Inf
	}
	if burst <= 0 {
		burst = 1
	}
	return &IPRateLimiter{
		ips: make(map[string]*rate.Limiter),
		r:   r,
		b:   burst,
	}
}

func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	limiter, ok := i.ips[ip]
	if !ok {
		limiter = rate.NewLimiter(i.r, i.b)
		i.ips[ip] = limiter
	}
	return limiter
}

func (i *IPRateLimiter) Allow(ip string) bool { return i.GetLimiter(ip).Allow() }

// Run раз в limiterTTL сбрасывает накопленные лимитеры, пока жив ctx.
func (i *IPRateLimiter) Run(ctx context.Context) {
	ticker := time.NewTicker(limiterTTL)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			i.mu.Lock()
			n := len(i.ips)
			i.ips = make(map[string]*rate.Limiter)
			i.mu.Unlock()
			logger.Info("[RATE_LIMIT] reset %d limiters", n)
		}
	}
}

func RateLimitMiddleware(limiter *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !limiter.Allow(ip) {
			logger.Warn("[RATE_LIMIT] %s: too many requests to %s", ip, c.FullPath())
			c.String(http.StatusTooManyRequests, "Too many requests")
			c.Abort()
			return
		}
		c.Next()
	}
}

package service

import (
	"net/http"
	"time"

	"signal_bot/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter собирает публичный gin-роутер.
// Паника в хендлере => 500 "Internal error", процесс живёт дальше.
func NewRouter(h *Handler, limiter *IPRateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(requestLogger(), gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("[WEBHOOK] panic on %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
		c.String(http.StatusInternalServerError, textInternalError)
		c.Abort()
	}))

	r.GET("/", h.Home)
	r.GET("/ws", h.WS)

	limited := r.Group("/")
	if limiter != nil {
		limited.Use(RateLimitMiddleware(limiter))
	}
	limited.POST("/webhook", h.Webhook)
	limited.POST("/balance", h.SetBalance)
	limited.GET("/balance", h.Balance)

	return r
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.L().Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

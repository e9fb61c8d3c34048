package config

import (
	"signal_bot/pkg/logger"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

const serviceName = "signal_bot"

// NewLogger поднимает zap по уровню из конфига.
func NewLogger(cfg *Config) (*zap.Logger, error) {
	logger.SetServiceName(serviceName)
	return logger.Init(cfg.LogLevel)
}

// Module регистрирует конфиг и логгер как fx-провайдеры.
func Module() fx.Option {
	return fx.Module("config",
		fx.Provide(
			NewConfig,
			NewLogger,
		),
	)
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"signal_bot/internal/models"
	"signal_bot/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

const (
	configFilePathENV = "CONFIG_FILE"
	configDir         = "configs"
	defaultConfigFile = "values_local.yaml"
)

// Config ...
type Config struct {
	Telegram struct {
		Token  string `yaml:"token"`
		ChatID int64  `yaml:"chat_id"`
	} `yaml:"telegram"`
	DB      string `yaml:"db_dsn"`
	Service struct {
		Host       string `yaml:"host"`
		PublicPort int    `yaml:"public_port"`
		AdminPort  int    `yaml:"admin_port"`
	} `yaml:"service"`
	Tracing struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"tracing"`
	LogLevel string `yaml:"log_level"`

	// Риск
	// Доля баланса, которой рискуем в одной сделке (0.01 => 1%)
	RiskFraction float64 `yaml:"risk_fraction"`
	// SL = entry ∓ SLMultiplier*ATR, TP = entry ± TPMultiplier*ATR
	SLMultiplier float64 `yaml:"sl_multiplier"`
	TPMultiplier float64 `yaml:"tp_multiplier"`
	// Стартовый баланс; после рестарта всегда сбрасывается к нему
	InitialBalance float64 `yaml:"initial_balance"`

	Instruments map[string]models.InstrumentSpec `yaml:"instruments"`

	// Доставка уведомлений
	NotifyTimeout time.Duration `yaml:"notify_timeout"`

	// Вебхук
	RateLimitRPS   float64 `yaml:"rate_limit_rps"`
	RateLimitBurst int     `yaml:"rate_limit_burst"`
}

// DefaultInstruments — справочник по умолчанию, дополняется/перекрывается из файла.
func DefaultInstruments() map[string]models.InstrumentSpec {
	return map[string]models.InstrumentSpec{
		"XAUUSD": {Symbol: "XAUUSD", ContractSize: 100, ATR: 5.0, MinLot: 0.02},
		"XAGUSD": {Symbol: "XAGUSD", ContractSize: 5000, ATR: 0.35, MinLot: 0.01},
		"EURUSD": {Symbol: "EURUSD", ContractSize: 100000, ATR: 0.0010},
		"GBPUSD": {Symbol: "GBPUSD", ContractSize: 100000, ATR: 0.0012},
		"BTCUSD": {Symbol: "BTCUSD", ContractSize: 1, ATR: 500},
	}
}

func defaults() Config {
	cfg := Config{
		LogLevel:       "info",
		RiskFraction:   0.05,
		SLMultiplier:   1.5,
		TPMultiplier:   3.0,
		InitialBalance: 200,
		NotifyTimeout:  10 * time.Second,
		RateLimitRPS:   5,
		RateLimitBurst: 20,
	}
	cfg.Service.PublicPort = 3000
	cfg.Service.AdminPort = 8080
	cfg.Tracing.Port = 6831
	return cfg
}

// NewConfig: дефолты -> .env -> yaml-файл (если есть) -> переменные окружения.
func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	configFileName := os.Getenv(configFilePathENV)
	if configFileName == "" {
		configFileName = defaultConfigFile
	}
	path := configFileName
	if !filepath.IsAbs(path) && filepath.Dir(path) == "." {
		path = filepath.Join(configDir, configFileName)
	}

	return Load(path, viper.New())
}

// Load читает конфиг из path и перекрывает его env через v.
// Отсутствующий файл — не ошибка, работаем на дефолтах.
func Load(path string, v *viper.Viper) (*Config, error) {
	config := defaults()

	if path != "" {
		file, err := os.Open(path)
		switch {
		case err == nil:
			defer func() {
				_ = file.Close()
			}()
			if err := yaml.NewDecoder(file).Decode(&config); err != nil {
				return nil, errors.Wrap(err, "decode config file")
			}
		case os.IsNotExist(err):
			logger.Warn("[CONFIG] %s not found, using defaults", path)
		default:
			return nil, errors.Wrap(err, "open config file")
		}
	}

	applyEnv(&config, v)
	config.Instruments = mergeInstruments(DefaultInstruments(), config.Instruments)

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &config, nil
}

func applyEnv(cfg *Config, v *viper.Viper) {
	v.AutomaticEnv()

	if v.IsSet("TELEGRAM_BOT_TOKEN") {
		cfg.Telegram.Token = v.GetString("TELEGRAM_BOT_TOKEN")
	}
	if v.IsSet("TELEGRAM_CHAT_ID") {
		cfg.Telegram.ChatID = v.GetInt64("TELEGRAM_CHAT_ID")
	}
	if v.IsSet("DATABASE_DSN") {
		cfg.DB = v.GetString("DATABASE_DSN")
	}
	if v.IsSet("PORT") {
		cfg.Service.PublicPort = v.GetInt("PORT")
	}
	if v.IsSet("ADMIN_PORT") {
		cfg.Service.AdminPort = v.GetInt("ADMIN_PORT")
	}
	if v.IsSet("JAEGER_HOST") {
		cfg.Tracing.Host = v.GetString("JAEGER_HOST")
	}
	if v.IsSet("JAEGER_PORT") {
		cfg.Tracing.Port = v.GetInt("JAEGER_PORT")
	}
	if v.IsSet("LOG_LEVEL") {
		cfg.LogLevel = v.GetString("LOG_LEVEL")
	}
	if v.IsSet("RISK_FRACTION") {
		cfg.RiskFraction = v.GetFloat64("RISK_FRACTION")
	}
	if v.IsSet("SL_MULTIPLIER") {
		cfg.SLMultiplier = v.GetFloat64("SL_MULTIPLIER")
	}
	if v.IsSet("TP_MULTIPLIER") {
		cfg.TPMultiplier = v.GetFloat64("TP_MULTIPLIER")
	}
	if v.IsSet("INITIAL_BALANCE") {
		cfg.InitialBalance = v.GetFloat64("INITIAL_BALANCE")
	}
	if v.IsSet("NOTIFY_TIMEOUT") {
		cfg.NotifyTimeout = v.GetDuration("NOTIFY_TIMEOUT")
	}
}

func mergeInstruments(base, override map[string]models.InstrumentSpec) map[string]models.InstrumentSpec {
	out := make(map[string]models.InstrumentSpec, len(base)+len(override))
	for k, spec := range base {
		out[models.NormalizeTicker(k)] = spec
	}
	for k, spec := range override {
		sym := models.NormalizeTicker(k)
		spec.Symbol = sym
		out[sym] = spec
	}
	return out
}

// Validate ...
func (c *Config) Validate() error {
	if c.RiskFraction <= 0 || c.RiskFraction > 1 {
		return fmt.Errorf("risk_fraction must be in (0, 1], got %v", c.RiskFraction)
	}
	if c.SLMultiplier < 0 || c.TPMultiplier < 0 {
		return fmt.Errorf("sl/tp multipliers must be >= 0")
	}
	if c.InitialBalance <= 0 {
		return fmt.Errorf("initial_balance must be positive")
	}
	if c.NotifyTimeout <= 0 {
		return fmt.Errorf("notify_timeout must be positive")
	}
	for sym, spec := range c.Instruments {
		if spec.ContractSize < 0 || spec.ATR < 0 || spec.MinLot < 0 {
			return fmt.Errorf("instrument %s: negative parameters", sym)
		}
	}
	return nil
}

// TelegramEnabled — есть и токен, и чат.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.Token != "" && c.Telegram.ChatID != 0
}

func (c *Config) PublicAddr() string {
	return fmt.Sprintf("%s:%d", c.Service.Host, c.Service.PublicPort)
}

func (c *Config) AdminAddr() string {
	return fmt.Sprintf("%s:%d", c.Service.Host, c.Service.AdminPort)
}

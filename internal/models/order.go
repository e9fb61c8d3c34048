package models

import "time"

// OrderParameters — результат расчёта по входу.
type OrderParameters struct {
	TakeProfit float64 `json:"take_profit"`
	StopLoss   float64 `json:"stop_loss"`
	LotSize    float64 `json:"lot_size"`
}

// Transition — применённое изменение баланса по TP/SL.
type Transition struct {
	Action        Action  `json:"action"`
	BalanceBefore float64 `json:"balance_before"`
	BalanceAfter  float64 `json:"balance_after"`
	Delta         float64 `json:"delta"`   // +profit / -loss
	Percent       float64 `json:"percent"` // |delta| / BalanceBefore * 100
}

// AccountSnapshot — срез состояния счёта для статуса/health.
type AccountSnapshot struct {
	Balance      float64   `json:"balance"`
	RiskFraction float64   `json:"risk_fraction"`
	UpdatedAt    time.Time `json:"updated_at"`
}

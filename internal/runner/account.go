package runner

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"signal_bot/internal/models"
)

// RewardToRisk — фиксированное допущение 2:1 для TP HIT.
// Прибыль НЕ считается от реальной дистанции стопа/тейка на входе.
// TODO: брать RR из параметров входа, когда TP/SL-событие начнёт нести ссылку на вход.
const RewardToRisk = 2.0

var (
	ErrNotOutcome        = errors.New("action is not an outcome event")
	ErrNonFiniteBalance  = errors.New("transition produces non-finite balance")
	ErrInvalidBalanceSet = errors.New("balance must be positive")
)

// Account — единственный на процесс счёт. Состояние одно ("активен"), меняется только
// событиями TP/SL и ручной установкой баланса. Между рестартами не сохраняется.
type Account struct {
	mu           sync.Mutex
	balance      float64
	riskFraction float64
	updatedAt    time.Time
}

func NewAccount(initialBalance, riskFraction float64) *Account {
	return &Account{
		balance:      initialBalance,
		riskFraction: riskFraction,
		updatedAt:    time.Now(),
	}
}

// Balance — короткое чтение под мьютексом; сам расчёт входа идёт уже без блокировки.
func (a *Account) Balance() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

func (a *Account) RiskFraction() float64 { return a.riskFraction }

func (a *Account) Snapshot() models.AccountSnapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return models.AccountSnapshot{
		Balance:      a.balance,
		RiskFraction: a.riskFraction,
		UpdatedAt:    a.updatedAt,
	}
}

// nextBalance — чистый расчёт перехода, без побочных эффектов.
//
//	TP HIT: profit = b*r*2, b' = b + profit
//	SL HIT: loss   = b*r,   b' = b - loss
//
// Процент всегда считается от баланса ДО перехода.
func nextBalance(action models.Action, balance, riskFraction float64) (models.Transition, error) {
	var delta float64
	switch action {
	case models.ActionTPHit:
		delta = balance * riskFraction * RewardToRisk
	case models.ActionSLHit:
		delta = -(balance * riskFraction)
	default:
		return models.Transition{}, fmt.Errorf("%w: %q", ErrNotOutcome, action)
	}

	after := balance + delta
	if math.IsNaN(after) || math.IsInf(after, 0) {
		return models.Transition{}, ErrNonFiniteBalance
	}

	var pct float64
	if balance != 0 {
		pct = math.Abs(delta) / balance * 100
	}

	return models.Transition{
		Action:        action,
		BalanceBefore: balance,
		BalanceAfter:  after,
		Delta:         delta,
		Percent:       pct,
	}, nil
}

// Apply применяет TP/SL. Чтение-расчёт-запись под одним мьютексом, поэтому параллельные
// события не теряют обновлений. Переход считается целиком до записи: при ошибке баланс не трогаем.
func (a *Account) Apply(action models.Action) (models.Transition, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	tr, err := nextBalance(action, a.balance, a.riskFraction)
	if err != nil {
		return models.Transition{}, err
	}

	a.balance = tr.BalanceAfter
	a.updatedAt = time.Now()
	return tr, nil
}

// SetBalance — ручная установка баланса (POST /balance).
func (a *Account) SetBalance(v float64) error {
	if !(v > 0) || math.IsInf(v, 0) {
		return ErrInvalidBalanceSet
	}
	a.mu.Lock()
	a.balance = v
	a.updatedAt = time.Now()
	a.mu.Unlock()
	return nil
}

package models

import (
	"strings"
	"time"
)

// Action — тип события из вебхука.
type Action string

const (
	ActionBuy     Action = "BUY"
	ActionSell    Action = "SELL"
	ActionTPHit   Action = "TP HIT"
	ActionSLHit   Action = "SL HIT"
	ActionUnknown Action = ""
)

// ParseAction нормализует строку action из алерта.
// Пустая строка => BUY, "tp_hit" == "TP HIT", всё нераспознанное => ActionUnknown.
func ParseAction(raw string) Action {
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.Join(strings.Fields(s), " ")

	switch s {
	case "":
		return ActionBuy
	case "BUY":
		return ActionBuy
	case "SELL":
		return ActionSell
	case "TP HIT":
		return ActionTPHit
	case "SL HIT":
		return ActionSLHit
	default:
		return ActionUnknown
	}
}

// IsEntry — BUY или SELL.
func (a Action) IsEntry() bool { return a == ActionBuy || a == ActionSell }

// IsOutcome — TP HIT или SL HIT.
func (a Action) IsOutcome() bool { return a == ActionTPHit || a == ActionSLHit }

// Side как в раннере: "BUY"/"SELL" или пустая строка.
type Side string

const (
	SideNone Side = ""
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Side возвращает направление для входа. Для TP/SL — SideNone.
func (a Action) Side() Side {
	switch a {
	case ActionBuy:
		return SideBuy
	case ActionSell:
		return SideSell
	default:
		return SideNone
	}
}

// Event — декодированный вебхук.
type Event struct {
	ID         string
	Ticker     string
	Action     Action
	RawAction  string
	Price      float64
	HasPrice   bool
	ReceivedAt time.Time
}

// TradeSignal — вход по сигналу, живёт в рамках одного запроса.
type TradeSignal struct {
	Instrument string
	EntryPrice float64
	Side       Side
}

// NormalizeTicker: trim, upper, срезаем префикс биржи ("OANDA:XAUUSD" -> "XAUUSD").
func NormalizeTicker(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if i := strings.LastIndexByte(s, ':'); i >= 0 {
		s = s[i+1:]
	}
	return s
}

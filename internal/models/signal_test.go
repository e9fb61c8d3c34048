package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAction(t *testing.T) {
	tests := map[string]Action{
		"":          ActionBuy,
		"   ":       ActionBuy,
		"buy":       ActionBuy,
		"BUY":       ActionBuy,
		" Sell ":    ActionSell,
		"TP HIT":    ActionTPHit,
		"tp hit":    ActionTPHit,
		"tp_hit":    ActionTPHit,
		"TP  HIT":   ActionTPHit,
		"SL HIT":    ActionSLHit,
		"sl_hit":    ActionSLHit,
		"close":     ActionUnknown,
		"TP":        ActionUnknown,
		"long":      ActionUnknown,
		"BUY LIMIT": ActionUnknown,
	}
	for raw, want := range tests {
		assert.Equal(t, want, ParseAction(raw), "ParseAction(%q)", raw)
	}
}

func TestActionKinds(t *testing.T) {
	assert.True(t, ActionBuy.IsEntry())
	assert.True(t, ActionSell.IsEntry())
	assert.False(t, ActionTPHit.IsEntry())

	assert.True(t, ActionTPHit.IsOutcome())
	assert.True(t, ActionSLHit.IsOutcome())
	assert.False(t, ActionUnknown.IsOutcome())
	assert.False(t, ActionUnknown.IsEntry())

	assert.Equal(t, SideBuy, ActionBuy.Side())
	assert.Equal(t, SideSell, ActionSell.Side())
	assert.Equal(t, SideNone, ActionSLHit.Side())
}

func TestNormalizeTicker(t *testing.T) {
	assert.Equal(t, "XAUUSD", NormalizeTicker("xauusd"))
	assert.Equal(t, "XAUUSD", NormalizeTicker(" OANDA:XAUUSD "))
	assert.Equal(t, "BTCUSDT", NormalizeTicker("binance:btcusdt"))
	assert.Equal(t, "", NormalizeTicker(""))
}

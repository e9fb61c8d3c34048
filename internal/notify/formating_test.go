package notify

import (
	"testing"

	"signal_bot/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestFormatEntry(t *testing.T) {
	buy := FormatEntry("XAUUSD", models.SideBuy, 2000, models.OrderParameters{TakeProfit: 2015, StopLoss: 1992.5, LotSize: 0.02})
	assert.Equal(t,
		"🟢 BUY signal on XAUUSD\n"+
			"💵 Entry: 2000\n"+
			"📊 Lot Size: 0.02\n"+
			"🎯 TP: 2015\n"+
			"🛑 SL: 1992.5\n",
		buy)

	sell := FormatEntry("XAUUSD", models.SideSell, 2000, models.OrderParameters{TakeProfit: 1985, StopLoss: 2007.5, LotSize: 0.02})
	assert.Contains(t, sell, "🔴 SELL signal on XAUUSD")
}

func TestFormatTransition(t *testing.T) {
	tp := FormatTransition("XAUUSD", models.Transition{
		Action: models.ActionTPHit, BalanceBefore: 200, BalanceAfter: 220, Delta: 20, Percent: 10,
	})
	assert.Equal(t, "✅ TP HIT on XAUUSD\n💰 Profit: +20 (+10%)\n🏦 Balance: 220\n", tp)

	sl := FormatTransition("XAUUSD", models.Transition{
		Action: models.ActionSLHit, BalanceBefore: 220, BalanceAfter: 209, Delta: -11, Percent: 5,
	})
	assert.Equal(t, "❌ SL HIT on XAUUSD\n💸 Loss: -11 (-5%)\n🏦 Balance: 209\n", sl)

	odd := FormatTransition("EURUSD", models.Transition{
		Action: models.ActionSLHit, BalanceBefore: 333.33, BalanceAfter: 316.6635, Delta: -16.6665, Percent: 5,
	})
	assert.Contains(t, odd, "Loss: -16.67")
	assert.Contains(t, odd, "Balance: 316.66")
}

func TestFormatBalance(t *testing.T) {
	assert.Equal(t, "✅ Balance updated to $1500.5", FormatBalanceUpdated(1500.5))
	assert.Equal(t, "🏦 Balance: 209\n⚖️ Risk: 1% per trade\n",
		FormatStatus(models.AccountSnapshot{Balance: 209, RiskFraction: 0.01}))
}

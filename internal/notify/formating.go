package notify

import (
	"fmt"

	"signal_bot/internal/helper"
	"signal_bot/internal/models"
)

const HomeText = "Bot is running! 🚀"

func num(x float64) string { return helper.FormatNum(x) }

func money(x float64) string { return helper.FormatNum(helper.Round(x, 2)) }

// FormatEntry — сообщение о входе.
func FormatEntry(ticker string, side models.Side, entry float64, p models.OrderParameters) string {
	emoji := "🟢"
	if side == models.SideSell {
		emoji = "🔴"
	}
	return fmt.Sprintf(
		"%s %s signal on %s\n"+
			"💵 Entry: %s\n"+
			"📊 Lot Size: %s\n"+
			"🎯 TP: %s\n"+
			"🛑 SL: %s\n",
		emoji, side, ticker,
		num(entry),
		num(p.LotSize),
		num(p.TakeProfit),
		num(p.StopLoss),
	)
}

// FormatTransition — сообщение о TP/SL и новом балансе.
func FormatTransition(ticker string, tr models.Transition) string {
	if tr.Action == models.ActionTPHit {
		return fmt.Sprintf(
			"✅ TP HIT on %s\n"+
				"💰 Profit: +%s (+%s%%)\n"+
				"🏦 Balance: %s\n",
			ticker, money(tr.Delta), money(tr.Percent), money(tr.BalanceAfter),
		)
	}
	return fmt.Sprintf(
		"❌ SL HIT on %s\n"+
			"💸 Loss: -%s (-%s%%)\n"+
			"🏦 Balance: %s\n",
		ticker, money(-tr.Delta), money(tr.Percent), money(tr.BalanceAfter),
	)
}

func FormatBalanceUpdated(balance float64) string {
	return fmt.Sprintf("✅ Balance updated to $%s", num(balance))
}

func FormatStatus(s models.AccountSnapshot) string {
	return fmt.Sprintf(
		"🏦 Balance: %s\n"+
			"⚖️ Risk: %s%% per trade\n",
		money(s.Balance), num(helper.Round(s.RiskFraction*100, 2)),
	)
}

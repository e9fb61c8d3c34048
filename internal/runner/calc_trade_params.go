package runner

import (
	"signal_bot/internal/helper"
	"signal_bot/internal/models"
)

const pricePlaces = 2

// InstrumentTable — неизменяемый справочник инструментов, собирается один раз на старте.
type InstrumentTable struct {
	specs map[string]models.InstrumentSpec
}

func NewInstrumentTable(specs map[string]models.InstrumentSpec) *InstrumentTable {
	cp := make(map[string]models.InstrumentSpec, len(specs))
	for k, spec := range specs {
		sym := models.NormalizeTicker(k)
		spec.Symbol = sym
		cp[sym] = spec
	}
	return &InstrumentTable{specs: cp}
}

// Lookup никогда не падает: неизвестный тикер -> ContractSize=1, ATR=1.0, без минимального лота.
func (t *InstrumentTable) Lookup(symbol string) models.InstrumentSpec {
	sym := models.NormalizeTicker(symbol)
	if t != nil {
		if spec, ok := t.specs[sym]; ok {
			return spec
		}
	}
	return models.DefaultInstrument(sym)
}

// ComputeStopAndTarget считает TP/SL от цены входа через ATR-множители.
//
//	BUY:  SL = entry - slMult*ATR, TP = entry + tpMult*ATR
//	SELL: SL = entry + slMult*ATR, TP = entry - tpMult*ATR
//
// ATR=0 даёт SL=TP=entry, это валидный результат.
func ComputeStopAndTarget(
	entryPrice float64,
	side models.Side,
	volatility float64,
	slMultiplier float64,
	tpMultiplier float64,
) (takeProfit, stopLoss float64) {
	slDist := slMultiplier * volatility
	tpDist := tpMultiplier * volatility

	if side == models.SideBuy {
		stopLoss = entryPrice - slDist
		takeProfit = entryPrice + tpDist
	} else {
		stopLoss = entryPrice + slDist
		takeProfit = entryPrice - tpDist
	}

	return helper.Round(takeProfit, pricePlaces), helper.Round(stopLoss, pricePlaces)
}

// Calculator — чистая функция от явных входов: справочник и множители внедряются снаружи.
type Calculator struct {
	instruments  *InstrumentTable
	slMultiplier float64
	tpMultiplier float64
}

func NewCalculator(instruments *InstrumentTable, slMultiplier, tpMultiplier float64) *Calculator {
	return &Calculator{
		instruments:  instruments,
		slMultiplier: slMultiplier,
		tpMultiplier: tpMultiplier,
	}
}

func (c *Calculator) Instrument(symbol string) models.InstrumentSpec {
	return c.instruments.Lookup(symbol)
}

// CalcTradeParams считает SL, TP и лот для входа по текущему (снятому заранее) балансу.
func (c *Calculator) CalcTradeParams(sig models.TradeSignal, balance, riskFraction float64) models.OrderParameters {
	inst := c.instruments.Lookup(sig.Instrument)

	tp, sl := ComputeStopAndTarget(sig.EntryPrice, sig.Side, inst.ATR, c.slMultiplier, c.tpMultiplier)
	lot := ComputeLotSize(inst, sig.EntryPrice, sl, balance, riskFraction)

	return models.OrderParameters{
		TakeProfit: tp,
		StopLoss:   sl,
		LotSize:    lot,
	}
}

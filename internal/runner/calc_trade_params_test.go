package runner

import (
	"testing"

	"signal_bot/internal/models"

	"github.com/stretchr/testify/assert"
)

func testTable() *InstrumentTable {
	return NewInstrumentTable(map[string]models.InstrumentSpec{
		"XAUUSD": {ContractSize: 100, ATR: 5.0, MinLot: 0.02},
		"EURUSD": {ContractSize: 100000, ATR: 0.0010},
		"ZERO":   {ContractSize: 0, ATR: 2},
	})
}

func TestComputeStopAndTargetXAUUSD(t *testing.T) {
	tp, sl := ComputeStopAndTarget(2000, models.SideBuy, 5.0, 1.5, 3.0)
	assert.Equal(t, 2015.0, tp)
	assert.Equal(t, 1992.5, sl)

	tp, sl = ComputeStopAndTarget(2000, models.SideSell, 5.0, 1.5, 3.0)
	assert.Equal(t, 1985.0, tp)
	assert.Equal(t, 2007.5, sl)
}

func TestComputeStopAndTargetAntisymmetric(t *testing.T) {
	cases := []struct {
		entry, vol, slMult, tpMult float64
	}{
		{2000, 5, 1.5, 3},
		{1.0850, 0.0010, 1.5, 3},
		{64000, 500, 2, 4},
		{150.25, 0.37, 1, 1},
		{100, 0, 1.5, 3},
	}

	for _, c := range cases {
		buyTP, buySL := ComputeStopAndTarget(c.entry, models.SideBuy, c.vol, c.slMult, c.tpMult)
		sellTP, sellSL := ComputeStopAndTarget(c.entry, models.SideSell, c.vol, c.slMult, c.tpMult)

		assert.InDelta(t, buyTP-c.entry, -(sellTP - c.entry), 0.0101, "tp for %+v", c)
		assert.InDelta(t, buySL-c.entry, -(sellSL - c.entry), 0.0101, "sl for %+v", c)
		assert.GreaterOrEqual(t, buyTP, c.entry)
		assert.LessOrEqual(t, buySL, c.entry)
		assert.LessOrEqual(t, sellTP, c.entry)
		assert.GreaterOrEqual(t, sellSL, c.entry)
	}
}

func TestComputeStopAndTargetZeroVolatility(t *testing.T) {
	for _, side := range []models.Side{models.SideBuy, models.SideSell} {
		tp, sl := ComputeStopAndTarget(1234.56, side, 0, 1.5, 3)
		assert.Equal(t, 1234.56, tp)
		assert.Equal(t, 1234.56, sl)
	}
}

func TestComputeStopAndTargetRoundsToCents(t *testing.T) {
	tp, sl := ComputeStopAndTarget(1.0850, models.SideBuy, 0.0010, 1.5, 3.0)
	assert.Equal(t, 1.09, tp)
	assert.Equal(t, 1.08, sl)
}

func TestComputeLotSizeXAUUSDClampedToMinimum(t *testing.T) {
	inst := testTable().Lookup("XAUUSD")

	// risk = 10, priceDiff = 7.5, lossPerLot = 750 -> 0.013 -> min 0.02
	lot := ComputeLotSize(inst, 2000, 1992.5, 200, 0.05)
	assert.Equal(t, 0.02, lot)

	inst.MinLot = 0
	assert.Equal(t, 0.013, ComputeLotSize(inst, 2000, 1992.5, 200, 0.05))
}

func TestComputeLotSizeDegenerate(t *testing.T) {
	table := testTable()
	for _, sym := range []string{"XAUUSD", "EURUSD", "UNKNOWN"} {
		lot := ComputeLotSize(table.Lookup(sym), 2000, 2000, 200, 0.05)
		assert.Equal(t, MinLotSize, lot, sym)
	}

	// нулевой размер контракта
	lot := ComputeLotSize(table.Lookup("ZERO"), 2000, 1990, 200, 0.05)
	assert.Equal(t, MinLotSize, lot)
}

func TestComputeLotSizeRoundsToThreePlaces(t *testing.T) {
	inst := models.InstrumentSpec{Symbol: "EURUSD", ContractSize: 100000}
	// risk = 10, diff = 0.0015, lossPerLot = 150 -> 0.0666.. -> 0.067
	lot := ComputeLotSize(inst, 1.0850, 1.0835, 1000, 0.01)
	assert.Equal(t, 0.067, lot)
}

func TestCalcIdempotent(t *testing.T) {
	calc := NewCalculator(testTable(), 1.5, 3.0)
	sig := models.TradeSignal{Instrument: "XAUUSD", EntryPrice: 2000, Side: models.SideBuy}

	first := calc.CalcTradeParams(sig, 200, 0.05)
	second := calc.CalcTradeParams(sig, 200, 0.05)
	assert.Equal(t, first, second)

	tp1, sl1 := ComputeStopAndTarget(2000, models.SideSell, 5, 1.5, 3)
	tp2, sl2 := ComputeStopAndTarget(2000, models.SideSell, 5, 1.5, 3)
	assert.Equal(t, tp1, tp2)
	assert.Equal(t, sl1, sl2)

	inst := testTable().Lookup("XAUUSD")
	assert.Equal(t, ComputeLotSize(inst, 2000, 1992.5, 200, 0.05), ComputeLotSize(inst, 2000, 1992.5, 200, 0.05))
}

func TestCalcTradeParamsXAUUSD(t *testing.T) {
	calc := NewCalculator(testTable(), 1.5, 3.0)
	p := calc.CalcTradeParams(models.TradeSignal{Instrument: "xauusd", EntryPrice: 2000, Side: models.SideBuy}, 200, 0.05)

	assert.Equal(t, models.OrderParameters{TakeProfit: 2015, StopLoss: 1992.5, LotSize: 0.02}, p)
}

func TestCalcTradeParamsUsesConfiguredMultipliers(t *testing.T) {
	calc := NewCalculator(testTable(), 2, 4)
	p := calc.CalcTradeParams(models.TradeSignal{Instrument: "XAUUSD", EntryPrice: 2000, Side: models.SideBuy}, 200, 0.05)

	assert.Equal(t, 2020.0, p.TakeProfit)
	assert.Equal(t, 1990.0, p.StopLoss)
}

func TestInstrumentLookupFallback(t *testing.T) {
	table := testTable()

	inst := table.Lookup("DOGEUSD")
	assert.Equal(t, "DOGEUSD", inst.Symbol)
	assert.Equal(t, 1.0, inst.ContractSize)
	assert.Equal(t, 1.0, inst.ATR)
	assert.Equal(t, 0.0, inst.MinLot)

	// префикс биржи и регистр не мешают
	xau := table.Lookup(" oanda:xauusd ")
	assert.Equal(t, "XAUUSD", xau.Symbol)
	assert.Equal(t, 100.0, xau.ContractSize)

	var nilTable *InstrumentTable
	assert.Equal(t, 1.0, nilTable.Lookup("X").ATR)
}

func TestUnknownInstrumentParams(t *testing.T) {
	calc := NewCalculator(testTable(), 1.5, 3.0)
	p := calc.CalcTradeParams(models.TradeSignal{Instrument: "ABC", EntryPrice: 100, Side: models.SideSell}, 1000, 0.01)

	// ATR 1.0 -> SL 101.5, TP 97; risk 10 / (1.5 * 1) = 6.667
	assert.Equal(t, 97.0, p.TakeProfit)
	assert.Equal(t, 101.5, p.StopLoss)
	assert.Equal(t, 6.667, p.LotSize)
}

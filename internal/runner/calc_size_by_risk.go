package runner

import (
	"math"

	"signal_bot/internal/helper"
	"signal_bot/internal/models"
)

const (
	// MinLotSize — фолбэк, когда убыток на лот нулевой (SL == entry или ContractSize == 0).
	MinLotSize = 0.01
	lotPlaces  = 3
)

// ComputeLotSize считает размер позиции в ЛОТАХ, исходя из:
//   - целевого риска (balance * riskFraction),
//   - дистанции до стопа,
//   - размера контракта инструмента.
//
//	lossPerLot = |entry - stop| * contractSize
//	lot        = risk / lossPerLot
//
// Входы не валидируются: entry > 0 гарантируется выше по стеку.
func ComputeLotSize(
	inst models.InstrumentSpec,
	entryPrice float64,
	stopLoss float64,
	accountBalance float64,
	riskFraction float64,
) float64 {
	riskAmount := accountBalance * riskFraction

	priceDiff := math.Abs(entryPrice - stopLoss)
	lossPerLot := priceDiff * inst.ContractSize
	if lossPerLot == 0 {
		return MinLotSize
	}

	lot := helper.Round(riskAmount/lossPerLot, lotPlaces)

	// минимальный лот по инструменту — поднимаем до него
	// (риск чуть превысит целевой, но иначе ордер не принять)
	if inst.MinLot > 0 && lot < inst.MinLot {
		lot = inst.MinLot
	}

	return lot
}

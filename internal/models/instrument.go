package models

// InstrumentSpec — статические параметры инструмента.
type InstrumentSpec struct {
	Symbol       string  `yaml:"-" json:"symbol"`
	ContractSize float64 `yaml:"contract_size" json:"contract_size"` // единиц в 1 стандартном лоте
	ATR          float64 `yaml:"atr" json:"atr"`                     // статичная оценка волатильности
	MinLot       float64 `yaml:"min_lot" json:"min_lot"`             // 0 => без нижней границы
}

const (
	DefaultContractSize = 1.0
	DefaultATR          = 1.0
)

// DefaultInstrument — фолбэк для неизвестного тикера.
func DefaultInstrument(symbol string) InstrumentSpec {
	return InstrumentSpec{
		Symbol:       symbol,
		ContractSize: DefaultContractSize,
		ATR:          DefaultATR,
	}
}

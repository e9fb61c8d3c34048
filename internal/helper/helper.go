package helper

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Round округляет до places знаков после запятой по десятичному представлению
// (половина — от нуля), без артефактов float вида 1992.4999999.
func Round(x float64, places int32) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	return decimal.NewFromFloat(x).Round(places).InexactFloat64()
}

// ParseFloat разбирает цену, пришедшую строкой ("2000.5", " 2000 ").
// Запятая не принимается ни как разделитель тысяч, ни как десятичная: "1,5" — ошибка.
func ParseFloat(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("empty number")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("non-finite number %q", raw)
	}
	return f, nil
}

// FormatNum печатает число без хвостовых нулей: 2015 -> "2015", 0.013 -> "0.013".
func FormatNum(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

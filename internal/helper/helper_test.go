package helper

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRound(t *testing.T) {
	tests := []struct {
		in     float64
		places int32
		want   float64
	}{
		{in: 1992.5, places: 2, want: 1992.5},
		{in: 10.0 / 750.0, places: 3, want: 0.013},
		{in: 1.005, places: 2, want: 1.01},
		// ровно половина — от нуля, не к чётному
		{in: 100.125, places: 2, want: 100.13},
		{in: -100.125, places: 2, want: -100.13},
		{in: 0, places: 3, want: 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Round(tt.in, tt.places), "Round(%v, %d)", tt.in, tt.places)
	}
}

func TestRoundNonFinite(t *testing.T) {
	assert.True(t, math.IsNaN(Round(math.NaN(), 2)))
	assert.True(t, math.IsInf(Round(math.Inf(1), 2), 1))
}

func TestParseFloat(t *testing.T) {
	f, err := ParseFloat(" 2000.5 ")
	require.NoError(t, err)
	assert.Equal(t, 2000.5, f)

	for _, bad := range []string{"", "abc", "NaN", "Inf", "1,5", "2,000.25", "2000,"} {
		_, err := ParseFloat(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestFormatNum(t *testing.T) {
	assert.Equal(t, "2015", FormatNum(2015))
	assert.Equal(t, "0.013", FormatNum(0.013))
	assert.Equal(t, "1992.5", FormatNum(1992.5))
}

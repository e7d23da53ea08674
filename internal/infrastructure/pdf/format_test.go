package pdf

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":         "$0,00",
		"250":       "$250,00",
		"1000":      "$1.000,00",
		"1234567.5": "$1.234.567,50",
		"-250.125":  "-$250,13",
		"-1000000":  "-$1.000.000,00",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

package inventory

import "github.com/shopspring/decimal"

// Escalas de las columnas NUMERIC(14, s): cantidades con 3 decimales, precios con 2.
const (
	numericPrecision = 14
	QuantityScale    = 3
	PriceScale       = 2
)

// FitsQuantity indica si d se guarda sin redondeo en una columna de cantidad.
func FitsQuantity(d decimal.Decimal) bool { return fitsNumeric(d, QuantityScale) }

// FitsPrice indica si d se guarda sin redondeo en una columna de precio.
func FitsPrice(d decimal.Decimal) bool { return fitsNumeric(d, PriceScale) }

func fitsNumeric(d decimal.Decimal, scale int32) bool {
	if !d.Equal(d.Truncate(scale)) {
		return false
	}
	return d.Abs().LessThan(decimal.New(1, numericPrecision-scale))
}

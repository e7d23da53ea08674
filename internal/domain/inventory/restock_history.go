package inventory

import (
	"sort"

	"github.com/shopspring/decimal"
)

// RestockLine línea de un recibo: cantidad positiva agregada por producto, valorada al precio de compra actual.
type RestockLine struct {
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	LineValue decimal.Decimal
}

// RestockHistory reconstrucción del valor de stock alrededor de un recibo.
//
//	Opening  = valoración (piso en cero por producto) de los movimientos anteriores a ReceiptAt
//	NewValue = Σ deltas positivos ligados al recibo × precio de compra
//	Closing  = Opening + NewValue
type RestockHistory struct {
	Opening  decimal.Decimal
	NewValue decimal.Decimal
	Closing  decimal.Decimal
	Lines    []RestockLine
}

// NewRestockHistory arma el historial. receiptTotals trae la suma de deltas positivos por producto;
// los ajustes negativos ligados al recibo no cuentan como stock agregado.
func NewRestockHistory(opening decimal.Decimal, receiptTotals, buyPrices map[string]decimal.Decimal) RestockHistory {
	lines := RestockLines(receiptTotals, buyPrices)
	added := decimal.Zero
	for _, l := range lines {
		added = added.Add(l.LineValue)
	}
	return RestockHistory{
		Opening:  opening,
		NewValue: added,
		Closing:  opening.Add(added),
		Lines:    lines,
	}
}

// RestockLines lista las líneas positivas del recibo ordenadas por producto.
func RestockLines(receiptTotals, buyPrices map[string]decimal.Decimal) []RestockLine {
	lines := make([]RestockLine, 0, len(receiptTotals))
	for productID, qty := range receiptTotals {
		if !qty.IsPositive() {
			continue
		}
		price := buyPrices[productID]
		lines = append(lines, RestockLine{
			ProductID: productID,
			Quantity:  qty,
			UnitPrice: price,
			LineValue: qty.Mul(price),
		})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ProductID < lines[j].ProductID })
	return lines
}

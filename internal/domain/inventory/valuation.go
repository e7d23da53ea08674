package inventory

import "github.com/shopspring/decimal"

// SumDeltas proyecta la cantidad sumando deltas. La suma es conmutativa: el orden de inserción no importa.
func SumDeltas(deltas []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, d := range deltas {
		total = total.Add(d)
	}
	return total
}

// StockValue valora las cantidades proyectadas al precio de compra.
// Una cantidad negativa (sobreventa concurrente) se lleva a cero por producto antes de valorar,
// de modo que no descuenta el valor de otros productos.
// Productos sin precio conocido aportan cero.
func StockValue(quantities, buyPrices map[string]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for productID, qty := range quantities {
		if !qty.IsPositive() {
			continue
		}
		price, ok := buyPrices[productID]
		if !ok {
			continue
		}
		total = total.Add(qty.Mul(price))
	}
	return total
}

// PurchasesValue valora las entradas (deltas positivos) del período al precio de compra.
// purchased debe contener solo sumas de deltas positivos; cualquier valor <= 0 se ignora.
func PurchasesValue(purchased, buyPrices map[string]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for productID, qty := range purchased {
		if !qty.IsPositive() {
			continue
		}
		total = total.Add(qty.Mul(buyPrices[productID]))
	}
	return total
}

package inventory

import "github.com/shopspring/decimal"

// CashUpLine fila del arqueo por producto.
// EstimatedQty es una aproximación: monto vendido / precio de venta ACTUAL.
type CashUpLine struct {
	ProductID    string
	SalesAmount  decimal.Decimal
	BuyPrice     decimal.Decimal
	SellPrice    decimal.Decimal
	EstimatedQty decimal.Decimal
	Cash         decimal.Decimal // BuyPrice * EstimatedQty
	Profit       decimal.Decimal // (SellPrice - BuyPrice) * EstimatedQty
}

// CashUp arqueo de un período: filas por producto y totales por columna.
type CashUp struct {
	Lines       []CashUpLine
	TotalSales  decimal.Decimal
	TotalCash   decimal.Decimal
	TotalProfit decimal.Decimal
	CashBalance decimal.Decimal // TotalCash + TotalProfit
}

// NewCashUpLine calcula una fila. Con SellPrice <= 0 la cantidad estimada es cero (sin división).
func NewCashUpLine(productID string, salesAmount, buyPrice, sellPrice decimal.Decimal) CashUpLine {
	qty := decimal.Zero
	if sellPrice.IsPositive() {
		qty = salesAmount.Div(sellPrice)
	}
	return CashUpLine{
		ProductID:    productID,
		SalesAmount:  salesAmount,
		BuyPrice:     buyPrice,
		SellPrice:    sellPrice,
		EstimatedQty: qty,
		Cash:         buyPrice.Mul(qty),
		Profit:       sellPrice.Sub(buyPrice).Mul(qty),
	}
}

// NewCashUp suma las columnas de las filas.
func NewCashUp(lines []CashUpLine) CashUp {
	out := CashUp{
		Lines:       lines,
		TotalSales:  decimal.Zero,
		TotalCash:   decimal.Zero,
		TotalProfit: decimal.Zero,
	}
	for _, l := range lines {
		out.TotalSales = out.TotalSales.Add(l.SalesAmount)
		out.TotalCash = out.TotalCash.Add(l.Cash)
		out.TotalProfit = out.TotalProfit.Add(l.Profit)
	}
	out.CashBalance = out.TotalCash.Add(out.TotalProfit)
	return out
}

package inventory

import "github.com/shopspring/decimal"

// TradeAccount estado de cuenta comercial de un período.
//
//	CostOfSales       = OpeningStock + NewStock - ClosingStock
//	GrossProfitOrLoss = Sales - CostOfSales
//
// Un CostOfSales negativo se devuelve tal cual: indica un problema de calidad en el historial de movimientos.
type TradeAccount struct {
	Sales             decimal.Decimal
	OpeningStock      decimal.Decimal
	NewStock          decimal.Decimal
	ClosingStock      decimal.Decimal
	CostOfSales       decimal.Decimal
	GrossProfitOrLoss decimal.Decimal
}

// NewTradeAccount compone la cuenta comercial a partir de sus cuatro entradas.
func NewTradeAccount(sales, opening, newStock, closing decimal.Decimal) TradeAccount {
	cost := opening.Add(newStock).Sub(closing)
	return TradeAccount{
		Sales:             sales,
		OpeningStock:      opening,
		NewStock:          newStock,
		ClosingStock:      closing,
		CostOfSales:       cost,
		GrossProfitOrLoss: sales.Sub(cost),
	}
}

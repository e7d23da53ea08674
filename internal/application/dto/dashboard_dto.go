package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSummaryDTO respuesta de GET /api/reports/dashboard.
// Combina la valoración del stock con la cuenta comercial del período.
type DashboardSummaryDTO struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`

	StockValue     decimal.Decimal `json:"stock_value"`     // valoración al cierre (end inclusive)
	PurchasesValue decimal.Decimal `json:"purchases_value"` // entradas del período
	Sales          decimal.Decimal `json:"sales"`
	CostOfSales    decimal.Decimal `json:"cost_of_sales"`
	GrossProfit    decimal.Decimal `json:"gross_profit"`

	LowStockCount  int `json:"low_stock_count"`
	PromotionCount int `json:"promotion_count"` // productos con vida útil vencida

	DateLabel string `json:"date_label"` // ej: "Febrero 2026"
}

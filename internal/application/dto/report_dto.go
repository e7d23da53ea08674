package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TradeAccountDTO respuesta de GET /api/reports/trade-account.
type TradeAccountDTO struct {
	Start             time.Time       `json:"start"`
	End               time.Time       `json:"end"`
	Sales             decimal.Decimal `json:"sales"`
	OpeningStock      decimal.Decimal `json:"opening_stock"` // antes de start (excluye created_at == start)
	NewStock          decimal.Decimal `json:"new_stock"`     // compras del período
	ClosingStock      decimal.Decimal `json:"closing_stock"` // hasta end inclusive
	CostOfSales       decimal.Decimal `json:"cost_of_sales"`
	GrossProfitOrLoss decimal.Decimal `json:"gross_profit_or_loss"`
}

// CashUpLineDTO fila del arqueo por producto.
type CashUpLineDTO struct {
	ProductID    string          `json:"product_id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	SalesAmount  decimal.Decimal `json:"sales_amount"`
	BuyPrice     decimal.Decimal `json:"buy_price"`
	SellPrice    decimal.Decimal `json:"sell_price"`
	EstimatedQty decimal.Decimal `json:"estimated_qty"` // monto vendido / precio de venta actual
	Cash         decimal.Decimal `json:"cash"`
	Profit       decimal.Decimal `json:"profit"`
}

// CashUpDTO respuesta de GET /api/reports/cashup.
type CashUpDTO struct {
	Start       time.Time       `json:"start"`
	End         time.Time       `json:"end"`
	Lines       []CashUpLineDTO `json:"lines"`
	TotalSales  decimal.Decimal `json:"total_sales"`
	TotalCash   decimal.Decimal `json:"total_cash"`
	TotalProfit decimal.Decimal `json:"total_profit"`
	CashBalance decimal.Decimal `json:"cash_balance"`
}

// PromotionItemDTO producto que superó su vida útil en stock.
type PromotionItemDTO struct {
	ProductID     string          `json:"product_id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	SellPrice     decimal.Decimal `json:"sell_price"`
	OnSpecial     bool            `json:"on_special"`
	ShelfLifeDays int             `json:"shelf_life_days"`
	DaysInStock   int             `json:"days_in_stock"`
	LastRestockAt time.Time       `json:"last_restock_at"`
}

// UpdatePromotionRequest body para PATCH /api/products/:id/promotion. Campos nil = sin cambio.
type UpdatePromotionRequest struct {
	SellPrice *decimal.Decimal `json:"sell_price,omitempty"`
	OnSpecial *bool            `json:"on_special,omitempty"`
}

// RestockLineDTO línea de un recibo.
type RestockLineDTO struct {
	ProductID string          `json:"product_id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineValue decimal.Decimal `json:"line_value"`
}

// RestockHistoryDTO respuesta de GET /api/reports/restock-history/:receiptId.
type RestockHistoryDTO struct {
	ReceiptID string           `json:"receipt_id"`
	Label     string           `json:"label"`
	ReceiptAt time.Time        `json:"receipt_at"`
	Opening   decimal.Decimal  `json:"opening"`
	NewValue  decimal.Decimal  `json:"new_value"`
	Closing   decimal.Decimal  `json:"closing"`
	Items     []RestockLineDTO `json:"items"`
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RestockRequest body para POST /api/inventory/restock.
type RestockRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
	ReceiptID *string         `json:"receipt_id,omitempty"`
	Note      string          `json:"note,omitempty" validate:"max=500"`
}

// AdjustmentRequest body para POST /api/inventory/adjustments. Delta con signo, distinto de cero.
type AdjustmentRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Delta     decimal.Decimal `json:"delta"`
	Note      string          `json:"note" validate:"required,max=500"`
}

// SaleMovementRequest body para POST /api/inventory/sale-movements (finalización de venta).
type SaleMovementRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
	Reference string          `json:"reference" validate:"required"`
}

// MovementResultDTO respuesta de los escritores del ledger.
type MovementResultDTO struct {
	ProductID       string           `json:"product_id"`
	CurrentQuantity decimal.Decimal  `json:"current_quantity"`
	AutoRestocked   *decimal.Decimal `json:"auto_restocked,omitempty"` // solo si una venta repuso faltante
}

// StockItemDTO fila de GET /api/inventory/stock.
type StockItemDTO struct {
	ProductID string          `json:"product_id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	LowStock  bool            `json:"low_stock"`
}

// QuantityDTO respuesta de GET /api/inventory/products/:id/quantity.
type QuantityDTO struct {
	ProductID string          `json:"product_id"`
	AsOf      time.Time       `json:"as_of"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// MovementDTO fila del historial de movimientos de un producto.
type MovementDTO struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	ReceiptID *string         `json:"receipt_id,omitempty"`
	Source    string          `json:"source"`
	Note      string          `json:"note,omitempty"`
	CreatedBy string          `json:"created_by,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

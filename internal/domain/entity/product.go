package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product datos maestros de un producto que consume el ledger (solo lectura para el ledger).
// El stock no vive aquí: se deriva sumando los movimientos de StockMovement.
type Product struct {
	ID                string
	BusinessID        string
	SKU               string // código único por negocio
	Name              string
	BuyPrice          decimal.Decimal // precio de compra (costo), base de la valoración
	SellPrice         decimal.Decimal // precio de venta actual
	ShelfLifeDays     *int            // vida útil en días; nil = no aplica promoción
	LowStockThreshold *decimal.Decimal
	OnSpecial         bool // etiqueta de oferta
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsLowStock indica si la cantidad proyectada está en o bajo el umbral configurado.
func (p *Product) IsLowStock(quantity decimal.Decimal) bool {
	if p.LowStockThreshold == nil {
		return false
	}
	return quantity.LessThanOrEqual(*p.LowStockThreshold)
}

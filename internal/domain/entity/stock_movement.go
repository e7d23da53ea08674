package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Orígenes de un movimiento de stock.
const (
	MovementSourceRestock     = "restock"      // entrada manual, normalmente ligada a un recibo
	MovementSourceSale        = "sale"         // salida por venta finalizada
	MovementSourceAdjustment  = "adjustment"   // ajuste manual (+/-)
	MovementSourceAutoRestock = "auto_restock" // reposición automática del faltante al vender
)

// StockMovement es una fila inmutable del ledger: un delta de cantidad con signo.
// Nunca se actualiza ni se borra; la cantidad de un producto es siempre la suma de sus deltas.
type StockMovement struct {
	ID         string
	BusinessID string
	ProductID  string
	Quantity   decimal.Decimal // positivo entrada, negativo salida; nunca cero
	ReceiptID  *string
	Source     string
	Note       string
	CreatedBy  string
	CreatedAt  time.Time // asignado explícitamente al construir el movimiento
}

// IsPurchase indica si el movimiento suma stock (cuenta como compra en la valoración).
func (m *StockMovement) IsPurchase() bool {
	return m.Quantity.IsPositive()
}

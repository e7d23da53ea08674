package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
)

// StockMovementRepository puerto del ledger append-only. No existe Update ni Delete.
// Todas las consultas van acotadas por businessID.
type StockMovementRepository interface {
	// Append inserta una fila inmutable.
	Append(ctx context.Context, movement *entity.StockMovement) error

	// LockProduct serializa escritores del mismo producto hasta el fin de la transacción en curso.
	LockProduct(ctx context.Context, businessID, productID string) error

	// QuantityAsOf Σ delta del producto dentro del corte; cero si no hay movimientos.
	QuantityAsOf(ctx context.Context, businessID, productID string, cutoff inventory.Cutoff) (decimal.Decimal, error)

	// TotalsAsOf productID → cantidad para todo producto con al menos un movimiento dentro del corte.
	// Una sola consulta agrupada por negocio.
	TotalsAsOf(ctx context.Context, businessID string, cutoff inventory.Cutoff) (map[string]decimal.Decimal, error)

	// PositiveTotalsBetween productID → Σ deltas positivos con start <= created_at <= end.
	PositiveTotalsBetween(ctx context.Context, businessID string, start, end time.Time) (map[string]decimal.Decimal, error)

	// ReceiptPositiveTotals productID → Σ deltas positivos ligados al recibo.
	ReceiptPositiveTotals(ctx context.Context, businessID, receiptID string) (map[string]decimal.Decimal, error)

	// LastPositiveMovementAt productID → created_at del último movimiento positivo.
	LastPositiveMovementAt(ctx context.Context, businessID string) (map[string]time.Time, error)

	// ListByProduct movimientos de un producto, más recientes primero.
	ListByProduct(ctx context.Context, businessID, productID string, limit, offset int) ([]*entity.StockMovement, error)
}

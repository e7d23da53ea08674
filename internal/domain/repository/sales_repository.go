package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesRepository lectura agregada del subsistema de transacciones (ventas finalizadas).
// Implementaciones read-only; el rango es cerrado [start, end].
type SalesRepository interface {
	SalesTotal(ctx context.Context, businessID string, start, end time.Time) (decimal.Decimal, error)
	SalesTotalByProduct(ctx context.Context, businessID string, start, end time.Time) (map[string]decimal.Decimal, error)
}

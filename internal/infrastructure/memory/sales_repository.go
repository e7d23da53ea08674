package memory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// SalesRepository agrega las ventas cargadas con Store.AddSale.
type SalesRepository struct {
	s *Store
}

var _ repository.SalesRepository = (*SalesRepository)(nil)

func (r *SalesRepository) SalesTotal(_ context.Context, businessID string, start, end time.Time) (decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	total := decimal.Zero
	for _, sale := range r.s.sales {
		if sale.BusinessID == businessID && inRange(sale.SoldAt, start, end) {
			total = total.Add(sale.Amount)
		}
	}
	return total, nil
}

func (r *SalesRepository) SalesTotalByProduct(_ context.Context, businessID string, start, end time.Time) (map[string]decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make(map[string]decimal.Decimal)
	for _, sale := range r.s.sales {
		if sale.BusinessID == businessID && inRange(sale.SoldAt, start, end) {
			out[sale.ProductID] = out[sale.ProductID].Add(sale.Amount)
		}
	}
	return out, nil
}

// inRange rango cerrado [start, end].
func inRange(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

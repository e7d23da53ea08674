package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// StockMovementRepository ledger append-only en memoria.
// Fuera de una transacción LockProduct no hace nada: el bloqueo solo vive dentro de TxRunner.Run.
type StockMovementRepository struct {
	s *Store
}

var _ repository.StockMovementRepository = (*StockMovementRepository)(nil)

func (r *StockMovementRepository) Append(_ context.Context, m *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.movements = append(r.s.movements, *m)
	return nil
}

func (r *StockMovementRepository) LockProduct(context.Context, string, string) error { return nil }

func (r *StockMovementRepository) QuantityAsOf(_ context.Context, businessID, productID string, cutoff inventory.Cutoff) (decimal.Decimal, error) {
	return quantityAsOf(r.s.snapshot(), businessID, productID, cutoff), nil
}

func (r *StockMovementRepository) TotalsAsOf(_ context.Context, businessID string, cutoff inventory.Cutoff) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal)
	for _, m := range r.s.snapshot() {
		if m.BusinessID == businessID && cutoff.Includes(m.CreatedAt) {
			out[m.ProductID] = out[m.ProductID].Add(m.Quantity)
		}
	}
	return out, nil
}

func (r *StockMovementRepository) PositiveTotalsBetween(_ context.Context, businessID string, start, end time.Time) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal)
	for _, m := range r.s.snapshot() {
		if m.BusinessID == businessID && m.IsPurchase() && inRange(m.CreatedAt, start, end) {
			out[m.ProductID] = out[m.ProductID].Add(m.Quantity)
		}
	}
	return out, nil
}

func (r *StockMovementRepository) ReceiptPositiveTotals(_ context.Context, businessID, receiptID string) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal)
	for _, m := range r.s.snapshot() {
		if m.BusinessID == businessID && m.IsPurchase() && m.ReceiptID != nil && *m.ReceiptID == receiptID {
			out[m.ProductID] = out[m.ProductID].Add(m.Quantity)
		}
	}
	return out, nil
}

func (r *StockMovementRepository) LastPositiveMovementAt(_ context.Context, businessID string) (map[string]time.Time, error) {
	out := make(map[string]time.Time)
	for _, m := range r.s.snapshot() {
		if m.BusinessID != businessID || !m.IsPurchase() {
			continue
		}
		if last, ok := out[m.ProductID]; !ok || m.CreatedAt.After(last) {
			out[m.ProductID] = m.CreatedAt
		}
	}
	return out, nil
}

func (r *StockMovementRepository) ListByProduct(_ context.Context, businessID, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	list := make([]*entity.StockMovement, 0)
	for _, m := range r.s.snapshot() {
		if m.BusinessID == businessID && m.ProductID == productID {
			list = append(list, &m)
		}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return paginate(list, limit, offset), nil
}

// snapshot copia de los movimientos para leer sin retener el lock.
func (s *Store) snapshot() []entity.StockMovement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.StockMovement, len(s.movements))
	copy(out, s.movements)
	return out
}

func quantityAsOf(movements []entity.StockMovement, businessID, productID string, cutoff inventory.Cutoff) decimal.Decimal {
	deltas := make([]decimal.Decimal, 0)
	for _, m := range movements {
		if m.BusinessID == businessID && m.ProductID == productID && cutoff.Includes(m.CreatedAt) {
			deltas = append(deltas, m.Quantity)
		}
	}
	return inventory.SumDeltas(deltas)
}

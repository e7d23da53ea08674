package memory

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// TxRunner simula una transacción: los Append se acumulan y solo se publican si fn no falla,
// y los bloqueos por producto tomados con LockProduct se liberan al terminar.
type TxRunner struct {
	s *Store
}

// Run ejecuta fn con un repositorio de movimientos atado a la "transacción".
func (t *TxRunner) Run(ctx context.Context, fn func(movRepo repository.StockMovementRepository) error) error {
	tx := &txMovementRepository{StockMovementRepository: StockMovementRepository{s: t.s}}
	defer tx.unlockAll()

	if err := fn(tx); err != nil {
		return err
	}

	t.s.mu.Lock()
	t.s.movements = append(t.s.movements, tx.pending...)
	t.s.mu.Unlock()
	return nil
}

// txMovementRepository ve los movimientos confirmados más los pendientes de la propia transacción.
type txMovementRepository struct {
	StockMovementRepository
	pending []entity.StockMovement
	held    []*sync.Mutex
}

func (r *txMovementRepository) Append(_ context.Context, m *entity.StockMovement) error {
	r.pending = append(r.pending, *m)
	return nil
}

func (r *txMovementRepository) LockProduct(_ context.Context, businessID, productID string) error {
	l := r.s.productLock(businessID, productID)
	l.Lock()
	r.held = append(r.held, l)
	return nil
}

func (r *txMovementRepository) QuantityAsOf(_ context.Context, businessID, productID string, cutoff inventory.Cutoff) (decimal.Decimal, error) {
	all := append(r.s.snapshot(), r.pending...)
	return quantityAsOf(all, businessID, productID, cutoff), nil
}

func (r *txMovementRepository) unlockAll() {
	for i := len(r.held) - 1; i >= 0; i-- {
		r.held[i].Unlock()
	}
	r.held = nil
}

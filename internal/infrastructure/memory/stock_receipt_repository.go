package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// StockReceiptRepository implementa repository.StockReceiptRepository en memoria.
type StockReceiptRepository struct {
	s *Store
}

var _ repository.StockReceiptRepository = (*StockReceiptRepository)(nil)

func (r *StockReceiptRepository) Create(_ context.Context, receipt *entity.StockReceipt) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.receipts[receipt.ID]; exists {
		return fmt.Errorf("%w: recibo %s", domain.ErrDuplicate, receipt.ID)
	}
	r.s.receipts[receipt.ID] = *receipt
	return nil
}

func (r *StockReceiptRepository) GetByID(_ context.Context, businessID, receiptID string) (*entity.StockReceipt, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.s.receipts[receiptID]
	if !ok || rec.BusinessID != businessID {
		return nil, nil
	}
	return &rec, nil
}

func (r *StockReceiptRepository) ListByBusiness(_ context.Context, businessID string, limit, offset int) ([]*entity.StockReceipt, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.StockReceipt, 0)
	for _, rec := range r.s.receipts {
		if rec.BusinessID == businessID {
			list = append(list, &rec)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ReceiptAt.After(list[j].ReceiptAt) })
	return paginate(list, limit, offset), nil
}

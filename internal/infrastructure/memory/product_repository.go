package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// ProductRepository implementa repository.ProductRepository en memoria.
type ProductRepository struct {
	s *Store
}

var _ repository.ProductRepository = (*ProductRepository)(nil)

func (r *ProductRepository) GetByID(_ context.Context, businessID, productID string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[productID]
	if !ok || p.BusinessID != businessID {
		return nil, nil
	}
	return &p, nil
}

func (r *ProductRepository) ListByBusiness(_ context.Context, businessID string, q repository.ProductQuery) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	search := strings.ToLower(strings.TrimSpace(q.Search))
	list := make([]*entity.Product, 0)
	for _, p := range r.s.products {
		if p.BusinessID != businessID {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.SKU), search) {
			continue
		}
		list = append(list, &p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return paginate(list, q.Limit, q.Offset), nil
}

func (r *ProductRepository) BuyPrices(_ context.Context, businessID string) (map[string]decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make(map[string]decimal.Decimal)
	for id, p := range r.s.products {
		if p.BusinessID == businessID {
			out[id] = p.BuyPrice
		}
	}
	return out, nil
}

func (r *ProductRepository) UpdatePricing(_ context.Context, businessID, productID string, upd repository.PricingUpdate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[productID]
	if !ok || p.BusinessID != businessID {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
	}
	if upd.SellPrice != nil {
		p.SellPrice = *upd.SellPrice
	}
	if upd.OnSpecial != nil {
		p.OnSpecial = *upd.OnSpecial
	}
	p.UpdatedAt = time.Now()
	r.s.products[productID] = p
	return nil
}

// paginate aplica limit/offset; limit <= 0 devuelve todo desde offset.
func paginate[T any](list []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(list) {
		return list[:0]
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

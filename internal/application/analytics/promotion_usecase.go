package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// PromotionUseCase detecta productos que llevan en stock más días que su vida útil
// y permite rebajarlos o marcarlos como oferta.
type PromotionUseCase struct {
	movRepo     repository.StockMovementRepository
	productRepo repository.ProductRepository
	now         Clock
}

// NewPromotionUseCase construye el caso de uso.
func NewPromotionUseCase(movRepo repository.StockMovementRepository, productRepo repository.ProductRepository, now Clock) *PromotionUseCase {
	return &PromotionUseCase{movRepo: movRepo, productRepo: productRepo, now: clockOrDefault(now)}
}

// ExpiredShelfLife lista los productos (filtrados por search si no es vacío) cuya antigüedad desde
// la última entrada positiva supera la vida útil, de mayor a menor antigüedad.
func (uc *PromotionUseCase) ExpiredShelfLife(ctx context.Context, businessID, search string) ([]dto.PromotionItemDTO, error) {
	products, err := uc.productRepo.ListByBusiness(ctx, businessID, repository.ProductQuery{Search: search})
	if err != nil {
		return nil, fmt.Errorf("promociones: productos: %w", err)
	}
	lastRestock, err := uc.movRepo.LastPositiveMovementAt(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("promociones: última entrada: %w", err)
	}

	byID := make(map[string]*entity.Product, len(products))
	candidates := make([]inventory.ShelfLifeCandidate, 0, len(products))
	for _, p := range products {
		if p.ShelfLifeDays == nil {
			continue
		}
		byID[p.ID] = p
		c := inventory.ShelfLifeCandidate{ProductID: p.ID, ShelfLifeDays: p.ShelfLifeDays}
		if at, ok := lastRestock[p.ID]; ok {
			c.LastRestockAt = &at
		}
		candidates = append(candidates, c)
	}

	expired := inventory.ExpiredShelfLife(uc.now(), candidates)
	out := make([]dto.PromotionItemDTO, 0, len(expired))
	for _, e := range expired {
		p := byID[e.ProductID]
		out = append(out, dto.PromotionItemDTO{
			ProductID:     p.ID,
			SKU:           p.SKU,
			Name:          p.Name,
			SellPrice:     p.SellPrice,
			OnSpecial:     p.OnSpecial,
			ShelfLifeDays: e.ShelfLifeDays,
			DaysInStock:   e.DaysInStock,
			LastRestockAt: e.LastRestockAt,
		})
	}
	return out, nil
}

// CountExpired número de productos con vida útil vencida (widget del dashboard).
func (uc *PromotionUseCase) CountExpired(ctx context.Context, businessID string) (int, error) {
	items, err := uc.ExpiredShelfLife(ctx, businessID, "")
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// UpdateSellPriceAndLabel cambia el precio de venta y/o la etiqueta de oferta. No toca el ledger.
func (uc *PromotionUseCase) UpdateSellPriceAndLabel(ctx context.Context, businessID, productID string, in dto.UpdatePromotionRequest) error {
	if in.SellPrice == nil && in.OnSpecial == nil {
		return fmt.Errorf("%w: sell_price u on_special es requerido", domain.ErrInvalidInput)
	}
	if in.SellPrice != nil && in.SellPrice.IsNegative() {
		return fmt.Errorf("%w: el precio de venta no puede ser negativo", domain.ErrInvalidInput)
	}
	if in.SellPrice != nil && !inventory.FitsPrice(*in.SellPrice) {
		return fmt.Errorf("%w: el precio de venta admite hasta %d decimales", domain.ErrInvalidInput, inventory.PriceScale)
	}
	product, err := uc.productRepo.GetByID(ctx, businessID, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
	}
	return uc.productRepo.UpdatePricing(ctx, businessID, productID, repository.PricingUpdate{
		SellPrice: in.SellPrice,
		OnSpecial: in.OnSpecial,
	})
}


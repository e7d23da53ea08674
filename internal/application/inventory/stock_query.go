package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// StockQueryUseCase lecturas del ledger para listados (sin estado cacheado).
type StockQueryUseCase struct {
	ledger      *StockLedger
	movRepo     repository.StockMovementRepository
	productRepo repository.ProductRepository
	now         Clock
}

// NewStockQueryUseCase construye el caso de uso.
func NewStockQueryUseCase(
	ledger *StockLedger,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	now Clock,
) *StockQueryUseCase {
	return &StockQueryUseCase{ledger: ledger, movRepo: movRepo, productRepo: productRepo, now: clockOrDefault(now)}
}

// ListStock lista los productos del negocio con su cantidad actual.
// Usa una sola consulta agrupada para todas las cantidades; productos sin movimientos quedan en cero.
func (uc *StockQueryUseCase) ListStock(ctx context.Context, businessID string, q repository.ProductQuery) ([]dto.StockItemDTO, error) {
	products, err := uc.productRepo.ListByBusiness(ctx, businessID, q)
	if err != nil {
		return nil, err
	}
	totals, err := uc.ledger.TotalsAsOf(ctx, businessID, inventory.AsOf(uc.now()))
	if err != nil {
		return nil, err
	}

	out := make([]dto.StockItemDTO, 0, len(products))
	for _, p := range products {
		qty, ok := totals[p.ID]
		if !ok {
			qty = decimal.Zero
		}
		out = append(out, dto.StockItemDTO{
			ProductID: p.ID,
			SKU:       p.SKU,
			Name:      p.Name,
			Quantity:  qty,
			LowStock:  p.IsLowStock(qty),
		})
	}
	return out, nil
}

// QuantityAsOf cantidad de un producto a una fecha; at cero = ahora.
func (uc *StockQueryUseCase) QuantityAsOf(ctx context.Context, businessID, productID string, at time.Time) (*dto.QuantityDTO, error) {
	if err := uc.requireProduct(ctx, businessID, productID); err != nil {
		return nil, err
	}
	if at.IsZero() {
		at = uc.now()
	}
	qty, err := uc.ledger.QuantityAsOf(ctx, businessID, productID, at)
	if err != nil {
		return nil, err
	}
	return &dto.QuantityDTO{ProductID: productID, AsOf: at, Quantity: qty}, nil
}

// ListMovements historial de movimientos de un producto, más recientes primero.
func (uc *StockQueryUseCase) ListMovements(ctx context.Context, businessID, productID string, page dto.PageRequest) ([]dto.MovementDTO, error) {
	if err := uc.requireProduct(ctx, businessID, productID); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.movRepo.ListByProduct(ctx, businessID, productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementDTO, 0, len(list))
	for _, m := range list {
		out = append(out, dto.MovementDTO{
			ID:        m.ID,
			ProductID: m.ProductID,
			Quantity:  m.Quantity,
			ReceiptID: m.ReceiptID,
			Source:    m.Source,
			Note:      m.Note,
			CreatedBy: m.CreatedBy,
			CreatedAt: m.CreatedAt,
		})
	}
	return out, nil
}

// requireProduct ErrNotFound si el producto no existe en el negocio (incluye ids mal formados).
func (uc *StockQueryUseCase) requireProduct(ctx context.Context, businessID, productID string) error {
	product, err := uc.productRepo.GetByID(ctx, businessID, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
	}
	return nil
}

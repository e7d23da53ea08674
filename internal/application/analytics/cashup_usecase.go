package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// CashUpUseCase arqueo por producto del período.
// La cantidad vendida se estima con el precio de venta ACTUAL del producto, no el de la venta.
type CashUpUseCase struct {
	salesRepo   repository.SalesRepository
	productRepo repository.ProductRepository
}

// NewCashUpUseCase construye el caso de uso.
func NewCashUpUseCase(salesRepo repository.SalesRepository, productRepo repository.ProductRepository) *CashUpUseCase {
	return &CashUpUseCase{salesRepo: salesRepo, productRepo: productRepo}
}

// Compute arma una línea por producto vendido en [start, end] y los totales por columna.
// Productos vendidos que ya no están en el catálogo aportan con precios cero.
func (uc *CashUpUseCase) Compute(ctx context.Context, businessID string, start, end time.Time) (*dto.CashUpDTO, error) {
	if err := validatePeriod(start, end); err != nil {
		return nil, err
	}
	byProduct, err := uc.salesRepo.SalesTotalByProduct(ctx, businessID, start, end)
	if err != nil {
		return nil, fmt.Errorf("arqueo: ventas por producto: %w", err)
	}
	products, err := uc.productRepo.ListByBusiness(ctx, businessID, repository.ProductQuery{})
	if err != nil {
		return nil, fmt.Errorf("arqueo: productos: %w", err)
	}
	catalog := make(map[string]*entity.Product, len(products))
	for _, p := range products {
		catalog[p.ID] = p
	}

	ids := make([]string, 0, len(byProduct))
	for id := range byProduct {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	lines := make([]inventory.CashUpLine, 0, len(ids))
	for _, id := range ids {
		buy, sell := pricesOf(catalog[id])
		lines = append(lines, inventory.NewCashUpLine(id, byProduct[id], buy, sell))
	}
	cu := inventory.NewCashUp(lines)

	out := &dto.CashUpDTO{
		Start:       start,
		End:         end,
		Lines:       make([]dto.CashUpLineDTO, 0, len(cu.Lines)),
		TotalSales:  cu.TotalSales,
		TotalCash:   cu.TotalCash,
		TotalProfit: cu.TotalProfit,
		CashBalance: cu.CashBalance,
	}
	for _, l := range cu.Lines {
		item := dto.CashUpLineDTO{
			ProductID:    l.ProductID,
			SalesAmount:  l.SalesAmount,
			BuyPrice:     l.BuyPrice,
			SellPrice:    l.SellPrice,
			EstimatedQty: l.EstimatedQty,
			Cash:         l.Cash,
			Profit:       l.Profit,
		}
		if p := catalog[l.ProductID]; p != nil {
			item.SKU = p.SKU
			item.Name = p.Name
		}
		out.Lines = append(out.Lines, item)
	}
	return out, nil
}

func pricesOf(p *entity.Product) (buy, sell decimal.Decimal) {
	if p == nil {
		return decimal.Zero, decimal.Zero
	}
	return p.BuyPrice, p.SellPrice
}

package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// RestockHistoryUseCase valor del stock antes y después de un recibo de reposición.
type RestockHistoryUseCase struct {
	receiptRepo repository.StockReceiptRepository
	movRepo     repository.StockMovementRepository
	productRepo repository.ProductRepository
	valuation   *ValuationService
}

// NewRestockHistoryUseCase construye el caso de uso.
func NewRestockHistoryUseCase(
	receiptRepo repository.StockReceiptRepository,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	valuation *ValuationService,
) *RestockHistoryUseCase {
	return &RestockHistoryUseCase{
		receiptRepo: receiptRepo,
		movRepo:     movRepo,
		productRepo: productRepo,
		valuation:   valuation,
	}
}

// Get arma el historial del recibo: apertura estrictamente antes de ReceiptAt, valor agregado por las
// entradas positivas ligadas al recibo y cierre = apertura + agregado. Las líneas usan el precio de compra actual.
func (uc *RestockHistoryUseCase) Get(ctx context.Context, businessID, receiptID string) (*dto.RestockHistoryDTO, error) {
	receipt, err := uc.receiptRepo.GetByID(ctx, businessID, receiptID)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, fmt.Errorf("%w: recibo %s", domain.ErrNotFound, receiptID)
	}

	opening, err := uc.valuation.StockValue(ctx, businessID, inventory.Before(receipt.ReceiptAt))
	if err != nil {
		return nil, fmt.Errorf("historial de reposición: apertura: %w", err)
	}
	totals, err := uc.movRepo.ReceiptPositiveTotals(ctx, businessID, receiptID)
	if err != nil {
		return nil, fmt.Errorf("historial de reposición: entradas del recibo: %w", err)
	}
	products, err := uc.productRepo.ListByBusiness(ctx, businessID, repository.ProductQuery{})
	if err != nil {
		return nil, fmt.Errorf("historial de reposición: productos: %w", err)
	}
	prices := make(map[string]decimal.Decimal, len(products))
	catalog := make(map[string]*entity.Product, len(products))
	for _, p := range products {
		prices[p.ID] = p.BuyPrice
		catalog[p.ID] = p
	}

	h := inventory.NewRestockHistory(opening, totals, prices)
	out := &dto.RestockHistoryDTO{
		ReceiptID: receipt.ID,
		Label:     receipt.Label,
		ReceiptAt: receipt.ReceiptAt,
		Opening:   h.Opening,
		NewValue:  h.NewValue,
		Closing:   h.Closing,
		Items:     make([]dto.RestockLineDTO, 0, len(h.Lines)),
	}
	for _, l := range h.Lines {
		item := dto.RestockLineDTO{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			LineValue: l.LineValue,
		}
		if p := catalog[l.ProductID]; p != nil {
			item.SKU = p.SKU
			item.Name = p.Name
		}
		out.Items = append(out.Items, item)
	}
	return out, nil
}

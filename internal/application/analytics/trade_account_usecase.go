package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// TradeAccountUseCase cuenta comercial del período: ventas, stock inicial, compras, stock final,
// costo de ventas y resultado bruto.
type TradeAccountUseCase struct {
	valuation *ValuationService
	salesRepo repository.SalesRepository
}

// NewTradeAccountUseCase construye el caso de uso.
func NewTradeAccountUseCase(valuation *ValuationService, salesRepo repository.SalesRepository) *TradeAccountUseCase {
	return &TradeAccountUseCase{valuation: valuation, salesRepo: salesRepo}
}

// Compute calcula la cuenta para [start, end].
//
// El stock inicial excluye los movimientos con created_at == start; el final incluye created_at == end.
// Un costo de ventas negativo se devuelve tal cual.
func (uc *TradeAccountUseCase) Compute(ctx context.Context, businessID string, start, end time.Time) (*dto.TradeAccountDTO, error) {
	if err := validatePeriod(start, end); err != nil {
		return nil, err
	}

	type valueResult struct {
		value decimal.Decimal
		err   error
	}
	salesCh := make(chan valueResult, 1)
	openingCh := make(chan valueResult, 1)
	newStockCh := make(chan valueResult, 1)
	closingCh := make(chan valueResult, 1)

	go func() {
		v, err := uc.salesRepo.SalesTotal(ctx, businessID, start, end)
		salesCh <- valueResult{v, err}
	}()
	go func() {
		v, err := uc.valuation.StockValue(ctx, businessID, inventory.Before(start))
		openingCh <- valueResult{v, err}
	}()
	go func() {
		v, err := uc.valuation.PurchasesValue(ctx, businessID, start, end)
		newStockCh <- valueResult{v, err}
	}()
	go func() {
		v, err := uc.valuation.StockValue(ctx, businessID, inventory.AsOf(end))
		closingCh <- valueResult{v, err}
	}()

	sales := <-salesCh
	opening := <-openingCh
	newStock := <-newStockCh
	closing := <-closingCh

	if sales.err != nil {
		return nil, fmt.Errorf("cuenta comercial: ventas: %w", sales.err)
	}
	if opening.err != nil {
		return nil, fmt.Errorf("cuenta comercial: stock inicial: %w", opening.err)
	}
	if newStock.err != nil {
		return nil, fmt.Errorf("cuenta comercial: compras: %w", newStock.err)
	}
	if closing.err != nil {
		return nil, fmt.Errorf("cuenta comercial: stock final: %w", closing.err)
	}

	ta := inventory.NewTradeAccount(sales.value, opening.value, newStock.value, closing.value)
	return &dto.TradeAccountDTO{
		Start:             start,
		End:               end,
		Sales:             ta.Sales,
		OpeningStock:      ta.OpeningStock,
		NewStock:          ta.NewStock,
		ClosingStock:      ta.ClosingStock,
		CostOfSales:       ta.CostOfSales,
		GrossProfitOrLoss: ta.GrossProfitOrLoss,
	}, nil
}

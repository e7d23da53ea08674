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

// DashboardUseCase genera el resumen del período: valoración, cuenta comercial y alertas de stock.
//
// Fuente de datos: el ledger de movimientos, el catálogo y el agregado de ventas (consultas read-only).
type DashboardUseCase struct {
	tradeAccount *TradeAccountUseCase
	promotions   *PromotionUseCase
	movRepo      repository.StockMovementRepository
	productRepo  repository.ProductRepository
	now          Clock
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	tradeAccount *TradeAccountUseCase,
	promotions *PromotionUseCase,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	now Clock,
) *DashboardUseCase {
	return &DashboardUseCase{
		tradeAccount: tradeAccount,
		promotions:   promotions,
		movRepo:      movRepo,
		productRepo:  productRepo,
		now:          clockOrDefault(now),
	}
}

// GetSummary construye el DashboardSummaryDTO. Si start/end vienen en cero se usa el mes en curso hasta ahora.
//
// Tres llamadas en paralelo:
//  1. Cuenta comercial del período   → ventas, compras, costo de ventas, stock final
//  2. Cantidades actuales + umbrales → LowStockCount
//  3. Escáner de vida útil           → PromotionCount
func (uc *DashboardUseCase) GetSummary(ctx context.Context, businessID string, start, end time.Time) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()

	// ── Rango por defecto: día 1 del mes a las 00:00 hasta ahora ───────────────
	if start.IsZero() {
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}
	if end.IsZero() {
		end = now
	}
	if err := validatePeriod(start, end); err != nil {
		return nil, err
	}

	// ── Goroutines para paralelizar las consultas ──────────────────────────────
	type tradeResult struct {
		ta  *dto.TradeAccountDTO
		err error
	}
	type countResult struct {
		n   int
		err error
	}

	tradeCh := make(chan tradeResult, 1)
	lowCh := make(chan countResult, 1)
	promoCh := make(chan countResult, 1)

	go func() {
		ta, err := uc.tradeAccount.Compute(ctx, businessID, start, end)
		tradeCh <- tradeResult{ta, err}
	}()
	go func() {
		n, err := uc.countLowStock(ctx, businessID, now)
		lowCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.promotions.CountExpired(ctx, businessID)
		promoCh <- countResult{n, err}
	}()

	trade := <-tradeCh
	low := <-lowCh
	promo := <-promoCh

	if trade.err != nil {
		return nil, fmt.Errorf("dashboard: cuenta comercial: %w", trade.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", low.err)
	}
	if promo.err != nil {
		return nil, fmt.Errorf("dashboard: promociones: %w", promo.err)
	}

	return &dto.DashboardSummaryDTO{
		Start:          start,
		End:            end,
		StockValue:     trade.ta.ClosingStock.Round(2),
		PurchasesValue: trade.ta.NewStock.Round(2),
		Sales:          trade.ta.Sales.Round(2),
		CostOfSales:    trade.ta.CostOfSales.Round(2),
		GrossProfit:    trade.ta.GrossProfitOrLoss.Round(2),
		LowStockCount:  low.n,
		PromotionCount: promo.n,
		DateLabel:      monthLabel(end),
	}, nil
}

// countLowStock productos con umbral configurado cuya cantidad actual está en o bajo el umbral.
// Productos sin movimientos cuentan con cantidad cero.
func (uc *DashboardUseCase) countLowStock(ctx context.Context, businessID string, now time.Time) (int, error) {
	products, err := uc.productRepo.ListByBusiness(ctx, businessID, repository.ProductQuery{})
	if err != nil {
		return 0, err
	}
	totals, err := uc.movRepo.TotalsAsOf(ctx, businessID, inventory.AsOf(now))
	if err != nil {
		return 0, err
	}
	n := 0
	for _, p := range products {
		qty, ok := totals[p.ID]
		if !ok {
			qty = decimal.Zero
		}
		if p.IsLowStock(qty) {
			n++
		}
	}
	return n, nil
}

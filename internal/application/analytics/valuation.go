// Package analytics contiene los reportes derivados del ledger de stock:
// valoración, cuenta comercial, arqueo, promociones por vida útil, historial de reposición y dashboard.
//
// Ningún reporte guarda estado: cada llamada consulta el ledger y los datos maestros del producto.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// ValuationService valora el stock a precio de compra actual.
// Cada método hace una consulta agrupada al ledger y una lectura de precios por negocio.
type ValuationService struct {
	movRepo     repository.StockMovementRepository
	productRepo repository.ProductRepository
}

// NewValuationService construye el servicio.
func NewValuationService(movRepo repository.StockMovementRepository, productRepo repository.ProductRepository) *ValuationService {
	return &ValuationService{movRepo: movRepo, productRepo: productRepo}
}

// StockValue Σ max(q, 0) × precio de compra sobre los productos con movimientos dentro del corte.
func (s *ValuationService) StockValue(ctx context.Context, businessID string, cutoff inventory.Cutoff) (decimal.Decimal, error) {
	totals, err := s.movRepo.TotalsAsOf(ctx, businessID, cutoff)
	if err != nil {
		return decimal.Zero, fmt.Errorf("valoración: cantidades: %w", err)
	}
	if len(totals) == 0 {
		return decimal.Zero, nil
	}
	prices, err := s.productRepo.BuyPrices(ctx, businessID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("valoración: precios: %w", err)
	}
	return inventory.StockValue(totals, prices), nil
}

// PurchasesValue Σ delta × precio de compra de los deltas positivos con start <= created_at <= end.
func (s *ValuationService) PurchasesValue(ctx context.Context, businessID string, start, end time.Time) (decimal.Decimal, error) {
	purchased, err := s.movRepo.PositiveTotalsBetween(ctx, businessID, start, end)
	if err != nil {
		return decimal.Zero, fmt.Errorf("valoración: compras: %w", err)
	}
	if len(purchased) == 0 {
		return decimal.Zero, nil
	}
	prices, err := s.productRepo.BuyPrices(ctx, businessID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("valoración: precios: %w", err)
	}
	return inventory.PurchasesValue(purchased, prices), nil
}

package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// ProductQuery filtro opcional para listados de productos (búsqueda por SKU o nombre).
// Limit <= 0 devuelve todos los productos del negocio.
type ProductQuery struct {
	Search string
	Limit  int
	Offset int
}

// PricingUpdate cambios de la mutación de promociones; nil = sin cambio.
type PricingUpdate struct {
	SellPrice *decimal.Decimal
	OnSpecial *bool
}

// ProductRepository puerto de lectura del catálogo (datos maestros externos al ledger).
type ProductRepository interface {
	// GetByID devuelve el producto dentro del negocio o (nil, nil) si no existe en ese alcance.
	GetByID(ctx context.Context, businessID, productID string) (*entity.Product, error)
	ListByBusiness(ctx context.Context, businessID string, q ProductQuery) ([]*entity.Product, error)
	// BuyPrices devuelve productID → precio de compra de todos los productos del negocio (una consulta).
	BuyPrices(ctx context.Context, businessID string) (map[string]decimal.Decimal, error)
	// UpdatePricing aplica la mutación de promociones; no toca el ledger.
	UpdatePricing(ctx context.Context, businessID, productID string, upd PricingUpdate) error
}

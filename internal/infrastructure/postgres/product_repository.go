package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

const productsTable = "products"

var productColumns = []string{
	"id", "business_id", "sku", "name", "buy_price", "sell_price",
	"shelf_life_days", "low_stock_threshold", "on_special", "created_at", "updated_at",
}

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
// El catálogo pertenece a otro módulo; aquí solo se lee y se aplica la mutación de promociones.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

type productRow struct {
	ID                string           `db:"id"`
	BusinessID        string           `db:"business_id"`
	SKU               string           `db:"sku"`
	Name              string           `db:"name"`
	BuyPrice          decimal.Decimal  `db:"buy_price"`
	SellPrice         decimal.Decimal  `db:"sell_price"`
	ShelfLifeDays     *int             `db:"shelf_life_days"`
	LowStockThreshold *decimal.Decimal `db:"low_stock_threshold"`
	OnSpecial         bool             `db:"on_special"`
	CreatedAt         time.Time        `db:"created_at"`
	UpdatedAt         time.Time        `db:"updated_at"`
}

func (row productRow) toEntity() *entity.Product {
	return &entity.Product{
		ID:                row.ID,
		BusinessID:        row.BusinessID,
		SKU:               row.SKU,
		Name:              row.Name,
		BuyPrice:          row.BuyPrice,
		SellPrice:         row.SellPrice,
		ShelfLifeDays:     row.ShelfLifeDays,
		LowStockThreshold: row.LowStockThreshold,
		OnSpecial:         row.OnSpecial,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}
}

// GetByID obtiene un producto del negocio; (nil, nil) si no existe en ese alcance.
func (r *ProductRepo) GetByID(ctx context.Context, businessID, productID string) (*entity.Product, error) {
	sql, args, err := psql.Select(productColumns...).
		From(productsTable).
		Where(squirrel.Eq{"business_id": businessID, "id": productID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get product: %w", err)
	}
	var row productRow
	if err := pgxscan.Get(ctx, r.q, &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return row.toEntity(), nil
}

// ListByBusiness lista productos por nombre; Search filtra por nombre o SKU (ILIKE).
func (r *ProductRepo) ListByBusiness(ctx context.Context, businessID string, q repository.ProductQuery) ([]*entity.Product, error) {
	sql, args, err := listProductsQuery(businessID, q).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list products: %w", err)
	}
	var rows []productRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	out := make([]*entity.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

// BuyPrices productID → buy_price en una sola consulta.
func (r *ProductRepo) BuyPrices(ctx context.Context, businessID string) (map[string]decimal.Decimal, error) {
	sql, args, err := psql.Select("id", "buy_price").
		From(productsTable).
		Where(squirrel.Eq{"business_id": businessID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build buy prices: %w", err)
	}
	var rows []struct {
		ID       string          `db:"id"`
		BuyPrice decimal.Decimal `db:"buy_price"`
	}
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("buy prices: %w", err)
	}
	out := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		out[row.ID] = row.BuyPrice
	}
	return out, nil
}

// UpdatePricing actualiza sell_price y/o on_special. ErrNotFound si no afectó filas.
func (r *ProductRepo) UpdatePricing(ctx context.Context, businessID, productID string, upd repository.PricingUpdate) error {
	sql, args, err := updatePricingQuery(businessID, productID, upd).ToSql()
	if err != nil {
		return fmt.Errorf("build update pricing: %w", err)
	}
	tag, err := r.q.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update pricing: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
	}
	return nil
}

func listProductsQuery(businessID string, q repository.ProductQuery) squirrel.SelectBuilder {
	b := psql.Select(productColumns...).
		From(productsTable).
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("name", "id")
	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		b = b.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"sku": pattern},
		})
	}
	if q.Limit > 0 {
		b = b.Limit(uint64(q.Limit))
	}
	if q.Offset > 0 {
		b = b.Offset(uint64(q.Offset))
	}
	return b
}

func updatePricingQuery(businessID, productID string, upd repository.PricingUpdate) squirrel.UpdateBuilder {
	b := psql.Update(productsTable).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"business_id": businessID, "id": productID})
	if upd.SellPrice != nil {
		b = b.Set("sell_price", *upd.SellPrice)
	}
	if upd.OnSpecial != nil {
		b = b.Set("on_special", *upd.OnSpecial)
	}
	return b
}

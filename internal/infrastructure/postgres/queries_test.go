package postgres

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var t0 = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func TestQuantityAsOfQuery_CorteInclusivoYExclusivo(t *testing.T) {
	tests := []struct {
		name    string
		cutoff  inventory.Cutoff
		wantSQL string
	}{
		{
			name:    "AsOf incluye el instante",
			cutoff:  inventory.AsOf(t0),
			wantSQL: "SELECT COALESCE(SUM(quantity), 0) FROM stock_movements WHERE business_id = $1 AND product_id = $2 AND created_at <= $3",
		},
		{
			name:    "Before excluye el instante",
			cutoff:  inventory.Before(t0),
			wantSQL: "SELECT COALESCE(SUM(quantity), 0) FROM stock_movements WHERE business_id = $1 AND product_id = $2 AND created_at < $3",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := quantityAsOfQuery("b1", "p1", tt.cutoff).ToSql()
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, []any{"b1", "p1", t0}, args)
		})
	}
}

func TestTotalsAsOfQuery_UnaConsultaAgrupada(t *testing.T) {
	sql, args, err := totalsAsOfQuery("b1", inventory.Before(t0)).ToSql()
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT product_id, SUM(quantity) AS quantity FROM stock_movements WHERE business_id = $1 AND created_at < $2 GROUP BY product_id",
		sql)
	assert.Equal(t, []any{"b1", t0}, args)
}

func TestPositiveTotalsBetweenQuery_RangoCerrado(t *testing.T) {
	end := t0.Add(24 * time.Hour)
	sql, args, err := positiveTotalsBetweenQuery("b1", t0, end).ToSql()
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT product_id, SUM(quantity) AS quantity FROM stock_movements WHERE business_id = $1 AND quantity > $2 AND created_at >= $3 AND created_at <= $4 GROUP BY product_id",
		sql)
	assert.Equal(t, []any{"b1", 0, t0, end}, args)
}

func TestReceiptPositiveTotalsQuery(t *testing.T) {
	sql, args, err := receiptPositiveTotalsQuery("b1", "r1").ToSql()
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT product_id, SUM(quantity) AS quantity FROM stock_movements WHERE business_id = $1 AND receipt_id = $2 AND quantity > $3 GROUP BY product_id",
		sql)
	assert.Equal(t, []any{"b1", "r1", 0}, args)
}

func TestLastPositiveMovementQuery(t *testing.T) {
	sql, _, err := lastPositiveMovementQuery("b1").ToSql()
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT product_id, MAX(created_at) AS last_at FROM stock_movements WHERE business_id = $1 AND quantity > $2 GROUP BY product_id",
		sql)
}

func TestListByProductQuery_PaginaYOrden(t *testing.T) {
	sql, _, err := listByProductQuery("b1", "p1", 20, 40).ToSql()
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT id, business_id, product_id, quantity, receipt_id, source, note, created_by, created_at FROM stock_movements WHERE business_id = $1 AND product_id = $2 ORDER BY created_at DESC, id DESC LIMIT 20 OFFSET 40",
		sql)
}

func TestListProductsQuery_BusquedaPorNombreOSKU(t *testing.T) {
	sql, args, err := listProductsQuery("b1", repository.ProductQuery{Search: "leche", Limit: 10}).ToSql()
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT id, business_id, sku, name, buy_price, sell_price, shelf_life_days, low_stock_threshold, on_special, created_at, updated_at FROM products WHERE business_id = $1 AND (name ILIKE $2 OR sku ILIKE $3) ORDER BY name, id LIMIT 10",
		sql)
	assert.Equal(t, []any{"b1", "%leche%", "%leche%"}, args)
}

func TestUpdatePricingQuery_SoloCamposPresentes(t *testing.T) {
	price := decimal.NewFromInt(12)
	sql, args, err := updatePricingQuery("b1", "p1", repository.PricingUpdate{SellPrice: &price}).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "UPDATE products SET updated_at = NOW(), sell_price = $1 WHERE business_id = $2 AND id = $3", sql)
	assert.Equal(t, []any{price, "b1", "p1"}, args)

	onSpecial := true
	sql, _, err = updatePricingQuery("b1", "p1", repository.PricingUpdate{SellPrice: &price, OnSpecial: &onSpecial}).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "UPDATE products SET updated_at = NOW(), sell_price = $1, on_special = $2 WHERE business_id = $3 AND id = $4", sql)
}

func TestSalesQueries_SoloVentasFinalizadas(t *testing.T) {
	end := t0.Add(time.Hour)

	sql, args, err := salesTotalQuery("b1", t0, end).ToSql()
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT COALESCE(SUM(si.line_total), 0) FROM sale_items si JOIN sales s ON s.id = si.sale_id WHERE s.business_id = $1 AND s.status = $2 AND s.completed_at >= $3 AND s.completed_at <= $4",
		sql)
	assert.Equal(t, []any{"b1", "completed", t0, end}, args)

	sql, _, err = salesByProductQuery("b1", t0, end).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "SELECT si.product_id, SUM(si.line_total) AS amount FROM sale_items si")
	assert.Contains(t, sql, "GROUP BY si.product_id")
}

func TestMigrateURL_CambiaEsquema(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@h:5432/db?sslmode=disable", migrateURL("postgres://u:p@h:5432/db?sslmode=disable"))
	assert.Equal(t, "pgx5://u@h/db", migrateURL("postgresql://u@h/db"))
	assert.Equal(t, "pgx5://u@h/db", migrateURL("pgx5://u@h/db"))
}

func TestPgErrorCodes_Clasificacion(t *testing.T) {
	check := &pgconn.PgError{Code: "23514", ConstraintName: "stock_movements_quantity_check"}
	assert.True(t, isCheckViolation(check))
	assert.True(t, isCheckViolation(fmt.Errorf("insert: %w", check)))
	assert.False(t, isUniqueViolation(check))

	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, isInvalidText(&pgconn.PgError{Code: "22P02"}))
	assert.False(t, isCheckViolation(errors.New("connection reset")))
}

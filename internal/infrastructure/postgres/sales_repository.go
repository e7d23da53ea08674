package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// saleStatusCompleted solo las ventas finalizadas cuentan como ingreso.
const saleStatusCompleted = "completed"

var _ repository.SalesRepository = (*SalesRepo)(nil)

// SalesRepo adaptador de lectura sobre las tablas sales/sale_items del subsistema de transacciones.
type SalesRepo struct {
	q Querier
}

// NewSalesRepository construye el adaptador read-only.
func NewSalesRepository(q Querier) *SalesRepo {
	return &SalesRepo{q: q}
}

// SalesTotal Σ line_total de ventas finalizadas con start <= completed_at <= end.
func (r *SalesRepo) SalesTotal(ctx context.Context, businessID string, start, end time.Time) (decimal.Decimal, error) {
	sql, args, err := salesTotalQuery(businessID, start, end).ToSql()
	if err != nil {
		return decimal.Zero, fmt.Errorf("build sales total: %w", err)
	}
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sales total: %w", err)
	}
	return total, nil
}

// SalesTotalByProduct igual que SalesTotal agrupado por producto.
func (r *SalesRepo) SalesTotalByProduct(ctx context.Context, businessID string, start, end time.Time) (map[string]decimal.Decimal, error) {
	sql, args, err := salesByProductQuery(businessID, start, end).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sales by product: %w", err)
	}
	var rows []struct {
		ProductID string          `db:"product_id"`
		Amount    decimal.Decimal `db:"amount"`
	}
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("sales by product: %w", err)
	}
	out := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		out[row.ProductID] = row.Amount
	}
	return out, nil
}

func completedSalesFilter(b squirrel.SelectBuilder, businessID string, start, end time.Time) squirrel.SelectBuilder {
	return b.From("sale_items si").
		Join("sales s ON s.id = si.sale_id").
		Where(squirrel.Eq{"s.business_id": businessID, "s.status": saleStatusCompleted}).
		Where(squirrel.GtOrEq{"s.completed_at": start}).
		Where(squirrel.LtOrEq{"s.completed_at": end})
}

func salesTotalQuery(businessID string, start, end time.Time) squirrel.SelectBuilder {
	return completedSalesFilter(psql.Select("COALESCE(SUM(si.line_total), 0)"), businessID, start, end)
}

func salesByProductQuery(businessID string, start, end time.Time) squirrel.SelectBuilder {
	return completedSalesFilter(psql.Select("si.product_id", "SUM(si.line_total) AS amount"), businessID, start, end).
		GroupBy("si.product_id")
}

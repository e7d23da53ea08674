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
	"github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

const stockMovementsTable = "stock_movements"

var movementColumns = []string{
	"id", "business_id", "product_id", "quantity", "receipt_id",
	"source", "note", "created_by", "created_at",
}

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo ledger append-only sobre PostgreSQL (usable con pool o tx).
// La tabla no tiene UPDATE ni DELETE: un trigger los rechaza.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

type movementRow struct {
	ID         string          `db:"id"`
	BusinessID string          `db:"business_id"`
	ProductID  string          `db:"product_id"`
	Quantity   decimal.Decimal `db:"quantity"`
	ReceiptID  *string         `db:"receipt_id"`
	Source     string          `db:"source"`
	Note       string          `db:"note"`
	CreatedBy  string          `db:"created_by"`
	CreatedAt  time.Time       `db:"created_at"`
}

type productQuantityRow struct {
	ProductID string          `db:"product_id"`
	Quantity  decimal.Decimal `db:"quantity"`
}

type productLastAtRow struct {
	ProductID string    `db:"product_id"`
	LastAt    time.Time `db:"last_at"`
}

// Append inserta una fila inmutable.
func (r *StockMovementRepo) Append(ctx context.Context, m *entity.StockMovement) error {
	sql, args, err := appendMovementQuery(m).ToSql()
	if err != nil {
		return fmt.Errorf("build insert movement: %w", err)
	}
	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: producto o recibo inexistente", domain.ErrNotFound)
		}
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isCheckViolation(err) {
			return fmt.Errorf("%w: movimiento rechazado por la BD: %v", domain.ErrInvalidInput, err)
		}
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// LockProduct toma un advisory lock de transacción sobre (negocio, producto).
// Fuera de una transacción el lock se libera al terminar la sentencia.
func (r *StockMovementRepo) LockProduct(ctx context.Context, businessID, productID string) error {
	if _, err := r.q.Exec(ctx, lockProductSQL, businessID+"/"+productID); err != nil {
		return fmt.Errorf("lock product: %w", err)
	}
	return nil
}

const lockProductSQL = `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`

// QuantityAsOf Σ quantity del producto dentro del corte; cero si no hay filas.
func (r *StockMovementRepo) QuantityAsOf(ctx context.Context, businessID, productID string, cutoff inventory.Cutoff) (decimal.Decimal, error) {
	sql, args, err := quantityAsOfQuery(businessID, productID, cutoff).ToSql()
	if err != nil {
		return decimal.Zero, fmt.Errorf("build quantity query: %w", err)
	}
	var qty decimal.Decimal
	if err := r.q.QueryRow(ctx, sql, args...).Scan(&qty); err != nil {
		return decimal.Zero, fmt.Errorf("quantity as of: %w", err)
	}
	return qty, nil
}

// TotalsAsOf una consulta agrupada por producto.
func (r *StockMovementRepo) TotalsAsOf(ctx context.Context, businessID string, cutoff inventory.Cutoff) (map[string]decimal.Decimal, error) {
	return r.selectTotals(ctx, totalsAsOfQuery(businessID, cutoff), "totals as of")
}

// PositiveTotalsBetween deltas positivos con start <= created_at <= end, por producto.
func (r *StockMovementRepo) PositiveTotalsBetween(ctx context.Context, businessID string, start, end time.Time) (map[string]decimal.Decimal, error) {
	return r.selectTotals(ctx, positiveTotalsBetweenQuery(businessID, start, end), "positive totals between")
}

// ReceiptPositiveTotals deltas positivos ligados al recibo, por producto.
func (r *StockMovementRepo) ReceiptPositiveTotals(ctx context.Context, businessID, receiptID string) (map[string]decimal.Decimal, error) {
	return r.selectTotals(ctx, receiptPositiveTotalsQuery(businessID, receiptID), "receipt totals")
}

// LastPositiveMovementAt MAX(created_at) de los deltas positivos, por producto.
func (r *StockMovementRepo) LastPositiveMovementAt(ctx context.Context, businessID string) (map[string]time.Time, error) {
	sql, args, err := lastPositiveMovementQuery(businessID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build last movement query: %w", err)
	}
	var rows []productLastAtRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("last positive movement: %w", err)
	}
	out := make(map[string]time.Time, len(rows))
	for _, row := range rows {
		out[row.ProductID] = row.LastAt
	}
	return out, nil
}

// ListByProduct movimientos del producto, más recientes primero.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, businessID, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	sql, args, err := listByProductQuery(businessID, productID, limit, offset).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list movements: %w", err)
	}
	var rows []movementRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	out := make([]*entity.StockMovement, 0, len(rows))
	for _, row := range rows {
		out = append(out, &entity.StockMovement{
			ID:         row.ID,
			BusinessID: row.BusinessID,
			ProductID:  row.ProductID,
			Quantity:   row.Quantity,
			ReceiptID:  row.ReceiptID,
			Source:     row.Source,
			Note:       row.Note,
			CreatedBy:  row.CreatedBy,
			CreatedAt:  row.CreatedAt,
		})
	}
	return out, nil
}

func (r *StockMovementRepo) selectTotals(ctx context.Context, q squirrel.SelectBuilder, op string) (map[string]decimal.Decimal, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", op, err)
	}
	var rows []productQuantityRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	out := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		out[row.ProductID] = row.Quantity
	}
	return out, nil
}

// ── Builders ──────────────────────────────────────────────────────────────────

func appendMovementQuery(m *entity.StockMovement) squirrel.InsertBuilder {
	return psql.Insert(stockMovementsTable).
		Columns(movementColumns...).
		Values(m.ID, m.BusinessID, m.ProductID, m.Quantity, m.ReceiptID,
			m.Source, m.Note, m.CreatedBy, m.CreatedAt)
}

func quantityAsOfQuery(businessID, productID string, cutoff inventory.Cutoff) squirrel.SelectBuilder {
	return psql.Select("COALESCE(SUM(quantity), 0)").
		From(stockMovementsTable).
		Where(squirrel.Eq{"business_id": businessID, "product_id": productID}).
		Where(cutoffPredicate("created_at", cutoff))
}

func totalsAsOfQuery(businessID string, cutoff inventory.Cutoff) squirrel.SelectBuilder {
	return psql.Select("product_id", "SUM(quantity) AS quantity").
		From(stockMovementsTable).
		Where(squirrel.Eq{"business_id": businessID}).
		Where(cutoffPredicate("created_at", cutoff)).
		GroupBy("product_id")
}

func positiveTotalsBetweenQuery(businessID string, start, end time.Time) squirrel.SelectBuilder {
	return psql.Select("product_id", "SUM(quantity) AS quantity").
		From(stockMovementsTable).
		Where(squirrel.Eq{"business_id": businessID}).
		Where(squirrel.Gt{"quantity": 0}).
		Where(squirrel.GtOrEq{"created_at": start}).
		Where(squirrel.LtOrEq{"created_at": end}).
		GroupBy("product_id")
}

func receiptPositiveTotalsQuery(businessID, receiptID string) squirrel.SelectBuilder {
	return psql.Select("product_id", "SUM(quantity) AS quantity").
		From(stockMovementsTable).
		Where(squirrel.Eq{"business_id": businessID, "receipt_id": receiptID}).
		Where(squirrel.Gt{"quantity": 0}).
		GroupBy("product_id")
}

func lastPositiveMovementQuery(businessID string) squirrel.SelectBuilder {
	return psql.Select("product_id", "MAX(created_at) AS last_at").
		From(stockMovementsTable).
		Where(squirrel.Eq{"business_id": businessID}).
		Where(squirrel.Gt{"quantity": 0}).
		GroupBy("product_id")
}

func listByProductQuery(businessID, productID string, limit, offset int) squirrel.SelectBuilder {
	q := psql.Select(movementColumns...).
		From(stockMovementsTable).
		Where(squirrel.Eq{"business_id": businessID, "product_id": productID}).
		OrderBy("created_at DESC", "id DESC")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	if offset > 0 {
		q = q.Offset(uint64(offset))
	}
	return q
}

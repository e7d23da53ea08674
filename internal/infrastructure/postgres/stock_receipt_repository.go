package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

const stockReceiptsTable = "stock_receipts"

var receiptColumns = []string{
	"id", "business_id", "label", "uploaded_by",
	"file_name", "content_type", "file_size", "storage_key",
	"receipt_at", "created_at",
}

var _ repository.StockReceiptRepository = (*StockReceiptRepo)(nil)

// StockReceiptRepo metadatos de recibos de reposición. Los bytes del documento viven en el almacenamiento externo.
type StockReceiptRepo struct {
	q Querier
}

// NewStockReceiptRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockReceiptRepository(q Querier) *StockReceiptRepo {
	return &StockReceiptRepo{q: q}
}

type receiptRow struct {
	ID          string    `db:"id"`
	BusinessID  string    `db:"business_id"`
	Label       string    `db:"label"`
	UploadedBy  string    `db:"uploaded_by"`
	FileName    string    `db:"file_name"`
	ContentType string    `db:"content_type"`
	FileSize    int64     `db:"file_size"`
	StorageKey  string    `db:"storage_key"`
	ReceiptAt   time.Time `db:"receipt_at"`
	CreatedAt   time.Time `db:"created_at"`
}

func (row receiptRow) toEntity() *entity.StockReceipt {
	return &entity.StockReceipt{
		ID:         row.ID,
		BusinessID: row.BusinessID,
		Label:      row.Label,
		UploadedBy: row.UploadedBy,
		Document: entity.ReceiptDocument{
			FileName:    row.FileName,
			ContentType: row.ContentType,
			Size:        row.FileSize,
			StorageKey:  row.StorageKey,
		},
		ReceiptAt: row.ReceiptAt,
		CreatedAt: row.CreatedAt,
	}
}

// Create persiste los metadatos del recibo.
func (r *StockReceiptRepo) Create(ctx context.Context, rec *entity.StockReceipt) error {
	sql, args, err := psql.Insert(stockReceiptsTable).
		Columns(receiptColumns...).
		Values(rec.ID, rec.BusinessID, rec.Label, rec.UploadedBy,
			rec.Document.FileName, rec.Document.ContentType, rec.Document.Size, rec.Document.StorageKey,
			rec.ReceiptAt, rec.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert receipt: %w", err)
	}
	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert receipt: %w", err)
	}
	return nil
}

// GetByID (nil, nil) si el recibo no existe o pertenece a otro negocio.
func (r *StockReceiptRepo) GetByID(ctx context.Context, businessID, receiptID string) (*entity.StockReceipt, error) {
	sql, args, err := psql.Select(receiptColumns...).
		From(stockReceiptsTable).
		Where(squirrel.Eq{"business_id": businessID, "id": receiptID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get receipt: %w", err)
	}
	var row receiptRow
	if err := pgxscan.Get(ctx, r.q, &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get receipt: %w", err)
	}
	return row.toEntity(), nil
}

// ListByBusiness recibos por fecha efectiva descendente.
func (r *StockReceiptRepo) ListByBusiness(ctx context.Context, businessID string, limit, offset int) ([]*entity.StockReceipt, error) {
	b := psql.Select(receiptColumns...).
		From(stockReceiptsTable).
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("receipt_at DESC", "id")
	if limit > 0 {
		b = b.Limit(uint64(limit))
	}
	if offset > 0 {
		b = b.Offset(uint64(offset))
	}
	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list receipts: %w", err)
	}
	var rows []receiptRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	out := make([]*entity.StockReceipt, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

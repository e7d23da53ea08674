package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// StockReceiptRepository puerto de persistencia para recibos de reposición.
type StockReceiptRepository interface {
	Create(ctx context.Context, receipt *entity.StockReceipt) error
	// GetByID devuelve el recibo solo si pertenece al negocio; (nil, nil) en otro caso.
	GetByID(ctx context.Context, businessID, receiptID string) (*entity.StockReceipt, error)
	ListByBusiness(ctx context.Context, businessID string, limit, offset int) ([]*entity.StockReceipt, error)
}

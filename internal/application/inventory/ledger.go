package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
	"github.com/jhoicas/stock-ledger-api/pkg/logger"
)

// StockLedger fachada del ledger append-only: registra movimientos y proyecta cantidades.
// No mantiene estado en memoria; cada lectura agrega los movimientos en la BD.
type StockLedger struct {
	movRepo     repository.StockMovementRepository
	receiptRepo repository.StockReceiptRepository
	log         *logger.Logger
}

// NewStockLedger construye el ledger.
func NewStockLedger(
	movRepo repository.StockMovementRepository,
	receiptRepo repository.StockReceiptRepository,
	log *logger.Logger,
) *StockLedger {
	return &StockLedger{movRepo: movRepo, receiptRepo: receiptRepo, log: log}
}

// RecordInput datos de un movimiento. CreatedAt lo fija el llamador (reloj inyectado).
type RecordInput struct {
	BusinessID string
	ProductID  string
	UserID     string
	Delta      decimal.Decimal
	CreatedAt  time.Time
	ReceiptID  *string
	Source     string
	Note       string
}

// Record agrega una fila al ledger. Falla con ErrInvalidInput si el delta es cero
// o si el recibo indicado no pertenece al negocio.
func (l *StockLedger) Record(ctx context.Context, in RecordInput) (*entity.StockMovement, error) {
	return l.recordWith(ctx, l.movRepo, in)
}

// recordWith igual que Record pero sobre el repositorio indicado (p. ej. atado a una tx).
func (l *StockLedger) recordWith(ctx context.Context, movRepo repository.StockMovementRepository, in RecordInput) (*entity.StockMovement, error) {
	if in.BusinessID == "" || in.ProductID == "" {
		return nil, fmt.Errorf("%w: business_id y product_id son requeridos", domain.ErrInvalidInput)
	}
	if in.Delta.IsZero() {
		return nil, fmt.Errorf("%w: el delta no puede ser cero", domain.ErrInvalidInput)
	}
	if err := checkScale(in.Delta); err != nil {
		return nil, err
	}
	if in.ReceiptID != nil {
		receipt, err := l.receiptRepo.GetByID(ctx, in.BusinessID, *in.ReceiptID)
		if err != nil {
			return nil, err
		}
		if receipt == nil {
			return nil, fmt.Errorf("%w: el recibo no pertenece al negocio", domain.ErrInvalidInput)
		}
	}
	if in.CreatedAt.IsZero() {
		return nil, fmt.Errorf("%w: created_at es requerido", domain.ErrInvalidInput)
	}

	mov := &entity.StockMovement{
		ID:         uuid.New().String(),
		BusinessID: in.BusinessID,
		ProductID:  in.ProductID,
		Quantity:   in.Delta,
		ReceiptID:  in.ReceiptID,
		Source:     in.Source,
		Note:       in.Note,
		CreatedBy:  in.UserID,
		CreatedAt:  in.CreatedAt,
	}
	if err := movRepo.Append(ctx, mov); err != nil {
		return nil, err
	}

	l.log.Info().
		Str("business_id", mov.BusinessID).
		Str("product_id", mov.ProductID).
		Str("movement_id", mov.ID).
		Str("source", mov.Source).
		Str("delta", mov.Quantity.String()).
		Msg("movimiento de stock registrado")
	return mov, nil
}

// QuantityAsOf cantidad del producto con created_at <= at.
func (l *StockLedger) QuantityAsOf(ctx context.Context, businessID, productID string, at time.Time) (decimal.Decimal, error) {
	return l.movRepo.QuantityAsOf(ctx, businessID, productID, inventory.AsOf(at))
}

// TotalsAsOf variante masiva: productID → cantidad para todo producto con movimientos.
func (l *StockLedger) TotalsAsOf(ctx context.Context, businessID string, cutoff inventory.Cutoff) (map[string]decimal.Decimal, error) {
	return l.movRepo.TotalsAsOf(ctx, businessID, cutoff)
}

package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// ReceiptUseCase alta y consulta de recibos de reposición (solo metadatos; los bytes viven fuera).
type ReceiptUseCase struct {
	repo repository.StockReceiptRepository
	now  Clock
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(repo repository.StockReceiptRepository, now Clock) *ReceiptUseCase {
	return &ReceiptUseCase{repo: repo, now: clockOrDefault(now)}
}

// Create registra un recibo. ReceiptAt es la fecha efectiva elegida por el usuario.
func (uc *ReceiptUseCase) Create(ctx context.Context, businessID, userID string, in dto.CreateReceiptRequest) (*dto.ReceiptResponse, error) {
	if businessID == "" || in.Label == "" || in.ReceiptAt.IsZero() {
		return nil, fmt.Errorf("%w: label y receipt_at son requeridos", domain.ErrInvalidInput)
	}
	receipt := &entity.StockReceipt{
		ID:         uuid.New().String(),
		BusinessID: businessID,
		Label:      in.Label,
		UploadedBy: userID,
		Document: entity.ReceiptDocument{
			FileName:    in.FileName,
			ContentType: in.ContentType,
			Size:        in.Size,
			StorageKey:  in.StorageKey,
		},
		ReceiptAt: in.ReceiptAt,
		CreatedAt: uc.now(),
	}
	if err := uc.repo.Create(ctx, receipt); err != nil {
		return nil, err
	}
	return toReceiptResponse(receipt), nil
}

// GetByID obtiene un recibo del negocio.
func (uc *ReceiptUseCase) GetByID(ctx context.Context, businessID, receiptID string) (*dto.ReceiptResponse, error) {
	receipt, err := uc.repo.GetByID(ctx, businessID, receiptID)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, fmt.Errorf("%w: recibo %s", domain.ErrNotFound, receiptID)
	}
	return toReceiptResponse(receipt), nil
}

// List lista recibos del negocio por fecha efectiva descendente.
func (uc *ReceiptUseCase) List(ctx context.Context, businessID string, page dto.PageRequest) ([]dto.ReceiptResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByBusiness(ctx, businessID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReceiptResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *toReceiptResponse(r))
	}
	return out, nil
}

func toReceiptResponse(r *entity.StockReceipt) *dto.ReceiptResponse {
	return &dto.ReceiptResponse{
		ID:          r.ID,
		Label:       r.Label,
		UploadedBy:  r.UploadedBy,
		FileName:    r.Document.FileName,
		ContentType: r.Document.ContentType,
		Size:        r.Document.Size,
		ReceiptAt:   r.ReceiptAt,
		CreatedAt:   r.CreatedAt,
	}
}

package inventory

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
)

// RestockFromRequest adapta el request HTTP al caso de uso Restock.
func (uc *RegisterMovementUseCase) RestockFromRequest(ctx context.Context, businessID, userID string, in dto.RestockRequest) (*dto.MovementResultDTO, error) {
	res, err := uc.Restock(ctx, RestockInput{
		BusinessID: businessID,
		UserID:     userID,
		ProductID:  in.ProductID,
		Quantity:   in.Quantity,
		ReceiptID:  in.ReceiptID,
		Note:       in.Note,
	})
	if err != nil {
		return nil, err
	}
	return toMovementResultDTO(res), nil
}

// AdjustFromRequest adapta el request HTTP al caso de uso Adjust.
func (uc *RegisterMovementUseCase) AdjustFromRequest(ctx context.Context, businessID, userID string, in dto.AdjustmentRequest) (*dto.MovementResultDTO, error) {
	res, err := uc.Adjust(ctx, AdjustmentInput{
		BusinessID: businessID,
		UserID:     userID,
		ProductID:  in.ProductID,
		Delta:      in.Delta,
		Note:       in.Note,
	})
	if err != nil {
		return nil, err
	}
	return toMovementResultDTO(res), nil
}

// RecordSaleFromRequest adapta el request de finalización de venta al caso de uso RecordSale.
func (uc *RegisterMovementUseCase) RecordSaleFromRequest(ctx context.Context, businessID, userID string, in dto.SaleMovementRequest) (*dto.MovementResultDTO, error) {
	res, err := uc.RecordSale(ctx, SaleInput{
		BusinessID: businessID,
		UserID:     userID,
		ProductID:  in.ProductID,
		Quantity:   in.Quantity,
		Reference:  in.Reference,
	})
	if err != nil {
		return nil, err
	}
	return toMovementResultDTO(res), nil
}

func toMovementResultDTO(res *MovementResult) *dto.MovementResultDTO {
	out := &dto.MovementResultDTO{
		ProductID:       res.ProductID,
		CurrentQuantity: res.CurrentQuantity,
	}
	if res.AutoRestocked.IsPositive() {
		restocked := res.AutoRestocked
		out.AutoRestocked = &restocked
	}
	return out
}

package inventory

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
	"github.com/jhoicas/stock-ledger-api/pkg/logger"
)

// RegisterMovementUseCase agrupa los tres escritores del ledger: reposición, ajuste manual y salida por venta.
// Todas las validaciones ocurren antes de escribir; un error nunca deja escrituras parciales.
type RegisterMovementUseCase struct {
	txRunner    TxRunner
	ledger      *StockLedger
	productRepo repository.ProductRepository
	receiptRepo repository.StockReceiptRepository
	now         Clock
	log         *logger.Logger
}

// NewRegisterMovementUseCase construye el caso de uso. now puede ser nil (time.Now).
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	ledger *StockLedger,
	productRepo repository.ProductRepository,
	receiptRepo repository.StockReceiptRepository,
	now Clock,
	log *logger.Logger,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner:    txRunner,
		ledger:      ledger,
		productRepo: productRepo,
		receiptRepo: receiptRepo,
		now:         clockOrDefault(now),
		log:         log,
	}
}

// RestockInput entrada de una reposición manual.
type RestockInput struct {
	BusinessID string
	UserID     string
	ProductID  string
	Quantity   decimal.Decimal
	ReceiptID  *string
	Note       string
}

// AdjustmentInput ajuste manual: cualquier signo, sin recibo.
type AdjustmentInput struct {
	BusinessID string
	UserID     string
	ProductID  string
	Delta      decimal.Decimal
	Note       string
}

// SaleInput salida por venta finalizada. Quantity es la cantidad vendida (positiva).
type SaleInput struct {
	BusinessID string
	UserID     string
	ProductID  string
	Quantity   decimal.Decimal
	Reference  string // id de la transacción de venta
}

// MovementResult cantidad del producto tras el movimiento.
type MovementResult struct {
	ProductID       string
	CurrentQuantity decimal.Decimal
	AutoRestocked   decimal.Decimal // solo ventas: faltante repuesto automáticamente
}

// Restock valida cantidad > 0, producto y recibo dentro del negocio, y agrega un delta positivo.
// Devuelve la cantidad actual del producto.
func (uc *RegisterMovementUseCase) Restock(ctx context.Context, in RestockInput) (*MovementResult, error) {
	if !in.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if err := checkScale(in.Quantity); err != nil {
		return nil, err
	}
	if _, err := uc.requireProduct(ctx, in.BusinessID, in.ProductID); err != nil {
		return nil, err
	}
	if in.ReceiptID != nil {
		receipt, err := uc.receiptRepo.GetByID(ctx, in.BusinessID, *in.ReceiptID)
		if err != nil {
			return nil, err
		}
		if receipt == nil {
			return nil, fmt.Errorf("%w: recibo %s", domain.ErrNotFound, *in.ReceiptID)
		}
	}

	now := uc.now()
	if _, err := uc.ledger.Record(ctx, RecordInput{
		BusinessID: in.BusinessID,
		ProductID:  in.ProductID,
		UserID:     in.UserID,
		Delta:      in.Quantity,
		CreatedAt:  now,
		ReceiptID:  in.ReceiptID,
		Source:     entity.MovementSourceRestock,
		Note:       in.Note,
	}); err != nil {
		return nil, err
	}
	return uc.currentQuantity(ctx, in.BusinessID, in.ProductID)
}

// Adjust registra un ajuste manual de cualquier signo (nunca cero).
func (uc *RegisterMovementUseCase) Adjust(ctx context.Context, in AdjustmentInput) (*MovementResult, error) {
	if in.Delta.IsZero() {
		return nil, fmt.Errorf("%w: el ajuste no puede ser cero", domain.ErrInvalidInput)
	}
	if err := checkScale(in.Delta); err != nil {
		return nil, err
	}
	if _, err := uc.requireProduct(ctx, in.BusinessID, in.ProductID); err != nil {
		return nil, err
	}
	if _, err := uc.ledger.Record(ctx, RecordInput{
		BusinessID: in.BusinessID,
		ProductID:  in.ProductID,
		UserID:     in.UserID,
		Delta:      in.Delta,
		CreatedAt:  uc.now(),
		Source:     entity.MovementSourceAdjustment,
		Note:       in.Note,
	}); err != nil {
		return nil, err
	}
	return uc.currentQuantity(ctx, in.BusinessID, in.ProductID)
}

// RecordSale registra la salida de una venta finalizada.
// Dentro de una transacción bloquea el producto, lee la cantidad restante desde el ledger y, si no alcanza,
// repone automáticamente el faltante antes de insertar el delta negativo. El bloqueo por producto evita
// que dos ventas concurrentes pasen la misma verificación.
func (uc *RegisterMovementUseCase) RecordSale(ctx context.Context, in SaleInput) (*MovementResult, error) {
	if !in.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: la cantidad vendida debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if err := checkScale(in.Quantity); err != nil {
		return nil, err
	}
	if _, err := uc.requireProduct(ctx, in.BusinessID, in.ProductID); err != nil {
		return nil, err
	}

	result := &MovementResult{ProductID: in.ProductID, AutoRestocked: decimal.Zero}
	err := uc.txRunner.Run(ctx, func(movRepo repository.StockMovementRepository) error {
		if err := movRepo.LockProduct(ctx, in.BusinessID, in.ProductID); err != nil {
			return err
		}
		// La hora se toma con el bloqueo adquirido: la lectura ve todas las ventas ya confirmadas.
		now := uc.now()
		remaining, err := movRepo.QuantityAsOf(ctx, in.BusinessID, in.ProductID, inventory.AsOf(now))
		if err != nil {
			return err
		}

		if remaining.LessThan(in.Quantity) {
			shortfall := in.Quantity.Sub(remaining)
			if _, err := uc.ledger.recordWith(ctx, movRepo, RecordInput{
				BusinessID: in.BusinessID,
				ProductID:  in.ProductID,
				UserID:     in.UserID,
				Delta:      shortfall,
				CreatedAt:  now,
				Source:     entity.MovementSourceAutoRestock,
				Note:       "reposición automática por venta " + in.Reference,
			}); err != nil {
				return err
			}
			result.AutoRestocked = shortfall
			remaining = remaining.Add(shortfall)
		}

		if _, err := uc.ledger.recordWith(ctx, movRepo, RecordInput{
			BusinessID: in.BusinessID,
			ProductID:  in.ProductID,
			UserID:     in.UserID,
			Delta:      in.Quantity.Neg(),
			CreatedAt:  now,
			Source:     entity.MovementSourceSale,
			Note:       in.Reference,
		}); err != nil {
			return err
		}
		result.CurrentQuantity = remaining.Sub(in.Quantity)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.AutoRestocked.IsPositive() {
		uc.log.Warn().
			Str("business_id", in.BusinessID).
			Str("product_id", in.ProductID).
			Str("auto_restocked", result.AutoRestocked.String()).
			Msg("venta con stock insuficiente: faltante repuesto automáticamente")
	}
	return result, nil
}

// checkScale rechaza cantidades que la columna NUMERIC(14, 3) redondearía.
func checkScale(q decimal.Decimal) error {
	if !inventory.FitsQuantity(q) {
		return fmt.Errorf("%w: la cantidad admite hasta %d decimales y 11 dígitos enteros", domain.ErrInvalidInput, inventory.QuantityScale)
	}
	return nil
}

func (uc *RegisterMovementUseCase) requireProduct(ctx context.Context, businessID, productID string) (*entity.Product, error) {
	if businessID == "" || productID == "" {
		return nil, fmt.Errorf("%w: business_id y product_id son requeridos", domain.ErrInvalidInput)
	}
	product, err := uc.productRepo.GetByID(ctx, businessID, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
	}
	return product, nil
}

func (uc *RegisterMovementUseCase) currentQuantity(ctx context.Context, businessID, productID string) (*MovementResult, error) {
	qty, err := uc.ledger.QuantityAsOf(ctx, businessID, productID, uc.now())
	if err != nil {
		return nil, err
	}
	return &MovementResult{ProductID: productID, CurrentQuantity: qty, AutoRestocked: decimal.Zero}, nil
}

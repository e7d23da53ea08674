package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// InventoryHandler escritores del ledger y consultas de cantidad (protegido).
type InventoryHandler struct {
	movements *inventory.RegisterMovementUseCase
	stock     *inventory.StockQueryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(movements *inventory.RegisterMovementUseCase, stock *inventory.StockQueryUseCase) *InventoryHandler {
	return &InventoryHandler{movements: movements, stock: stock}
}

// Restock godoc
// @Summary      Reponer stock
// @Description  Agrega un movimiento positivo al ledger, opcionalmente enlazado a un recibo.
// @Description  Acepta la cabecera Idempotency-Key para reintentos seguros.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string               false  "Llave de idempotencia"
// @Param        body             body    dto.RestockRequest   true   "product_id, quantity (> 0), receipt_id opcional"
// @Success      201  {object}  dto.MovementResultDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/restock [post]
func (h *InventoryHandler) Restock(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	if businessID == "" {
		return unauthorized(c)
	}
	var in dto.RestockRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	res, err := h.movements.RestockFromRequest(c.UserContext(), businessID, GetUserID(c), in)
	if err != nil {
		return respondError(c, err, "producto o recibo no encontrado")
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// Adjust godoc
// @Summary      Ajuste manual de stock
// @Description  Agrega un movimiento con signo (merma, conteo físico). No admite recibo.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustmentRequest  true  "product_id, delta (!= 0), note"
// @Success      201  {object}  dto.MovementResultDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	if businessID == "" {
		return unauthorized(c)
	}
	var in dto.AdjustmentRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	res, err := h.movements.AdjustFromRequest(c.UserContext(), businessID, GetUserID(c), in)
	if err != nil {
		return respondError(c, err, "producto no encontrado")
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// RecordSale godoc
// @Summary      Salida por venta finalizada
// @Description  Descuenta la cantidad vendida. Si el stock no alcanza, repone el faltante
// @Description  automáticamente antes de descontar (sección crítica por producto).
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaleMovementRequest  true  "product_id, quantity (> 0), reference"
// @Success      201  {object}  dto.MovementResultDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/sale-movements [post]
func (h *InventoryHandler) RecordSale(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	if businessID == "" {
		return unauthorized(c)
	}
	var in dto.SaleMovementRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	res, err := h.movements.RecordSaleFromRequest(c.UserContext(), businessID, GetUserID(c), in)
	if err != nil {
		return respondError(c, err, "producto no encontrado")
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// ListStock godoc
// @Summary      Stock actual por producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        q       query  string  false  "Búsqueda por SKU o nombre"
// @Param        limit   query  int     false  "Máx. filas (0 = todas)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {array}   dto.StockItemDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock [get]
func (h *InventoryHandler) ListStock(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	if businessID == "" {
		return unauthorized(c)
	}
	q := repository.ProductQuery{
		Search: c.Query("q"),
		Limit:  c.QueryInt("limit", 0),
		Offset: c.QueryInt("offset", 0),
	}
	list, err := h.stock.ListStock(c.UserContext(), businessID, q)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(list)
}

// QuantityAsOf godoc
// @Summary      Cantidad de un producto a una fecha
// @Description  Suma los movimientos con created_at <= at. Sin at se usa la hora actual.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path   string  true   "ID del producto"
// @Param        at  query  string  false  "RFC3339 o YYYY-MM-DD (fin del día)"
// @Success      200  {object}  dto.QuantityDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{id}/quantity [get]
func (h *InventoryHandler) QuantityAsOf(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	if businessID == "" {
		return unauthorized(c)
	}
	var at time.Time
	if raw := c.Query("at"); raw != "" {
		t, err := parseTimeParam(raw, true)
		if err != nil {
			return invalidQuery(c, "at")
		}
		at = t
	}
	res, err := h.stock.QuantityAsOf(c.UserContext(), businessID, c.Params("id"), at)
	if err != nil {
		return respondError(c, err, "producto no encontrado")
	}
	return c.JSON(res)
}

// ListMovements godoc
// @Summary      Historial de movimientos de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del producto"
// @Param        limit   query  int     false  "Máx. filas (default 20, max 100)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {array}   dto.MovementDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{id}/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	if businessID == "" {
		return unauthorized(c)
	}
	page, ok, err := parsePage(c)
	if !ok {
		return err
	}
	list, err := h.stock.ListMovements(c.UserContext(), businessID, c.Params("id"), page)
	if err != nil {
		return respondError(c, err, "producto no encontrado")
	}
	return c.JSON(list)
}

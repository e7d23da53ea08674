package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger-api/internal/application/analytics"
	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
)

// ProductHandler única mutación del catálogo que expone este servicio: precio de venta y etiqueta de promoción.
type ProductHandler struct {
	promotions *analytics.PromotionUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(promotions *analytics.PromotionUseCase) *ProductHandler {
	return &ProductHandler{promotions: promotions}
}

// UpdatePromotion godoc
// @Summary      Actualizar precio de venta y etiqueta de promoción
// @Description  Solo toca datos maestros del producto; el ledger no cambia.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID del producto"
// @Param        body  body  dto.UpdatePromotionRequest  true  "sell_price y/o on_special"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/promotion [patch]
func (h *ProductHandler) UpdatePromotion(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	if businessID == "" {
		return unauthorized(c)
	}
	var in dto.UpdatePromotionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.promotions.UpdateSellPriceAndLabel(c.UserContext(), businessID, c.Params("id"), in); err != nil {
		return respondError(c, err, "producto no encontrado")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger-api/internal/application/analytics"
)

// ReportHandler reportes derivados del ledger (protegido). Ningún reporte guarda estado.
type ReportHandler struct {
	dashboard      *analytics.DashboardUseCase
	tradeAccount   *analytics.TradeAccountUseCase
	cashUp         *analytics.CashUpUseCase
	promotions     *analytics.PromotionUseCase
	restockHistory *analytics.RestockHistoryUseCase
	pdf            *analytics.ReportPDFUseCase
}

// ReportHandlerDeps casos de uso que atiende el handler.
type ReportHandlerDeps struct {
	Dashboard      *analytics.DashboardUseCase
	TradeAccount   *analytics.TradeAccountUseCase
	CashUp         *analytics.CashUpUseCase
	Promotions     *analytics.PromotionUseCase
	RestockHistory *analytics.RestockHistoryUseCase
	PDF            *analytics.ReportPDFUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(deps ReportHandlerDeps) *ReportHandler {
	return &ReportHandler{
		dashboard:      deps.Dashboard,
		tradeAccount:   deps.TradeAccount,
		cashUp:         deps.CashUp,
		promotions:     deps.Promotions,
		restockHistory: deps.RestockHistory,
		pdf:            deps.PDF,
	}
}

// GetDashboard godoc
// @Summary      KPIs del panel principal
// @Description  Valor del stock, ventas, compras, costo de ventas y utilidad del período,
// @Description  más conteos de stock bajo y productos para promoción. Default: mes en curso.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start  query  string  false  "Inicio (RFC3339 o YYYY-MM-DD)"
// @Param        end    query  string  false  "Fin inclusive (RFC3339 o YYYY-MM-DD)"
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/dashboard [get]
func (h *ReportHandler) GetDashboard(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	if businessID == "" {
		return unauthorized(c)
	}
	start, end, ok, err := parsePeriod(c)
	if !ok {
		return err
	}
	summary, err := h.dashboard.GetSummary(c.UserContext(), businessID, start, end)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(summary)
}

// GetTradeAccount godoc
// @Summary      Cuenta comercial del período
// @Description  Stock inicial (antes de start), compras, stock final (hasta end inclusive),
// @Description  costo de ventas y utilidad bruta.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start  query  string  true  "Inicio (RFC3339 o YYYY-MM-DD)"
// @Param        end    query  string  true  "Fin inclusive (RFC3339 o YYYY-MM-DD)"
// @Success      200  {object}  dto.TradeAccountDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/trade-account [get]
func (h *ReportHandler) GetTradeAccount(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	if businessID == "" {
		return unauthorized(c)
	}
	start, end, ok, err := parsePeriod(c)
	if !ok {
		return err
	}
	out, err := h.tradeAccount.Compute(c.UserContext(), businessID, start, end)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(out)
}

// GetCashUp godoc
// @Summary      Arqueo por producto
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start  query  string  true  "Inicio (RFC3339 o YYYY-MM-DD)"
// @Param        end    query  string  true  "Fin inclusive (RFC3339 o YYYY-MM-DD)"
// @Success      200  {object}  dto.CashUpDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/cashup [get]
func (h *ReportHandler) GetCashUp(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	if businessID == "" {
		return unauthorized(c)
	}
	start, end, ok, err := parsePeriod(c)
	if !ok {
		return err
	}
	out, err := h.cashUp.Compute(c.UserContext(), businessID, start, end)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(out)
}

// GetTradeAccountPDF godoc
// @Summary      Cuenta comercial en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        start  query  string  true  "Inicio"
// @Param        end    query  string  true  "Fin inclusive"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/trade-account/pdf [get]
func (h *ReportHandler) GetTradeAccountPDF(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	if businessID == "" {
		return unauthorized(c)
	}
	start, end, ok, err := parsePeriod(c)
	if !ok {
		return err
	}
	data, filename, err := h.pdf.TradeAccountPDF(c.UserContext(), businessID, start, end)
	if err != nil {
		return respondError(c, err, "")
	}
	return sendPDF(c, data, filename)
}

// GetCashUpPDF godoc
// @Summary      Arqueo en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        start  query  string  true  "Inicio"
// @Param        end    query  string  true  "Fin inclusive"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/cashup/pdf [get]
func (h *ReportHandler) GetCashUpPDF(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	if businessID == "" {
		return unauthorized(c)
	}
	start, end, ok, err := parsePeriod(c)
	if !ok {
		return err
	}
	data, filename, err := h.pdf.CashUpPDF(c.UserContext(), businessID, start, end)
	if err != nil {
		return respondError(c, err, "")
	}
	return sendPDF(c, data, filename)
}

// GetPromotions godoc
// @Summary      Productos con vida útil vencida en stock
// @Description  Ordenados por días en stock descendente.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        q  query  string  false  "Búsqueda por SKU o nombre"
// @Success      200  {array}   dto.PromotionItemDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/promotions [get]
func (h *ReportHandler) GetPromotions(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	if businessID == "" {
		return unauthorized(c)
	}
	list, err := h.promotions.ExpiredShelfLife(c.UserContext(), businessID, c.Query("q"))
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(list)
}

// GetRestockHistory godoc
// @Summary      Historial de reposición de un recibo
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        receiptId  path  string  true  "ID del recibo"
// @Success      200  {object}  dto.RestockHistoryDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/restock-history/{receiptId} [get]
func (h *ReportHandler) GetRestockHistory(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	if businessID == "" {
		return unauthorized(c)
	}
	out, err := h.restockHistory.Get(c.UserContext(), businessID, c.Params("receiptId"))
	if err != nil {
		return respondError(c, err, "recibo no encontrado")
	}
	return c.JSON(out)
}

func sendPDF(c *fiber.Ctx, data []byte, filename string) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

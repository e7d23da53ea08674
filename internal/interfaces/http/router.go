package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger-api/internal/application/analytics"
	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/cache"
	"github.com/jhoicas/stock-ledger-api/pkg/logger"
)

// Roles reconocidos en el claim "role".
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
	RoleVendedor  = "vendedor"
	RoleService   = "service" // finalización de ventas desde el subsistema de transacciones
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	RegisterMovement *inventory.RegisterMovementUseCase
	StockQuery       *inventory.StockQueryUseCase
	Receipts         *inventory.ReceiptUseCase
	Dashboard        *analytics.DashboardUseCase
	TradeAccount     *analytics.TradeAccountUseCase
	CashUp           *analytics.CashUpUseCase
	Promotions       *analytics.PromotionUseCase
	RestockHistory   *analytics.RestockHistoryUseCase
	ReportPDF        *analytics.ReportPDFUseCase
	Idempotency      cache.IdempotencyStore
	IdempotencyTTL   time.Duration
	Logger           *logger.Logger
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token con business_id)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	anyRole := RequireRole(RoleAdmin, RoleBodeguero, RoleVendedor)
	stockWriters := RequireRole(RoleAdmin, RoleBodeguero)

	// Inventario: escritores del ledger y consultas de cantidad
	inv := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.StockQuery)
	inv.Post("/restock", stockWriters, Idempotency(deps.Idempotency, deps.IdempotencyTTL, deps.Logger), inventoryHandler.Restock)
	inv.Post("/adjustments", stockWriters, inventoryHandler.Adjust)
	inv.Post("/sale-movements", RequireRole(RoleAdmin, RoleVendedor, RoleService), inventoryHandler.RecordSale)
	inv.Get("/stock", anyRole, inventoryHandler.ListStock)
	inv.Get("/products/:id/quantity", anyRole, inventoryHandler.QuantityAsOf)
	inv.Get("/products/:id/movements", anyRole, inventoryHandler.ListMovements)

	// Recibos de compra (metadatos)
	receipts := protected.Group("/receipts")
	receiptHandler := NewReceiptHandler(deps.Receipts)
	receipts.Post("/", stockWriters, receiptHandler.Create)
	receipts.Get("/", stockWriters, receiptHandler.List)
	receipts.Get("/:id", stockWriters, receiptHandler.GetByID)

	// Reportes
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(ReportHandlerDeps{
		Dashboard:      deps.Dashboard,
		TradeAccount:   deps.TradeAccount,
		CashUp:         deps.CashUp,
		Promotions:     deps.Promotions,
		RestockHistory: deps.RestockHistory,
		PDF:            deps.ReportPDF,
	})
	adminOnly := RequireRole(RoleAdmin)
	reports.Get("/dashboard", adminOnly, reportHandler.GetDashboard)
	reports.Get("/trade-account", adminOnly, reportHandler.GetTradeAccount)
	reports.Get("/trade-account/pdf", adminOnly, reportHandler.GetTradeAccountPDF)
	reports.Get("/cashup", adminOnly, reportHandler.GetCashUp)
	reports.Get("/cashup/pdf", adminOnly, reportHandler.GetCashUpPDF)
	reports.Get("/promotions", stockWriters, reportHandler.GetPromotions)
	reports.Get("/restock-history/:receiptId", stockWriters, reportHandler.GetRestockHistory)

	// Productos: mutación de promociones
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.Promotions)
	products.Patch("/:id/promotion", adminOnly, productHandler.UpdatePromotion)
}

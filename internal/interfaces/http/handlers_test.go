package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/application/analytics"
	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/cache"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/memory"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/stock-ledger-api/internal/interfaces/http"
	"github.com/jhoicas/stock-ledger-api/pkg/logger"
	pkgjwt "github.com/jhoicas/stock-ledger-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// App completa sobre el store en memoria
// ──────────────────────────────────────────────────────────────────────────────

const testProductID = "prod-1"

type apiFixture struct {
	app   *fiber.App
	store *memory.Store
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	store := memory.NewStore()
	repos := memory.NewRepositories(store)
	log := logger.Nop()

	store.PutProduct(entity.Product{
		ID: testProductID, BusinessID: testBusinessID, SKU: "CAF-01", Name: "Café",
		BuyPrice: decimal.NewFromInt(10), SellPrice: decimal.NewFromInt(15),
	})

	ledger := inventory.NewStockLedger(repos.Movements, repos.Receipts, log)
	valuation := analytics.NewValuationService(repos.Movements, repos.Products)
	tradeAccount := analytics.NewTradeAccountUseCase(valuation, repos.Sales)
	cashUp := analytics.NewCashUpUseCase(repos.Sales, repos.Products)
	promotions := analytics.NewPromotionUseCase(repos.Movements, repos.Products, nil)

	idem := cache.NewInMemoryIdempotencyStore(time.Minute)
	t.Cleanup(func() { _ = idem.Close() })

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		RegisterMovement: inventory.NewRegisterMovementUseCase(repos.Tx, ledger, repos.Products, repos.Receipts, nil, log),
		StockQuery:       inventory.NewStockQueryUseCase(ledger, repos.Movements, repos.Products, nil),
		Receipts:         inventory.NewReceiptUseCase(repos.Receipts, nil),
		Dashboard:        analytics.NewDashboardUseCase(tradeAccount, promotions, repos.Movements, repos.Products, nil),
		TradeAccount:     tradeAccount,
		CashUp:           cashUp,
		Promotions:       promotions,
		RestockHistory:   analytics.NewRestockHistoryUseCase(repos.Receipts, repos.Movements, repos.Products, valuation),
		ReportPDF:        analytics.NewReportPDFUseCase(tradeAccount, cashUp, pdf.NewMarotoReportGenerator("Tienda de prueba")),
		Idempotency:      idem,
		IdempotencyTTL:   time.Hour,
		Logger:           log,
		JWTSecret:        testJWTSecret,
	})
	return &apiFixture{app: app, store: store}
}

func (f *apiFixture) do(t *testing.T, method, path, role string, body interface{}, headers map[string]string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// ──────────────────────────────────────────────────────────────────────────────
// Inventario
// ──────────────────────────────────────────────────────────────────────────────

func TestRestock_DevuelveCantidadActual(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodPost, "/api/inventory/restock", "bodeguero",
		fiber.Map{"product_id": testProductID, "quantity": "12"}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out map[string]interface{}
	decode(t, resp, &out)
	assert.Equal(t, testProductID, out["product_id"])
	assert.Equal(t, "12", out["current_quantity"])
	assert.NotContains(t, out, "auto_restocked", "una reposición no informa faltante")
}

func TestRestock_EscalaMayorATresDecimalesEs400(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodPost, "/api/inventory/restock", "admin",
		fiber.Map{"product_id": testProductID, "quantity": "0.0004"}, nil)
	var out dto.ErrorResponse
	decode(t, resp, &out)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", out.Code)
}

func TestRestock_CantidadCeroEs400(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodPost, "/api/inventory/restock", "admin",
		fiber.Map{"product_id": testProductID, "quantity": "0"}, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "VALIDATION")
}

func TestRestock_SinProductIDEs400(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodPost, "/api/inventory/restock", "admin", fiber.Map{"quantity": "3"}, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "product_id")
}

func TestRestock_ProductoInexistenteEs404(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodPost, "/api/inventory/restock", "admin",
		fiber.Map{"product_id": "no-existe", "quantity": "3"}, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRestock_VendedorNoPuedeReponer(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodPost, "/api/inventory/restock", "vendedor",
		fiber.Map{"product_id": testProductID, "quantity": "3"}, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRestock_IdempotencyKeyRepiteRespuestaSinEscribir(t *testing.T) {
	f := newAPI(t)
	headers := map[string]string{apphttp.HeaderIdempotencyKey: "reposicion-001"}
	body := fiber.Map{"product_id": testProductID, "quantity": "5"}

	first := f.do(t, http.MethodPost, "/api/inventory/restock", "admin", body, headers)
	require.Equal(t, http.StatusCreated, first.StatusCode)
	first.Body.Close()

	second := f.do(t, http.MethodPost, "/api/inventory/restock", "admin", body, headers)
	require.Equal(t, http.StatusCreated, second.StatusCode)
	assert.Equal(t, "true", second.Header.Get(apphttp.HeaderIdempotentReplay))
	var out dto.MovementResultDTO
	decode(t, second, &out)
	assert.True(t, out.CurrentQuantity.Equal(decimal.NewFromInt(5)))

	resp := f.do(t, http.MethodGet, "/api/inventory/products/"+testProductID+"/quantity", "admin", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var q dto.QuantityDTO
	decode(t, resp, &q)
	assert.True(t, q.Quantity.Equal(decimal.NewFromInt(5)), "la repetición no escribe en el ledger")
}

func TestRestock_ErrorNoQuedaGuardadoParaLaLlave(t *testing.T) {
	f := newAPI(t)
	headers := map[string]string{apphttp.HeaderIdempotencyKey: "reposicion-002"}

	bad := f.do(t, http.MethodPost, "/api/inventory/restock", "admin",
		fiber.Map{"product_id": testProductID, "quantity": "-1"}, headers)
	bad.Body.Close()
	require.Equal(t, http.StatusBadRequest, bad.StatusCode)

	good := f.do(t, http.MethodPost, "/api/inventory/restock", "admin",
		fiber.Map{"product_id": testProductID, "quantity": "2"}, headers)
	defer good.Body.Close()
	assert.Equal(t, http.StatusCreated, good.StatusCode)
	assert.Empty(t, good.Header.Get(apphttp.HeaderIdempotentReplay))
}

func TestSaleMovement_RolServicioYReposicionAutomatica(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodPost, "/api/inventory/sale-movements", "service",
		fiber.Map{"product_id": testProductID, "quantity": "4", "reference": "venta-77"}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out dto.MovementResultDTO
	decode(t, resp, &out)
	require.NotNil(t, out.AutoRestocked)
	assert.True(t, out.AutoRestocked.Equal(decimal.NewFromInt(4)))
	assert.True(t, out.CurrentQuantity.IsZero())
}

func TestAdjustment_RequiereNota(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodPost, "/api/inventory/adjustments", "admin",
		fiber.Map{"product_id": testProductID, "delta": "-2"}, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListStock_YMovimientos(t *testing.T) {
	f := newAPI(t)
	r := f.do(t, http.MethodPost, "/api/inventory/adjustments", "admin",
		fiber.Map{"product_id": testProductID, "delta": "7", "note": "conteo físico"}, nil)
	r.Body.Close()
	require.Equal(t, http.StatusCreated, r.StatusCode)

	resp := f.do(t, http.MethodGet, "/api/inventory/stock?q=caf", "vendedor", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []dto.StockItemDTO
	decode(t, resp, &list)
	require.Len(t, list, 1)
	assert.True(t, list[0].Quantity.Equal(decimal.NewFromInt(7)))

	resp = f.do(t, http.MethodGet, "/api/inventory/products/"+testProductID+"/movements?limit=5", "admin", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var movs []dto.MovementDTO
	decode(t, resp, &movs)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementSourceAdjustment, movs[0].Source)
	assert.Equal(t, testUserID, movs[0].CreatedBy)
}

func TestMovimientos_ProductoInexistenteEs404(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodGet, "/api/inventory/products/no-existe/movements", "vendedor", nil, nil)
	var out dto.ErrorResponse
	decode(t, resp, &out)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", out.Code)
}

func TestQuantityAsOf_FechaInvalidaEs400(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodGet, "/api/inventory/products/"+testProductID+"/quantity?at=ayer", "admin", nil, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Recibos y reportes
// ──────────────────────────────────────────────────────────────────────────────

func TestRecibos_CrearReponerEHistorial(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodPost, "/api/receipts", "bodeguero", fiber.Map{
		"label": "Factura 0045", "receipt_at": time.Now().Add(-time.Minute).Format(time.RFC3339),
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var receipt dto.ReceiptResponse
	decode(t, resp, &receipt)
	require.NotEmpty(t, receipt.ID)
	assert.Equal(t, testUserID, receipt.UploadedBy)

	r := f.do(t, http.MethodPost, "/api/inventory/restock", "bodeguero",
		fiber.Map{"product_id": testProductID, "quantity": "100", "receipt_id": receipt.ID}, nil)
	r.Body.Close()
	require.Equal(t, http.StatusCreated, r.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/reports/restock-history/"+receipt.ID, "admin", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var h dto.RestockHistoryDTO
	decode(t, resp, &h)
	assert.True(t, h.Opening.IsZero())
	assert.True(t, h.NewValue.Equal(decimal.NewFromInt(1000)))
	assert.True(t, h.Closing.Equal(decimal.NewFromInt(1000)))

	resp = f.do(t, http.MethodGet, "/api/receipts/"+receipt.ID, "admin", nil, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/receipts/no-existe", "admin", nil, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRecibos_SinLabelEs400(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodPost, "/api/receipts", "admin", fiber.Map{"receipt_at": time.Now().Format(time.RFC3339)}, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCuentaComercial_PorHTTP(t *testing.T) {
	f := newAPI(t)
	f.store.AddSale(memory.SaleRecord{
		BusinessID: testBusinessID, ProductID: testProductID,
		Amount: decimal.NewFromInt(150), SoldAt: time.Date(2026, 1, 15, 12, 0, 0, 0, time.Local),
	})

	resp := f.do(t, http.MethodGet, "/api/reports/trade-account?start=2026-01-01&end=2026-01-31", "admin", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ta dto.TradeAccountDTO
	decode(t, resp, &ta)
	assert.True(t, ta.Sales.Equal(decimal.NewFromInt(150)))
	assert.True(t, ta.GrossProfitOrLoss.Equal(decimal.NewFromInt(150)))
}

func TestCuentaComercial_SinFechasEs400(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodGet, "/api/reports/trade-account", "admin", nil, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReportes_SoloAdmin(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodGet, "/api/reports/dashboard", "bodeguero", nil, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestDashboard_PorDefecto(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodGet, "/api/reports/dashboard", "admin", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.DashboardSummaryDTO
	decode(t, resp, &out)
	assert.NotEmpty(t, out.DateLabel)
}

func TestArqueoPDF(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodGet, "/api/reports/cashup/pdf?start=2026-01-01&end=2026-01-31", "admin", nil, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "arqueo_20260101_20260131.pdf")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestPromocion_PatchActualizaPrecio(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodPatch, "/api/products/"+testProductID+"/promotion", "admin",
		fiber.Map{"sell_price": "12.50", "on_special": true}, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	p, err := memory.NewRepositories(f.store).Products.GetByID(context.Background(), testBusinessID, testProductID)
	require.NoError(t, err)
	assert.Equal(t, "12.5", p.SellPrice.String())
	assert.True(t, p.OnSpecial)

	resp = f.do(t, http.MethodPatch, "/api/products/"+testProductID+"/promotion", "admin", fiber.Map{}, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = f.do(t, http.MethodPatch, "/api/products/otro/promotion", "admin", fiber.Map{"on_special": false}, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPromociones_ListaVacia(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodGet, "/api/reports/promotions", "bodeguero", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var items []dto.PromotionItemDTO
	decode(t, resp, &items)
	assert.Empty(t, items)
}

func TestRutasProtegidas_SinToken(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodGet, "/api/inventory/stock", "", nil, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRutasProtegidas_TokenSinNegocio(t *testing.T) {
	f := newAPI(t)
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "", "admin", testIssuer, testExpMin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/inventory/stock", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

package http_test

import (
	"bytes"
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

	appanalytics "github.com/jhoicas/superindo-api/internal/application/analytics"
	"github.com/jhoicas/superindo-api/internal/application/dto"
	"github.com/jhoicas/superindo-api/internal/application/inventory"
	"github.com/jhoicas/superindo-api/internal/application/ledger"
	"github.com/jhoicas/superindo-api/internal/application/usecase"
	"github.com/jhoicas/superindo-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/superindo-api/internal/interfaces/http"
	"github.com/jhoicas/superindo-api/pkg/logger"
)

var today = time.Date(2025, 7, 21, 9, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.New()
	repos := store.Repositories()
	clock := func() time.Time { return today }
	deps := ledger.Deps{Tx: store, Reads: repos, Clock: clock, Log: logger.Nop()}

	app := apphttp.NewApp("test", logger.Nop())
	apphttp.Router(app, apphttp.RouterDeps{
		CustomerUC:   usecase.NewCustomerUseCase(repos),
		MaterialUC:   usecase.NewMaterialUseCase(store, repos, logger.Nop()),
		ProductUC:    usecase.NewProductUseCase(store, repos, logger.Nop()),
		IncomingUC:   ledger.NewIncomingUseCase(deps),
		ProductionUC: ledger.NewProductionUseCase(deps),
		InvoiceUC:    ledger.NewInvoiceUseCase(deps),
		DashboardUC:  appanalytics.NewDashboardUseCase(store.Dashboard(), repos.Movements, decimal.NewFromInt(10), clock),
		Replenish:    inventory.NewReplenishmentUseCase(store.Dashboard(), decimal.NewFromInt(10)),
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path string, body any) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func decode[T any](t *testing.T, b []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(b, &v), string(b))
	return v
}

type seeded struct {
	customerID, materialID, productID string
}

func seed(t *testing.T, app *fiber.App, materialStock, productStock string) seeded {
	t.Helper()
	status, body := call(t, app, http.MethodPost, "/api/v1/customers", map[string]any{"name": "PT Sumber Rejeki"})
	require.Equal(t, fiber.StatusCreated, status, string(body))
	customer := decode[dto.CustomerResponse](t, body)

	status, body = call(t, app, http.MethodPost, "/api/v1/materials", map[string]any{
		"name": "Tepung Terigu", "code": "MAT-001", "unit": "kg", "stock_quantity": materialStock, "unit_price": "12000",
	})
	require.Equal(t, fiber.StatusCreated, status, string(body))
	material := decode[dto.ItemResponse](t, body)

	status, body = call(t, app, http.MethodPost, "/api/v1/products", map[string]any{
		"name": "Roti Tawar", "code": "PRD-001", "unit": "pcs", "stock_quantity": productStock, "unit_price": "15000",
	})
	require.Equal(t, fiber.StatusCreated, status, string(body))
	product := decode[dto.ItemResponse](t, body)

	return seeded{customerID: customer.ID, materialID: material.ID, productID: product.ID}
}

func stockOf(t *testing.T, app *fiber.App, path string) decimal.Decimal {
	t.Helper()
	status, body := call(t, app, http.MethodGet, path, nil)
	require.Equal(t, fiber.StatusOK, status, string(body))
	return decode[dto.ItemResponse](t, body).StockQuantity
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)
	status, body := call(t, app, http.MethodGet, "/health", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
}

func TestIncoming_CreateAddsStockAndNumbers(t *testing.T) {
	app := newTestApp(t)
	s := seed(t, app, "100", "0")

	req := map[string]any{
		"customer_id": s.customerID, "material_id": s.materialID,
		"quantity": "50", "unit_price": "2.5", "incoming_date": "2025-07-21",
	}
	status, body := call(t, app, http.MethodPost, "/api/v1/incoming", req)
	require.Equal(t, fiber.StatusCreated, status, string(body))
	first := decode[dto.IncomingResponse](t, body)
	assert.Equal(t, "IN202507210001", first.IncomingNumber)
	assert.True(t, first.TotalPrice.Equal(decimal.RequireFromString("125")))
	require.NotNil(t, first.Material)
	assert.Equal(t, "MAT-001", first.Material.Code)

	status, body = call(t, app, http.MethodPost, "/api/v1/incoming", req)
	require.Equal(t, fiber.StatusCreated, status, string(body))
	assert.Equal(t, "IN202507210002", decode[dto.IncomingResponse](t, body).IncomingNumber)

	assert.True(t, stockOf(t, app, "/api/v1/materials/"+s.materialID).Equal(decimal.NewFromInt(200)))
}

func TestProduction_InsufficientStockIs409(t *testing.T) {
	app := newTestApp(t)
	s := seed(t, app, "10", "0")

	status, body := call(t, app, http.MethodPost, "/api/v1/productions", map[string]any{
		"material_id": s.materialID, "product_id": s.productID,
		"material_quantity_used": "30", "product_quantity_produced": "20", "production_date": "2025-07-21",
	})
	require.Equal(t, fiber.StatusConflict, status, string(body))
	errResp := decode[dto.ErrorResponse](t, body)
	assert.Equal(t, "INSUFFICIENT_STOCK", errResp.Code)
	assert.Equal(t, "Insufficient material stock. Available: 10.00, Required: 30.00", errResp.Message)

	assert.True(t, stockOf(t, app, "/api/v1/materials/"+s.materialID).Equal(decimal.NewFromInt(10)))
	assert.True(t, stockOf(t, app, "/api/v1/products/"+s.productID).IsZero())
}

func TestInvoice_LifecycleRestoresStock(t *testing.T) {
	app := newTestApp(t)
	s := seed(t, app, "0", "100")

	status, body := call(t, app, http.MethodPost, "/api/v1/invoices", map[string]any{
		"customer_id": s.customerID, "product_id": s.productID,
		"quantity": "25", "unit_price": "15000", "invoice_date": "2025-07-21", "due_date": "2025-08-20",
	})
	require.Equal(t, fiber.StatusCreated, status, string(body))
	inv := decode[dto.InvoiceResponse](t, body)
	assert.Equal(t, "INV202507210001", inv.InvoiceNumber)
	assert.Equal(t, "draft", inv.Status)
	assert.True(t, stockOf(t, app, "/api/v1/products/"+s.productID).Equal(decimal.NewFromInt(75)))

	status, body = call(t, app, http.MethodPatch, "/api/v1/invoices/"+inv.ID+"/status", map[string]any{"status": "paid"})
	require.Equal(t, fiber.StatusOK, status, string(body))
	assert.Equal(t, "paid", decode[dto.InvoiceResponse](t, body).Status)
	assert.True(t, stockOf(t, app, "/api/v1/products/"+s.productID).Equal(decimal.NewFromInt(75)))

	status, body = call(t, app, http.MethodDelete, "/api/v1/invoices/"+inv.ID, nil)
	require.Equal(t, fiber.StatusOK, status, string(body))
	assert.True(t, stockOf(t, app, "/api/v1/products/"+s.productID).Equal(decimal.NewFromInt(100)))

	status, _ = call(t, app, http.MethodGet, "/api/v1/invoices/"+inv.ID, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestValidationErrorsAre422WithFields(t *testing.T) {
	app := newTestApp(t)
	s := seed(t, app, "0", "0")

	status, body := call(t, app, http.MethodPost, "/api/v1/invoices", map[string]any{
		"customer_id": s.customerID, "product_id": s.productID,
		"quantity": "0", "unit_price": "-1", "invoice_date": "21/07/2025", "status": "void",
	})
	require.Equal(t, fiber.StatusUnprocessableEntity, status, string(body))
	errResp := decode[dto.ErrorResponse](t, body)
	assert.Equal(t, "VALIDATION", errResp.Code)
	for _, field := range []string{"quantity", "unit_price", "invoice_date", "status"} {
		assert.Contains(t, errResp.Errors, field)
	}
}

func TestInvalidJSONIs400(t *testing.T) {
	app := newTestApp(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/customers", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestDeleteCustomerWithInvoicesIs409(t *testing.T) {
	app := newTestApp(t)
	s := seed(t, app, "0", "10")

	status, body := call(t, app, http.MethodPost, "/api/v1/invoices", map[string]any{
		"customer_id": s.customerID, "product_id": s.productID,
		"quantity": "1", "unit_price": "1", "invoice_date": "2025-07-21",
	})
	require.Equal(t, fiber.StatusCreated, status, string(body))

	status, body = call(t, app, http.MethodDelete, "/api/v1/customers/"+s.customerID, nil)
	require.Equal(t, fiber.StatusConflict, status, string(body))
	assert.Equal(t, "Cannot delete customer with existing incoming or invoices", decode[dto.ErrorResponse](t, body).Message)
}

func TestUnknownIDIs404(t *testing.T) {
	app := newTestApp(t)
	for _, path := range []string{
		"/api/v1/customers/00000000-0000-0000-0000-000000000000",
		"/api/v1/materials/00000000-0000-0000-0000-000000000000",
		"/api/v1/incoming/00000000-0000-0000-0000-000000000000",
		"/api/v1/productions/00000000-0000-0000-0000-000000000000",
	} {
		status, _ := call(t, app, http.MethodGet, path, nil)
		assert.Equal(t, fiber.StatusNotFound, status, path)
	}
}

func TestDashboardAndReports(t *testing.T) {
	app := newTestApp(t)
	s := seed(t, app, "100", "5")

	status, body := call(t, app, http.MethodPost, "/api/v1/incoming", map[string]any{
		"customer_id": s.customerID, "material_id": s.materialID,
		"quantity": "10", "unit_price": "3", "incoming_date": "2025-07-21",
	})
	require.Equal(t, fiber.StatusCreated, status, string(body))

	status, body = call(t, app, http.MethodGet, "/api/v1/dashboard/stats", nil)
	require.Equal(t, fiber.StatusOK, status, string(body))
	stats := decode[dto.DashboardStatsDTO](t, body)
	assert.Equal(t, 1, stats.TotalCustomers)
	assert.Equal(t, 1, stats.TodayIncomings)
	assert.Equal(t, 1, stats.LowStockProducts)
	assert.Equal(t, 0, stats.LowStockMaterials)
	assert.True(t, stats.TotalIncomingValue.Equal(decimal.NewFromInt(30)))

	status, body = call(t, app, http.MethodGet, "/api/v1/reports/stock", nil)
	require.Equal(t, fiber.StatusOK, status, string(body))
	report := decode[dto.StockReportDTO](t, body)
	require.Len(t, report.Materials, 1)
	assert.True(t, report.Materials[0].StockQuantity.Equal(decimal.NewFromInt(110)))

	status, body = call(t, app, http.MethodGet, "/api/v1/stock/material/"+s.materialID+"/movements", nil)
	require.Equal(t, fiber.StatusOK, status, string(body))
	movements := decode[[]dto.StockMovementDTO](t, body)
	require.Len(t, movements, 2) // apertura + entrada
	sources := []string{movements[0].SourceType, movements[1].SourceType}
	assert.ElementsMatch(t, []string{"opening", "incoming"}, sources)

	status, body = call(t, app, http.MethodGet, "/api/v1/activities/recent", nil)
	require.Equal(t, fiber.StatusOK, status, string(body))
	activities := decode[[]dto.ActivityDTO](t, body)
	require.Len(t, activities, 1)
	assert.Equal(t, "Incoming IN202507210001 from PT Sumber Rejeki", activities[0].Description)

	status, body = call(t, app, http.MethodGet, "/api/v1/reports/replenishment", nil)
	require.Equal(t, fiber.StatusOK, status, string(body))
	suggestions := decode[[]dto.ReplenishmentSuggestionDTO](t, body)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "PRD-001", suggestions[0].Code)

	status, _ = call(t, app, http.MethodGet, "/api/v1/stock/widget/"+s.materialID+"/movements", nil)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
}

func TestRequestIDIsEchoed(t *testing.T) {
	app := newTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(apphttp.HeaderRequestID, "abc-123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", resp.Header.Get(apphttp.HeaderRequestID))
}

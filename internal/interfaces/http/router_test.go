package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/stock-ledger/internal/application/analytics"
	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/application/usecase"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/stock-ledger/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/stock-ledger/internal/interfaces/http"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp arma la API completa sobre el store en memoria.
func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	log := logger.Nop()
	ratio := decimal.RequireFromString("0.1")

	movements := inventory.NewRegisterMovementUseCase(store, repos, log)
	resolver := inventory.NewResolveItemUseCase(store, movements, ratio, log)

	app := fiber.New()
	app.Use(apphttp.RequestLogger(log))
	apphttp.Router(app, apphttp.RouterDeps{
		ItemUC:           usecase.NewItemUseCase(store, repos, movements, ratio),
		RecipeUC:         usecase.NewRecipeUseCase(store, repos, resolver),
		ShipmentPDF:      usecase.NewShipmentPDFUseCase(repos.Shipping, repos.Items, infrapdf.NewMarotoShippingNoteGenerator("Test")),
		ResolveItem:      resolver,
		RegisterMovement: movements,
		Production:       inventory.NewProductionUseCase(store, movements, resolver, log),
		Shipping:         inventory.NewShippingUseCase(store, repos, movements, log),
		StockQuery:       inventory.NewStockQueryUseCase(repos.Items, repos.Movements),
		Reports:          appanalytics.NewReportUseCase(repos.Items, repos.Movements, repos.Recipes, repos.Runs, 14),
	})
	return app
}

// do lanza una petición JSON y decodifica la respuesta en out (si no es nil).
func do(t *testing.T, app *fiber.App, method, path string, body any, out any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	if out != nil {
		defer resp.Body.Close()
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func createItem(t *testing.T, app *fiber.App, body map[string]any) dto.ItemResponse {
	t.Helper()
	var out dto.ItemResponse
	resp := do(t, app, http.MethodPost, "/api/items", body, &out)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestItems_CRUD(t *testing.T) {
	app := buildTestApp(t)
	item := createItem(t, app, map[string]any{"name": "Resina", "category": "raw_material", "initial_stock": "100"})
	assert.Equal(t, "100", item.CurrentStock.String())

	var got dto.ItemResponse
	resp := do(t, app, http.MethodGet, "/api/items/"+item.ID, nil, &got)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Resina", got.Name)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))

	var list dto.ItemListResponse
	resp = do(t, app, http.MethodGet, "/api/items?category=raw_material", nil, &list)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, list.Items, 1)

	var updated dto.ItemResponse
	resp = do(t, app, http.MethodPut, "/api/items/"+item.ID, map[string]any{"unit_type": "g"}, &updated)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "g", updated.UnitType)

	var errResp dto.ErrorResponse
	resp = do(t, app, http.MethodDelete, "/api/items/"+item.ID, nil, &errResp)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", errResp.Code)

	resp = do(t, app, http.MethodGet, "/api/items/missing", nil, &errResp)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errResp.Code)
}

func TestItems_ValidationError(t *testing.T) {
	app := buildTestApp(t)
	var errResp dto.ErrorResponse
	resp := do(t, app, http.MethodPost, "/api/items", map[string]any{"name": "", "category": "gadget"}, &errResp)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errResp.Code)
	fields := map[string]bool{}
	for _, f := range errResp.Fields {
		fields[f.Field] = true
	}
	assert.True(t, fields["name"])
	assert.True(t, fields["category"])

	req := httptest.NewRequest(http.MethodPost, "/api/items", bytes.NewBufferString("{nope"))
	req.Header.Set("Content-Type", "application/json")
	r, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, r.StatusCode)
}

func TestResolve_CreatedThenFound(t *testing.T) {
	app := buildTestApp(t)
	body := map[string]any{"name": "Tinta", "category": "raw_material", "initial_quantity": "25"}

	var first dto.ResolveItemResponse
	resp := do(t, app, http.MethodPost, "/api/items/resolve", body, &first)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.True(t, first.Created)

	var second dto.ResolveItemResponse
	resp = do(t, app, http.MethodPost, "/api/items/resolve", body, &second)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.False(t, second.Created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "25", second.CurrentStock.String())
}

func TestMovements_InsufficientStockDetails(t *testing.T) {
	app := buildTestApp(t)
	item := createItem(t, app, map[string]any{"name": "Resina", "category": "raw_material", "initial_stock": "10"})

	var ok dto.RegisterMovementResponse
	resp := do(t, app, http.MethodPost, "/api/movements",
		map[string]any{"item_id": item.ID, "type": "out", "quantity": "4"}, &ok)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "OUT", ok.Movement.Type)
	assert.Equal(t, "6", ok.CurrentStock.String())

	var errResp dto.ErrorResponse
	resp = do(t, app, http.MethodPost, "/api/movements",
		map[string]any{"item_id": item.ID, "type": "OUT", "quantity": "7"}, &errResp)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", errResp.Code)
	assert.Equal(t, item.ID, errResp.Details["item_id"])
	assert.Equal(t, "7", errResp.Details["requested"])
	assert.Equal(t, "6", errResp.Details["available"])

	var stock dto.StockResponse
	do(t, app, http.MethodGet, "/api/items/"+item.ID+"/stock?source=ledger", nil, &stock)
	assert.Equal(t, "6", stock.Stock.String())

	var check dto.StockCheckResponse
	do(t, app, http.MethodGet, "/api/items/"+item.ID+"/stock/verify", nil, &check)
	assert.True(t, check.Consistent)

	var list dto.MovementListResponse
	do(t, app, http.MethodGet, "/api/movements?item_id="+item.ID+"&type=out", nil, &list)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "4", list.Items[0].Quantity.String())

	resp = do(t, app, http.MethodGet, "/api/movements?type=sideways", nil, &errResp)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestProduction_SingleModeWaste(t *testing.T) {
	app := buildTestApp(t)
	createItem(t, app, map[string]any{"name": "Bolsa", "category": "finished_product", "weight_per_unit": "0.12"})

	var run dto.ProductionRunResponse
	resp := do(t, app, http.MethodPost, "/api/production-runs", map[string]any{
		"finished_product":  map[string]any{"name": "Bolsa"},
		"produced_quantity": "500",
		"single":            map[string]any{"raw_material": map[string]any{"name": "Resina"}, "quantity": "100"},
	}, &run)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "single", run.Mode)
	assert.True(t, decimal.NewFromInt(60).Equal(run.TheoreticalOutputWeight))
	assert.True(t, decimal.NewFromInt(40).Equal(run.WasteQuantity))
	assert.True(t, decimal.NewFromInt(40).Equal(run.WastePercentage))
	assert.Equal(t, "500", run.FinishedProductStock.String())

	var report dto.WasteReportResponse
	resp = do(t, app, http.MethodGet, "/api/reports/waste", nil, &report)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 14, report.Days)
	require.Len(t, report.Rows, 1)
	assert.Equal(t, 1, report.Rows[0].RunCount)

	var errResp dto.ErrorResponse
	resp = do(t, app, http.MethodGet, "/api/reports/waste?days=1000", nil, &errResp)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// ambos modos a la vez: inválido
	resp = do(t, app, http.MethodPost, "/api/production-runs", map[string]any{
		"finished_product":  map[string]any{"name": "Bolsa"},
		"produced_quantity": "1",
		"single":            map[string]any{"raw_material": map[string]any{"name": "Resina"}, "quantity": "1"},
		"recipe":            map[string]any{},
	}, &errResp)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRecipesAndProfitability(t *testing.T) {
	app := buildTestApp(t)
	fp := createItem(t, app, map[string]any{"name": "Bolsa", "category": "finished_product", "selling_price": "20"})
	a := createItem(t, app, map[string]any{"name": "Resina", "category": "raw_material", "initial_stock": "100", "price_per_unit": "5"})
	b := createItem(t, app, map[string]any{"name": "Tinta", "category": "raw_material", "initial_stock": "100", "price_per_unit": "1.5"})

	for _, l := range []map[string]any{
		{"finished_product": map[string]any{"id": fp.ID}, "raw_material": map[string]any{"id": a.ID}, "required_quantity": "2"},
		{"finished_product": map[string]any{"id": fp.ID}, "raw_material": map[string]any{"id": b.ID}, "required_quantity": "2"},
	} {
		resp := do(t, app, http.MethodPost, "/api/recipes", l, nil)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	var lines []dto.RecipeLineResponse
	do(t, app, http.MethodGet, "/api/recipes?finished_product_id="+fp.ID, nil, &lines)
	assert.Len(t, lines, 2)

	var rows []dto.ProfitabilityResponse
	resp := do(t, app, http.MethodGet, "/api/reports/profitability", nil, &rows)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Len(t, rows, 1)
	assert.True(t, decimal.NewFromInt(13).Equal(rows[0].ProductionCost))
	assert.True(t, decimal.NewFromInt(7).Equal(rows[0].GrossProfit))
	assert.True(t, decimal.NewFromInt(35).Equal(rows[0].MarginPct))
	assert.True(t, rows[0].IsProfitable)

	var dash dto.DashboardResponse
	resp = do(t, app, http.MethodGet, "/api/reports/dashboard", nil, &dash)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, dash.Profitability, 1)

	resp = do(t, app, http.MethodDelete, "/api/recipes/"+lines[0].ID, nil, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestShipments_FlowAndPDF(t *testing.T) {
	app := buildTestApp(t)
	p := createItem(t, app, map[string]any{"name": "Bolsa", "category": "finished_product", "initial_stock": "50"})

	body := map[string]any{
		"customer_name": "Acme",
		"doc_number":    "SD-001",
		"items":         []map[string]any{{"product_id": p.ID, "quantity": "30"}},
	}
	var doc dto.ShipmentResponse
	resp := do(t, app, http.MethodPost, "/api/shipments", body, &doc)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "COMPLETED", doc.Status)
	assert.Equal(t, "30", doc.TotalQuantity.String())

	var errResp dto.ErrorResponse
	resp = do(t, app, http.MethodPost, "/api/shipments", body, &errResp)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	body["doc_number"] = "SD-002"
	resp = do(t, app, http.MethodPost, "/api/shipments", body, &errResp)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", errResp.Code)

	resp = do(t, app, http.MethodPost, "/api/shipments", map[string]any{"customer_name": "Acme", "doc_number": "SD-3"}, &errResp)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var list dto.ShipmentListResponse
	do(t, app, http.MethodGet, "/api/shipments", nil, &list)
	assert.Len(t, list.Items, 1)

	req := httptest.NewRequest(http.MethodGet, "/api/shipments/"+doc.ID+"/pdf", nil)
	r, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, r.StatusCode)
	assert.Equal(t, "application/pdf", r.Header.Get(fiber.HeaderContentType))
	raw, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	resp = do(t, app, http.MethodGet, "/api/shipments/missing", nil, &errResp)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

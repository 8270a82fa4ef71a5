package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/app"
	apphttp "github.com/jhoicas/stock-ledger/internal/interfaces/http"
	"github.com/jhoicas/stock-ledger/pkg/config"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// buildLedgerApp monta el router completo sobre almacenamiento en memoria.
func buildLedgerApp(t *testing.T) *fiber.App {
	t.Helper()
	cfg := &config.Config{
		Storage: "memory",
		Ledger:  config.LedgerConfig{MaxAttempts: 3, RetryBackoff: time.Millisecond, MaxBatchItems: 100},
		Alerts:  config.AlertsConfig{LowThreshold: decimal.NewFromInt(10), CriticalThreshold: decimal.NewFromInt(3)},
	}
	container, err := app.Build(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(container.Close)

	srv := fiber.New()
	apphttp.Router(srv, apphttp.RouterDeps{
		Adjust:        container.Adjust,
		History:       container.History,
		Products:      container.Products,
		Status:        container.Status,
		AlertSettings: container.AlertSettings,
		Audit:         container.Audit,
		JWTSecret:     testJWTSecret,
		Logger:        logger.Nop(),
	})
	return srv
}

// call lanza la petición con el rol indicado y decodifica el cuerpo JSON.
func call(t *testing.T, srv *fiber.App, method, path, role string, body any) (int, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, role))
	resp, err := srv.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func dec(t *testing.T, v any) decimal.Decimal {
	t.Helper()
	s, ok := v.(string)
	require.True(t, ok, "se esperaba decimal serializado como string: %v", v)
	return decimal.RequireFromString(s)
}

func registerProduct(t *testing.T, srv *fiber.App, id, unit, initial string) {
	t.Helper()
	status, body := call(t, srv, http.MethodPost, "/api/products", "bodeguero", map[string]any{
		"product_id": id, "unit": unit, "initial_stock": initial,
	})
	require.Equal(t, http.StatusCreated, status, "%v", body)
}

func TestRouter_AjusteFraccionario(t *testing.T) {
	srv := buildLedgerApp(t)
	registerProduct(t, srv, "HARINA", "kg", "5.00")

	status, body := call(t, srv, http.MethodPost, "/api/stock/adjustments", "bodeguero", map[string]any{
		"product_id": "HARINA", "cause": "adjustment_positive", "quantity": "2.50", "reason": "conteo",
	})
	require.Equal(t, http.StatusCreated, status, "%v", body)
	assert.True(t, dec(t, body["new_stock"]).Equal(decimal.RequireFromString("7.5")))
	assert.Equal(t, testActorID, body["actor_id"])

	status, body = call(t, srv, http.MethodGet, "/api/products/HARINA", "vendedor", nil)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, dec(t, body["stock"]).Equal(decimal.RequireFromString("7.5")))
}

func TestRouter_ErroresDeValidacion(t *testing.T) {
	srv := buildLedgerApp(t)
	registerProduct(t, srv, "HARINA", "kg", "5")

	status, body := call(t, srv, http.MethodPost, "/api/stock/adjustments", "admin", map[string]any{
		"product_id": "HARINA", "cause": "sale", "quantity": "0.015", "reason": "venta",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "INVALID_STEP", body["code"])
	assert.Equal(t, "0.01", body["step"])

	status, body = call(t, srv, http.MethodPost, "/api/stock/adjustments", "admin", map[string]any{
		"product_id": "HARINA", "cause": "sale", "quantity": "6", "reason": "venta",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])
	assert.Equal(t, "5", body["available"])

	status, body = call(t, srv, http.MethodPost, "/api/stock/adjustments", "admin", map[string]any{
		"product_id": "HARINA", "cause": "gift", "quantity": "1", "reason": "x",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "UNKNOWN_CAUSE", body["code"])

	status, body = call(t, srv, http.MethodPost, "/api/stock/adjustments", "admin", map[string]any{
		"product_id": "NOPE", "cause": "sale", "quantity": "1", "reason": "x",
	})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "PRODUCT_NOT_FOUND", body["code"])
}

func TestRouter_VendedorNoAjusta(t *testing.T) {
	srv := buildLedgerApp(t)
	registerProduct(t, srv, "A", "piece", "5")

	status, body := call(t, srv, http.MethodPost, "/api/stock/adjustments", "vendedor", map[string]any{
		"product_id": "A", "cause": "sale", "quantity": "1", "reason": "venta",
	})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", body["code"])
}

func TestRouter_LoteRechazadoListaTodosLosItems(t *testing.T) {
	srv := buildLedgerApp(t)
	registerProduct(t, srv, "A", "piece", "5")
	registerProduct(t, srv, "B", "piece", "5")

	status, body := call(t, srv, http.MethodPost, "/api/stock/adjustments/batch", "bodeguero", map[string]any{
		"cause":  "sale",
		"reason": "despacho",
		"items": []map[string]any{
			{"product_id": "A", "quantity": "1"},
			{"product_id": "B", "quantity": "9"},
			{"product_id": "A", "quantity": "0.5"},
		},
	})
	require.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "BATCH_VALIDATION_FAILED", body["code"])
	details, ok := body["details"].([]any)
	require.True(t, ok)
	require.Len(t, details, 2)
	first := details[0].(map[string]any)
	assert.Equal(t, float64(1), first["index"])
	assert.Equal(t, "INSUFFICIENT_STOCK", first["code"])
	second := details[1].(map[string]any)
	assert.Equal(t, "INVALID_STEP", second["code"])

	_, rec := call(t, srv, http.MethodGet, "/api/products/A", "admin", nil)
	assert.True(t, dec(t, rec["stock"]).Equal(decimal.NewFromInt(5)))
}

func TestRouter_HistorialYAnulacion(t *testing.T) {
	srv := buildLedgerApp(t)
	registerProduct(t, srv, "A", "piece", "10")

	status, sale := call(t, srv, http.MethodPost, "/api/stock/adjustments", "bodeguero", map[string]any{
		"product_id": "A", "cause": "sale", "quantity": "4", "reason": "venta",
	})
	require.Equal(t, http.StatusCreated, status)
	saleID := sale["id"].(string)

	status, body := call(t, srv, http.MethodGet, "/api/stock/history?product_id=A&cause=sale&cause=initial", "vendedor", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2), body["total_count"])
	entries := body["entries"].([]any)
	assert.Equal(t, saleID, entries[0].(map[string]any)["id"], "orden descendente por defecto")

	status, _ = call(t, srv, http.MethodPost, "/api/stock/entries/"+saleID+"/reverse", "bodeguero", map[string]any{"reason": "error de caja"})
	assert.Equal(t, http.StatusForbidden, status)

	status, rev := call(t, srv, http.MethodPost, "/api/stock/entries/"+saleID+"/reverse", "admin", map[string]any{"reason": "error de caja"})
	require.Equal(t, http.StatusCreated, status, "%v", rev)
	assert.Equal(t, saleID, rev["reference"])
	assert.True(t, dec(t, rev["new_stock"]).Equal(decimal.NewFromInt(10)))

	status, body = call(t, srv, http.MethodPost, "/api/stock/entries/"+saleID+"/reverse", "admin", map[string]any{"reason": "otra vez"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "ALREADY_REVERSED", body["code"])

	status, body = call(t, srv, http.MethodGet, "/api/stock/entries/"+saleID, "vendedor", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "sale", body["cause"])

	status, body = call(t, srv, http.MethodGet, "/api/stock/history?start_date=ayer", "vendedor", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_DATE", body["code"])

	status, body = call(t, srv, http.MethodGet, "/api/stock/history?start_date=2024-03-02&end_date=2024-03-01", "vendedor", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body["code"])
}

func TestRouter_UmbralesYAlertas(t *testing.T) {
	srv := buildLedgerApp(t)
	registerProduct(t, srv, "A", "piece", "2")
	registerProduct(t, srv, "B", "piece", "50")

	status, body := call(t, srv, http.MethodPut, "/api/settings/alerts", "admin", map[string]any{
		"low_threshold": "3", "critical_threshold": "5",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_THRESHOLDS", body["code"])

	status, _ = call(t, srv, http.MethodPut, "/api/settings/alerts", "bodeguero", map[string]any{
		"low_threshold": "10", "critical_threshold": "3",
	})
	assert.Equal(t, http.StatusForbidden, status)

	status, body = call(t, srv, http.MethodPut, "/api/settings/alerts", "admin", map[string]any{
		"product_id": "B", "low_threshold": "60", "critical_threshold": "5",
	})
	require.Equal(t, http.StatusOK, status, "%v", body)
	assert.Equal(t, true, body["notify_low"])

	status, body = call(t, srv, http.MethodGet, "/api/products/B/status", "vendedor", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "low", body["status"])

	status, body = call(t, srv, http.MethodGet, "/api/stock/alerts", "vendedor", nil)
	require.Equal(t, http.StatusOK, status)
	items := body["items"].([]any)
	require.Len(t, items, 2)
	assert.Equal(t, "A", items[0].(map[string]any)["product_id"])
	assert.Equal(t, "critical", items[0].(map[string]any)["status"])
}

func TestRouter_CatalogoYVerificacion(t *testing.T) {
	srv := buildLedgerApp(t)
	registerProduct(t, srv, "A", "piece", "3")

	req := httptest.NewRequest(http.MethodGet, "/api/stock/causes", nil)
	req.Header.Set("Authorization", tokenForRole(t, "vendedor"))
	resp, err := srv.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var causes []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&causes))
	assert.Len(t, causes, 9)

	req = httptest.NewRequest(http.MethodGet, "/api/stock/units", nil)
	req.Header.Set("Authorization", tokenForRole(t, "vendedor"))
	resp, err = srv.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var units []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&units))
	require.Len(t, units, 8)
	byCode := make(map[string]map[string]any, len(units))
	for _, u := range units {
		byCode[u["code"].(string)] = u
	}
	assert.Equal(t, true, byCode["kg"]["fractional"])
	assert.Equal(t, "0.01", byCode["kg"]["default_min_quantity"])
	assert.Equal(t, false, byCode["box"]["fractional"])
	assert.Equal(t, "1", byCode["box"]["default_min_quantity"])

	status, body := call(t, srv, http.MethodGet, "/api/products/A/verify", "admin", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["consistent"])
	assert.Equal(t, float64(1), body["entries"])

	status, body = call(t, srv, http.MethodPost, "/api/products", "admin", map[string]any{"product_id": "A", "unit": "piece"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "DUPLICATE", body["code"])

	status, body = call(t, srv, http.MethodGet, "/api/products/NOPE", "admin", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "PRODUCT_NOT_FOUND", body["code"])
}

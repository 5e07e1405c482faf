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
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/colorstock/internal/application/auth"
	"github.com/jhoicas/colorstock/internal/application/dto"
	"github.com/jhoicas/colorstock/internal/application/inventory"
	"github.com/jhoicas/colorstock/internal/infrastructure/memory"
	"github.com/jhoicas/colorstock/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/colorstock/internal/interfaces/http"
	"github.com/jhoicas/colorstock/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de la API completa
// ──────────────────────────────────────────────────────────────────────────────

const testPassword = "clave-de-prueba"

type apiFixture struct {
	app   *fiber.App
	store *memory.SnapshotStore
	eng   *inventory.Engine
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	store := memory.NewSnapshotStore(nil)
	eng, err := inventory.Open(context.Background(), store, inventory.WithClock(func() time.Time {
		return time.Date(2024, 1, 20, 10, 0, 0, 0, time.UTC)
	}))
	require.NoError(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	authUC := auth.NewAuthUseCase([]auth.Account{
		{Username: testUsername, PasswordHash: string(hash), Role: auth.RoleOperator},
		{Username: "consulta", PasswordHash: string(hash), Role: auth.RoleViewer},
	}, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Engine:       eng,
		AuthUC:       authUC,
		PDF:          pdf.NewStockReportGenerator("ColorStock"),
		Logger:       logger.Nop(),
		JWTSecret:    testJWTSecret,
		HistoryLimit: 20,
	})
	return &apiFixture{app: app, store: store, eng: eng}
}

func (f *apiFixture) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (f *apiFixture) createColorant(t *testing.T, token, ref string, initial, min int64) {
	t.Helper()
	resp := f.do(t, http.MethodPost, "/api/products/colorant", token, dto.CreateProductRequest{
		Reference: ref, Name: "Colorante " + ref,
		StockInitial: decimal.NewFromInt(initial), StockMin: decimal.NewFromInt(min),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_Login(t *testing.T) {
	f := newAPI(t)

	resp := f.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: testUsername, Password: testPassword})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.LoginResponse](t, resp)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, auth.RoleOperator, out.Role)
	assert.Equal(t, testExpMin*60, out.ExpiresIn)

	bad := f.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: testUsername, Password: "otra"})
	assert.Equal(t, http.StatusUnauthorized, bad.StatusCode)

	empty := f.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{})
	assert.Equal(t, http.StatusBadRequest, empty.StatusCode)
}

func TestAPI_SinToken_Retorna401(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodGet, "/api/alerts", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_ViewerNoPuedeEscribir(t *testing.T) {
	f := newAPI(t)
	viewer := tokenForRole(t, auth.RoleViewer)

	resp := f.do(t, http.MethodPost, "/api/products/colorant", viewer, dto.CreateProductRequest{Reference: "C1", Name: "Rojo"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	list := f.do(t, http.MethodGet, "/api/products/colorant", viewer, nil)
	assert.Equal(t, http.StatusOK, list.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos y consumos
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_ConsumoYAlerta(t *testing.T) {
	f := newAPI(t)
	op := tokenForRole(t, auth.RoleOperator)
	f.createColorant(t, op, "C1", 100, 20)

	resp := f.do(t, http.MethodPost, "/api/consumptions", op, dto.RecordConsumptionRequest{
		Kind: "colorant", ProductRef: "C1", Date: "2024-01-15", Qty: decimal.NewFromInt(85),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	res := decode[dto.ConsumptionResultResponse](t, resp)
	assert.True(t, res.Alert)
	require.NotNil(t, res.Product)
	assert.True(t, res.Product.StockReal.Equal(decimal.NewFromInt(15)))
	assert.Equal(t, int64(1), res.Consumption.ID)

	alerts := decode[dto.ListResponse[dto.AlertResponse]](t, f.do(t, http.MethodGet, "/api/alerts", op, nil))
	require.Equal(t, 1, alerts.Total)
	assert.Equal(t, "C1", alerts.Items[0].Reference)

	hist := decode[dto.ListResponse[dto.ConsumptionResponse]](t, f.do(t, http.MethodGet, "/api/consumptions?limit=5", op, nil))
	require.Equal(t, 1, hist.Total)
	assert.Equal(t, "Colorante C1", hist.Items[0].Name)
}

func TestAPI_StockInsuficiente_Retorna409(t *testing.T) {
	f := newAPI(t)
	op := tokenForRole(t, auth.RoleOperator)
	f.createColorant(t, op, "C1", 10, 2)

	resp := f.do(t, http.MethodPost, "/api/consumptions", op, dto.RecordConsumptionRequest{
		Kind: "colorant", ProductRef: "C1", Date: "2024-01-15", Qty: decimal.NewFromInt(11),
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", decode[dto.ErrorResponse](t, resp).Code)
	assert.Equal(t, 1, f.store.Saves(), "solo el alta del producto se guardó")
}

func TestAPI_FechaInvalida_Retorna400(t *testing.T) {
	f := newAPI(t)
	op := tokenForRole(t, auth.RoleOperator)
	f.createColorant(t, op, "C1", 10, 2)

	resp := f.do(t, http.MethodPost, "/api/consumptions", op, dto.RecordConsumptionRequest{
		Kind: "colorant", ProductRef: "C1", Date: "15/01/2024", Qty: decimal.NewFromInt(1),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_DATE", decode[dto.ErrorResponse](t, resp).Code)
}

func TestAPI_ProductoInexistente_Retorna404(t *testing.T) {
	f := newAPI(t)
	op := tokenForRole(t, auth.RoleOperator)

	resp := f.do(t, http.MethodGet, "/api/products/auxiliary/NOPE", op, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	bad := f.do(t, http.MethodGet, "/api/products/pigment", op, nil)
	assert.Equal(t, http.StatusBadRequest, bad.StatusCode)
}

func TestAPI_ReferenciaDuplicada_Retorna409(t *testing.T) {
	f := newAPI(t)
	op := tokenForRole(t, auth.RoleOperator)
	f.createColorant(t, op, "C1", 10, 2)

	resp := f.do(t, http.MethodPost, "/api/products/colorant", op, dto.CreateProductRequest{Reference: "C1", Name: "Otro"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE_REFERENCE", decode[dto.ErrorResponse](t, resp).Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Falla de guardado: 503 NOT_PERSISTED y flush
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_FallaDeGuardado_FlushReintenta(t *testing.T) {
	f := newAPI(t)
	op := tokenForRole(t, auth.RoleOperator)
	f.createColorant(t, op, "C1", 100, 20)

	f.store.FailSaves(true)
	resp := f.do(t, http.MethodPost, "/api/consumptions", op, dto.RecordConsumptionRequest{
		Kind: "colorant", ProductRef: "C1", Date: "2024-01-15", Qty: decimal.NewFromInt(5),
	})
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "NOT_PERSISTED", decode[dto.ErrorResponse](t, resp).Code)
	assert.True(t, f.eng.Dirty())

	// el cambio quedó en memoria
	p := decode[dto.ProductResponse](t, f.do(t, http.MethodGet, "/api/products/colorant/C1", op, nil))
	assert.True(t, p.StockReal.Equal(decimal.NewFromInt(95)))

	failed := f.do(t, http.MethodPost, "/api/snapshot/flush", op, nil)
	assert.Equal(t, http.StatusServiceUnavailable, failed.StatusCode)

	f.store.FailSaves(false)
	ok := f.do(t, http.MethodPost, "/api/snapshot/flush", op, nil)
	require.Equal(t, http.StatusOK, ok.StatusCode)
	assert.False(t, decode[dto.FlushResponse](t, ok).Dirty)
	assert.False(t, f.eng.Dirty())

	snap, err := f.store.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Consumption, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Pedidos e indicadores
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_FlujoDePedidos(t *testing.T) {
	f := newAPI(t)
	op := tokenForRole(t, auth.RoleOperator)

	resp := f.do(t, http.MethodPost, "/api/orders", op, dto.CreateOrderRequest{Reference: "P1", ColorCode: "RAL3020", DateIn: "2024-01-01"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.OrderResponse](t, resp)
	assert.Equal(t, "PENDING", created.Status)
	assert.Nil(t, created.DelayDays)

	resp = f.do(t, http.MethodPost, "/api/orders", op, dto.CreateOrderRequest{Reference: "P2", DateIn: "2024-01-05"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	done := f.do(t, http.MethodPost, "/api/orders/P1/processed", op, nil)
	require.Equal(t, http.StatusOK, done.StatusCode)
	tr := decode[dto.OrderTransitionResponse](t, done)
	assert.False(t, tr.Already)
	require.NotNil(t, tr.Order.DelayDays)
	assert.Equal(t, 19, *tr.Order.DelayDays)
	require.NotNil(t, tr.Order.DateOut)
	assert.Equal(t, "2024-01-20", *tr.Order.DateOut)

	again := decode[dto.OrderTransitionResponse](t, f.do(t, http.MethodPost, "/api/orders/P1/processed", op, nil))
	assert.True(t, again.Already)

	cancelled := f.do(t, http.MethodPost, "/api/orders/P1/cancel", op, nil)
	assert.Equal(t, http.StatusConflict, cancelled.StatusCode)
	assert.Equal(t, "INVALID_TRANSITION", decode[dto.ErrorResponse](t, cancelled).Code)

	stats := decode[dto.OrderStatisticsResponse](t, f.do(t, http.MethodGet, "/api/orders/statistics", op, nil))
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Processed)
	assert.True(t, stats.Rate.Equal(decimal.RequireFromString("0.5")))

	kpis := decode[dto.KPIResponse](t, f.do(t, http.MethodGet, "/api/indicators/kpis", op, nil))
	assert.True(t, kpis.RatePercent.Equal(decimal.NewFromInt(50)))

	pending := decode[dto.ListResponse[dto.OrderResponse]](t, f.do(t, http.MethodGet, "/api/orders?status=pending", op, nil))
	require.Equal(t, 1, pending.Total)
	assert.Equal(t, "P2", pending.Items[0].Reference)

	del := f.do(t, http.MethodDelete, "/api/orders/P2", op, nil)
	assert.Equal(t, http.StatusNoContent, del.StatusCode)
	missing := f.do(t, http.MethodGet, "/api/orders/P2", op, nil)
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestAPI_TopConsumoYReportes(t *testing.T) {
	f := newAPI(t)
	op := tokenForRole(t, auth.RoleOperator)
	f.createColorant(t, op, "C1", 100, 20)
	f.createColorant(t, op, "C2", 100, 20)
	for _, c := range []struct {
		ref string
		qty int64
	}{{"C1", 10}, {"C2", 30}, {"C1", 5}} {
		resp := f.do(t, http.MethodPost, "/api/consumptions", op, dto.RecordConsumptionRequest{
			Kind: "colorant", ProductRef: c.ref, Date: "2024-01-10", Qty: decimal.NewFromInt(c.qty),
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	top := decode[dto.ListResponse[dto.ConsumptionRankResponse]](t, f.do(t, http.MethodGet, "/api/indicators/top?n=1", op, nil))
	require.Equal(t, 1, top.Total)
	assert.Equal(t, "C2", top.Items[0].Reference)
	assert.True(t, top.Items[0].Total.Equal(decimal.NewFromInt(30)))

	report := decode[dto.ListResponse[dto.ReportRowResponse]](t, f.do(t, http.MethodGet, "/api/reports/stock", op, nil))
	assert.Equal(t, 2, report.Total)

	pdfResp := f.do(t, http.MethodGet, "/api/reports/stock.pdf", op, nil)
	require.Equal(t, http.StatusOK, pdfResp.StatusCode)
	assert.Equal(t, "application/pdf", pdfResp.Header.Get("Content-Type"))

	xmlResp := f.do(t, http.MethodGet, "/api/snapshot/export.xml", tokenForRole(t, auth.RoleViewer), nil)
	require.Equal(t, http.StatusOK, xmlResp.StatusCode)
	assert.Contains(t, xmlResp.Header.Get("Content-Disposition"), "inventaire-")
}

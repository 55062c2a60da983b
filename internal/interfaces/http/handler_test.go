package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/application/auth"
	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/jobcost"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	apphttp "github.com/jhoicas/Taller-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Taller-api/pkg/jwt"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

// ── Stubs ────────────────────────────────────────────────────────────────────

type stubParts struct{ parts map[string]*entity.Part }

func (s stubParts) GetByID(_ context.Context, id string) (*entity.Part, error) {
	return s.parts[id], nil
}

func (s stubParts) GetForUpdate(_ context.Context, ids []string) ([]*entity.Part, error) {
	out := []*entity.Part{}
	for _, id := range ids {
		if p, ok := s.parts[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s stubParts) UpdateStockAndCost(context.Context, *entity.Part) error { return nil }

type stubSettings struct{}

func (stubSettings) GetMarkup(context.Context, string) (*entity.MarkupSettings, error) {
	return nil, nil
}

func (stubSettings) GetJobCosting(context.Context, string) (*jobcost.Settings, error) {
	return nil, nil
}

type stubOrders struct{ order *entity.Order }

func (s stubOrders) GetByID(context.Context, string) (*entity.Order, error)      { return s.order, nil }
func (s stubOrders) GetForUpdate(context.Context, string) (*entity.Order, error) { return s.order, nil }
func (s stubOrders) Update(context.Context, *entity.Order) error                 { return nil }

type stubLines struct{}

func (stubLines) ListByOrder(context.Context, string) ([]*entity.OrderLine, error) { return nil, nil }
func (stubLines) Upsert(context.Context, *entity.OrderLine) error                  { return nil }

type stubMovements struct{}

func (stubMovements) Create(context.Context, *entity.InventoryMovement) error { return nil }
func (stubMovements) ListByOrder(context.Context, string) ([]*entity.InventoryMovement, error) {
	return nil, nil
}

type stubReceivings struct{}

func (stubReceivings) Create(context.Context, *entity.ReceivingEntry) error { return nil }
func (stubReceivings) ListByOrder(context.Context, string) ([]*entity.ReceivingEntry, error) {
	return nil, nil
}

type stubTx struct {
	orders stubOrders
	parts  stubParts
}

func (s stubTx) RunOrder(_ context.Context, fn func(
	repository.OrderRepository,
	repository.OrderLineRepository,
	repository.PartRepository,
	repository.InventoryMovementRepository,
	repository.ReceivingRepository,
) error) error {
	return fn(s.orders, stubLines{}, s.parts, stubMovements{}, stubReceivings{})
}

type stubUsers struct{}

func (stubUsers) Create(context.Context, *entity.User) error { return nil }
func (stubUsers) GetByEmail(context.Context, string) (*entity.User, error) {
	return nil, nil
}

type stubPDF struct{}

func (stubPDF) GenerateOrderPDF(context.Context, usecase.OrderDocument) ([]byte, error) {
	return []byte("%PDF-1.3 stub"), nil
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func buildRouterApp(t *testing.T, invoiced *entity.Order) *fiber.App {
	t.Helper()
	avg := decimal.NewFromInt(100)
	parts := stubParts{parts: map[string]*entity.Part{
		"p1": {ID: "p1", CompanyID: testCompanyID, SKU: "BRK-1", Name: "Pastillas", AvgCost: &avg, IsActive: true},
	}}
	markup := entity.MarkupSettings{
		RetailPercent:    decimal.NewFromInt(40),
		FleetPercent:     decimal.NewFromInt(30),
		WholesalePercent: decimal.NewFromInt(20),
	}
	orders := stubOrders{order: invoiced}

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:     auth.NewAuthUseCase(stubUsers{}, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		OrderDocUC: usecase.NewOrderDocumentUseCase(orders, stubLines{}, parts, stubPDF{}, nil),
		PricingUC: usecase.NewPricingUseCase(parts, stubSettings{}, markup),
		JobCostUC: usecase.NewJobCostUseCase(stubSettings{}, jobcost.DefaultConfig()),
		OrderUC:   usecase.NewOrderUseCase(stubTx{orders: orders, parts: parts}, orders, stubLines{}, logger.Nop()),
		InsightUC: usecase.NewInsightUseCase(nil, nil, nil),
		JWTSecret: testJWTSecret,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, role, body string) *http.Response {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Authorization", tokenForRole(t, role))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func invoicedOrder() *entity.Order {
	return &entity.Order{
		ID:        "so1",
		CompanyID: testCompanyID,
		Kind:      entity.OrderKindSales,
		Number:    "SO-1",
		Status:    entity.OrderStatusInvoiced,
	}
}

// ── Precios ──────────────────────────────────────────────────────────────────

func TestPricingHandler_QuoteRetailPorDefecto(t *testing.T) {
	app := buildRouterApp(t, invoicedOrder())
	resp := call(t, app, http.MethodGet, "/api/parts/p1/price", pkgjwt.RoleReadOnly, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.PriceQuoteResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "RETAIL", out.Level)
	require.NotNil(t, out.Price)
	assert.True(t, decimal.NewFromInt(140).Equal(*out.Price))
}

func TestPricingHandler_RepuestoInexistente404(t *testing.T) {
	app := buildRouterApp(t, invoicedOrder())
	resp := call(t, app, http.MethodGet, "/api/parts/nope/prices", pkgjwt.RoleAdmin, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ── Costeo ───────────────────────────────────────────────────────────────────

func TestJobHandler_CantidadNegativa400(t *testing.T) {
	app := buildRouterApp(t, invoicedOrder())
	resp := call(t, app, http.MethodPost, "/api/jobs/calculate", pkgjwt.RoleAdvisor, `{"lines":[{"qty":-1}]}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "INVALID_QUANTITY", out.Code)
}

func TestJobHandler_ComprasNoPuedeCostear(t *testing.T) {
	app := buildRouterApp(t, invoicedOrder())
	resp := call(t, app, http.MethodPost, "/api/jobs/calculate", pkgjwt.RoleBuyer, `{"lines":[]}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// ── Órdenes ──────────────────────────────────────────────────────────────────

func TestOrderHandler_OrdenFacturadaRetorna409(t *testing.T) {
	app := buildRouterApp(t, invoicedOrder())
	resp := call(t, app, http.MethodPost, "/api/orders/so1/lines", pkgjwt.RoleAdvisor, `{"part_id":"p1","quantity":1}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "ORDER_LOCKED", out.Code)
}

func TestOrderHandler_OrdenDeOtraEmpresa403(t *testing.T) {
	o := invoicedOrder()
	o.CompanyID = "otra"
	app := buildRouterApp(t, o)
	resp := call(t, app, http.MethodPost, "/api/orders/so1/recalculate", pkgjwt.RoleAdmin, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestOrderHandler_UpdateSinCantidad400(t *testing.T) {
	app := buildRouterApp(t, invoicedOrder())
	resp := call(t, app, http.MethodPatch, "/api/orders/so1/lines/l1", pkgjwt.RoleAdvisor, `{}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestOrderHandler_ConsultaNoRecibe(t *testing.T) {
	app := buildRouterApp(t, invoicedOrder())
	resp := call(t, app, http.MethodPost, "/api/orders/so1/lines/l1/receive", pkgjwt.RoleReadOnly, `{"quantity":1}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestOrderHandler_DescargaPDF(t *testing.T) {
	app := buildRouterApp(t, invoicedOrder())
	resp := call(t, app, http.MethodGet, "/api/orders/so1/pdf", pkgjwt.RoleReadOnly, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "orden_SO-1.pdf")
}

// ── Auth ─────────────────────────────────────────────────────────────────────

func TestAuthHandler_LoginEsPublicoYRechazaCredenciales(t *testing.T) {
	app := buildRouterApp(t, invoicedOrder())
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"x@t.co","password":"secreto123"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "UNAUTHORIZED", out.Code, "sin token debe llegar al handler, no al middleware")
}

func TestAuthHandler_SoloAdminCreaUsuarios(t *testing.T) {
	app := buildRouterApp(t, invoicedOrder())
	body := `{"email":"nuevo@t.co","password":"secreto123","role":"asesor"}`

	resp := call(t, app, http.MethodPost, "/api/users", pkgjwt.RoleAdvisor, body)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/users", pkgjwt.RoleAdmin, body)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appprocurement "github.com/erp/supplier-gateway/internal/application/procurement"
	"github.com/erp/supplier-gateway/internal/domain/procurement"
)

// ---------------------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------------------

type stubGateway struct {
	code      procurement.SupplierCode
	cart      *procurement.CartResult
	updateErr error
	partData  *procurement.PartData
	partErr   error
	oauthCode string
}

func (g *stubGateway) Code() procurement.SupplierCode { return g.code }

func (g *stubGateway) CreateCart(ctx context.Context, order *procurement.PurchaseOrder) (procurement.CartHandle, error) {
	return procurement.CartHandle{}, nil
}

func (g *stubGateway) UpdateCart(ctx context.Context, order *procurement.PurchaseOrder, handle procurement.CartHandle) (*procurement.CartResult, error) {
	if g.updateErr != nil {
		return nil, g.updateErr
	}
	return g.cart, nil
}

func (g *stubGateway) GetPartData(ctx context.Context, sku string, opts procurement.PartSearchOptions) (*procurement.PartData, error) {
	if g.partErr != nil {
		return nil, g.partErr
	}
	return g.partData, nil
}

func (g *stubGateway) ExchangeAuthorizationCode(ctx context.Context, code string) error {
	g.oauthCode = code
	return nil
}

type stubRegistry struct {
	gateways map[procurement.SupplierCode]procurement.SupplierGateway
}

func (r *stubRegistry) Gateway(code procurement.SupplierCode) (procurement.SupplierGateway, error) {
	gw, ok := r.gateways[code]
	if !ok {
		return nil, procurement.ErrSupplierNotConfigured
	}
	return gw, nil
}

func (r *stubRegistry) List() []procurement.SupplierGateway {
	out := make([]procurement.SupplierGateway, 0, len(r.gateways))
	for _, gw := range r.gateways {
		out = append(out, gw)
	}
	return out
}

type stubOrderRepo struct {
	orders map[uuid.UUID]*procurement.PurchaseOrder
}

func (r *stubOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*procurement.PurchaseOrder, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, procurement.ErrOrderNotFound
	}
	return order, nil
}

func (r *stubOrderRepo) UpdateLinePrice(ctx context.Context, orderID uuid.UUID, sku string, price decimal.Decimal) error {
	return nil
}

type stubCatalogWriter struct {
	existing bool
	created  []*procurement.SupplierPart
}

func (w *stubCatalogWriter) ExistsBySKU(ctx context.Context, supplier procurement.SupplierCode, sku string) (bool, error) {
	return w.existing, nil
}

func (w *stubCatalogWriter) CreatePart(ctx context.Context, part *procurement.SupplierPart) error {
	part.ID = uuid.New()
	w.created = append(w.created, part)
	return nil
}

// ---------------------------------------------------------------------------
// Harness
// ---------------------------------------------------------------------------

func setupProcurementRouter(t *testing.T, gw *stubGateway, orders *stubOrderRepo, catalog *stubCatalogWriter) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry := &stubRegistry{gateways: map[procurement.SupplierCode]procurement.SupplierGateway{}}
	if gw != nil {
		registry.gateways[gw.code] = gw
	}
	if orders == nil {
		orders = &stubOrderRepo{orders: map[uuid.UUID]*procurement.PurchaseOrder{}}
	}
	if catalog == nil {
		catalog = &stubCatalogWriter{}
	}

	logger := zap.NewNop()
	handler := NewProcurementHandler(
		appprocurement.NewCartTransferService(registry, orders, logger),
		appprocurement.NewCatalogService(registry, catalog, logger),
		appprocurement.NewOAuthService(registry, logger),
		registry,
	)

	engine := gin.New()
	handler.RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
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
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	return w, parsed
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestProcurementHandler_TransferCart(t *testing.T) {
	order := &procurement.PurchaseOrder{
		ID:        uuid.New(),
		Reference: "PO-0042",
		Supplier:  procurement.SupplierCodeMouser,
		Lines: []procurement.OrderLine{
			{SKU: "771-BC847C", Quantity: 100, PackQuantity: 1},
			{SKU: "MISSING-1", Quantity: 5, PackQuantity: 1},
		},
	}
	gw := &stubGateway{
		code: procurement.SupplierCodeMouser,
		cart: &procurement.CartResult{
			MerchandiseTotal: decimal.RequireFromString("4.50"),
			CurrencyCode:     "EUR",
			CartKey:          "cart-abc",
			Items: []procurement.CartItem{
				{SKU: "771-BC847C", QuantityRequested: 100, QuantityAvailable: 54000,
					UnitPrice: decimal.RequireFromString("0.045"), ExtendedPrice: decimal.RequireFromString("4.50")},
				{SKU: "MISSING-1", Error: "Part not found"},
			},
		},
	}
	orders := &stubOrderRepo{orders: map[uuid.UUID]*procurement.PurchaseOrder{order.ID: order}}

	t.Run("successful transfer", func(t *testing.T) {
		engine := setupProcurementRouter(t, gw, orders, nil)
		w, body := doJSON(t, engine, http.MethodPost, "/api/v1/suppliers/cart-transfers",
			gin.H{"order_id": order.ID.String()})

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, body["success"])
		data := body["data"].(map[string]any)
		assert.Equal(t, "DONE", data["state"])
		assert.Equal(t, "cart-abc", data["cart_key"])
		assert.Equal(t, "EUR", data["currency_code"])

		items := data["items"].([]any)
		require.Len(t, items, 2)
		first := items[0].(map[string]any)
		assert.Equal(t, "OK", first["error_status"])
		second := items[1].(map[string]any)
		assert.Equal(t, "Part not found", second["error_status"])
	})

	t.Run("malformed order id", func(t *testing.T) {
		engine := setupProcurementRouter(t, gw, orders, nil)
		w, body := doJSON(t, engine, http.MethodPost, "/api/v1/suppliers/cart-transfers",
			gin.H{"order_id": "not-a-uuid"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, false, body["success"])
	})

	t.Run("unknown order", func(t *testing.T) {
		engine := setupProcurementRouter(t, gw, orders, nil)
		w, body := doJSON(t, engine, http.MethodPost, "/api/v1/suppliers/cart-transfers",
			gin.H{"order_id": uuid.New().String()})

		assert.Equal(t, http.StatusNotFound, w.Code)
		errInfo := body["error"].(map[string]any)
		assert.Equal(t, "ERR_NOT_FOUND", errInfo["code"])
	})

	t.Run("supplier unreachable", func(t *testing.T) {
		down := &stubGateway{
			code:      procurement.SupplierCodeMouser,
			updateErr: procurement.NewTransportError(procurement.SupplierCodeMouser, context.DeadlineExceeded),
		}
		engine := setupProcurementRouter(t, down, orders, nil)
		w, body := doJSON(t, engine, http.MethodPost, "/api/v1/suppliers/cart-transfers",
			gin.H{"order_id": order.ID.String()})

		assert.Equal(t, http.StatusBadGateway, w.Code)
		errInfo := body["error"].(map[string]any)
		assert.Equal(t, "ERR_SUPPLIER_UNREACHABLE", errInfo["code"])
		assert.Contains(t, errInfo["message"], "connection error")
	})
}

func TestProcurementHandler_GetPartData(t *testing.T) {
	gw := &stubGateway{
		code: procurement.SupplierCodeMouser,
		partData: &procurement.PartData{
			SKU:                    "771-BC847C",
			ManufacturerPartNumber: "BC847C",
			PackQuantity:           "1",
			NumberOfResults:        1,
			PriceBreaks: []procurement.PriceBreak{
				{Quantity: 1, Price: decimal.RequireFromString("0.10"), Currency: "EUR"},
			},
		},
	}

	t.Run("lookup", func(t *testing.T) {
		engine := setupProcurementRouter(t, gw, nil, nil)
		w, body := doJSON(t, engine, http.MethodGet, "/api/v1/suppliers/mouser/parts/771-BC847C", nil)

		require.Equal(t, http.StatusOK, w.Code)
		data := body["data"].(map[string]any)
		assert.Equal(t, "771-BC847C", data["sku"])
		assert.Equal(t, "BC847C", data["manufacturer_part_number"])
		assert.Equal(t, float64(1), data["number_of_results"])
		breaks := data["price_breaks"].([]any)
		require.Len(t, breaks, 1)
	})

	t.Run("unknown supplier code", func(t *testing.T) {
		engine := setupProcurementRouter(t, gw, nil, nil)
		w, body := doJSON(t, engine, http.MethodGet, "/api/v1/suppliers/aliexpress/parts/XYZ", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, false, body["success"])
	})

	t.Run("unconfigured supplier", func(t *testing.T) {
		engine := setupProcurementRouter(t, gw, nil, nil)
		w, body := doJSON(t, engine, http.MethodGet, "/api/v1/suppliers/farnell/parts/XYZ", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		errInfo := body["error"].(map[string]any)
		assert.Equal(t, "ERR_SUPPLIER_NOT_CONFIGURED", errInfo["code"])
	})
}

func TestProcurementHandler_CreateCatalogEntry(t *testing.T) {
	gw := &stubGateway{
		code: procurement.SupplierCodeMouser,
		partData: &procurement.PartData{
			SKU:             "771-BC847C",
			PackQuantity:    "1",
			NumberOfResults: 1,
		},
	}

	t.Run("created", func(t *testing.T) {
		catalog := &stubCatalogWriter{}
		engine := setupProcurementRouter(t, gw, nil, catalog)
		w, body := doJSON(t, engine, http.MethodPost, "/api/v1/suppliers/mouser/parts",
			gin.H{"sku": "771-BC847C"})

		require.Equal(t, http.StatusCreated, w.Code)
		data := body["data"].(map[string]any)
		assert.Equal(t, "771-BC847C", data["sku"])
		assert.Equal(t, "MOUSER", data["supplier"])
		require.Len(t, catalog.created, 1)
	})

	t.Run("duplicate", func(t *testing.T) {
		engine := setupProcurementRouter(t, gw, nil, &stubCatalogWriter{existing: true})
		w, body := doJSON(t, engine, http.MethodPost, "/api/v1/suppliers/mouser/parts",
			gin.H{"sku": "771-BC847C"})

		assert.Equal(t, http.StatusConflict, w.Code)
		errInfo := body["error"].(map[string]any)
		assert.Equal(t, "ERR_ALREADY_EXISTS", errInfo["code"])
	})

	t.Run("missing sku", func(t *testing.T) {
		engine := setupProcurementRouter(t, gw, nil, nil)
		w, _ := doJSON(t, engine, http.MethodPost, "/api/v1/suppliers/mouser/parts", gin.H{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestProcurementHandler_OAuthCallback(t *testing.T) {
	gw := &stubGateway{code: procurement.SupplierCodeDigiKey}

	t.Run("authorization completed", func(t *testing.T) {
		engine := setupProcurementRouter(t, gw, nil, nil)
		w, body := doJSON(t, engine, http.MethodGet, "/api/v1/suppliers/digikey/oauth/callback?code=auth-code-1", nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "auth-code-1", gw.oauthCode)
	})

	t.Run("missing code", func(t *testing.T) {
		engine := setupProcurementRouter(t, gw, nil, nil)
		w, body := doJSON(t, engine, http.MethodGet, "/api/v1/suppliers/digikey/oauth/callback", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		errInfo := body["error"].(map[string]any)
		assert.Equal(t, "ERR_VALIDATION", errInfo["code"])
	})
}

func TestProcurementHandler_ListSuppliers(t *testing.T) {
	gw := &stubGateway{code: procurement.SupplierCodeMouser}
	engine := setupProcurementRouter(t, gw, nil, nil)

	w, body := doJSON(t, engine, http.MethodGet, "/api/v1/suppliers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := body["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "MOUSER", data[0].(map[string]any)["code"])
}

package suppliers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/erp/supplier-gateway/internal/domain/procurement"
)

func newTestFarnellAdapter(t *testing.T, serverURL string) *FarnellAdapter {
	t.Helper()
	cfg := NewFarnellConfig("search-key")
	cfg.APIBaseURL = serverURL
	adapter, err := NewFarnellAdapter(cfg, zap.NewNop())
	require.NoError(t, err)
	return adapter
}

func TestFarnellAdapter_CartOperationsRefuse(t *testing.T) {
	adapter := newTestFarnellAdapter(t, FarnellProductionAPIURL)
	order := &procurement.PurchaseOrder{Reference: "PO-0042"}

	_, err := adapter.CreateCart(context.Background(), order)
	require.Error(t, err)
	var gwErr *procurement.GatewayError
	require.True(t, errors.As(err, &gwErr))
	assert.Equal(t, "Not supported yet", gwErr.Message)

	_, err = adapter.UpdateCart(context.Background(), order, procurement.CartHandle{})
	require.Error(t, err)
	require.True(t, errors.As(err, &gwErr))
	assert.Equal(t, "Not supported yet", gwErr.Message)
}

func TestFarnellAdapter_GetPartData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/catalog/products", r.URL.Path)
		assert.Equal(t, "id:2112718", r.URL.Query().Get("term"))
		assert.Equal(t, "de.farnell.com", r.URL.Query().Get("storeInfo.id"))
		assert.Equal(t, "search-key", r.URL.Query().Get("callinfo.apiKey"))
		fmt.Fprint(w, `{
			"premierFarnellPartNumberReturn": {
				"numberOfResults": 1,
				"products": [{
					"sku": "2112718",
					"translatedManufacturerPartNumber": "BC847C",
					"displayName": "Bipolar Transistor, NPN, 45 V",
					"productStatus": "ACTIVE",
					"unitOfMeasure": "EACH",
					"translatedMinimumOrderQuality": 5,
					"prices": [
						{"from": 1, "to": 9, "cost": 0.0349},
						{"from": 10, "to": 99, "cost": 0.0214}
					]
				}]
			}
		}`)
	}))
	defer server.Close()

	adapter := newTestFarnellAdapter(t, server.URL)
	data, err := adapter.GetPartData(context.Background(), "2112718", procurement.PartSearchOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, data.NumberOfResults)
	assert.Equal(t, "2112718", data.SKU)
	assert.Equal(t, "BC847C", data.ManufacturerPartNumber)
	assert.Equal(t, "Bipolar Transistor, NPN, 45 V", data.Description)
	assert.Equal(t, "ACTIVE", data.LifecycleStatus)
	assert.Equal(t, "EACH", data.Package)
	assert.Equal(t, "5", data.PackQuantity)
	assert.Contains(t, data.URL, "fsku=2112718")
	require.Len(t, data.PriceBreaks, 2)
	assert.Equal(t, 10, data.PriceBreaks[1].Quantity)
	assert.True(t, decimal.RequireFromString("0.0214").Equal(data.PriceBreaks[1].Price))
	// Farnell never reports a currency; the store's currency applies.
	assert.Equal(t, "EUR", data.PriceBreaks[1].Currency)
}

func TestFarnellAdapter_GetPartData_ZeroResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"premierFarnellPartNumberReturn": {"numberOfResults": 0, "products": []}}`)
	}))
	defer server.Close()

	adapter := newTestFarnellAdapter(t, server.URL)
	data, err := adapter.GetPartData(context.Background(), "notthere", procurement.PartSearchOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, data.NumberOfResults)
	assert.Empty(t, data.PriceBreaks)
}

func TestFarnellAdapter_GetPartData_BackendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error": {"code": 401, "message": "Invalid api key"}}`)
	}))
	defer server.Close()

	adapter := newTestFarnellAdapter(t, server.URL)
	_, err := adapter.GetPartData(context.Background(), "2112718", procurement.PartSearchOptions{})
	require.Error(t, err)

	var gwErr *procurement.GatewayError
	require.True(t, errors.As(err, &gwErr))
	assert.Equal(t, procurement.ErrorKindBackend, gwErr.Kind)
	assert.Contains(t, gwErr.Message, "Invalid api key")
}

func TestFarnellAdapter_GetPartData_NonJSONReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "<html>Bad Gateway</html>", http.StatusBadGateway)
	}))
	defer server.Close()

	adapter := newTestFarnellAdapter(t, server.URL)
	_, err := adapter.GetPartData(context.Background(), "2112718", procurement.PartSearchOptions{})
	require.Error(t, err)

	var gwErr *procurement.GatewayError
	require.True(t, errors.As(err, &gwErr))
	assert.Equal(t, "HTTP_502", gwErr.Code)
	assert.Contains(t, gwErr.Message, "Bad Gateway")
}

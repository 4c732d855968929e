package suppliers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/erp/supplier-gateway/internal/domain/procurement"
)

// FarnellAdapter implements the SupplierGateway interface for Farnell
// (element14). Farnell exposes no cart or list API at all; it participates
// in catalog lookup only and both cart operations refuse immediately.
type FarnellAdapter struct {
	config     *FarnellConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewFarnellAdapter creates a new Farnell adapter with the given configuration
func NewFarnellAdapter(config *FarnellConfig, logger *zap.Logger) (*FarnellAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &FarnellAdapter{
		config:     config,
		httpClient: newHTTPClient(config.TimeoutSeconds, config.ProxyURL),
		logger:     logger.Named("farnell"),
	}, nil
}

// Code returns the supplier code this gateway handles
func (a *FarnellAdapter) Code() procurement.SupplierCode {
	return procurement.SupplierCodeFarnell
}

// CreateCart is not available for Farnell
func (a *FarnellAdapter) CreateCart(_ context.Context, _ *procurement.PurchaseOrder) (procurement.CartHandle, error) {
	return procurement.CartHandle{}, a.cartNotSupported()
}

// UpdateCart is not available for Farnell
func (a *FarnellAdapter) UpdateCart(_ context.Context, _ *procurement.PurchaseOrder, _ procurement.CartHandle) (*procurement.CartResult, error) {
	return nil, a.cartNotSupported()
}

func (a *FarnellAdapter) cartNotSupported() error {
	return procurement.NewGatewayError(a.Code(), procurement.ErrorKindLocalValidation,
		"CART_NOT_SUPPORTED", "Not supported yet")
}

// GetPartData looks up a single SKU in the configured regional store. The
// store fixes region and currency; prices come back as bare numbers.
func (a *FarnellAdapter) GetPartData(ctx context.Context, sku string, _ procurement.PartSearchOptions) (*procurement.PartData, error) {
	query := url.Values{
		"term":                          {"id:" + sku},
		"storeInfo.id":                  {a.config.StoreID},
		"resultsSettings.responseGroup": {"large"},
		"callInfo.responseDataFormat":   {"json"},
		"callinfo.apiKey":               {a.config.SearchAPIKey},
	}
	endpoint := a.config.APIBaseURL + "/catalog/products?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, procurement.NewGatewayError(a.Code(), procurement.ErrorKindLocalValidation,
			"REQUEST_FAILED", err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, procurement.NewTransportError(a.Code(), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSupplierResponseSize))
	if err != nil {
		return nil, procurement.NewTransportError(a.Code(), err)
	}

	// Non-JSON replies happen on gateway-level failures; surface the raw
	// body rather than a decode error.
	var search FarnellSearchResponse
	if err := json.Unmarshal(body, &search); err != nil {
		return nil, procurement.NewGatewayError(a.Code(), procurement.ErrorKindBackend,
			fmt.Sprintf("HTTP_%d", resp.StatusCode), string(body))
	}
	if len(search.Error) > 0 {
		return nil, procurement.NewGatewayError(a.Code(), procurement.ErrorKindBackend,
			"BACKEND_ERROR", string(search.Error))
	}
	if search.PartNumberReturn == nil {
		return nil, procurement.NewGatewayError(a.Code(), procurement.ErrorKindBackend,
			"INVALID_RESPONSE", string(body))
	}

	partData := &procurement.PartData{PriceBreaks: []procurement.PriceBreak{}}
	if search.PartNumberReturn.NumberOfResults == 0 || len(search.PartNumberReturn.Products) == 0 {
		return partData, nil
	}

	product := search.PartNumberReturn.Products[0]
	partData.NumberOfResults = search.PartNumberReturn.NumberOfResults
	partData.SKU = product.SKU
	partData.ManufacturerPartNumber = product.TranslatedManufacturerPartNumber
	partData.URL = "https://www.element14.com/community/view-product.jspa?fsku=" + url.QueryEscape(sku)
	partData.LifecycleStatus = product.ProductStatus
	partData.Description = product.DisplayName
	partData.Package = product.UnitOfMeasure
	partData.PackQuantity = NormalizePackQuantity(product.TranslatedMinimumOrderQuality)
	for _, pb := range product.Prices {
		partData.PriceBreaks = append(partData.PriceBreaks, procurement.PriceBreak{
			Quantity: pb.From,
			Price:    decimal.NewFromFloat(pb.Cost),
			Currency: a.config.CurrencyCode,
		})
	}

	a.logger.Debug("part data fetched",
		zap.String("sku", sku),
		zap.Int("results", partData.NumberOfResults),
	)
	return partData, nil
}

// Ensure FarnellAdapter implements SupplierGateway interface
var _ procurement.SupplierGateway = (*FarnellAdapter)(nil)

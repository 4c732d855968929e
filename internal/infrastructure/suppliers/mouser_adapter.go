package suppliers

import (
	"bytes"
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

// maxSupplierResponseSize limits response bodies to prevent memory exhaustion
const maxSupplierResponseSize = 10 * 1024 * 1024 // 10MB max response

// packagingAttributeNames maps the configured response language to the
// attribute name Mouser uses for packaging. The response language cannot be
// selected; it is fixed to the requesting region.
var packagingAttributeNames = map[string]string{
	"English": "Packaging",
	"German":  "Verpackung",
}

// MouserAdapter implements the SupplierGateway interface for Mouser. Mouser
// has a true cart API: the backend mints a cart key on first insert, so
// CreateCart is a stateless placeholder and UpdateCart gets authoritative
// pricing straight from the insert response.
type MouserAdapter struct {
	config     *MouserConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewMouserAdapter creates a new Mouser adapter with the given configuration
func NewMouserAdapter(config *MouserConfig, logger *zap.Logger) (*MouserAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &MouserAdapter{
		config:     config,
		httpClient: newHTTPClient(config.TimeoutSeconds, config.ProxyURL),
		logger:     logger.Named("mouser"),
	}, nil
}

// Code returns the supplier code this gateway handles
func (a *MouserAdapter) Code() procurement.SupplierCode {
	return procurement.SupplierCodeMouser
}

// CreateCart is a placeholder for Mouser: the backend creates the cart
// automatically during item insertion, so no handle is reserved here.
func (a *MouserAdapter) CreateCart(_ context.Context, _ *procurement.PurchaseOrder) (procurement.CartHandle, error) {
	return procurement.CartHandle{ID: ""}, nil
}

// UpdateCart posts every order line in one batched insert and reads the
// authoritative cart contents back from the same response.
func (a *MouserAdapter) UpdateCart(ctx context.Context, order *procurement.PurchaseOrder, handle procurement.CartHandle) (*procurement.CartResult, error) {
	items := make([]MouserCartItemPost, 0, len(order.Lines))
	for _, line := range order.Lines {
		items = append(items, MouserCartItemPost{
			MouserPartNumber:   line.SKU,
			Quantity:           line.Quantity,
			CustomerPartNumber: line.CustomerReference,
		})
	}
	request := MouserCartRequest{CartKey: handle.ID, CartItems: items}

	endpoint := fmt.Sprintf("%s/api/v001/cart/items/insert?apiKey=%s&countryCode=%s",
		a.config.APIBaseURL, url.QueryEscape(a.config.CartAPIKey), a.config.CountryCode)

	body, status, err := a.doJSONRequest(ctx, http.MethodPost, endpoint, request)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, procurement.NewGatewayError(a.Code(), procurement.ErrorKindBackend,
			fmt.Sprintf("HTTP_%d", status), string(body))
	}

	var resp MouserCartResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, procurement.NewGatewayError(a.Code(), procurement.ErrorKindBackend,
			"INVALID_RESPONSE", fmt.Sprintf("failed to parse cart response: %v", err))
	}

	// A batch-level Errors array is always fatal for the whole operation.
	if len(resp.Errors) > 0 {
		return nil, procurement.NewGatewayError(a.Code(), procurement.ErrorKindBackend,
			mapMouserErrorCode(resp.Errors[0].Code), resp.Errors[0].Message)
	}

	result := &procurement.CartResult{
		MerchandiseTotal: decimal.NewFromFloat(resp.MerchandiseTotal),
		Items:            make([]procurement.CartItem, 0, len(resp.CartItems)),
		CartKey:          resp.CartKey,
		CurrencyCode:     resp.CurrencyCode,
	}

	for _, p := range resp.CartItems {
		item := procurement.CartItem{
			SKU:               p.MouserPartNumber,
			CustomerReference: p.CartItemCustPartNumber,
			QuantityRequested: p.Quantity,
			QuantityAvailable: p.MouserATS,
			UnitPrice:         decimal.NewFromFloat(p.UnitPrice),
			ExtendedPrice:     decimal.NewFromFloat(p.ExtendedPrice),
		}
		// Item-level errors are tagged on the line, never a batch abort.
		if len(p.Errors) > 0 {
			item.Error = p.Errors[0].Message
		}
		result.Items = append(result.Items, item)
	}

	a.logger.Info("mouser cart updated",
		zap.String("cart_key", resp.CartKey),
		zap.Int("items", len(result.Items)),
	)
	return result, nil
}

// GetPartData performs a single-SKU lookup against the Mouser search API.
// The match-strictness option is forwarded verbatim.
func (a *MouserAdapter) GetPartData(ctx context.Context, sku string, opts procurement.PartSearchOptions) (*procurement.PartData, error) {
	request := MouserSearchRequest{
		SearchByPartRequest: MouserSearchByPartRequest{
			MouserPartNumber:  sku,
			PartSearchOptions: opts.Mode,
		},
	}

	endpoint := fmt.Sprintf("%s/api/v1.0/search/partnumber?apiKey=%s",
		a.config.APIBaseURL, url.QueryEscape(a.config.SearchAPIKey))

	body, _, err := a.doJSONRequest(ctx, http.MethodPost, endpoint, request)
	if err != nil {
		return nil, err
	}

	var resp MouserSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, procurement.NewGatewayError(a.Code(), procurement.ErrorKindBackend,
			"INVALID_RESPONSE", string(body))
	}

	// Some errors do not come in the Errors array but in a top-level
	// Message, still inside a 200 envelope.
	if resp.Message != "" {
		return nil, procurement.NewGatewayError(a.Code(), procurement.ErrorKindBackend, "", resp.Message)
	}
	if len(resp.Errors) > 0 {
		code := mapMouserErrorCode(resp.Errors[0].Code)
		kind := procurement.ErrorKindBackend
		if code == "InvalidAuthorization" {
			kind = procurement.ErrorKindAuth
		}
		return nil, procurement.NewGatewayError(a.Code(), kind, code, resp.Errors[0].Message)
	}
	if resp.SearchResults == nil {
		return nil, procurement.NewGatewayError(a.Code(), procurement.ErrorKindBackend,
			"INVALID_RESPONSE", "search results missing from response")
	}

	partData := &procurement.PartData{PriceBreaks: []procurement.PriceBreak{}}
	if resp.SearchResults.NumberOfResult == 0 {
		return partData, nil
	}

	// Mouser sometimes reports parts with a different SKU even when an
	// exact search was requested; only exact matches count.
	for _, pd := range resp.SearchResults.Parts {
		if pd.MouserPartNumber != sku {
			a.logger.Debug("skipping non-exact search result",
				zap.String("requested", sku),
				zap.String("returned", pd.MouserPartNumber),
			)
			continue
		}
		partData.SKU = pd.MouserPartNumber
		partData.ManufacturerPartNumber = pd.ManufacturerPartNumber
		partData.URL = pd.ProductDetailUrl
		partData.LifecycleStatus = pd.LifecycleStatus
		partData.Description = pd.Description
		// Mult is passed through untouched; Mouser's zero has no special
		// meaning here, unlike DigiKey's.
		partData.PackQuantity = pd.Mult
		partData.Package = a.extractPackage(pd)
		partData.PriceBreaks = partData.PriceBreaks[:0]
		for _, pb := range pd.PriceBreaks {
			partData.PriceBreaks = append(partData.PriceBreaks, procurement.PriceBreak{
				Quantity: pb.Quantity,
				Price:    ReformatLocalePrice(pb.Price),
				Currency: pb.Currency,
			})
		}
		partData.NumberOfResults++
	}

	return partData, nil
}

// extractPackage concatenates the packaging attributes from the part data.
// The attribute name depends on the configured response language.
func (a *MouserAdapter) extractPackage(part MouserPart) string {
	attrName, ok := packagingAttributeNames[a.config.Language]
	if !ok {
		attrName = packagingAttributeNames["English"]
	}
	pkg := ""
	for _, att := range part.ProductAttributes {
		if att.AttributeName == attrName {
			pkg += att.AttributeValue + ", "
		}
	}
	return pkg
}

// doJSONRequest posts the payload and returns the raw body and status.
// Transport failures map to the synthetic connection error.
func (a *MouserAdapter) doJSONRequest(ctx context.Context, method, endpoint string, payload any) ([]byte, int, error) {
	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, procurement.NewGatewayError(a.Code(), procurement.ErrorKindLocalValidation,
			"MARSHAL_FAILED", err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, 0, procurement.NewGatewayError(a.Code(), procurement.ErrorKindLocalValidation,
			"REQUEST_FAILED", err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, 0, procurement.NewTransportError(a.Code(), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSupplierResponseSize))
	if err != nil {
		return nil, 0, procurement.NewTransportError(a.Code(), err)
	}
	return body, resp.StatusCode, nil
}

// mapMouserErrorCode maps the known Mouser error codes to friendlier
// categories. Unrecognized codes pass through verbatim rather than being
// obscured.
func mapMouserErrorCode(code string) string {
	switch code {
	case "Invalid":
		return "InvalidAuthorization"
	case "InvalidCharacters":
		return "InvalidCharacters"
	case "TooManyRequests":
		return "TooManyRequests"
	default:
		return code
	}
}

// Ensure MouserAdapter implements SupplierGateway interface
var _ procurement.SupplierGateway = (*MouserAdapter)(nil)

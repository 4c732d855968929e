package suppliers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/erp/supplier-gateway/internal/domain/procurement"
)

// packTypeNames translates DigiKey pack type codes into readable names.
// Unknown codes pass through verbatim.
var packTypeNames = map[string]string{
	"TR":  "full reel",
	"DKR": "DigiReel",
	"CT":  "cut tape",
	"BAG": "bulk",
}

// DigiKeyAdapter implements the SupplierGateway interface for DigiKey.
// DigiKey has no cart API, so carts are emulated with the MyLists API: a
// list is created per order and the operator converts it to a cart or quote
// in the DigiKey web UI. List names are blocked forever once used, even
// after deletion, hence the reservation store and the bounded name probe.
type DigiKeyAdapter struct {
	config       *DigiKeyConfig
	httpClient   *http.Client
	logger       *zap.Logger
	tokens       procurement.TokenStore
	reservations procurement.ListReservationStore

	// refreshGroup serializes token refreshes. The refresh token rotates on
	// every call, so two concurrent refreshes would invalidate each other.
	refreshGroup singleflight.Group
}

// NewDigiKeyAdapter creates a new DigiKey adapter with the given configuration
func NewDigiKeyAdapter(config *DigiKeyConfig, tokens procurement.TokenStore, reservations procurement.ListReservationStore, logger *zap.Logger) (*DigiKeyAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &DigiKeyAdapter{
		config:       config,
		httpClient:   newHTTPClient(config.TimeoutSeconds, config.ProxyURL),
		logger:       logger.Named("digikey"),
		tokens:       tokens,
		reservations: reservations,
	}, nil
}

// Code returns the supplier code this gateway handles
func (a *DigiKeyAdapter) Code() procurement.SupplierCode {
	return procurement.SupplierCodeDigiKey
}

// ---------------------------------------------------------------------------
// OAuth2
// ---------------------------------------------------------------------------

// refreshAccessToken rotates the stored token pair and returns a fresh
// access token. Refreshes are single-flighted: concurrent callers share one
// refresh and its result. Both tokens are persisted before the function
// returns, because the old refresh token is already dead at that point.
func (a *DigiKeyAdapter) refreshAccessToken(ctx context.Context) (string, error) {
	v, err, _ := a.refreshGroup.Do(string(a.Code()), func() (any, error) {
		stored, err := a.tokens.Token(ctx, a.Code())
		if err != nil {
			return "", procurement.NewGatewayError(a.Code(), procurement.ErrorKindAuth,
				"TOKEN_MISSING", err.Error())
		}
		form := url.Values{
			"client_id":     {a.config.ClientID},
			"client_secret": {a.config.ClientSecret},
			"refresh_token": {stored.RefreshToken},
			"grant_type":    {"refresh_token"},
		}
		token, err := a.requestToken(ctx, form)
		if err != nil {
			return "", err
		}
		return token.AccessToken, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// ExchangeAuthorizationCode performs the initial OAuth2 code exchange and
// persists the resulting token pair. After this, refreshAccessToken keeps
// the pair rotating.
func (a *DigiKeyAdapter) ExchangeAuthorizationCode(ctx context.Context, code string) error {
	form := url.Values{
		"client_id":     {a.config.ClientID},
		"client_secret": {a.config.ClientSecret},
		"code":          {code},
		"redirect_uri":  {a.config.RedirectURI},
		"grant_type":    {"authorization_code"},
	}
	_, err := a.requestToken(ctx, form)
	return err
}

// requestToken posts a form to the token endpoint and persists the pair
func (a *DigiKeyAdapter) requestToken(ctx context.Context, form url.Values) (*DigiKeyTokenResponse, error) {
	endpoint := a.config.APIBaseURL + "/v1/oauth2/token"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, procurement.NewGatewayError(a.Code(), procurement.ErrorKindLocalValidation,
			"REQUEST_FAILED", err.Error())
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, procurement.NewTransportError(a.Code(), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSupplierResponseSize))
	if err != nil {
		return nil, procurement.NewTransportError(a.Code(), err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, procurement.NewGatewayError(a.Code(), procurement.ErrorKindAuth,
			fmt.Sprintf("HTTP_%d", resp.StatusCode), string(body))
	}

	var token DigiKeyTokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, procurement.NewGatewayError(a.Code(), procurement.ErrorKindAuth,
			"INVALID_RESPONSE", err.Error())
	}

	pair := procurement.OAuthToken{AccessToken: token.AccessToken, RefreshToken: token.RefreshToken}
	if err := a.tokens.Save(ctx, a.Code(), pair); err != nil {
		return nil, procurement.NewGatewayError(a.Code(), procurement.ErrorKindAuth,
			"TOKEN_PERSIST_FAILED", err.Error())
	}

	a.logger.Info("token pair rotated")
	return &token, nil
}

// ---------------------------------------------------------------------------
// Cart emulation via MyLists
// ---------------------------------------------------------------------------

// CreateCart reserves a free remote list name for the order and creates the
// list. The previous reservation's 2-digit suffix seeds the probe, because
// the name it holds is already burned at the backend.
func (a *DigiKeyAdapter) CreateCart(ctx context.Context, order *procurement.PurchaseOrder) (procurement.CartHandle, error) {
	stored, err := a.reservations.ListName(ctx, a.Code(), order.Reference)
	if err != nil {
		return procurement.CartHandle{}, procurement.NewGatewayError(a.Code(),
			procurement.ErrorKindLocalValidation, "RESERVATION_READ_FAILED", err.Error())
	}
	if stored == "" {
		stored = order.Reference + "-00"
	}
	version, err := strconv.Atoi(stored[len(stored)-2:])
	if err != nil {
		version = 0
	}
	version++

	accessToken, err := a.refreshAccessToken(ctx)
	if err != nil {
		return procurement.CartHandle{}, err
	}

	listName := fmt.Sprintf("%s-%02d", order.Reference, version)
	for i := version; ; i++ {
		free, err := a.isListNameFree(ctx, accessToken, listName)
		if err != nil {
			return procurement.CartHandle{}, err
		}
		if free {
			break
		}
		if i+1 == version+listNameProbeLimit {
			return procurement.CartHandle{}, procurement.NewGatewayError(a.Code(),
				procurement.ErrorKindBackend, "LIST_NAMES_EXHAUSTED",
				fmt.Sprintf("no valid list name found within %d attempts", listNameProbeLimit))
		}
		listName = fmt.Sprintf("%s-%02d", order.Reference, i+1)
	}

	if err := a.reservations.Save(ctx, a.Code(), order.Reference, listName); err != nil {
		return procurement.CartHandle{}, procurement.NewGatewayError(a.Code(),
			procurement.ErrorKindLocalValidation, "RESERVATION_WRITE_FAILED", err.Error())
	}

	body, status, err := a.doAuthorizedRequest(ctx, accessToken, http.MethodPost,
		a.config.APIBaseURL+"/mylists/v1/lists", DigiKeyListRequest{ListName: listName})
	if err != nil {
		return procurement.CartHandle{}, err
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return procurement.CartHandle{}, procurement.NewGatewayError(a.Code(),
			procurement.ErrorKindBackend, fmt.Sprintf("HTTP_%d", status), string(body))
	}

	// The endpoint answers with the bare list id as a JSON string.
	var listID string
	if err := json.Unmarshal(body, &listID); err != nil {
		return procurement.CartHandle{}, procurement.NewGatewayError(a.Code(),
			procurement.ErrorKindBackend, "INVALID_RESPONSE", string(body))
	}

	a.logger.Info("remote list created",
		zap.String("list_name", listName),
		zap.String("list_id", listID),
	)
	return procurement.CartHandle{ID: listID}, nil
}

// isListNameFree asks the backend whether a list name is still available
func (a *DigiKeyAdapter) isListNameFree(ctx context.Context, accessToken, listName string) (bool, error) {
	endpoint := fmt.Sprintf("%s/mylists/v1/lists/validate/%s?createdBy=%s",
		a.config.APIBaseURL, url.PathEscape(listName), digikeyCreatedBy)
	body, _, err := a.doAuthorizedRequest(ctx, accessToken, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, err
	}
	return string(body) == "true", nil
}

// UpdateCart submits all order lines to the list, then reads the priced
// list back. The insert response itself carries no pricing; only the second
// GET does.
func (a *DigiKeyAdapter) UpdateCart(ctx context.Context, order *procurement.PurchaseOrder, handle procurement.CartHandle) (*procurement.CartResult, error) {
	accessToken, err := a.refreshAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	parts := make([]DigiKeyListPartPost, 0, len(order.Lines))
	for _, line := range order.Lines {
		packQuantity := line.PackQuantity
		if packQuantity == 0 {
			packQuantity = 1
		}
		parts = append(parts, DigiKeyListPartPost{
			RequestedPartNumber: line.SKU,
			Quantities:          []DigiKeyQuantityPost{{Quantity: line.Quantity * packQuantity}},
			CustomerReference:   line.CustomerReference,
		})
	}

	endpoint := fmt.Sprintf("%s/mylists/v1/lists/%s/parts", a.config.APIBaseURL, url.PathEscape(handle.ID))
	body, status, err := a.doAuthorizedRequest(ctx, accessToken, http.MethodPost, endpoint, parts)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return nil, procurement.NewGatewayError(a.Code(), procurement.ErrorKindBackend,
			fmt.Sprintf("HTTP_%d", status), string(body))
	}

	listed, err := a.partsInList(ctx, accessToken, handle.ID)
	if err != nil {
		return nil, err
	}

	listName, err := a.reservations.ListName(ctx, a.Code(), order.Reference)
	if err != nil {
		listName = ""
	}

	result := &procurement.CartResult{
		Items: make([]procurement.CartItem, 0, len(listed.PartsList)),
		// DigiKey never reports a currency for list pricing.
		CurrencyCode: a.config.CurrencyCode,
		CartKey:      listName,
	}
	total := decimal.Zero

	for _, p := range listed.PartsList {
		if len(p.Quantities) == 0 {
			continue
		}
		quantity := p.Quantities[0]

		if p.DigiKeyPartNumber == "" {
			result.Items = append(result.Items, procurement.CartItem{
				SKU:               p.RequestedPartNumber,
				CustomerReference: p.CustomerReference,
				QuantityRequested: quantity.QuantityRequested,
				QuantityAvailable: p.QuantityAvailable,
				UnitPrice:         decimal.Zero,
				ExtendedPrice:     decimal.Zero,
				Error:             "Partnumber not found at Digikey",
			})
			continue
		}

		option := selectPackOption(p.DigiKeyPartNumber, quantity.PackOptions)
		if option.MinimumOrderQuantity > quantity.QuantityRequested {
			result.Items = append(result.Items, procurement.CartItem{
				SKU:               p.DigiKeyPartNumber,
				CustomerReference: p.CustomerReference,
				QuantityRequested: quantity.QuantityRequested,
				QuantityAvailable: p.QuantityAvailable,
				UnitPrice:         decimal.Zero,
				ExtendedPrice:     decimal.Zero,
				Error:             "Minimum order quantity not reached",
			})
			continue
		}

		extended := decimal.NewFromFloat(option.ExtendedPrice)
		result.Items = append(result.Items, procurement.CartItem{
			SKU:               p.DigiKeyPartNumber,
			CustomerReference: p.CustomerReference,
			QuantityRequested: quantity.QuantityRequested,
			QuantityAvailable: p.QuantityAvailable,
			UnitPrice:         decimal.NewFromFloat(option.CalculatedUnitPrice),
			ExtendedPrice:     extended,
		})
		total = total.Add(extended)

		a.logger.Debug("list line priced",
			zap.String("sku", p.DigiKeyPartNumber),
			zap.String("pack_type", packTypeName(option.PackType)),
		)
	}

	result.MerchandiseTotal = total
	return result, nil
}

// selectPackOption picks the pack option belonging to the listed SKU.
// Obsolete parts come back without pack options; they get a synthetic
// zero-priced option so reconciliation never dereferences missing fields.
func selectPackOption(sku string, options []DigiKeyPackOption) DigiKeyPackOption {
	for _, option := range options {
		if option.DigiKeyPartNumber == sku {
			return option
		}
	}
	if len(options) > 0 {
		return options[len(options)-1]
	}
	return DigiKeyPackOption{
		CalculatedUnitPrice:  0,
		ExtendedPrice:        0,
		MinimumOrderQuantity: 1,
		PackType:             "Obsolete",
	}
}

// packTypeName resolves a pack type code to its readable name
func packTypeName(code string) string {
	if name, ok := packTypeNames[code]; ok {
		return name
	}
	return code
}

// partsInList fetches the priced contents of a remote list
func (a *DigiKeyAdapter) partsInList(ctx context.Context, accessToken, listID string) (*DigiKeyPartsListResponse, error) {
	country := a.config.CountryCode()
	endpoint := fmt.Sprintf("%s/mylists/v1/lists/%s/parts/?countryIso=%s&currencyIso=%s&languageIso=%s&createdBy=%s&pricingCountryIso=%s",
		a.config.APIBaseURL, url.PathEscape(listID), country, a.config.CurrencyCode, country, digikeyCreatedBy, country)

	body, status, err := a.doAuthorizedRequest(ctx, accessToken, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, procurement.NewGatewayError(a.Code(), procurement.ErrorKindBackend,
			fmt.Sprintf("HTTP_%d", status), string(body))
	}

	var listed DigiKeyPartsListResponse
	if err := json.Unmarshal(body, &listed); err != nil {
		return nil, procurement.NewGatewayError(a.Code(), procurement.ErrorKindBackend,
			"INVALID_RESPONSE", string(body))
	}
	return &listed, nil
}

// ---------------------------------------------------------------------------
// Catalog search
// ---------------------------------------------------------------------------

// GetPartData looks up a single SKU through the product details endpoint.
// A 404 means the SKU matched nothing and is reported as zero results, not
// as an error.
func (a *DigiKeyAdapter) GetPartData(ctx context.Context, sku string, _ procurement.PartSearchOptions) (*procurement.PartData, error) {
	accessToken, err := a.refreshAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/products/v4/search/%s/productdetails",
		a.config.APIBaseURL, url.PathEscape(sku))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, procurement.NewGatewayError(a.Code(), procurement.ErrorKindLocalValidation,
			"REQUEST_FAILED", err.Error())
	}
	a.setAuthHeaders(req, accessToken)
	req.Header.Set("X-DIGIKEY-Locale-Currency", a.config.CurrencyCode)
	req.Header.Set("X-DIGIKEY-Locale-Site", a.config.CountryCode())
	req.Header.Set("X-DIGIKEY-Locale-Language", "EN")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, procurement.NewTransportError(a.Code(), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSupplierResponseSize))
	if err != nil {
		return nil, procurement.NewTransportError(a.Code(), err)
	}
	if remaining := resp.Header.Get("X-RateLimit-Remaining"); remaining != "" {
		a.logger.Debug("rate limit remaining", zap.String("requests", remaining))
	}
	if resp.StatusCode == http.StatusNotFound {
		return &procurement.PartData{PriceBreaks: []procurement.PriceBreak{}}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, procurement.NewGatewayError(a.Code(), procurement.ErrorKindBackend,
			fmt.Sprintf("HTTP_%d", resp.StatusCode), string(body))
	}

	var product DigiKeyProductResponse
	if err := json.Unmarshal(body, &product); err != nil {
		return nil, procurement.NewGatewayError(a.Code(), procurement.ErrorKindBackend,
			"INVALID_RESPONSE", string(body))
	}
	if len(product.Product.ProductVariations) == 0 {
		return &procurement.PartData{PriceBreaks: []procurement.PriceBreak{}}, nil
	}

	// The details endpoint answers for the whole product; pick the
	// variation whose SKU was asked for, falling back to the first one.
	variation := product.Product.ProductVariations[0]
	for _, v := range product.Product.ProductVariations {
		if v.DigiKeyProductNumber == sku {
			variation = v
			break
		}
	}

	partData := &procurement.PartData{
		SKU:                    variation.DigiKeyProductNumber,
		ManufacturerPartNumber: product.Product.ManufacturerProductNumber,
		URL:                    product.Product.ProductUrl,
		LifecycleStatus:        product.Product.ProductStatus.Status,
		Description:            product.Product.Description.DetailedDescription,
		Package:                variation.PackageType.Name,
		// Obsolete parts report a zero minimum order quantity, which the
		// local catalog cannot represent.
		PackQuantity:    NormalizePackQuantity(variation.MinimumOrderQuantity),
		PriceBreaks:     make([]procurement.PriceBreak, 0, len(variation.StandardPricing)),
		NumberOfResults: 1,
	}
	for _, pb := range variation.StandardPricing {
		partData.PriceBreaks = append(partData.PriceBreaks, procurement.PriceBreak{
			Quantity: pb.BreakQuantity,
			Price:    decimal.NewFromFloat(pb.UnitPrice),
			Currency: product.SearchLocaleUsed.Currency,
		})
	}
	return partData, nil
}

// ---------------------------------------------------------------------------
// HTTP plumbing
// ---------------------------------------------------------------------------

func (a *DigiKeyAdapter) setAuthHeaders(req *http.Request, accessToken string) {
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("X-DIGIKEY-Client-Id", a.config.ClientID)
	req.Header.Set("Accept", "application/json")
}

// doAuthorizedRequest performs an authenticated JSON call and returns the
// raw body and status
func (a *DigiKeyAdapter) doAuthorizedRequest(ctx context.Context, accessToken, method, endpoint string, payload any) ([]byte, int, error) {
	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, procurement.NewGatewayError(a.Code(), procurement.ErrorKindLocalValidation,
				"MARSHAL_FAILED", err.Error())
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, 0, procurement.NewGatewayError(a.Code(), procurement.ErrorKindLocalValidation,
			"REQUEST_FAILED", err.Error())
	}
	a.setAuthHeaders(req, accessToken)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

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

// Ensure DigiKeyAdapter implements SupplierGateway interface
var _ procurement.SupplierGateway = (*DigiKeyAdapter)(nil)

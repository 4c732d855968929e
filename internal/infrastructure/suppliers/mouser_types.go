package suppliers

// ---------------------------------------------------------------------------
// Mouser Search API Types
// ---------------------------------------------------------------------------

// MouserSearchRequest is the envelope for search/partnumber
type MouserSearchRequest struct {
	SearchByPartRequest MouserSearchByPartRequest `json:"SearchByPartRequest"`
}

// MouserSearchByPartRequest carries the SKU and match-strictness option
type MouserSearchByPartRequest struct {
	MouserPartNumber  string `json:"mouserPartNumber"`
	PartSearchOptions string `json:"partSearchOptions"`
}

// MouserSearchResponse is the response for search/partnumber. Mouser wraps
// its real error either in a top-level Message or in the Errors array, both
// inside a 200-status envelope.
type MouserSearchResponse struct {
	Message       string               `json:"Message,omitempty"`
	Errors        []MouserError        `json:"Errors"`
	SearchResults *MouserSearchResults `json:"SearchResults,omitempty"`
}

// MouserError is one entry of an Errors array. Mouser does not document its
// codes; the known ones are mapped in mapMouserErrorCode.
type MouserError struct {
	ID           int    `json:"Id"`
	Code         string `json:"Code"`
	Message      string `json:"Message"`
	ResourceKey  string `json:"ResourceKey"`
	PropertyName string `json:"PropertyName"`
}

// MouserSearchResults contains the matched parts
type MouserSearchResults struct {
	NumberOfResult int          `json:"NumberOfResult"`
	Parts          []MouserPart `json:"Parts"`
}

// MouserPart is one search result
type MouserPart struct {
	MouserPartNumber       string                   `json:"MouserPartNumber"`
	ManufacturerPartNumber string                   `json:"ManufacturerPartNumber"`
	Manufacturer           string                   `json:"Manufacturer"`
	Description            string                   `json:"Description"`
	ProductDetailUrl       string                   `json:"ProductDetailUrl"`
	LifecycleStatus        string                   `json:"LifecycleStatus"`
	// Mult is the order multiple, reported as a string
	Mult              string                   `json:"Mult"`
	Min               string                   `json:"Min"`
	ProductAttributes []MouserProductAttribute `json:"ProductAttributes"`
	PriceBreaks       []MouserPriceBreak       `json:"PriceBreaks"`
}

// MouserProductAttribute is a name/value attribute pair. The attribute names
// come back in the language of the requesting region.
type MouserProductAttribute struct {
	AttributeName  string `json:"AttributeName"`
	AttributeValue string `json:"AttributeValue"`
}

// MouserPriceBreak is one pricing tier. Price is a locale-formatted string
// with a currency glyph and must go through ReformatLocalePrice.
type MouserPriceBreak struct {
	Quantity int    `json:"Quantity"`
	Price    string `json:"Price"`
	Currency string `json:"Currency"`
}

// ---------------------------------------------------------------------------
// Mouser Cart API Types
// ---------------------------------------------------------------------------

// MouserCartRequest is the request for cart/items/insert. An empty CartKey
// makes Mouser mint a new one.
type MouserCartRequest struct {
	CartKey   string               `json:"CartKey"`
	CartItems []MouserCartItemPost `json:"CartItems"`
}

// MouserCartItemPost is one line submitted to the cart
type MouserCartItemPost struct {
	MouserPartNumber   string `json:"MouserPartNumber"`
	Quantity           int    `json:"Quantity"`
	CustomerPartNumber string `json:"CustomerPartNumber"`
}

// MouserCartResponse is the response for cart/items/insert. The insert call
// already returns the authoritative cart contents; no second fetch is
// needed. A non-empty top-level Errors array is fatal for the whole batch,
// per-item Errors are not.
type MouserCartResponse struct {
	Errors           []MouserError    `json:"Errors"`
	CartKey          string           `json:"CartKey"`
	CurrencyCode     string           `json:"CurrencyCode"`
	MerchandiseTotal float64          `json:"MerchandiseTotal"`
	CartItems        []MouserCartItem `json:"CartItems"`
}

// MouserCartItem is one authoritative cart line
type MouserCartItem struct {
	MouserPartNumber       string        `json:"MouserPartNumber"`
	CartItemCustPartNumber string        `json:"CartItemCustPartNumber"`
	Quantity               int           `json:"Quantity"`
	// MouserATS is the available-to-sell stock
	MouserATS     int           `json:"MouserATS"`
	UnitPrice     float64       `json:"UnitPrice"`
	ExtendedPrice float64       `json:"ExtendedPrice"`
	Errors        []MouserError `json:"Errors"`
}

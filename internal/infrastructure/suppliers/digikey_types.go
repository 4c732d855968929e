package suppliers

// ---------------------------------------------------------------------------
// DigiKey OAuth2 Types
// ---------------------------------------------------------------------------

// DigiKeyTokenResponse is the response of the OAuth2 token endpoint. Both
// grant types return the same shape. The refresh token rotates on every
// call and the previous one becomes invalid immediately.
type DigiKeyTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// ---------------------------------------------------------------------------
// DigiKey MyLists API Types
// ---------------------------------------------------------------------------

// DigiKeyListRequest creates a new remote list
type DigiKeyListRequest struct {
	ListName string `json:"ListName"`
}

// DigiKeyListPartPost is one line submitted to a list
type DigiKeyListPartPost struct {
	RequestedPartNumber string                `json:"RequestedPartNumber"`
	Quantities          []DigiKeyQuantityPost `json:"Quantities"`
	CustomerReference   string                `json:"CustomerReference"`
}

// DigiKeyQuantityPost is the requested quantity for one list line
type DigiKeyQuantityPost struct {
	Quantity int `json:"Quantity"`
}

// DigiKeyPartsListResponse is the authoritative list contents read back
// after the part insert
type DigiKeyPartsListResponse struct {
	PartsList []DigiKeyListPart `json:"PartsList"`
}

// DigiKeyListPart is one line of a remote list. An empty DigiKeyPartNumber
// means the requested part number matched nothing in the catalog.
type DigiKeyListPart struct {
	DigiKeyPartNumber   string            `json:"DigiKeyPartNumber"`
	RequestedPartNumber string            `json:"RequestedPartNumber"`
	CustomerReference   string            `json:"CustomerReference"`
	QuantityAvailable   int               `json:"QuantityAvailable"`
	Quantities          []DigiKeyQuantity `json:"Quantities"`
}

// DigiKeyQuantity carries the requested quantity and the pack options the
// backend priced it against. Obsolete parts come back with no pack options.
type DigiKeyQuantity struct {
	QuantityRequested int                 `json:"QuantityRequested"`
	PackOptions       []DigiKeyPackOption `json:"PackOptions"`
}

// DigiKeyPackOption is one way the backend can pack the requested quantity
type DigiKeyPackOption struct {
	DigiKeyPartNumber    string  `json:"DigiKeyPartNumber"`
	CalculatedUnitPrice  float64 `json:"CalculatedUnitPrice"`
	ExtendedPrice        float64 `json:"ExtendedPrice"`
	MinimumOrderQuantity int     `json:"MinimumOrderQuantity"`
	PackType             string  `json:"PackType"`
}

// ---------------------------------------------------------------------------
// DigiKey Product Search V4 Types
// ---------------------------------------------------------------------------

// DigiKeyProductResponse is the response of the product details endpoint
type DigiKeyProductResponse struct {
	Product          DigiKeyProduct `json:"Product"`
	SearchLocaleUsed DigiKeyLocale  `json:"SearchLocaleUsed"`
}

// DigiKeyProduct is the manufacturer-level product; the SKU-level data
// lives in its variations
type DigiKeyProduct struct {
	ManufacturerProductNumber string                    `json:"ManufacturerProductNumber"`
	ProductUrl                string                    `json:"ProductUrl"`
	ProductStatus             DigiKeyProductStatus      `json:"ProductStatus"`
	Description               DigiKeyDescription        `json:"Description"`
	ProductVariations         []DigiKeyProductVariation `json:"ProductVariations"`
}

// DigiKeyProductStatus is the lifecycle status wrapper
type DigiKeyProductStatus struct {
	Status string `json:"Status"`
}

// DigiKeyDescription is the description wrapper
type DigiKeyDescription struct {
	DetailedDescription string `json:"DetailedDescription"`
}

// DigiKeyProductVariation is one orderable variation of a product
type DigiKeyProductVariation struct {
	DigiKeyProductNumber string                 `json:"DigiKeyProductNumber"`
	PackageType          DigiKeyPackageType     `json:"PackageType"`
	MinimumOrderQuantity int                    `json:"MinimumOrderQuantity"`
	StandardPricing      []DigiKeyStandardPrice `json:"StandardPricing"`
}

// DigiKeyPackageType is the packaging wrapper
type DigiKeyPackageType struct {
	Name string `json:"Name"`
}

// DigiKeyStandardPrice is one pricing tier
type DigiKeyStandardPrice struct {
	BreakQuantity int     `json:"BreakQuantity"`
	UnitPrice     float64 `json:"UnitPrice"`
}

// DigiKeyLocale reports the locale the backend actually priced against
type DigiKeyLocale struct {
	Currency string `json:"Currency"`
}

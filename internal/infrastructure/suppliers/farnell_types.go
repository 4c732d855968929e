package suppliers

import "encoding/json"

// FarnellSearchResponse is the response of the catalog products endpoint.
// Farnell reports its errors inside a 200 envelope under an "error" key;
// only successful lookups carry the part number return.
type FarnellSearchResponse struct {
	Error            json.RawMessage          `json:"error,omitempty"`
	PartNumberReturn *FarnellPartNumberReturn `json:"premierFarnellPartNumberReturn,omitempty"`
}

// FarnellPartNumberReturn wraps the matched products
type FarnellPartNumberReturn struct {
	NumberOfResults int              `json:"numberOfResults"`
	Products        []FarnellProduct `json:"products"`
}

// FarnellProduct is one catalog product
type FarnellProduct struct {
	SKU                              string         `json:"sku"`
	TranslatedManufacturerPartNumber string         `json:"translatedManufacturerPartNumber"`
	DisplayName                      string         `json:"displayName"`
	ProductStatus                    string         `json:"productStatus"`
	UnitOfMeasure                    string         `json:"unitOfMeasure"`
	TranslatedMinimumOrderQuality    int            `json:"translatedMinimumOrderQuality"`
	Prices                           []FarnellPrice `json:"prices"`
}

// FarnellPrice is one pricing tier; Cost is a bare number in the currency
// of the configured store
type FarnellPrice struct {
	From int     `json:"from"`
	To   int     `json:"to"`
	Cost float64 `json:"cost"`
}

package suppliers

import "errors"

// FarnellConfig holds configuration for the Farnell (element14) API. The
// store selects region and currency; prices come back as bare numbers in
// the store's currency.
type FarnellConfig struct {
	// SearchAPIKey authorizes the catalog search API
	SearchAPIKey string
	// APIBaseURL is the base URL for the element14 API
	APIBaseURL string
	// StoreID selects the regional shop, e.g. "de.farnell.com"
	StoreID string
	// CurrencyCode is the currency of the selected store. Farnell never
	// reports one.
	CurrencyCode string
	// ProxyURL is an optional outbound proxy
	ProxyURL string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

// FarnellProductionAPIURL is the production API endpoint
const FarnellProductionAPIURL = "https://api.element14.com"

// Errors for Farnell configuration
var ErrFarnellConfigMissingSearchKey = errors.New("farnell: search API key is required")

// NewFarnellConfig creates a new Farnell configuration with defaults
func NewFarnellConfig(searchAPIKey string) *FarnellConfig {
	return &FarnellConfig{
		SearchAPIKey:   searchAPIKey,
		APIBaseURL:     FarnellProductionAPIURL,
		StoreID:        "de.farnell.com",
		CurrencyCode:   "EUR",
		TimeoutSeconds: 15,
	}
}

// Validate validates the Farnell configuration
func (c *FarnellConfig) Validate() error {
	if c.SearchAPIKey == "" {
		return ErrFarnellConfigMissingSearchKey
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = FarnellProductionAPIURL
	}
	if c.StoreID == "" {
		c.StoreID = "de.farnell.com"
	}
	if c.CurrencyCode == "" {
		c.CurrencyCode = "EUR"
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 15
	}
	return nil
}

package suppliers

import "errors"

// MouserConfig holds configuration for the Mouser Electronics API. Mouser
// uses two independent API keys: one for catalog search and one for the
// shopping cart.
type MouserConfig struct {
	// SearchAPIKey authorizes the part search API
	SearchAPIKey string
	// CartAPIKey authorizes the shopping cart API
	CartAPIKey string
	// APIBaseURL is the base URL for the Mouser API
	APIBaseURL string
	// CountryCode is the two-letter country sent with cart requests,
	// derived from the host's default currency
	CountryCode string
	// Language selects the attribute names Mouser answers with; the
	// response language is fixed to the requesting region
	Language string
	// ProxyURL is an optional outbound proxy
	ProxyURL string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

// MouserProductionAPIURL is the production API endpoint
const MouserProductionAPIURL = "https://api.mouser.com"

// Errors for Mouser configuration
var (
	ErrMouserConfigMissingSearchKey = errors.New("mouser: search API key is required")
	ErrMouserConfigMissingCartKey   = errors.New("mouser: cart API key is required")
)

// NewMouserConfig creates a new Mouser configuration with defaults
func NewMouserConfig(searchAPIKey, cartAPIKey, countryCode string) *MouserConfig {
	return &MouserConfig{
		SearchAPIKey:   searchAPIKey,
		CartAPIKey:     cartAPIKey,
		APIBaseURL:     MouserProductionAPIURL,
		CountryCode:    countryCode,
		Language:       "English",
		TimeoutSeconds: 15,
	}
}

// Validate validates the Mouser configuration
func (c *MouserConfig) Validate() error {
	if c.SearchAPIKey == "" {
		return ErrMouserConfigMissingSearchKey
	}
	if c.CartAPIKey == "" {
		return ErrMouserConfigMissingCartKey
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = MouserProductionAPIURL
	}
	if c.CountryCode == "" {
		c.CountryCode = "DE"
	}
	if c.Language == "" {
		c.Language = "English"
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 15
	}
	return nil
}

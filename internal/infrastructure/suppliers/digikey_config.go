package suppliers

import "errors"

// DigiKeyConfig holds configuration for the DigiKey API. DigiKey uses OAuth2
// with rotating refresh tokens; the client credentials live here while the
// token pair itself is persisted through a TokenStore.
type DigiKeyConfig struct {
	// ClientID is the OAuth2 client id issued by the DigiKey developer portal
	ClientID string
	// ClientSecret is the OAuth2 client secret
	ClientSecret string
	// APIBaseURL is the base URL for the DigiKey API
	APIBaseURL string
	// CurrencyCode is the host currency. DigiKey never reports a currency
	// for list pricing, so every cart result carries this value.
	CurrencyCode string
	// RedirectURI must match the redirect registered for the OAuth2 client;
	// only used for the initial authorization-code exchange
	RedirectURI string
	// ProxyURL is an optional outbound proxy
	ProxyURL string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

// DigiKeyProductionAPIURL is the production API endpoint
const DigiKeyProductionAPIURL = "https://api.digikey.com"

// listNameProbeLimit bounds the search for a free remote list name. DigiKey
// blocks every list name ever used, including deleted ones.
const listNameProbeLimit = 20

// digikeyCreatedBy fills the mandatory createdBy query parameter. The API
// requires the parameter to be present but ignores its value.
const digikeyCreatedBy = "xxxx"

// currencyCountryCodes maps the host currency to the locale site DigiKey
// expects in its pricing headers and query parameters.
var currencyCountryCodes = map[string]string{
	"EUR": "DE",
	"USD": "US",
	"GBP": "GB",
}

// Errors for DigiKey configuration
var (
	ErrDigiKeyConfigMissingClientID     = errors.New("digikey: client id is required")
	ErrDigiKeyConfigMissingClientSecret = errors.New("digikey: client secret is required")
)

// NewDigiKeyConfig creates a new DigiKey configuration with defaults
func NewDigiKeyConfig(clientID, clientSecret, currencyCode string) *DigiKeyConfig {
	return &DigiKeyConfig{
		ClientID:       clientID,
		ClientSecret:   clientSecret,
		APIBaseURL:     DigiKeyProductionAPIURL,
		CurrencyCode:   currencyCode,
		TimeoutSeconds: 15,
	}
}

// Validate validates the DigiKey configuration
func (c *DigiKeyConfig) Validate() error {
	if c.ClientID == "" {
		return ErrDigiKeyConfigMissingClientID
	}
	if c.ClientSecret == "" {
		return ErrDigiKeyConfigMissingClientSecret
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = DigiKeyProductionAPIURL
	}
	if c.CurrencyCode == "" {
		c.CurrencyCode = "EUR"
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 15
	}
	return nil
}

// CountryCode returns the locale site for the configured currency
func (c *DigiKeyConfig) CountryCode() string {
	if code, ok := currencyCountryCodes[c.CurrencyCode]; ok {
		return code
	}
	return "US"
}

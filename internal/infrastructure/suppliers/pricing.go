package suppliers

import (
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var nonPriceChars = regexp.MustCompile(`[^\d.]+`)

// ReformatLocalePrice converts a supplier-native price string into a
// decimal. Suppliers report prices with thousands separators, a decimal
// comma and a trailing currency glyph, e.g. "1.456,34 €". The dot is treated
// as a thousands separator and the comma as the decimal point; everything
// that is not a digit or decimal point is stripped. A string with no digits
// canonicalizes to zero, never an error.
func ReformatLocalePrice(price string) decimal.Decimal {
	cleaned := strings.ReplaceAll(price, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	cleaned = nonPriceChars.ReplaceAllString(cleaned, "")
	if cleaned == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// NormalizePackQuantity maps a supplier minimum-order quantity to the
// canonical pack quantity string. Zero is remapped to "1" because the local
// catalog's minimum purchasable unit must never be zero; this is an
// adaptation for the host schema, not the supplier's own semantics.
func NormalizePackQuantity(moq int) string {
	if moq == 0 {
		return "1"
	}
	return strconv.Itoa(moq)
}

// newHTTPClient builds the outbound client shared by all gateways: one
// fixed short timeout, no automatic retries, optional proxy.
func newHTTPClient(timeoutSeconds int, proxyURL string) *http.Client {
	client := &http.Client{
		Timeout: time.Duration(timeoutSeconds) * time.Second,
	}
	if proxyURL != "" {
		if parsed, err := url.Parse(proxyURL); err == nil {
			client.Transport = &http.Transport{Proxy: http.ProxyURL(parsed)}
		}
	}
	return client
}

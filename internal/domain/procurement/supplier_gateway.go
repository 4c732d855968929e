package procurement

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Errors
// ---------------------------------------------------------------------------

var (
	ErrSupplierNotConfigured = errors.New("procurement: supplier not configured")
	ErrCartNotSupported      = errors.New("procurement: shopping cart not supported by this supplier")
	ErrEmptySKU              = errors.New("procurement: SKU must not be empty")
	ErrOrderNotFound         = errors.New("procurement: purchase order not found")
	ErrPartAlreadyExists     = errors.New("procurement: supplier part already exists in catalog")
	ErrTokenNotFound         = errors.New("procurement: no stored token for supplier")
)

// ---------------------------------------------------------------------------
// ErrorKind / GatewayError
// ---------------------------------------------------------------------------

// ErrorKind classifies gateway failures so callers can react uniformly
// without parsing supplier-specific messages.
type ErrorKind string

const (
	// ErrorKindTransport covers timeouts and connection failures.
	ErrorKindTransport ErrorKind = "TRANSPORT"
	// ErrorKindAuth covers rejected keys and expired or invalid tokens.
	ErrorKindAuth ErrorKind = "AUTH"
	// ErrorKindBackend covers batch-level errors reported by the supplier.
	ErrorKindBackend ErrorKind = "BACKEND"
	// ErrorKindPerItem marks line-level failures. These are never returned
	// as a GatewayError; they are tagged on the affected CartItem instead.
	ErrorKindPerItem ErrorKind = "PER_ITEM"
	// ErrorKindLocalValidation covers failures detected before any network
	// call is made.
	ErrorKindLocalValidation ErrorKind = "LOCAL_VALIDATION"
)

// IsValid returns true if the error kind is valid
func (k ErrorKind) IsValid() bool {
	switch k {
	case ErrorKindTransport, ErrorKindAuth, ErrorKindBackend,
		ErrorKindPerItem, ErrorKindLocalValidation:
		return true
	default:
		return false
	}
}

// GatewayError is the uniform failure value returned by supplier gateways.
// The supplier's own message is always passed through verbatim; Code carries
// the backend error code, or a coarse category where the backend's taxonomy
// is known.
type GatewayError struct {
	Supplier SupplierCode
	Kind     ErrorKind
	Code     string
	Message  string
}

// Error implements the error interface
func (e *GatewayError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s: %s", e.Supplier, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Supplier, e.Message)
}

// NewGatewayError creates a new GatewayError
func NewGatewayError(supplier SupplierCode, kind ErrorKind, code, message string) *GatewayError {
	return &GatewayError{Supplier: supplier, Kind: kind, Code: code, Message: message}
}

// NewTransportError creates a GatewayError for a timeout or connection
// failure. The synthetic "connection error" prefix keeps transport failures
// distinguishable from any backend-native error code.
func NewTransportError(supplier SupplierCode, err error) *GatewayError {
	return &GatewayError{
		Supplier: supplier,
		Kind:     ErrorKindTransport,
		Code:     "CONNECTION_ERROR",
		Message:  fmt.Sprintf("connection error: %v", err),
	}
}

// ---------------------------------------------------------------------------
// SupplierCode
// ---------------------------------------------------------------------------

// SupplierCode identifies which gateway variant governs an order.
type SupplierCode string

const (
	// SupplierCodeMouser represents the Mouser Electronics API
	SupplierCodeMouser SupplierCode = "MOUSER"
	// SupplierCodeDigiKey represents the DigiKey API
	SupplierCodeDigiKey SupplierCode = "DIGIKEY"
	// SupplierCodeFarnell represents the Farnell / element14 API
	SupplierCodeFarnell SupplierCode = "FARNELL"
)

// IsValid returns true if the supplier code is valid
func (c SupplierCode) IsValid() bool {
	switch c {
	case SupplierCodeMouser, SupplierCodeDigiKey, SupplierCodeFarnell:
		return true
	default:
		return false
	}
}

// String returns the string representation of SupplierCode
func (c SupplierCode) String() string {
	return string(c)
}

// ---------------------------------------------------------------------------
// Value Objects
// ---------------------------------------------------------------------------

// OrderLine is one line of a purchase order. UnitPrice is the only field the
// reconciliation step mutates; everything else is read-only input.
type OrderLine struct {
	// SKU is the supplier's part number for this line
	SKU string
	// CustomerReference is the buyer's internal part number
	CustomerReference string
	// Quantity is the ordered quantity
	Quantity int
	// PackQuantity is the minimum purchasable multiple recorded in the
	// local catalog; never zero
	PackQuantity int
	// UnitPrice is the current price on the line, overwritten after a
	// successful reconciliation
	UnitPrice decimal.Decimal
}

// PurchaseOrder is the read-only order view consumed by a cart transfer.
type PurchaseOrder struct {
	ID uuid.UUID
	// Reference is the order's human-readable reference, used to derive
	// remote list names
	Reference string
	// Supplier selects the gateway variant for this order
	Supplier SupplierCode
	Lines    []OrderLine
}

// CartHandle identifies a remote cart or list. Created by CreateCart and
// consumed immediately by UpdateCart in the same transfer; never deleted.
type CartHandle struct {
	ID string
}

// CartItem is the canonical per-line record produced by every gateway's
// UpdateCart. A line-level failure is tagged in Error rather than aborting
// the batch.
type CartItem struct {
	SKU               string
	CustomerReference string
	QuantityRequested int
	QuantityAvailable int
	UnitPrice         decimal.Decimal
	ExtendedPrice     decimal.Decimal
	// Error is empty for a clean line; otherwise it carries the supplier's
	// own message for that line
	Error string
}

// CartResult is the terminal value of one cart transfer.
type CartResult struct {
	MerchandiseTotal decimal.Decimal
	Items            []CartItem
	// CartKey is the remote cart key or list name
	CartKey      string
	CurrencyCode string
}

// PriceBreak is one (quantity threshold, unit price) tier of supplier
// pricing. Currency can vary per tier across suppliers.
type PriceBreak struct {
	Quantity int
	Price    decimal.Decimal
	Currency string
}

// PartData is the normalized result of a single-SKU catalog lookup.
type PartData struct {
	SKU                    string
	ManufacturerPartNumber string
	URL                    string
	LifecycleStatus        string
	Description            string
	Package                string
	// PackQuantity is the supplier's minimum purchasable multiple, kept as
	// a string because suppliers report it in incompatible shapes
	PackQuantity string
	PriceBreaks  []PriceBreak
	// NumberOfResults is zero for a clean "not found" outcome
	NumberOfResults int
}

// PartSearchOptions carries the match-strictness flag forwarded verbatim to
// the backend's search semantics.
type PartSearchOptions struct {
	// Mode is e.g. "Exact" or "None", backend-defined
	Mode string
}

// OAuthToken is a bearer/refresh token pair. The refresh token rotates on
// every successful refresh and the previous one becomes invalid, so the pair
// must be persisted immediately after rotation.
type OAuthToken struct {
	AccessToken  string
	RefreshToken string
}

// ---------------------------------------------------------------------------
// Ports
// ---------------------------------------------------------------------------

// SupplierGateway is the port implemented by each supplier adapter. All
// three operations share a uniform failure contract: a *GatewayError for
// transport, auth and batch-level failures; per-line failures are tagged on
// the returned CartItems.
type SupplierGateway interface {
	// Code returns the supplier code this gateway handles
	Code() SupplierCode

	// CreateCart prepares a remote cart or list for the order. For
	// suppliers with a true cart API this is a placeholder returning an
	// empty handle; list-emulated backends reserve and create a uniquely
	// named list.
	CreateCart(ctx context.Context, order *PurchaseOrder) (CartHandle, error)

	// UpdateCart submits every order line into the cart or list and
	// returns one CartItem per input line with authoritative pricing and
	// availability.
	UpdateCart(ctx context.Context, order *PurchaseOrder, handle CartHandle) (*CartResult, error)

	// GetPartData performs a single-SKU catalog lookup.
	GetPartData(ctx context.Context, sku string, opts PartSearchOptions) (*PartData, error)
}

// SupplierRegistry resolves the gateway owning a supplier code. At most one
// gateway claims a given code.
type SupplierRegistry interface {
	// Gateway returns the gateway for the code, or
	// ErrSupplierNotConfigured
	Gateway(code SupplierCode) (SupplierGateway, error)

	// List returns all registered gateways
	List() []SupplierGateway
}

// TokenStore persists OAuth token pairs per supplier. Save must replace both
// tokens atomically; losing a rotated refresh token locks the account out
// until the operator re-authorizes.
type TokenStore interface {
	Token(ctx context.Context, supplier SupplierCode) (OAuthToken, error)
	Save(ctx context.Context, supplier SupplierCode, token OAuthToken) error
}

// ListReservationStore remembers the last remote list name reserved for an
// order. The supplier backend never releases list names, so the next probe
// starts one past the stored suffix.
type ListReservationStore interface {
	// ListName returns the stored name, or "" when none was reserved yet
	ListName(ctx context.Context, supplier SupplierCode, orderReference string) (string, error)
	Save(ctx context.Context, supplier SupplierCode, orderReference, listName string) error
}

// PurchaseOrderRepository provides read access to orders and the single
// write the reconciler needs.
type PurchaseOrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)

	// UpdateLinePrice writes the reconciled unit price back onto the order
	// line matching the SKU
	UpdateLinePrice(ctx context.Context, orderID uuid.UUID, sku string, price decimal.Decimal) error
}

// SupplierPart is a catalog entry created from a PartData lookup.
type SupplierPart struct {
	ID                     uuid.UUID
	Supplier               SupplierCode
	SKU                    string
	ManufacturerPartNumber string
	URL                    string
	LifecycleStatus        string
	Description            string
	Package                string
	PackQuantity           string
	PriceBreaks            []PriceBreak
}

// CatalogWriter creates supplier part records and their price-break rows.
type CatalogWriter interface {
	ExistsBySKU(ctx context.Context, supplier SupplierCode, sku string) (bool, error)
	CreatePart(ctx context.Context, part *SupplierPart) error
}

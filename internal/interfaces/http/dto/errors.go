package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation and input error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
)

// Supplier gateway error codes
const (
	// ErrCodeSupplierNotConfigured is used when no gateway claims the
	// supplier code
	ErrCodeSupplierNotConfigured = "ERR_SUPPLIER_NOT_CONFIGURED"
	// ErrCodeSupplierUnreachable is used for timeouts and connection
	// failures towards the supplier backend
	ErrCodeSupplierUnreachable = "ERR_SUPPLIER_UNREACHABLE"
	// ErrCodeSupplierAuth is used when the supplier rejects our credentials
	ErrCodeSupplierAuth = "ERR_SUPPLIER_AUTH"
	// ErrCodeSupplierBackend is used for batch-level errors reported by the
	// supplier backend
	ErrCodeSupplierBackend = "ERR_SUPPLIER_BACKEND"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:  http.StatusBadRequest,
	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeInvalidJSON: http.StatusBadRequest,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,

	ErrCodeSupplierNotConfigured: http.StatusNotFound,
	ErrCodeSupplierUnreachable:   http.StatusBadGateway,
	ErrCodeSupplierAuth:          http.StatusBadGateway,
	ErrCodeSupplierBackend:       http.StatusBadGateway,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

package procurement

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSupplierCode_IsValid(t *testing.T) {
	tests := []struct {
		code  SupplierCode
		valid bool
	}{
		{SupplierCodeMouser, true},
		{SupplierCodeDigiKey, true},
		{SupplierCodeFarnell, true},
		{SupplierCode("EBAY"), false},
		{SupplierCode(""), false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.valid, tt.code.IsValid(), "code %q", tt.code)
	}
}

func TestErrorKind_IsValid(t *testing.T) {
	valid := []ErrorKind{
		ErrorKindTransport,
		ErrorKindAuth,
		ErrorKindBackend,
		ErrorKindPerItem,
		ErrorKindLocalValidation,
	}
	for _, k := range valid {
		assert.True(t, k.IsValid(), "kind %q", k)
	}
	assert.False(t, ErrorKind("PANIC").IsValid())
}

func TestGatewayError_Error(t *testing.T) {
	err := NewGatewayError(SupplierCodeMouser, ErrorKindBackend, "TooManyRequests", "daily request budget exhausted")
	assert.Equal(t, "MOUSER: TooManyRequests: daily request budget exhausted", err.Error())

	err = NewGatewayError(SupplierCodeFarnell, ErrorKindLocalValidation, "", "not supported yet")
	assert.Equal(t, "FARNELL: not supported yet", err.Error())
}

func TestNewTransportError(t *testing.T) {
	err := NewTransportError(SupplierCodeDigiKey, errors.New("dial tcp: connection refused"))

	assert.Equal(t, ErrorKindTransport, err.Kind)
	assert.Equal(t, "CONNECTION_ERROR", err.Code)
	assert.Contains(t, err.Message, "connection error: ")
	assert.Contains(t, err.Message, "connection refused")
}

package suppliers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/erp/supplier-gateway/internal/domain/procurement"
)

func TestRegistry(t *testing.T) {
	mouser, err := NewMouserAdapter(NewMouserConfig("s", "c", "DE"), zap.NewNop())
	require.NoError(t, err)
	farnell, err := NewFarnellAdapter(NewFarnellConfig("key"), zap.NewNop())
	require.NoError(t, err)

	registry := NewRegistry(mouser, farnell)

	gw, err := registry.Gateway(procurement.SupplierCodeMouser)
	require.NoError(t, err)
	assert.Equal(t, procurement.SupplierCodeMouser, gw.Code())

	// DigiKey was never configured, so it is simply absent.
	_, err = registry.Gateway(procurement.SupplierCodeDigiKey)
	assert.ErrorIs(t, err, procurement.ErrSupplierNotConfigured)

	codes := []procurement.SupplierCode{}
	for _, gw := range registry.List() {
		codes = append(codes, gw.Code())
	}
	assert.Equal(t, []procurement.SupplierCode{procurement.SupplierCodeFarnell, procurement.SupplierCodeMouser}, codes)
}

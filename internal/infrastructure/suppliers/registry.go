package suppliers

import (
	"sort"

	"github.com/erp/supplier-gateway/internal/domain/procurement"
)

// Registry holds the configured supplier gateways keyed by supplier code.
// Suppliers with missing settings are simply never registered; asking for
// them yields ErrSupplierNotConfigured rather than a crash.
type Registry struct {
	gateways map[procurement.SupplierCode]procurement.SupplierGateway
}

// NewRegistry creates a registry over the given gateways
func NewRegistry(gateways ...procurement.SupplierGateway) *Registry {
	r := &Registry{gateways: make(map[procurement.SupplierCode]procurement.SupplierGateway, len(gateways))}
	for _, gw := range gateways {
		r.gateways[gw.Code()] = gw
	}
	return r
}

// Gateway returns the gateway for a supplier code
func (r *Registry) Gateway(code procurement.SupplierCode) (procurement.SupplierGateway, error) {
	gw, ok := r.gateways[code]
	if !ok {
		return nil, procurement.ErrSupplierNotConfigured
	}
	return gw, nil
}

// List returns all registered gateways in stable code order
func (r *Registry) List() []procurement.SupplierGateway {
	out := make([]procurement.SupplierGateway, 0, len(r.gateways))
	for _, gw := range r.gateways {
		out = append(out, gw)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code() < out[j].Code() })
	return out
}

// Ensure Registry implements SupplierRegistry interface
var _ procurement.SupplierRegistry = (*Registry)(nil)

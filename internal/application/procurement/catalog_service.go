package procurement

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/erp/supplier-gateway/internal/domain/procurement"
)

// CatalogService performs single-SKU supplier lookups and materializes the
// results as local catalog entries.
type CatalogService struct {
	registry procurement.SupplierRegistry
	catalog  procurement.CatalogWriter
	logger   *zap.Logger
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(registry procurement.SupplierRegistry, catalog procurement.CatalogWriter, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		registry: registry,
		catalog:  catalog,
		logger:   logger.Named("catalog"),
	}
}

// GetPartData looks a SKU up at the supplier. A SKU the supplier does not
// know yields a PartData with zero results, not an error.
func (s *CatalogService) GetPartData(ctx context.Context, supplier procurement.SupplierCode, sku string, opts procurement.PartSearchOptions) (*procurement.PartData, error) {
	if sku == "" {
		return nil, procurement.ErrEmptySKU
	}
	gateway, err := s.registry.Gateway(supplier)
	if err != nil {
		return nil, err
	}
	return gateway.GetPartData(ctx, sku, opts)
}

// CreateCatalogEntry looks the SKU up at the supplier and stores the result
// as a new catalog entry with its price breaks. The lookup uses exact
// matching; anything else would risk cataloging a neighboring part.
func (s *CatalogService) CreateCatalogEntry(ctx context.Context, supplier procurement.SupplierCode, sku string) (*procurement.SupplierPart, error) {
	if sku == "" {
		return nil, procurement.ErrEmptySKU
	}

	exists, err := s.catalog.ExistsBySKU(ctx, supplier, sku)
	if err != nil {
		return nil, fmt.Errorf("catalog lookup for %q: %w", sku, err)
	}
	if exists {
		return nil, procurement.ErrPartAlreadyExists
	}

	gateway, err := s.registry.Gateway(supplier)
	if err != nil {
		return nil, err
	}

	data, err := gateway.GetPartData(ctx, sku, procurement.PartSearchOptions{Mode: "Exact"})
	if err != nil {
		return nil, err
	}
	if data.NumberOfResults == 0 {
		return nil, procurement.NewGatewayError(supplier, procurement.ErrorKindLocalValidation,
			"PART_NOT_FOUND", fmt.Sprintf("no part found for SKU %q", sku))
	}

	part := &procurement.SupplierPart{
		Supplier:               supplier,
		SKU:                    data.SKU,
		ManufacturerPartNumber: data.ManufacturerPartNumber,
		URL:                    data.URL,
		LifecycleStatus:        data.LifecycleStatus,
		Description:            data.Description,
		Package:                data.Package,
		PackQuantity:           data.PackQuantity,
		PriceBreaks:            data.PriceBreaks,
	}
	if err := s.catalog.CreatePart(ctx, part); err != nil {
		return nil, fmt.Errorf("create catalog entry for %q: %w", sku, err)
	}

	s.logger.Info("catalog entry created",
		zap.String("supplier", string(supplier)),
		zap.String("sku", part.SKU),
		zap.Int("price_breaks", len(part.PriceBreaks)),
	)
	return part, nil
}

package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/erp/supplier-gateway/internal/domain/procurement"
	"github.com/erp/supplier-gateway/internal/infrastructure/persistence/models"
)

// GormSupplierPartRepository implements CatalogWriter using GORM
type GormSupplierPartRepository struct {
	db *gorm.DB
}

// NewGormSupplierPartRepository creates a new GormSupplierPartRepository
func NewGormSupplierPartRepository(db *gorm.DB) *GormSupplierPartRepository {
	return &GormSupplierPartRepository{db: db}
}

// ExistsBySKU reports whether a catalog entry already exists for the SKU at
// the given supplier
func (r *GormSupplierPartRepository) ExistsBySKU(ctx context.Context, supplier procurement.SupplierCode, sku string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SupplierPartModel{}).
		Where("supplier_code = ? AND sku = ?", string(supplier), sku).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreatePart creates a catalog entry with its price-break rows in one
// transaction
func (r *GormSupplierPartRepository) CreatePart(ctx context.Context, part *procurement.SupplierPart) error {
	if part.ID == uuid.Nil {
		part.ID = uuid.New()
	}
	var model models.SupplierPartModel
	model.FromDomain(part)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&model).Error
	})
}

// FindBySKU returns the stored catalog entry with its price breaks
func (r *GormSupplierPartRepository) FindBySKU(ctx context.Context, supplier procurement.SupplierCode, sku string) (*procurement.SupplierPart, error) {
	var model models.SupplierPartModel
	if err := r.db.WithContext(ctx).
		Preload("PriceBreaks").
		First(&model, "supplier_code = ? AND sku = ?", string(supplier), sku).Error; err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// Ensure GormSupplierPartRepository implements CatalogWriter interface
var _ procurement.CatalogWriter = (*GormSupplierPartRepository)(nil)

package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/erp/supplier-gateway/internal/domain/procurement"
	"github.com/erp/supplier-gateway/internal/infrastructure/persistence/models"
)

// GormPurchaseOrderRepository implements PurchaseOrderRepository using GORM
type GormPurchaseOrderRepository struct {
	db *gorm.DB
}

// NewGormPurchaseOrderRepository creates a new GormPurchaseOrderRepository
func NewGormPurchaseOrderRepository(db *gorm.DB) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{db: db}
}

// Create stores a purchase order with its lines
func (r *GormPurchaseOrderRepository) Create(ctx context.Context, order *procurement.PurchaseOrder) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	var model models.PurchaseOrderModel
	model.FromDomain(order)
	return r.db.WithContext(ctx).Create(&model).Error
}

// FindByID loads a purchase order with its lines
func (r *GormPurchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.PurchaseOrder, error) {
	var model models.PurchaseOrderModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, procurement.ErrOrderNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// UpdateLinePrice writes the reconciled unit price back onto the order line
// matching the SKU. Lines the supplier did not return are left untouched.
func (r *GormPurchaseOrderRepository) UpdateLinePrice(ctx context.Context, orderID uuid.UUID, sku string, price decimal.Decimal) error {
	return r.db.WithContext(ctx).
		Model(&models.OrderLineModel{}).
		Where("purchase_order_id = ? AND sku = ?", orderID, sku).
		Update("unit_price", price).Error
}

// Ensure GormPurchaseOrderRepository implements PurchaseOrderRepository interface
var _ procurement.PurchaseOrderRepository = (*GormPurchaseOrderRepository)(nil)

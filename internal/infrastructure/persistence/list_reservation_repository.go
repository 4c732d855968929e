package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/erp/supplier-gateway/internal/domain/procurement"
	"github.com/erp/supplier-gateway/internal/infrastructure/persistence/models"
)

// GormListReservationStore implements ListReservationStore using GORM
type GormListReservationStore struct {
	db *gorm.DB
}

// NewGormListReservationStore creates a new GormListReservationStore
func NewGormListReservationStore(db *gorm.DB) *GormListReservationStore {
	return &GormListReservationStore{db: db}
}

// ListName returns the stored list name, or "" when none was reserved yet
func (r *GormListReservationStore) ListName(ctx context.Context, supplier procurement.SupplierCode, orderReference string) (string, error) {
	var model models.ListReservationModel
	if err := r.db.WithContext(ctx).
		First(&model, "supplier_code = ? AND order_reference = ?", string(supplier), orderReference).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return model.ListName, nil
}

// Save stores the reserved list name for an order
func (r *GormListReservationStore) Save(ctx context.Context, supplier procurement.SupplierCode, orderReference, listName string) error {
	model := models.ListReservationModel{
		SupplierCode:   string(supplier),
		OrderReference: orderReference,
		ListName:       listName,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "supplier_code"}, {Name: "order_reference"}},
			DoUpdates: clause.AssignmentColumns([]string{"list_name", "updated_at"}),
		}).
		Create(&model).Error
}

// Ensure GormListReservationStore implements ListReservationStore interface
var _ procurement.ListReservationStore = (*GormListReservationStore)(nil)

package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/erp/supplier-gateway/internal/domain/procurement"
	"github.com/erp/supplier-gateway/internal/infrastructure/persistence/models"
)

// GormTokenStore implements TokenStore using GORM
type GormTokenStore struct {
	db *gorm.DB
}

// NewGormTokenStore creates a new GormTokenStore
func NewGormTokenStore(db *gorm.DB) *GormTokenStore {
	return &GormTokenStore{db: db}
}

// Token returns the stored token pair for a supplier
func (r *GormTokenStore) Token(ctx context.Context, supplier procurement.SupplierCode) (procurement.OAuthToken, error) {
	var model models.SupplierTokenModel
	if err := r.db.WithContext(ctx).
		First(&model, "supplier_code = ?", string(supplier)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return procurement.OAuthToken{}, procurement.ErrTokenNotFound
		}
		return procurement.OAuthToken{}, err
	}
	return model.ToDomain(), nil
}

// Save replaces the token pair for a supplier. Both tokens are written in
// one statement; a rotated refresh token must never be lost.
func (r *GormTokenStore) Save(ctx context.Context, supplier procurement.SupplierCode, token procurement.OAuthToken) error {
	model := models.SupplierTokenModel{
		SupplierCode: string(supplier),
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "supplier_code"}},
			DoUpdates: clause.AssignmentColumns([]string{"access_token", "refresh_token", "updated_at"}),
		}).
		Create(&model).Error
}

// Ensure GormTokenStore implements TokenStore interface
var _ procurement.TokenStore = (*GormTokenStore)(nil)

package discounts

import (
	"context"

	"gorm.io/gorm"

	"github.com/meterline/storefront-backend/pkg/db/models"
)

// Repository reads the discount registry. The storefront never writes it.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindActiveByCode matches a code exactly (case-sensitive) and returns it
// only when active.
func (r *Repository) FindActiveByCode(ctx context.Context, code string) (*models.Discount, error) {
	var discount models.Discount
	err := r.db.WithContext(ctx).
		Where("code = ? AND is_active = ?", code, true).
		First(&discount).
		Error
	if err != nil {
		return nil, err
	}
	return &discount, nil
}

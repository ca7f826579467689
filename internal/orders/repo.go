package orders

import (
	"context"

	"gorm.io/gorm"

	"github.com/meterline/storefront-backend/pkg/db/models"
)

// Repository persists order headers and line items.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a repository to the shared connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a copy of the repository bound to an open transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// CreateHeader inserts the order row and populates the generated id.
// Line items are persisted separately after the number is derived.
func (r *Repository) CreateHeader(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Omit("Items").Create(order).Error
}

// SetOrderNumber writes the derived human-readable number back onto the row.
func (r *Repository) SetOrderNumber(ctx context.Context, id int64, number string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Update("order_number", number)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreateItems inserts the snapshot lines for an order.
func (r *Repository) CreateItems(ctx context.Context, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

// ListByOwner returns the orders placed under a client token, falling back
// to the request IP when no token was ever issued. Newest first.
func (r *Repository) ListByOwner(ctx context.Context, clientToken, clientIP string) ([]models.Order, error) {
	query := r.db.WithContext(ctx).Model(&models.Order{})
	if clientToken != "" {
		query = query.Where("client_token = ?", clientToken)
	} else {
		query = query.Where("client_ip = ?", clientIP)
	}

	var rows []models.Order
	if err := query.Order("id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByNumber loads a full order, items included, by its public number.
func (r *Repository) FindByNumber(ctx context.Context, number string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("order_number = ?", number).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/meterline/storefront-backend/pkg/db/models"
	"github.com/meterline/storefront-backend/pkg/enums"
)

// ListFilters narrows the public catalog query. The zero value returns all
// active products, newest first.
type ListFilters struct {
	Category        *enums.ProductCategory
	Manufacturer    string
	Protocol        string
	Search          string
	StockStatuses   []enums.StockStatus
	IncludeInactive bool
}

// Repository wires product persistence to the catalog query surface.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// List returns products matching the filters, most recently created first.
// Inactive products are excluded unless IncludeInactive is set.
func (r *Repository) List(ctx context.Context, filters ListFilters) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})

	if !filters.IncludeInactive {
		query = query.Where("is_active = ?", true)
	}
	if filters.Category != nil {
		query = query.Where("category = ?", *filters.Category)
	}
	if manufacturer := strings.TrimSpace(filters.Manufacturer); manufacturer != "" {
		query = query.Where("manufacturer = ?", manufacturer)
	}
	if protocol := strings.TrimSpace(filters.Protocol); protocol != "" {
		query = query.Where(`protocol LIKE ? ESCAPE '\'`, "%"+escapeLike(protocol)+"%")
	}
	if search := strings.ToLower(strings.TrimSpace(filters.Search)); search != "" {
		pattern := "%" + escapeLike(search) + "%"
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(sku) LIKE ? ESCAPE '\'`, pattern, pattern)
	}
	if len(filters.StockStatuses) > 0 {
		query = query.Where("stock_status IN ?", filters.StockStatuses)
	}

	var rows []models.Product
	err := query.Order("created_at DESC").Find(&rows).Error
	return rows, err
}

// escapeLike neutralizes LIKE wildcards in user-supplied filter text, so
// a search for "100%" matches the literal string instead of everything.
func escapeLike(value string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(value)
}

// FindByID loads one product without visibility filtering.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// ListActiveByIDs returns the active products among the requested ids.
// Callers compare the result against the request to detect unavailable items.
func (r *Repository) ListActiveByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Where("id IN ? AND is_active = ?", ids, true).
		Find(&rows).
		Error
	return rows, err
}

// UpsertBySKU inserts or updates products keyed on sku, returning the number
// of rows synced.
func (r *Repository) UpsertBySKU(ctx context.Context, products []models.Product) (int, error) {
	if len(products) == 0 {
		return 0, nil
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "sku"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "category", "manufacturer", "series", "mounting",
				"protocol", "max_capacity", "price", "currency", "stock_status",
				"is_active", "image_url", "datasheet_url", "short_description",
				"full_description", "specs", "updated_at",
			}),
		}).
		Create(&products).
		Error
	if err != nil {
		return 0, err
	}
	return len(products), nil
}

package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/meterline/storefront-backend/pkg/db"
	"github.com/meterline/storefront-backend/pkg/db/models"
	"github.com/meterline/storefront-backend/pkg/enums"
	pkgerrors "github.com/meterline/storefront-backend/pkg/errors"
	"github.com/meterline/storefront-backend/pkg/types"
)

// filterAll is the wildcard value the storefront UI sends for "no filter".
const filterAll = "ALL"

// Service exposes catalog reads and the admin import.
type Service interface {
	List(ctx context.Context, input ListInput) ([]*ProductDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	Import(ctx context.Context, items []ImportProductInput) (int, error)
}

// ListInput carries raw query values; the service normalizes and validates.
type ListInput struct {
	Category        string
	Manufacturer    string
	Protocol        string
	Search          string
	StockStatuses   []string
	IncludeInactive bool
}

// ImportProductInput is one row of the admin bulk upsert, keyed by sku.
type ImportProductInput struct {
	SKU              string
	Name             string
	Category         string
	Manufacturer     string
	Series           *string
	Mounting         *string
	Protocol         *string
	MaxCapacity      *float64
	Price            decimal.Decimal
	Currency         string
	StockStatus      string
	IsActive         *bool
	ImageURL         string
	DatasheetURL     *string
	ShortDescription types.LocalizedText
	FullDescription  types.LocalizedText
	Specs            types.StringMap
}

type repository interface {
	List(ctx context.Context, filters ListFilters) ([]models.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	UpsertBySKU(ctx context.Context, products []models.Product) (int, error)
}

type service struct {
	repo repository
}

// NewService wires catalog dependencies.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, input ListInput) ([]*ProductDTO, error) {
	filters := ListFilters{
		Manufacturer:    normalizeFilter(input.Manufacturer),
		Protocol:        normalizeFilter(input.Protocol),
		Search:          strings.TrimSpace(input.Search),
		IncludeInactive: input.IncludeInactive,
	}

	if raw := normalizeFilter(input.Category); raw != "" {
		category, err := enums.ParseProductCategory(raw)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
		}
		filters.Category = &category
	}

	for _, raw := range input.StockStatuses {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		status, err := enums.ParseStockStatus(raw)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid stock status")
		}
		filters.StockStatuses = append(filters.StockStatuses, status)
	}

	rows, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return NewProductDTOs(rows), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return NewProductDTO(product), nil
}

func (s *service) Import(ctx context.Context, items []ImportProductInput) (int, error) {
	if len(items) == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "no products to import")
	}

	rows := make([]models.Product, 0, len(items))
	for i, item := range items {
		row, err := importRow(item)
		if err != nil {
			return 0, pkgerrors.As(err).WithDetails(map[string]any{"index": i, "sku": item.SKU})
		}
		rows = append(rows, *row)
	}

	count, err := s.repo.UpsertBySKU(ctx, rows)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sync products")
	}
	return count, nil
}

func importRow(item ImportProductInput) (*models.Product, error) {
	sku := strings.TrimSpace(item.SKU)
	if sku == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku is required")
	}
	name := strings.TrimSpace(item.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if item.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}

	category, err := enums.ParseProductCategory(strings.TrimSpace(item.Category))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
	}

	status := enums.StockStatusInStock
	if raw := strings.TrimSpace(item.StockStatus); raw != "" {
		status, err = enums.ParseStockStatus(raw)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid stock status")
		}
	}

	currency := strings.TrimSpace(item.Currency)
	if currency == "" {
		currency = "RON"
	}

	active := true
	if item.IsActive != nil {
		active = *item.IsActive
	}

	return &models.Product{
		SKU:              sku,
		Name:             name,
		Category:         category,
		Manufacturer:     strings.TrimSpace(item.Manufacturer),
		Series:           item.Series,
		Mounting:         item.Mounting,
		Protocol:         item.Protocol,
		MaxCapacity:      item.MaxCapacity,
		Price:            item.Price.Round(2),
		Currency:         currency,
		StockStatus:      status,
		IsActive:         active,
		ImageURL:         strings.TrimSpace(item.ImageURL),
		DatasheetURL:     item.DatasheetURL,
		ShortDescription: item.ShortDescription,
		FullDescription:  item.FullDescription,
		Specs:            item.Specs,
	}, nil
}

func normalizeFilter(value string) string {
	value = strings.TrimSpace(value)
	if strings.EqualFold(value, filterAll) {
		return ""
	}
	return value
}

package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/meterline/storefront-backend/pkg/db/models"
	"github.com/meterline/storefront-backend/pkg/types"
)

// ProductDTO is the catalog payload returned to clients.
type ProductDTO struct {
	ID               uuid.UUID           `json:"id"`
	SKU              string              `json:"sku"`
	Name             string              `json:"name"`
	Category         string              `json:"category"`
	Manufacturer     string              `json:"manufacturer"`
	Series           *string             `json:"series,omitempty"`
	Mounting         *string             `json:"mounting,omitempty"`
	Protocol         *string             `json:"protocol,omitempty"`
	MaxCapacity      *float64            `json:"maxCapacity,omitempty"`
	Price            string              `json:"price"`
	Currency         string              `json:"currency"`
	StockStatus      string              `json:"stockStatus"`
	IsActive         bool                `json:"isActive"`
	Image            string              `json:"image,omitempty"`
	DatasheetURL     *string             `json:"datasheetUrl,omitempty"`
	ShortDescription types.LocalizedText `json:"shortDescription,omitempty"`
	FullDescription  types.LocalizedText `json:"fullDescription,omitempty"`
	Specs            types.StringMap     `json:"specs,omitempty"`
	CreatedAt        time.Time           `json:"createdAt"`
	UpdatedAt        time.Time           `json:"updatedAt"`
}

// NewProductDTO builds a DTO from the persisted model.
func NewProductDTO(product *models.Product) *ProductDTO {
	return &ProductDTO{
		ID:               product.ID,
		SKU:              product.SKU,
		Name:             product.Name,
		Category:         string(product.Category),
		Manufacturer:     product.Manufacturer,
		Series:           product.Series,
		Mounting:         product.Mounting,
		Protocol:         product.Protocol,
		MaxCapacity:      product.MaxCapacity,
		Price:            product.Price.StringFixed(2),
		Currency:         product.Currency,
		StockStatus:      string(product.StockStatus),
		IsActive:         product.IsActive,
		Image:            product.ImageURL,
		DatasheetURL:     product.DatasheetURL,
		ShortDescription: product.ShortDescription,
		FullDescription:  product.FullDescription,
		Specs:            product.Specs,
		CreatedAt:        product.CreatedAt,
		UpdatedAt:        product.UpdatedAt,
	}
}

// NewProductDTOs maps a product slice into response DTOs.
func NewProductDTOs(products []models.Product) []*ProductDTO {
	out := make([]*ProductDTO, len(products))
	for i := range products {
		out[i] = NewProductDTO(&products[i])
	}
	return out
}

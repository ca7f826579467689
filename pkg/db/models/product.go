package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/meterline/storefront-backend/pkg/enums"
	"github.com/meterline/storefront-backend/pkg/types"
)

// Product represents a catalog listing. Orders snapshot the fields they
// need at purchase time, so product rows are never referenced live from
// the order path.
type Product struct {
	ID               uuid.UUID             `gorm:"column:id;type:uuid;primaryKey"`
	SKU              string                `gorm:"column:sku;uniqueIndex;not null"`
	Name             string                `gorm:"column:name;not null"`
	Category         enums.ProductCategory `gorm:"column:category;type:text;not null"`
	Manufacturer     string                `gorm:"column:manufacturer;not null"`
	Series           *string               `gorm:"column:series"`
	Mounting         *string               `gorm:"column:mounting"`
	Protocol         *string               `gorm:"column:protocol"`
	MaxCapacity      *float64              `gorm:"column:max_capacity"`
	Price            decimal.Decimal       `gorm:"column:price;type:numeric(10,2);not null"`
	Currency         string                `gorm:"column:currency;not null;default:'RON'"`
	StockStatus      enums.StockStatus     `gorm:"column:stock_status;type:text;not null;default:'in_stock'"`
	IsActive         bool                  `gorm:"column:is_active;not null;default:true"`
	ImageURL         string                `gorm:"column:image_url"`
	DatasheetURL     *string               `gorm:"column:datasheet_url"`
	ShortDescription types.LocalizedText   `gorm:"column:short_description;type:jsonb;serializer:json"`
	FullDescription  types.LocalizedText   `gorm:"column:full_description;type:jsonb;serializer:json"`
	Specs            types.StringMap       `gorm:"column:specs;type:jsonb;serializer:json"`
	CreatedAt        time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate assigns the primary key so inserts behave the same on
// Postgres and the sqlite test driver.
func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

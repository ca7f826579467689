package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/meterline/storefront-backend/pkg/enums"
)

// Discount is a promotional code. Read-only from the storefront; codes are
// provisioned out of band.
type Discount struct {
	ID        uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	Code      string             `gorm:"column:code;uniqueIndex;not null"`
	Type      enums.DiscountType `gorm:"column:type;type:text;not null"`
	Value     decimal.Decimal    `gorm:"column:value;type:numeric(10,2);not null"`
	IsActive  bool               `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

func (d *Discount) BeforeCreate(*gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/meterline/storefront-backend/pkg/enums"
	"github.com/meterline/storefront-backend/pkg/types"
)

// Order is the persisted order header. The bigserial primary key is the
// durable monotonic identifier the human-readable order number derives
// from; the number is written back inside the placing transaction.
// OrderNumber is a pointer so freshly inserted headers carry NULL, not
// the empty string: the unique index must never make two in-flight
// placements contend on a shared placeholder.
type Order struct {
	ID             int64             `gorm:"column:id;primaryKey;autoIncrement"`
	OrderNumber    *string           `gorm:"column:order_number;uniqueIndex"`
	ClientToken    string            `gorm:"column:client_token;index"`
	ClientIP       string            `gorm:"column:client_ip;index"`
	CustomerEmail  string            `gorm:"column:customer_email;not null"`
	OrderNotes     string            `gorm:"column:order_notes"`
	Billing        types.Address     `gorm:"column:billing_details;type:jsonb;serializer:json"`
	Shipping       types.Address     `gorm:"column:shipping_details;type:jsonb;serializer:json"`
	Subtotal       decimal.Decimal   `gorm:"column:subtotal;type:numeric(10,2);not null"`
	DiscountCode   *string           `gorm:"column:discount_code"`
	DiscountAmount decimal.Decimal   `gorm:"column:discount_amount;type:numeric(10,2);not null;default:0"`
	FinalTotal     decimal.Decimal   `gorm:"column:final_total;type:numeric(10,2);not null"`
	Status         enums.OrderStatus `gorm:"column:status;type:text;not null;default:'new'"`
	Items          []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// Number returns the public order number, or "" while it is unassigned.
func (o *Order) Number() string {
	if o.OrderNumber == nil {
		return ""
	}
	return *o.OrderNumber
}

package orders

import (
	"time"

	"github.com/meterline/storefront-backend/pkg/db/models"
	"github.com/meterline/storefront-backend/pkg/types"
)

// Money amounts are rendered as fixed two-decimal strings so clients never
// see a float artifact of the stored numeric values.

// OrderSummaryDTO is one row of the "my orders" listing.
type OrderSummaryDTO struct {
	OrderNumber string    `json:"orderNumber"`
	CreatedAt   time.Time `json:"date"`
	Total       string    `json:"total"`
	Status      string    `json:"status"`
}

// OrderItemDTO is a persisted line-item snapshot.
type OrderItemDTO struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	SKU       string `json:"sku"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
	LineTotal string `json:"lineTotal"`
}

// OrderDetailDTO is the full order view returned after the ownership check.
type OrderDetailDTO struct {
	OrderNumber    string         `json:"orderNumber"`
	CustomerEmail  string         `json:"customerEmail"`
	Billing        types.Address  `json:"billing"`
	Shipping       types.Address  `json:"shipping"`
	Notes          string         `json:"notes,omitempty"`
	Items          []OrderItemDTO `json:"items"`
	Subtotal       string         `json:"subtotal"`
	DiscountCode   *string        `json:"discountCode,omitempty"`
	DiscountAmount string         `json:"discountAmount"`
	Total          string         `json:"total"`
	Status         string         `json:"status"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// PlacedOrderDTO is the checkout response.
type PlacedOrderDTO struct {
	OrderNumber string `json:"orderNumber"`
}

func newSummaryDTO(order *models.Order) OrderSummaryDTO {
	return OrderSummaryDTO{
		OrderNumber: order.Number(),
		CreatedAt:   order.CreatedAt,
		Total:       order.FinalTotal.StringFixed(2),
		Status:      string(order.Status),
	}
}

func newDetailDTO(order *models.Order) *OrderDetailDTO {
	items := make([]OrderItemDTO, len(order.Items))
	for i, item := range order.Items {
		items[i] = OrderItemDTO{
			ProductID: item.ProductID.String(),
			Name:      item.ProductName,
			SKU:       item.SKU,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.StringFixed(2),
			LineTotal: item.TotalPrice.StringFixed(2),
		}
	}
	return &OrderDetailDTO{
		OrderNumber:    order.Number(),
		CustomerEmail:  order.CustomerEmail,
		Billing:        order.Billing,
		Shipping:       order.Shipping,
		Notes:          order.OrderNotes,
		Items:          items,
		Subtotal:       order.Subtotal.StringFixed(2),
		DiscountCode:   order.DiscountCode,
		DiscountAmount: order.DiscountAmount.StringFixed(2),
		Total:          order.FinalTotal.StringFixed(2),
		Status:         string(order.Status),
		CreatedAt:      order.CreatedAt,
	}
}

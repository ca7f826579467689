package pricing

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/meterline/storefront-backend/pkg/db/models"
	"github.com/meterline/storefront-backend/pkg/enums"
	pkgerrors "github.com/meterline/storefront-backend/pkg/errors"
)

// ItemRequest is the only thing the engine accepts from the outside:
// a product reference and a requested quantity. Prices always come from
// the catalog, never from the client.
type ItemRequest struct {
	ProductID uuid.UUID
	Quantity  int
}

// ValidatedItem is the server-authoritative snapshot of one line,
// suitable for persistence and notification rendering.
type ValidatedItem struct {
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// Quote is the computed order total. Total is never negative. All amounts
// are exact decimals rounded to cents, matching the numeric(10,2) columns
// they are stored into.
type Quote struct {
	Items          []ValidatedItem `json:"items"`
	Currency       string          `json:"currency"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountCode   *string         `json:"discountCode,omitempty"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	Total          decimal.Decimal `json:"total"`
}

// ProductSource resolves the active products for a set of ids.
type ProductSource interface {
	ListActiveByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
}

// DiscountSource resolves an active discount by exact code.
type DiscountSource interface {
	FindActiveByCode(ctx context.Context, code string) (*models.Discount, error)
}

// Engine recomputes order totals from trusted storage.
type Engine struct {
	products  ProductSource
	discounts DiscountSource
}

// NewEngine wires the pricing dependencies.
func NewEngine(products ProductSource, discounts DiscountSource) (*Engine, error) {
	if products == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "product source required")
	}
	if discounts == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "discount source required")
	}
	return &Engine{products: products, discounts: discounts}, nil
}

// Compute validates every requested item against the catalog and returns
// the authoritative totals. Any unknown or inactive product aborts the
// whole computation; an invalid discount code is dropped silently.
func (e *Engine) Compute(ctx context.Context, requests []ItemRequest, discountCode string) (*Quote, error) {
	if len(requests) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order contains no items")
	}

	// Merge duplicate product ids, clamping each requested quantity first.
	quantities := make(map[uuid.UUID]int, len(requests))
	ids := make([]uuid.UUID, 0, len(requests))
	for _, req := range requests {
		if req.ProductID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item product id required")
		}
		if _, seen := quantities[req.ProductID]; !seen {
			ids = append(ids, req.ProductID)
		}
		quantities[req.ProductID] += ClampQuantity(req.Quantity)
	}

	rows, err := e.products.ListActiveByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load products for pricing")
	}

	byID := make(map[uuid.UUID]*models.Product, len(rows))
	for i := range rows {
		byID[rows[i].ID] = &rows[i]
	}

	quote := &Quote{Items: make([]ValidatedItem, 0, len(ids))}
	for _, id := range ids {
		product, ok := byID[id]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeProductUnavailable, "product is no longer available").
				WithDetails(map[string]any{"productId": id.String()})
		}

		qty := quantities[id]
		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(qty))).Round(2)
		quote.Items = append(quote.Items, ValidatedItem{
			ProductID: product.ID,
			Name:      product.Name,
			SKU:       product.SKU,
			Quantity:  qty,
			UnitPrice: product.Price,
			LineTotal: lineTotal,
		})
		quote.Subtotal = quote.Subtotal.Add(lineTotal)
		if quote.Currency == "" {
			quote.Currency = product.Currency
		}
	}

	if discountCode != "" {
		quote.DiscountCode, quote.DiscountAmount = e.resolveDiscount(ctx, discountCode, quote.Subtotal)
	}

	quote.Total = quote.Subtotal.Sub(quote.DiscountAmount)
	if quote.Total.IsNegative() {
		quote.Total = decimal.Zero
	}
	return quote, nil
}

// resolveDiscount re-validates the code against the registry. Unknown or
// inactive codes yield no discount; the order proceeds without one.
func (e *Engine) resolveDiscount(ctx context.Context, code string, subtotal decimal.Decimal) (*string, decimal.Decimal) {
	discount, err := e.discounts.FindActiveByCode(ctx, code)
	if err != nil || discount == nil {
		return nil, decimal.Zero
	}

	var amount decimal.Decimal
	switch discount.Type {
	case enums.DiscountTypePercent:
		amount = subtotal.Mul(discount.Value).Div(decimal.NewFromInt(100)).Round(2)
	case enums.DiscountTypeFixed:
		amount = discount.Value.Round(2)
	default:
		return nil, decimal.Zero
	}

	applied := discount.Code
	return &applied, amount
}

// ClampQuantity coerces any requested quantity to an integer >= 1.
func ClampQuantity(qty int) int {
	if qty < 1 {
		return 1
	}
	return qty
}

package pricing

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/meterline/storefront-backend/pkg/db/models"
	"github.com/meterline/storefront-backend/pkg/enums"
	pkgerrors "github.com/meterline/storefront-backend/pkg/errors"
)

type fakeProductSource struct {
	rows []models.Product
	err  error
}

func (f *fakeProductSource) ListActiveByIDs(_ context.Context, ids []uuid.UUID) ([]models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	requested := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		requested[id] = true
	}
	var out []models.Product
	for _, row := range f.rows {
		if requested[row.ID] {
			out = append(out, row)
		}
	}
	return out, nil
}

type fakeDiscountSource struct {
	discount *models.Discount
}

func (f *fakeDiscountSource) FindActiveByCode(_ context.Context, code string) (*models.Discount, error) {
	if f.discount == nil || f.discount.Code != code {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "discount not found")
	}
	return f.discount, nil
}

func newTestEngine(t *testing.T, products *fakeProductSource, discounts *fakeDiscountSource) *Engine {
	t.Helper()
	engine, err := NewEngine(products, discounts)
	if err != nil {
		t.Fatalf("NewEngine returned error: %v", err)
	}
	return engine
}

func product(price string) models.Product {
	return models.Product{
		ID:       uuid.New(),
		SKU:      "SKU-" + uuid.NewString()[:8],
		Name:     "Three-phase meter",
		Price:    decimal.RequireFromString(price),
		Currency: "RON",
		IsActive: true,
	}
}

func assertAmount(t *testing.T, label string, got decimal.Decimal, want string) {
	t.Helper()
	if got.StringFixed(2) != want {
		t.Fatalf("expected %s %s, got %s", label, want, got.StringFixed(2))
	}
}

func TestComputeSubtotalFromServerPrices(t *testing.T) {
	p1 := product("100")
	p2 := product("250.50")
	engine := newTestEngine(t, &fakeProductSource{rows: []models.Product{p1, p2}}, &fakeDiscountSource{})

	quote, err := engine.Compute(context.Background(), []ItemRequest{
		{ProductID: p1.ID, Quantity: 2},
		{ProductID: p2.ID, Quantity: 1},
	}, "")
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}

	assertAmount(t, "subtotal", quote.Subtotal, "450.50")
	assertAmount(t, "total", quote.Total, "450.50")
	if !quote.DiscountAmount.IsZero() || quote.DiscountCode != nil {
		t.Fatalf("expected no discount, got %v / %v", quote.DiscountAmount, quote.DiscountCode)
	}
	if quote.Currency != "RON" {
		t.Fatalf("expected currency RON, got %q", quote.Currency)
	}
}

func TestComputeClampsQuantities(t *testing.T) {
	p := product("10")
	engine := newTestEngine(t, &fakeProductSource{rows: []models.Product{p}}, &fakeDiscountSource{})

	for _, qty := range []int{0, -5, 1} {
		quote, err := engine.Compute(context.Background(), []ItemRequest{{ProductID: p.ID, Quantity: qty}}, "")
		if err != nil {
			t.Fatalf("Compute(%d) returned error: %v", qty, err)
		}
		if quote.Items[0].Quantity != 1 {
			t.Fatalf("expected quantity clamped to 1 for input %d, got %d", qty, quote.Items[0].Quantity)
		}
		assertAmount(t, "subtotal", quote.Subtotal, "10.00")
	}
}

func TestComputeMergesDuplicateItems(t *testing.T) {
	p := product("5")
	engine := newTestEngine(t, &fakeProductSource{rows: []models.Product{p}}, &fakeDiscountSource{})

	quote, err := engine.Compute(context.Background(), []ItemRequest{
		{ProductID: p.ID, Quantity: 2},
		{ProductID: p.ID, Quantity: 3},
	}, "")
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}
	if len(quote.Items) != 1 {
		t.Fatalf("expected merged line, got %d items", len(quote.Items))
	}
	if quote.Items[0].Quantity != 5 {
		t.Fatalf("expected merged quantity 5, got %d", quote.Items[0].Quantity)
	}
}

func TestComputeFailsClosedOnUnknownProduct(t *testing.T) {
	p := product("100")
	engine := newTestEngine(t, &fakeProductSource{rows: []models.Product{p}}, &fakeDiscountSource{})

	missing := uuid.New()
	_, err := engine.Compute(context.Background(), []ItemRequest{
		{ProductID: p.ID, Quantity: 1},
		{ProductID: missing, Quantity: 1},
	}, "")
	if err == nil {
		t.Fatal("expected error for unknown product")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeProductUnavailable {
		t.Fatalf("expected product unavailable code, got %v", err)
	}
	details, ok := typed.Details().(map[string]any)
	if !ok || details["productId"] != missing.String() {
		t.Fatalf("expected details to name the missing item, got %v", typed.Details())
	}
}

func TestComputePercentDiscount(t *testing.T) {
	p := product("1000")
	engine := newTestEngine(t,
		&fakeProductSource{rows: []models.Product{p}},
		&fakeDiscountSource{discount: &models.Discount{Code: "SAVE10", Type: enums.DiscountTypePercent, Value: decimal.NewFromInt(10), IsActive: true}},
	)

	quote, err := engine.Compute(context.Background(), []ItemRequest{{ProductID: p.ID, Quantity: 1}}, "SAVE10")
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}
	assertAmount(t, "discount", quote.DiscountAmount, "100.00")
	assertAmount(t, "total", quote.Total, "900.00")
	if quote.DiscountCode == nil || *quote.DiscountCode != "SAVE10" {
		t.Fatalf("expected code SAVE10 to be applied, got %v", quote.DiscountCode)
	}
}

func TestComputePercentDiscountRoundsExactly(t *testing.T) {
	// 0.1% of 1005.00 is 1.005; exact decimal arithmetic rounds the
	// half-cent up, where float math would lose it entirely.
	p := product("1005.00")
	engine := newTestEngine(t,
		&fakeProductSource{rows: []models.Product{p}},
		&fakeDiscountSource{discount: &models.Discount{Code: "TENTH", Type: enums.DiscountTypePercent, Value: decimal.RequireFromString("0.1"), IsActive: true}},
	)

	quote, err := engine.Compute(context.Background(), []ItemRequest{{ProductID: p.ID, Quantity: 1}}, "TENTH")
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}
	assertAmount(t, "discount", quote.DiscountAmount, "1.01")
	assertAmount(t, "total", quote.Total, "1003.99")
}

func TestComputeFixedDiscountClampsTotalAtZero(t *testing.T) {
	p := product("30")
	engine := newTestEngine(t,
		&fakeProductSource{rows: []models.Product{p}},
		&fakeDiscountSource{discount: &models.Discount{Code: "FLAT50", Type: enums.DiscountTypeFixed, Value: decimal.NewFromInt(50), IsActive: true}},
	)

	quote, err := engine.Compute(context.Background(), []ItemRequest{{ProductID: p.ID, Quantity: 1}}, "FLAT50")
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}
	assertAmount(t, "discount", quote.DiscountAmount, "50.00")
	assertAmount(t, "total", quote.Total, "0.00")
}

func TestComputeDropsInvalidDiscountSilently(t *testing.T) {
	p := product("100")
	engine := newTestEngine(t, &fakeProductSource{rows: []models.Product{p}}, &fakeDiscountSource{})

	quote, err := engine.Compute(context.Background(), []ItemRequest{{ProductID: p.ID, Quantity: 1}}, "NOPE")
	if err != nil {
		t.Fatalf("invalid discount must not fail the order: %v", err)
	}
	if quote.DiscountCode != nil || !quote.DiscountAmount.IsZero() {
		t.Fatalf("expected discount dropped, got %v / %v", quote.DiscountCode, quote.DiscountAmount)
	}
	assertAmount(t, "total", quote.Total, "100.00")
}

func TestComputeNoItems(t *testing.T) {
	engine := newTestEngine(t, &fakeProductSource{}, &fakeDiscountSource{})
	_, err := engine.Compute(context.Background(), nil, "")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for empty order, got %v", err)
	}
}

func TestComputePropagatesStorageFailure(t *testing.T) {
	engine := newTestEngine(t, &fakeProductSource{err: errors.New("db gone")}, &fakeDiscountSource{})
	_, err := engine.Compute(context.Background(), []ItemRequest{{ProductID: uuid.New(), Quantity: 1}}, "")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestClampQuantity(t *testing.T) {
	cases := map[int]int{-3: 1, 0: 1, 1: 1, 7: 7}
	for input, want := range cases {
		if got := ClampQuantity(input); got != want {
			t.Fatalf("ClampQuantity(%d) = %d, want %d", input, got, want)
		}
	}
}

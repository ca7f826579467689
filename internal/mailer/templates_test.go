package mailer

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/meterline/storefront-backend/internal/contact"
	"github.com/meterline/storefront-backend/internal/orders"
	"github.com/meterline/storefront-backend/internal/pricing"
	"github.com/meterline/storefront-backend/pkg/types"
)

func TestOrderConfirmationRendersTotals(t *testing.T) {
	code := "SAVE10"
	body, err := renderOrderConfirmation(orders.Confirmation{
		OrderNumber:   "ORD-000042",
		CustomerEmail: "buyer@example.com",
		Billing: types.Address{
			Name: "Ana Pop", Line1: "Str. Lunga 1",
			City: "Cluj-Napoca", Postcode: "400001", Country: "RO",
		},
		Shipping: types.Address{
			Name: "Depot", Line1: "Str. Garii 5",
			City: "Cluj-Napoca", Postcode: "400002", Country: "RO",
		},
		Quote: pricing.Quote{
			Items: []pricing.ValidatedItem{{
				ProductID: uuid.New(),
				Name:      "Smart Meter 100",
				SKU:       "MTR-100",
				Quantity:  2,
				UnitPrice: decimal.NewFromInt(250),
				LineTotal: decimal.NewFromInt(500),
			}},
			Currency:       "RON",
			Subtotal:       decimal.NewFromInt(500),
			DiscountCode:   &code,
			DiscountAmount: decimal.NewFromInt(50),
			Total:          decimal.NewFromInt(450),
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, want := range []string{
		"ORD-000042",
		"Smart Meter 100",
		"MTR-100",
		"250.00 RON",
		"500.00 RON",
		"SAVE10",
		"450.00 RON",
		"Str. Garii 5",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestOrderConfirmationEscapesCustomerInput(t *testing.T) {
	body, err := renderOrderConfirmation(orders.Confirmation{
		OrderNumber: "ORD-000001",
		Billing: types.Address{
			Name: `<script>alert("x")</script>`, Line1: "Str. Lunga 1",
			City: "Cluj", Postcode: "400001", Country: "RO",
		},
		Shipping: types.Address{Name: "Ana", Line1: "Str. Lunga 1", City: "Cluj", Postcode: "400001", Country: "RO"},
		Notes:    `<img src=x onerror=alert(1)>`,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if strings.Contains(body, "<script>") || strings.Contains(body, "<img src=x") {
		t.Fatal("customer HTML reached the body unescaped")
	}
	if !strings.Contains(body, "&lt;script&gt;") {
		t.Error("expected escaped script tag")
	}
}

func TestContactNotificationEscapesMessage(t *testing.T) {
	body, err := renderContactNotification(contact.Message{
		Name:     "Eva",
		Email:    "eva@example.com",
		Message:  `hello <b>world</b> & <script>alert(1)</script>`,
		ClientIP: "198.51.100.7",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if strings.Contains(body, "<script>alert(1)</script>") || strings.Contains(body, "<b>world</b>") {
		t.Fatal("message HTML reached the body unescaped")
	}
	for _, want := range []string{"&lt;script&gt;", "eva@example.com", "198.51.100.7"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

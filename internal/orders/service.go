package orders

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/meterline/storefront-backend/internal/pricing"
	"github.com/meterline/storefront-backend/pkg/db"
	"github.com/meterline/storefront-backend/pkg/db/models"
	"github.com/meterline/storefront-backend/pkg/enums"
	pkgerrors "github.com/meterline/storefront-backend/pkg/errors"
	"github.com/meterline/storefront-backend/pkg/logger"
	"github.com/meterline/storefront-backend/pkg/types"
)

const orderNumberFormat = "ORD-%06d"

// PlaceOrderInput is everything checkout accepts from the client. Prices
// and totals are deliberately absent; they are recomputed server-side.
type PlaceOrderInput struct {
	CustomerEmail string
	Billing       types.Address
	Shipping      *types.Address
	Items         []pricing.ItemRequest
	DiscountCode  string
	OrderNotes    string
	ClientToken   string
	ClientIP      string
}

// Confirmation is the payload handed to the notifier after commit.
type Confirmation struct {
	OrderNumber   string
	CustomerEmail string
	Billing       types.Address
	Shipping      types.Address
	Notes         string
	Quote         pricing.Quote
}

// Notifier delivers the post-commit order confirmation. Delivery failures
// never affect the stored order.
type Notifier interface {
	OrderPlaced(ctx context.Context, msg Confirmation) error
}

// Quoter recomputes authoritative totals from the catalog.
type Quoter interface {
	Compute(ctx context.Context, items []pricing.ItemRequest, discountCode string) (*pricing.Quote, error)
}

// TxRunner executes a function inside a database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service places orders and serves the anonymous order history.
type Service interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*PlacedOrderDTO, error)
	History(ctx context.Context, clientToken, clientIP string) ([]OrderSummaryDTO, error)
	Details(ctx context.Context, orderNumber, clientToken, clientIP string) (*OrderDetailDTO, error)
}

type service struct {
	repo     *Repository
	tx       TxRunner
	quoter   Quoter
	notifier Notifier
	logg     *logger.Logger
}

// NewService wires order dependencies. The notifier is optional; without
// one, orders are placed silently.
func NewService(repo *Repository, tx TxRunner, quoter Quoter, notifier Notifier, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "order repository required")
	}
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "transaction runner required")
	}
	if quoter == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "pricing engine required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &service{repo: repo, tx: tx, quoter: quoter, notifier: notifier, logg: logg}, nil
}

// PlaceOrder validates the request, recomputes totals from the catalog and
// persists the order atomically. The public order number derives from the
// generated primary key and is written back inside the same transaction,
// so a rollback leaves no trace and no number is ever skipped visibly.
func (s *service) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*PlacedOrderDTO, error) {
	if err := validatePlaceOrder(input); err != nil {
		return nil, err
	}

	quote, err := s.quoter.Compute(ctx, input.Items, input.DiscountCode)
	if err != nil {
		return nil, err
	}

	shipping := input.Billing
	if input.Shipping != nil && !input.Shipping.IsZero() {
		shipping = *input.Shipping
	}

	order := &models.Order{
		ClientToken:    input.ClientToken,
		ClientIP:       input.ClientIP,
		CustomerEmail:  strings.TrimSpace(input.CustomerEmail),
		OrderNotes:     strings.TrimSpace(input.OrderNotes),
		Billing:        input.Billing,
		Shipping:       shipping,
		Subtotal:       quote.Subtotal,
		DiscountCode:   quote.DiscountCode,
		DiscountAmount: quote.DiscountAmount,
		FinalTotal:     quote.Total,
		Status:         enums.OrderStatusNew,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if err := repo.CreateHeader(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order header")
		}

		number := fmt.Sprintf(orderNumberFormat, order.ID)
		if err := repo.SetOrderNumber(ctx, order.ID, number); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "assign order number")
		}
		order.OrderNumber = &number

		items := make([]models.OrderItem, len(quote.Items))
		for i, line := range quote.Items {
			items[i] = models.OrderItem{
				OrderID:     order.ID,
				ProductID:   line.ProductID,
				ProductName: line.Name,
				SKU:         line.SKU,
				Quantity:    line.Quantity,
				UnitPrice:   line.UnitPrice,
				TotalPrice:  line.LineTotal,
			}
		}
		if err := repo.CreateItems(ctx, items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order items")
		}
		return nil
	})
	if err != nil {
		if appErr := pkgerrors.As(err); appErr != nil {
			return nil, appErr
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "place order")
	}

	s.notifyPlaced(ctx, Confirmation{
		OrderNumber:   order.Number(),
		CustomerEmail: order.CustomerEmail,
		Billing:       order.Billing,
		Shipping:      order.Shipping,
		Notes:         order.OrderNotes,
		Quote:         *quote,
	})

	return &PlacedOrderDTO{OrderNumber: order.Number()}, nil
}

// History lists the caller's past orders, matched by client token or, for
// tokenless callers, by request IP.
func (s *service) History(ctx context.Context, clientToken, clientIP string) ([]OrderSummaryDTO, error) {
	if clientToken == "" && clientIP == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "client token or ip required")
	}

	rows, err := s.repo.ListByOwner(ctx, clientToken, clientIP)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	summaries := make([]OrderSummaryDTO, len(rows))
	for i := range rows {
		summaries[i] = newSummaryDTO(&rows[i])
	}
	return summaries, nil
}

// Details loads one order by number and re-verifies ownership. A number
// that exists but belongs to someone else reads as not-found, so guessing
// numbers reveals nothing about which ones exist.
func (s *service) Details(ctx context.Context, orderNumber, clientToken, clientIP string) (*OrderDetailDTO, error) {
	if orderNumber == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order number is required")
	}

	order, err := s.repo.FindByNumber(ctx, orderNumber)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	if !ownerMatches(order, clientToken, clientIP) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}

	return newDetailDTO(order), nil
}

func ownerMatches(order *models.Order, clientToken, clientIP string) bool {
	if order.ClientToken != "" && order.ClientToken == clientToken {
		return true
	}
	if order.ClientIP != "" && order.ClientIP == clientIP {
		return true
	}
	return false
}

// notifyPlaced dispatches the confirmation email without blocking the
// response. The order is already committed; failures are only logged.
func (s *service) notifyPlaced(ctx context.Context, msg Confirmation) {
	if s.notifier == nil {
		return
	}

	ctx = s.logg.WithOrderNumber(context.WithoutCancel(ctx), msg.OrderNumber)
	go func() {
		sendCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := s.notifier.OrderPlaced(sendCtx, msg); err != nil {
			s.logg.Error(sendCtx, "order confirmation email failed", err)
		}
	}()
}

func validatePlaceOrder(input PlaceOrderInput) error {
	details := map[string]any{}

	email := strings.TrimSpace(input.CustomerEmail)
	if email == "" {
		details["customerEmail"] = "required"
	} else if _, err := mail.ParseAddress(email); err != nil {
		details["customerEmail"] = "invalid email address"
	}

	if missing := input.Billing.Validate(); len(missing) > 0 {
		details["billingDetails"] = missing
	}

	if len(input.Items) == 0 {
		details["items"] = "at least one item required"
	}

	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid order request").WithDetails(details)
	}
	return nil
}

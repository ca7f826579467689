package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/meterline/storefront-backend/api/middleware"
	"github.com/meterline/storefront-backend/api/responses"
	"github.com/meterline/storefront-backend/api/validators"
	ordersvc "github.com/meterline/storefront-backend/internal/orders"
	"github.com/meterline/storefront-backend/internal/pricing"
	pkgerrors "github.com/meterline/storefront-backend/pkg/errors"
	"github.com/meterline/storefront-backend/pkg/logger"
	"github.com/meterline/storefront-backend/pkg/types"
)

type orderItemRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity"`
}

// placeOrderRequest deliberately has no price or total fields; totals are
// recomputed from the catalog on every submission.
type placeOrderRequest struct {
	CustomerEmail string             `json:"customerEmail" validate:"required,email"`
	Billing       types.Address      `json:"billingDetails"`
	Shipping      *types.Address     `json:"shippingDetails,omitempty"`
	Items         []orderItemRequest `json:"items" validate:"required,min=1,dive"`
	DiscountCode  string             `json:"discountCode,omitempty"`
	OrderNotes    string             `json:"orderNotes,omitempty"`
	ClientToken   string             `json:"clientToken,omitempty"`
}

// PlaceOrder handles checkout for anonymous storefront clients.
func PlaceOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		var payload placeOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]pricing.ItemRequest, len(payload.Items))
		for i, item := range payload.Items {
			id, err := uuid.Parse(item.ProductID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id").
					WithDetails(map[string]any{"index": i}))
				return
			}
			items[i] = pricing.ItemRequest{ProductID: id, Quantity: item.Quantity}
		}

		token := strings.TrimSpace(payload.ClientToken)
		if token == "" {
			token = middleware.ClientToken(r)
		}

		placed, err := svc.PlaceOrder(r.Context(), ordersvc.PlaceOrderInput{
			CustomerEmail: payload.CustomerEmail,
			Billing:       payload.Billing,
			Shipping:      payload.Shipping,
			Items:         items,
			DiscountCode:  strings.TrimSpace(payload.DiscountCode),
			OrderNotes:    payload.OrderNotes,
			ClientToken:   token,
			ClientIP:      middleware.ClientIP(r),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, placed)
	}
}

// OrderHistory lists the caller's orders by client token or request IP.
func OrderHistory(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		summaries, err := svc.History(r.Context(), middleware.ClientToken(r), middleware.ClientIP(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, summaries)
	}
}

// OrderDetails serves one order after re-verifying ownership.
func OrderDetails(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		orderNumber := strings.TrimSpace(chi.URLParam(r, "orderNumber"))
		detail, err := svc.Details(r.Context(), orderNumber, middleware.ClientToken(r), middleware.ClientIP(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, detail)
	}
}

package controllers

import (
	"net/http"
	"strings"

	"github.com/meterline/storefront-backend/api/responses"
	"github.com/meterline/storefront-backend/internal/discounts"
	pkgerrors "github.com/meterline/storefront-backend/pkg/errors"
	"github.com/meterline/storefront-backend/pkg/logger"
)

// ValidateDiscount checks a promotional code without placing an order.
// Unknown and inactive codes are indistinguishable to the caller.
func ValidateDiscount(svc discounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "discount service unavailable"))
			return
		}

		code := strings.TrimSpace(r.URL.Query().Get("code"))
		discount, err := svc.Validate(r.Context(), code)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, discount)
	}
}

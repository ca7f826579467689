package controllers

import (
	"net/http"

	"github.com/meterline/storefront-backend/api/middleware"
	"github.com/meterline/storefront-backend/api/responses"
	"github.com/meterline/storefront-backend/api/validators"
	contactsvc "github.com/meterline/storefront-backend/internal/contact"
	pkgerrors "github.com/meterline/storefront-backend/pkg/errors"
	"github.com/meterline/storefront-backend/pkg/logger"
)

type contactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message" validate:"required"`
}

// SubmitContact accepts a contact-form submission.
func SubmitContact(svc contactsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "contact service unavailable"))
			return
		}

		var payload contactRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		err := svc.Submit(r.Context(), contactsvc.SubmitInput{
			Name:     payload.Name,
			Email:    payload.Email,
			Phone:    payload.Phone,
			Message:  payload.Message,
			ClientIP: middleware.ClientIP(r),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "received"})
	}
}

package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/meterline/storefront-backend/api/responses"
	"github.com/meterline/storefront-backend/api/validators"
	"github.com/meterline/storefront-backend/internal/catalog"
	pkgerrors "github.com/meterline/storefront-backend/pkg/errors"
	"github.com/meterline/storefront-backend/pkg/logger"
)

// ListProducts serves the filtered public catalog.
func ListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		query := r.URL.Query()
		input := catalog.ListInput{
			Category:      query.Get("category"),
			Manufacturer:  query.Get("manufacturer"),
			Protocol:      query.Get("protocol"),
			Search:        query.Get("search"),
			StockStatuses: validators.ParseQueryCSV(r, "stockStatus"),
		}

		products, err := svc.List(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, products)
	}
}

// AdminListProducts serves the catalog including inactive rows, for the
// keyed admin surface.
func AdminListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		query := r.URL.Query()
		input := catalog.ListInput{
			Category:        query.Get("category"),
			Manufacturer:    query.Get("manufacturer"),
			Protocol:        query.Get("protocol"),
			Search:          query.Get("search"),
			StockStatuses:   validators.ParseQueryCSV(r, "stockStatus"),
			IncludeInactive: validators.ParseQueryBool(r, "includeInactive"),
		}

		products, err := svc.List(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, products)
	}
}

// GetProduct serves one product by id, active or not.
func GetProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		product, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

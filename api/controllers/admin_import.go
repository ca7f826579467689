package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/meterline/storefront-backend/api/responses"
	"github.com/meterline/storefront-backend/api/validators"
	"github.com/meterline/storefront-backend/internal/catalog"
	pkgerrors "github.com/meterline/storefront-backend/pkg/errors"
	"github.com/meterline/storefront-backend/pkg/logger"
	"github.com/meterline/storefront-backend/pkg/types"
)

type importProductRequest struct {
	SKU              string              `json:"sku" validate:"required"`
	Name             string              `json:"name" validate:"required"`
	Category         string              `json:"category" validate:"required"`
	Manufacturer     string              `json:"manufacturer,omitempty"`
	Series           *string             `json:"series,omitempty"`
	Mounting         *string             `json:"mounting,omitempty"`
	Protocol         *string             `json:"protocol,omitempty"`
	MaxCapacity      *float64            `json:"maxCapacity,omitempty"`
	Price            decimal.Decimal     `json:"price"`
	Currency         string              `json:"currency,omitempty"`
	StockStatus      string              `json:"stockStatus,omitempty"`
	IsActive         *bool               `json:"isActive,omitempty"`
	ImageURL         string              `json:"image,omitempty"`
	DatasheetURL     *string             `json:"datasheetUrl,omitempty"`
	ShortDescription types.LocalizedText `json:"shortDescription,omitempty"`
	FullDescription  types.LocalizedText `json:"fullDescription,omitempty"`
	Specs            types.StringMap     `json:"specs,omitempty"`
}

type importRequest struct {
	Products []importProductRequest `json:"products" validate:"required,min=1,dive"`
}

// AdminImportProducts bulk-upserts catalog rows keyed by sku.
func AdminImportProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var payload importRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]catalog.ImportProductInput, len(payload.Products))
		for i, row := range payload.Products {
			items[i] = catalog.ImportProductInput{
				SKU:              row.SKU,
				Name:             row.Name,
				Category:         row.Category,
				Manufacturer:     row.Manufacturer,
				Series:           row.Series,
				Mounting:         row.Mounting,
				Protocol:         row.Protocol,
				MaxCapacity:      row.MaxCapacity,
				Price:            row.Price,
				Currency:         row.Currency,
				StockStatus:      row.StockStatus,
				IsActive:         row.IsActive,
				ImageURL:         row.ImageURL,
				DatasheetURL:     row.DatasheetURL,
				ShortDescription: row.ShortDescription,
				FullDescription:  row.FullDescription,
				Specs:            row.Specs,
			}
		}

		count, err := svc.Import(r.Context(), items)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]int{"imported": count})
	}
}

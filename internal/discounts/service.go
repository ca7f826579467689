package discounts

import (
	"context"

	"github.com/meterline/storefront-backend/pkg/db"
	"github.com/meterline/storefront-backend/pkg/db/models"
	pkgerrors "github.com/meterline/storefront-backend/pkg/errors"
)

// DiscountDTO is the payload returned by code validation. Value is the
// stored numeric rendered with two decimals.
type DiscountDTO struct {
	Code  string `json:"code"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Service validates promotional codes for the storefront.
type Service interface {
	Validate(ctx context.Context, code string) (*DiscountDTO, error)
	FindActiveByCode(ctx context.Context, code string) (*models.Discount, error)
}

type repository interface {
	FindActiveByCode(ctx context.Context, code string) (*models.Discount, error)
}

type service struct {
	repo repository
}

// NewService wires discount dependencies.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "discount repository required")
	}
	return &service{repo: repo}, nil
}

// Validate returns the discount for an exact, case-sensitive code match,
// or not-found when the code is unknown or inactive.
func (s *service) Validate(ctx context.Context, code string) (*DiscountDTO, error) {
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "code is required")
	}

	discount, err := s.FindActiveByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return &DiscountDTO{
		Code:  discount.Code,
		Type:  string(discount.Type),
		Value: discount.Value.StringFixed(2),
	}, nil
}

// FindActiveByCode exposes the registry lookup to the pricing engine.
func (s *service) FindActiveByCode(ctx context.Context, code string) (*models.Discount, error) {
	discount, err := s.repo.FindActiveByCode(ctx, code)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "invalid or expired code")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup discount")
	}
	return discount, nil
}

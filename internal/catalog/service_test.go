package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/meterline/storefront-backend/pkg/db/models"
	"github.com/meterline/storefront-backend/pkg/enums"
	pkgerrors "github.com/meterline/storefront-backend/pkg/errors"
)

type stubRepo struct {
	lastFilters ListFilters
	listRows    []models.Product
	listErr     error

	findRow *models.Product
	findErr error

	upserted []models.Product
}

func (s *stubRepo) List(_ context.Context, filters ListFilters) ([]models.Product, error) {
	s.lastFilters = filters
	return s.listRows, s.listErr
}

func (s *stubRepo) FindByID(context.Context, uuid.UUID) (*models.Product, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.findRow, nil
}

func (s *stubRepo) UpsertBySKU(_ context.Context, products []models.Product) (int, error) {
	s.upserted = products
	return len(products), nil
}

func TestListNormalizesWildcardFilters(t *testing.T) {
	repo := &stubRepo{}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("service: %v", err)
	}

	_, err = svc.List(context.Background(), ListInput{
		Category:     "all",
		Manufacturer: "ALL",
		Protocol:     " Modbus ",
		Search:       "  meter  ",
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if repo.lastFilters.Category != nil {
		t.Errorf("wildcard category should clear the filter, got %v", *repo.lastFilters.Category)
	}
	if repo.lastFilters.Manufacturer != "" {
		t.Errorf("wildcard manufacturer should clear the filter, got %q", repo.lastFilters.Manufacturer)
	}
	if repo.lastFilters.Protocol != "Modbus" {
		t.Errorf("protocol = %q", repo.lastFilters.Protocol)
	}
	if repo.lastFilters.Search != "meter" {
		t.Errorf("search = %q", repo.lastFilters.Search)
	}
}

func TestListRejectsUnknownCategory(t *testing.T) {
	svc, _ := NewService(&stubRepo{})

	_, err := svc.List(context.Background(), ListInput{Category: "PLUTONIUM"})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListParsesStockStatuses(t *testing.T) {
	repo := &stubRepo{}
	svc, _ := NewService(repo)

	_, err := svc.List(context.Background(), ListInput{
		StockStatuses: []string{"in_stock", "", "on_request"},
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []enums.StockStatus{enums.StockStatusInStock, enums.StockStatusOnRequest}
	if len(repo.lastFilters.StockStatuses) != len(want) {
		t.Fatalf("statuses = %v", repo.lastFilters.StockStatuses)
	}
	for i := range want {
		if repo.lastFilters.StockStatuses[i] != want[i] {
			t.Fatalf("statuses = %v, want %v", repo.lastFilters.StockStatuses, want)
		}
	}

	_, err = svc.List(context.Background(), ListInput{StockStatuses: []string{"backordered"}})
	if pkgerrors.As(err) == nil {
		t.Fatal("expected validation error for unknown status")
	}
}

func TestGetMapsMissingProductToNotFound(t *testing.T) {
	svc, _ := NewService(&stubRepo{findErr: gorm.ErrRecordNotFound})

	_, err := svc.Get(context.Background(), uuid.New())
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestImportValidatesRows(t *testing.T) {
	repo := &stubRepo{}
	svc, _ := NewService(repo)
	ctx := context.Background()

	count, err := svc.Import(ctx, []ImportProductInput{
		{SKU: "MTR-1", Name: "Meter One", Category: "ELECTRIC", Price: decimal.NewFromInt(100)},
		{SKU: "MTR-2", Name: "Meter Two", Category: "WATER", Price: decimal.NewFromInt(80), StockStatus: "on_request"},
	})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if count != 2 || len(repo.upserted) != 2 {
		t.Fatalf("count = %d, upserted = %d", count, len(repo.upserted))
	}
	if repo.upserted[0].Currency != "RON" {
		t.Errorf("currency default = %q", repo.upserted[0].Currency)
	}
	if !repo.upserted[0].IsActive {
		t.Error("active should default to true")
	}
	if repo.upserted[1].StockStatus != enums.StockStatusOnRequest {
		t.Errorf("stock status = %q", repo.upserted[1].StockStatus)
	}

	badRows := []struct {
		name string
		row  ImportProductInput
	}{
		{"missing sku", ImportProductInput{Name: "X", Category: "ELECTRIC"}},
		{"missing name", ImportProductInput{SKU: "X-1", Category: "ELECTRIC"}},
		{"negative price", ImportProductInput{SKU: "X-1", Name: "X", Category: "ELECTRIC", Price: decimal.NewFromInt(-1)}},
		{"bad category", ImportProductInput{SKU: "X-1", Name: "X", Category: "FUSION"}},
	}
	for _, tc := range badRows {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Import(ctx, []ImportProductInput{tc.row})
			appErr := pkgerrors.As(err)
			if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}

	if _, err := svc.Import(ctx, nil); pkgerrors.As(err) == nil {
		t.Fatal("expected validation error for empty import")
	}
}

package enums

import "fmt"

// ProductCategory represents the meter families carried by the catalog.
type ProductCategory string

const (
	ProductCategoryElectric ProductCategory = "ELECTRIC"
	ProductCategoryWater    ProductCategory = "WATER"
	ProductCategoryGas      ProductCategory = "GAS"
	ProductCategoryThermal  ProductCategory = "THERMAL"
)

var validProductCategories = []ProductCategory{
	ProductCategoryElectric,
	ProductCategoryWater,
	ProductCategoryGas,
	ProductCategoryThermal,
}

// String implements fmt.Stringer.
func (c ProductCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ProductCategory.
func (c ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseProductCategory converts raw input into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}

// StockStatus represents product availability shown to buyers.
type StockStatus string

const (
	StockStatusInStock    StockStatus = "in_stock"
	StockStatusOnRequest  StockStatus = "on_request"
	StockStatusOutOfStock StockStatus = "out_of_stock"
)

var validStockStatuses = []StockStatus{
	StockStatusInStock,
	StockStatusOnRequest,
	StockStatusOutOfStock,
}

// String implements fmt.Stringer.
func (s StockStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known StockStatus.
func (s StockStatus) IsValid() bool {
	for _, candidate := range validStockStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseStockStatus converts raw input into a StockStatus.
func ParseStockStatus(value string) (StockStatus, error) {
	for _, candidate := range validStockStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid stock status %q", value)
}

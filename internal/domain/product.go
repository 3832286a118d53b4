package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category groups products on the shelf
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CategoryInput represents input for creating a category
type CategoryInput struct {
	Name string `json:"name" validate:"required,max=100"`
}

// Product is a part kept in stock
type Product struct {
	ID           int64           `json:"id"`
	SKU          string          `json:"sku"`
	Description  string          `json:"description"`
	Brand        string          `json:"brand"`
	CostPrice    decimal.Decimal `json:"costPrice"`
	SalePrice    decimal.Decimal `json:"salePrice"`
	StockCurrent int             `json:"stockCurrent"`
	StockMinimum int             `json:"stockMinimum"`
	CategoryID   int64           `json:"categoryId"`
	SupplierID   int64           `json:"supplierId"`
	BikeModel    string          `json:"bikeModel,omitempty"`
	BikeYear     *int            `json:"bikeYear,omitempty"`
	Active       bool            `json:"active"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// IsLowStock reports whether the product reached its minimum level
func (p *Product) IsLowStock() bool {
	return p.StockCurrent <= p.StockMinimum
}

// ProductInput represents input for creating a product
type ProductInput struct {
	SKU          string          `json:"sku" validate:"required,max=50"`
	Description  string          `json:"description" validate:"max=255"`
	Brand        string          `json:"brand" validate:"required,max=100"`
	CostPrice    decimal.Decimal `json:"costPrice" validate:"gte=0"`
	SalePrice    decimal.Decimal `json:"salePrice" validate:"gte=0"`
	StockCurrent int             `json:"stockCurrent" validate:"min=0"`
	StockMinimum int             `json:"stockMinimum" validate:"min=0"`
	CategoryID   int64           `json:"categoryId" validate:"required,min=1"`
	SupplierID   int64           `json:"supplierId" validate:"required,min=1"`
	BikeModel    string          `json:"bikeModel,omitempty" validate:"omitempty,max=100"`
	BikeYear     *int            `json:"bikeYear,omitempty" validate:"omitempty,min=1950,max=2100"`
}

// PriceUpdateInput represents input for changing the prices of a product
type PriceUpdateInput struct {
	CostPrice decimal.Decimal `json:"costPrice" validate:"gte=0"`
	SalePrice decimal.Decimal `json:"salePrice" validate:"gte=0"`
}

// StockView is a product row joined with its category and supplier names
type StockView struct {
	ID           int64           `json:"id"`
	SKU          string          `json:"sku"`
	Brand        string          `json:"brand"`
	Description  string          `json:"description"`
	BikeYear     *int            `json:"bikeYear,omitempty"`
	CostPrice    decimal.Decimal `json:"costPrice"`
	SalePrice    decimal.Decimal `json:"salePrice"`
	StockCurrent int             `json:"stockCurrent"`
	StockMinimum int             `json:"stockMinimum"`
	Category     string          `json:"category"`
	Supplier     string          `json:"supplier"`
	Active       bool            `json:"active"`
}

// ProductSearchRow is a product match shown at the sales counter
type ProductSearchRow struct {
	ID           int64           `json:"id"`
	Description  string          `json:"description"`
	Brand        string          `json:"brand"`
	StockCurrent int             `json:"stockCurrent"`
	SalePrice    decimal.Decimal `json:"salePrice"`
}

// StockLevel is the stock of a product after a movement
type StockLevel struct {
	ProductID    int64  `json:"productId"`
	Description  string `json:"description"`
	StockCurrent int    `json:"stockCurrent"`
	StockMinimum int    `json:"stockMinimum"`
}

// IsLow reports whether the level is at or below the minimum
func (l StockLevel) IsLow() bool {
	return l.StockCurrent <= l.StockMinimum
}

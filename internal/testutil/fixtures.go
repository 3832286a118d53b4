package testutil

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/motopecasjacare/erp/internal/domain"
)

// FixedTime is the clock used by fixtures
var FixedTime = time.Date(2024, 5, 10, 14, 30, 0, 0, time.UTC)

// NewTestUser creates an active user with the given role.
func NewTestUser(role domain.UserRole) *domain.User {
	return &domain.User{
		ID:        1,
		Username:  "caixa",
		Name:      "Operador de Caixa",
		Role:      role,
		Active:    true,
		CreatedAt: FixedTime,
	}
}

// NewTestCustomer creates a customer.
func NewTestCustomer() *domain.Customer {
	return &domain.Customer{
		ID:        7,
		Name:      "Oficina do Zé",
		Document:  "123.456.789-00",
		Phone:     "(11) 99999-0000",
		CreatedAt: FixedTime,
	}
}

// NewTestProduct creates an active product with stock above its minimum.
func NewTestProduct() *domain.Product {
	year := 2019
	return &domain.Product{
		ID:           3,
		SKU:          "PF-CG160",
		Description:  "Pastilha de freio dianteira",
		Brand:        "Cobreq",
		CostPrice:    decimal.RequireFromString("18.5000"),
		SalePrice:    decimal.RequireFromString("35.90"),
		StockCurrent: 12,
		StockMinimum: 4,
		CategoryID:   1,
		SupplierID:   2,
		BikeModel:    "CG 160",
		BikeYear:     &year,
		Active:       true,
		CreatedAt:    FixedTime,
	}
}

// NewTestOrder creates a pending order for NewTestCustomer with two units of
// NewTestProduct.
func NewTestOrder() *domain.Order {
	product := NewTestProduct()
	unit := product.SalePrice
	subtotal := unit.Mul(decimal.NewFromInt(2))
	return &domain.Order{
		ID:            42,
		CustomerID:    7,
		PlacedAt:      FixedTime,
		Total:         subtotal,
		Status:        domain.OrderStatusPending,
		PaymentMethod: domain.PaymentMethodPix,
		Customer:      NewTestCustomer(),
		Items: []domain.OrderItem{{
			ID:              1,
			OrderID:         42,
			ProductID:       product.ID,
			Description:     product.Description,
			Quantity:        2,
			UnitPrice:       unit,
			Subtotal:        subtotal,
			DiscountPercent: decimal.Zero,
		}},
	}
}

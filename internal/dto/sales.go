package dto

import (
	"github.com/shopspring/decimal"

	"github.com/motopecasjacare/erp/internal/domain"
)

// CartItemRequest adds a product to a cart
type CartItemRequest struct {
	ProductID       int64            `json:"productId" validate:"required,min=1"`
	Quantity        int              `json:"quantity" validate:"required,min=1"`
	DiscountPercent *decimal.Decimal `json:"discountPercent,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// CheckoutRequest turns a cart into an order
type CheckoutRequest struct {
	CustomerID    int64                `json:"customerId" validate:"required,min=1"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod" validate:"required,oneof=pix credit_card debit_card cash"`
}

// CompleteOrdersRequest marks pending orders as completed
type CompleteOrdersRequest struct {
	OrderIDs     []int64 `json:"orderIds" validate:"required,min=1,dive,min=1"`
	PrintReceipt bool    `json:"printReceipt"`
}

// CancelOrdersRequest cancels pending orders
type CancelOrdersRequest struct {
	OrderIDs []int64 `json:"orderIds" validate:"required,min=1,dive,min=1"`
}

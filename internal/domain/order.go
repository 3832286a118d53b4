package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a sales order placed at the counter
type Order struct {
	ID            int64           `json:"id"`
	CustomerID    int64           `json:"customerId"`
	PlacedAt      time.Time       `json:"placedAt"`
	Total         decimal.Decimal `json:"total"`
	Status        OrderStatus     `json:"status"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`

	// Related data (populated on detail reads)
	Customer *Customer   `json:"customer,omitempty"`
	Items    []OrderItem `json:"items,omitempty"`
}

// OrderItem is a priced line of an order
type OrderItem struct {
	ID              int64           `json:"id"`
	OrderID         int64           `json:"orderId"`
	ProductID       int64           `json:"productId"`
	Description     string          `json:"description,omitempty"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
}

// OrderLineInput is a product requested in an order
type OrderLineInput struct {
	ProductID       int64            `json:"productId" validate:"required,min=1"`
	Quantity        int              `json:"quantity" validate:"required,min=1"`
	DiscountPercent *decimal.Decimal `json:"discountPercent,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// OrderInput represents input for placing an order
type OrderInput struct {
	CustomerID    int64            `json:"customerId" validate:"required,min=1"`
	PaymentMethod PaymentMethod    `json:"paymentMethod" validate:"required,oneof=pix credit_card debit_card cash"`
	Items         []OrderLineInput `json:"items" validate:"required,min=1,dive"`
}

// OrderSummary is a row of the pending orders list
type OrderSummary struct {
	ID           int64           `json:"id"`
	CustomerName string          `json:"customerName"`
	PlacedAt     time.Time       `json:"placedAt"`
	Total        decimal.Decimal `json:"total"`
	Status       OrderStatus     `json:"status"`
}

// OrderFilter represents filter options for listing orders
type OrderFilter struct {
	Status *OrderStatus
	Limit  int
	Offset int
}

// PlacedOrder is the outcome of placing an order
type PlacedOrder struct {
	Order       *Order       `json:"order"`
	StockLevels []StockLevel `json:"stockLevels"`
}

// StatusChange reports which orders moved to a new status
type StatusChange struct {
	Status   OrderStatus `json:"status"`
	Changed  []int64     `json:"changed"`
	Skipped  []int64     `json:"skipped"`
	Receipts []Receipt   `json:"receipts,omitempty"`
}

// Receipt is a rendered non-fiscal receipt
type Receipt struct {
	OrderID int64  `json:"orderId"`
	Text    string `json:"text"`
}

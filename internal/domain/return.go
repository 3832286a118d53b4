package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductReturn is a part brought back by a customer
type ProductReturn struct {
	ID         int64           `json:"id"`
	OrderID    int64           `json:"orderId"`
	ProductID  int64           `json:"productId"`
	Quantity   int             `json:"quantity"`
	Condition  ReturnCondition `json:"condition"`
	Restocked  bool            `json:"restocked"`
	Reason     string          `json:"reason,omitempty"`
	ReturnedOn time.Time       `json:"returnedOn"`
	CreatedAt  time.Time       `json:"createdAt"`

	// Related data (populated on list reads)
	CustomerName string `json:"customerName,omitempty"`
	Description  string `json:"description,omitempty"`
}

// ReturnInput represents input for registering a return
type ReturnInput struct {
	OrderID    int64           `json:"orderId" validate:"required,min=1"`
	ProductID  int64           `json:"productId" validate:"required,min=1"`
	Quantity   int             `json:"quantity" validate:"required,min=1"`
	Condition  ReturnCondition `json:"condition" validate:"required,oneof=new damaged scrap"`
	Restock    *bool           `json:"restock,omitempty"`
	Reason     string          `json:"reason,omitempty" validate:"omitempty,max=500"`
	ReturnedOn *string         `json:"returnedOn,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// ReturnResult is the outcome of registering a return
type ReturnResult struct {
	Return       *ProductReturn `json:"return"`
	StockUpdated bool           `json:"stockUpdated"`
}

// ReturnableOrder is a completed order that can receive returns
type ReturnableOrder struct {
	ID           int64           `json:"id"`
	CustomerName string          `json:"customerName"`
	PlacedAt     time.Time       `json:"placedAt"`
	Total        decimal.Decimal `json:"total"`
}

// ReturnableItem is an order line that can be returned
type ReturnableItem struct {
	ProductID   int64           `json:"productId"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Returned    int             `json:"returned"`
}

// Remaining is how many units can still be returned
func (i ReturnableItem) Remaining() int {
	if i.Returned >= i.Quantity {
		return 0
	}
	return i.Quantity - i.Returned
}

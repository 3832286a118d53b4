package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart is an order being assembled at the counter before checkout
type Cart struct {
	ID        string     `json:"id"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// CartItem is a priced product line in a cart
type CartItem struct {
	ProductID       int64           `json:"productId"`
	Description     string          `json:"description"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
}

// Total sums the item subtotals
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Subtotal)
	}
	return total
}

// IsEmpty reports whether the cart has no items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Lines converts the cart into order lines
func (c *Cart) Lines() []OrderLineInput {
	lines := make([]OrderLineInput, 0, len(c.Items))
	for _, item := range c.Items {
		discount := item.DiscountPercent
		lines = append(lines, OrderLineInput{
			ProductID:       item.ProductID,
			Quantity:        item.Quantity,
			DiscountPercent: &discount,
		})
	}
	return lines
}

// CartView is a cart together with its total
type CartView struct {
	*Cart
	Total decimal.Decimal `json:"total"`
}

// NewCartView builds the response view of a cart
func NewCartView(c *Cart) CartView {
	return CartView{Cart: c, Total: c.Total()}
}

// Quote is a priced cart presented to a customer before checkout
type Quote struct {
	CartID   string          `json:"cartId"`
	Customer *Customer       `json:"customer"`
	IssuedAt time.Time       `json:"issuedAt"`
	Items    []CartItem      `json:"items"`
	Total    decimal.Decimal `json:"total"`
}

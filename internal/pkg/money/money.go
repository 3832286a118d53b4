// Package money holds the price arithmetic shared by carts, orders and
// stock receipts.
package money

import "github.com/shopspring/decimal"

const (
	// PriceScale is the number of decimal places of sale amounts
	PriceScale = 2
	// CostScale is the number of decimal places of the average product cost
	CostScale = 4
)

var hundred = decimal.NewFromInt(100)

// DiscountedUnitPrice applies a percentage discount to a unit price.
// A nil discount means no discount.
func DiscountedUnitPrice(price decimal.Decimal, discountPercent *decimal.Decimal) decimal.Decimal {
	return discounted(price, discountPercent).Round(PriceScale)
}

// DiscountedLineTotal is the discounted unit price times the quantity. The
// unit price is only rounded once the quantity is applied, so a line can
// differ by a cent from DiscountedUnitPrice times the quantity.
func DiscountedLineTotal(price decimal.Decimal, discountPercent *decimal.Decimal, quantity int) decimal.Decimal {
	return LineTotal(discounted(price, discountPercent), quantity)
}

// LineTotal is the unit price times the quantity
func LineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(PriceScale)
}

func discounted(price decimal.Decimal, discountPercent *decimal.Decimal) decimal.Decimal {
	if discountPercent == nil || discountPercent.IsZero() {
		return price
	}
	factor := decimal.NewFromInt(1).Sub(discountPercent.Div(hundred))
	return price.Mul(factor)
}

// MovingAverageCost blends the current stock cost with a new receipt.
//
//	newCost = (stock*cost + qty*unitCost) / (stock + qty)
//
// When the resulting stock is not positive the receipt cost is used.
func MovingAverageCost(stock int, cost decimal.Decimal, qty int, unitCost decimal.Decimal) decimal.Decimal {
	newStock := stock + qty
	if newStock <= 0 {
		return unitCost.Round(CostScale)
	}
	current := decimal.NewFromInt(int64(stock)).Mul(cost)
	received := decimal.NewFromInt(int64(qty)).Mul(unitCost)
	return current.Add(received).Div(decimal.NewFromInt(int64(newStock))).Round(CostScale)
}

// Format renders an amount as Brazilian reais with two decimals: "R$ 12.50"
func Format(amount decimal.Decimal) string {
	return "R$ " + amount.StringFixed(PriceScale)
}

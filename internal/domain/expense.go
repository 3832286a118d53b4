package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is an outgoing payment of the shop
type Expense struct {
	ID          int64           `json:"id"`
	Type        ExpenseType     `json:"type"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	DueOn       time.Time       `json:"dueOn"`
	Status      ExpenseStatus   `json:"status"`
	PaidOn      *time.Time      `json:"paidOn,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// IsOverdue reports whether a pending expense is past its due date
func (e *Expense) IsOverdue(today time.Time) bool {
	return e.Status == ExpenseStatusPending && e.DueOn.Before(today)
}

// ExpenseInput represents input for registering an expense
type ExpenseInput struct {
	Type        ExpenseType     `json:"type" validate:"required,oneof=payroll rent utilities taxes maintenance other"`
	Description string          `json:"description,omitempty" validate:"omitempty,max=255"`
	Amount      decimal.Decimal `json:"amount" validate:"gte=0.01"`
	DueOn       *string         `json:"dueOn,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Status      ExpenseStatus   `json:"status" validate:"required,oneof=pending paid"`
	PaidOn      *string         `json:"paidOn,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LowStockRow is a product at or below its minimum stock
type LowStockRow struct {
	ID           int64  `json:"id" db:"id"`
	SKU          string `json:"sku" db:"sku"`
	Description  string `json:"description" db:"description"`
	Brand        string `json:"brand" db:"brand"`
	StockCurrent int    `json:"stockCurrent" db:"stock_current"`
	StockMinimum int    `json:"stockMinimum" db:"stock_minimum"`
	Supplier     string `json:"supplier" db:"supplier"`
}

// CashFlowMonth aggregates sales and paid expenses of one month
type CashFlowMonth struct {
	Month    time.Time       `json:"month" db:"month"`
	Sales    decimal.Decimal `json:"sales" db:"sales"`
	Expenses decimal.Decimal `json:"expenses" db:"expenses"`
	Balance  decimal.Decimal `json:"balance" db:"balance"`
}

// DashboardSummary holds the counters shown on the home screen
type DashboardSummary struct {
	PendingOrders   int             `json:"pendingOrders" db:"pending_orders"`
	LowStock        int             `json:"lowStockProducts" db:"low_stock"`
	OverdueExpenses int             `json:"overdueExpenses" db:"overdue_expenses"`
	MonthSales      decimal.Decimal `json:"monthSales" db:"month_sales"`
}

// OverdueExpenseRow is a pending expense past its due date
type OverdueExpenseRow struct {
	ID          int64           `json:"id" db:"id"`
	Type        ExpenseType     `json:"type" db:"expense_type"`
	Description string          `json:"description" db:"description"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	DueOn       time.Time       `json:"dueOn" db:"due_on"`
}

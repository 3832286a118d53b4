package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/motopecasjacare/erp/internal/domain"
	"github.com/motopecasjacare/erp/internal/dto"
	"github.com/motopecasjacare/erp/internal/pkg/pagination"
)

// ExpenseManager is the expense service as seen by the handlers
type ExpenseManager interface {
	Create(ctx context.Context, input *domain.ExpenseInput) (*domain.Expense, error)
	History(ctx context.Context, page pagination.Params) (*pagination.Page[domain.Expense], error)
	Pay(ctx context.Context, id int64, paidOn *string) (*domain.Expense, error)
}

// Reporter is the report service as seen by the handlers
type Reporter interface {
	LowStock(ctx context.Context) ([]domain.LowStockRow, error)
	CashFlow(ctx context.Context, from, to *string) ([]domain.CashFlowMonth, error)
	Summary(ctx context.Context) (*domain.DashboardSummary, error)
	OverdueExpenses(ctx context.Context) ([]domain.OverdueExpenseRow, error)
}

// FinanceHandler handles expenses and management reports
type FinanceHandler struct {
	expenses ExpenseManager
	reports  Reporter
}

// NewFinanceHandler creates a new finance handler
func NewFinanceHandler(expenses ExpenseManager, reports Reporter) *FinanceHandler {
	return &FinanceHandler{expenses: expenses, reports: reports}
}

// CreateExpense handles POST /api/expenses
func (h *FinanceHandler) CreateExpense(c *fiber.Ctx) error {
	var input domain.ExpenseInput
	if err := dto.ParseAndValidate(c, &input); err != nil {
		return err
	}

	expense, err := h.expenses.Create(c.UserContext(), &input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(expense)
}

// ExpenseHistory handles GET /api/expenses
func (h *FinanceHandler) ExpenseHistory(c *fiber.Ctx) error {
	page, err := h.expenses.History(c.UserContext(), parsePagination(c))
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// PayExpense handles POST /api/expenses/:id/pay
func (h *FinanceHandler) PayExpense(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req dto.PayExpenseRequest
	if len(c.Body()) > 0 {
		if err := dto.ParseAndValidate(c, &req); err != nil {
			return err
		}
	}

	expense, err := h.expenses.Pay(c.UserContext(), id, req.PaidOn)
	if err != nil {
		return err
	}
	return c.JSON(expense)
}

// LowStock handles GET /api/reports/low-stock
func (h *FinanceHandler) LowStock(c *fiber.Ctx) error {
	rows, err := h.reports.LowStock(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(rows)
}

// CashFlow handles GET /api/reports/cash-flow?from=&to=
func (h *FinanceHandler) CashFlow(c *fiber.Ctx) error {
	months, err := h.reports.CashFlow(c.UserContext(), optionalQuery(c, "from"), optionalQuery(c, "to"))
	if err != nil {
		return err
	}
	return c.JSON(months)
}

// Summary handles GET /api/reports/summary
func (h *FinanceHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.reports.Summary(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(summary)
}

// OverdueExpenses handles GET /api/reports/overdue-expenses
func (h *FinanceHandler) OverdueExpenses(c *fiber.Ctx) error {
	rows, err := h.reports.OverdueExpenses(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(rows)
}

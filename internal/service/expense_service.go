package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/motopecasjacare/erp/internal/domain"
	apperrors "github.com/motopecasjacare/erp/internal/pkg/errors"
	"github.com/motopecasjacare/erp/internal/pkg/logger"
	"github.com/motopecasjacare/erp/internal/pkg/pagination"
)

// ExpenseRepository defines expense operations
type ExpenseRepository interface {
	Create(ctx context.Context, e *domain.Expense) error
	List(ctx context.Context, page pagination.Params) ([]domain.Expense, error)
	MarkPaid(ctx context.Context, id int64, paidOn time.Time) (*domain.Expense, error)
}

// ExpenseService handles the shop's outgoing payments
type ExpenseService struct {
	repo ExpenseRepository
	now  func() time.Time
}

// NewExpenseService creates a new expense service
func NewExpenseService(repo ExpenseRepository) *ExpenseService {
	return &ExpenseService{repo: repo, now: time.Now}
}

// Create registers an expense. The due date defaults to today; a paid
// expense without a payment date is taken as paid today.
func (s *ExpenseService) Create(ctx context.Context, input *domain.ExpenseInput) (*domain.Expense, error) {
	day := today(s.now())
	dueOn, err := parseDate(input.DueOn, day)
	if err != nil {
		return nil, apperrors.Validation("invalid due date").WithDetail("dueOn", err.Error())
	}

	expense := &domain.Expense{
		Type:        input.Type,
		Description: strings.TrimSpace(input.Description),
		Amount:      input.Amount,
		DueOn:       dueOn,
		Status:      input.Status,
		CreatedAt:   s.now(),
	}

	if input.Status == domain.ExpenseStatusPaid {
		paidOn, err := parseDate(input.PaidOn, day)
		if err != nil {
			return nil, apperrors.Validation("invalid payment date").WithDetail("paidOn", err.Error())
		}
		expense.PaidOn = &paidOn
	}

	if err := s.repo.Create(ctx, expense); err != nil {
		return nil, err
	}

	logger.Info("expense registered",
		zap.Int64("expense_id", expense.ID),
		zap.String("type", string(expense.Type)),
		zap.String("amount", expense.Amount.String()),
	)
	return expense, nil
}

// History returns a page of expenses, latest due date first
func (s *ExpenseService) History(ctx context.Context, page pagination.Params) (*pagination.Page[domain.Expense], error) {
	page = page.Normalize()
	rows, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, err
	}
	return pagination.NewPage(rows, page), nil
}

// Pay marks a pending expense as paid, today unless a date is given
func (s *ExpenseService) Pay(ctx context.Context, id int64, paidOnValue *string) (*domain.Expense, error) {
	paidOn, err := parseDate(paidOnValue, today(s.now()))
	if err != nil {
		return nil, apperrors.Validation("invalid payment date").WithDetail("paidOn", err.Error())
	}
	return s.repo.MarkPaid(ctx, id, paidOn)
}

package service

import (
	"context"
	"time"

	"github.com/motopecasjacare/erp/internal/domain"
	apperrors "github.com/motopecasjacare/erp/internal/pkg/errors"
	"github.com/motopecasjacare/erp/internal/pkg/metrics"
)

// cashFlowMonths is how many months the cash flow covers when no start is given
const cashFlowMonths = 6

// ReportRepository defines reporting queries
type ReportRepository interface {
	LowStock(ctx context.Context) ([]domain.LowStockRow, error)
	CashFlow(ctx context.Context, from, to time.Time) ([]domain.CashFlowMonth, error)
	Summary(ctx context.Context, today time.Time) (*domain.DashboardSummary, error)
	OverdueExpenses(ctx context.Context, today time.Time) ([]domain.OverdueExpenseRow, error)
}

// ReportService serves management reports
type ReportService struct {
	repo ReportRepository
	now  func() time.Time
}

// NewReportService creates a new report service
func NewReportService(repo ReportRepository) *ReportService {
	return &ReportService{repo: repo, now: time.Now}
}

// LowStock lists active products at or below their minimum and updates the gauge
func (s *ReportService) LowStock(ctx context.Context) ([]domain.LowStockRow, error) {
	rows, err := s.repo.LowStock(ctx)
	if err != nil {
		return nil, err
	}
	metrics.SetLowStockProducts(len(rows))
	return rows, nil
}

// CashFlow aggregates sales and paid expenses per month. The range defaults
// to the last six months up to today.
func (s *ReportService) CashFlow(ctx context.Context, fromValue, toValue *string) ([]domain.CashFlowMonth, error) {
	day := today(s.now())
	to, err := parseDate(toValue, day)
	if err != nil {
		return nil, apperrors.Validation("invalid end date").WithDetail("to", err.Error())
	}
	defFrom := time.Date(to.Year(), to.Month()-(cashFlowMonths-1), 1, 0, 0, 0, 0, to.Location())
	from, err := parseDate(fromValue, defFrom)
	if err != nil {
		return nil, apperrors.Validation("invalid start date").WithDetail("from", err.Error())
	}
	if from.After(to) {
		return nil, apperrors.Validation("start date is after end date").
			WithDetail("from", from.Format(dateLayout)).
			WithDetail("to", to.Format(dateLayout))
	}
	return s.repo.CashFlow(ctx, from, to)
}

// Summary returns the dashboard counters
func (s *ReportService) Summary(ctx context.Context) (*domain.DashboardSummary, error) {
	return s.repo.Summary(ctx, today(s.now()))
}

// OverdueExpenses lists pending expenses past due and updates the gauge
func (s *ReportService) OverdueExpenses(ctx context.Context) ([]domain.OverdueExpenseRow, error) {
	rows, err := s.repo.OverdueExpenses(ctx, today(s.now()))
	if err != nil {
		return nil, err
	}
	metrics.SetOverdueExpenses(len(rows))
	return rows, nil
}

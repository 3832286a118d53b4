package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/motopecasjacare/erp/internal/domain"
	"github.com/motopecasjacare/erp/internal/pkg/database"
	apperrors "github.com/motopecasjacare/erp/internal/pkg/errors"
	"github.com/motopecasjacare/erp/internal/pkg/pagination"
)

var expenseColumns = []string{"id", "expense_type", "description", "amount", "due_on", "status", "paid_on", "created_at"}

// ExpenseRepository handles expense data operations
type ExpenseRepository struct {
	db database.Pool
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db database.Pool) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// Create inserts an expense and fills its ID and creation time
func (r *ExpenseRepository) Create(ctx context.Context, e *domain.Expense) error {
	query, args, err := psql.Insert("expenses").
		Columns("expense_type", "description", "amount", "due_on", "status", "paid_on").
		Values(e.Type, e.Description, e.Amount, e.DueOn, e.Status, e.PaidOn).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return err
	}

	err = r.db.QueryRow(ctx, query, args...).Scan(&e.ID, &e.CreatedAt)
	return mapError(err, "expense", "create expense")
}

// List returns expenses, latest due date first
func (r *ExpenseRepository) List(ctx context.Context, page pagination.Params) ([]domain.Expense, error) {
	query, args, err := psql.Select(expenseColumns...).
		From("expenses").
		OrderBy("due_on DESC", "id DESC").
		Limit(page.FetchLimit()).
		Offset(uint64(page.Offset)).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "expense", "list expenses")
	}
	defer rows.Close()

	expenses := []domain.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, mapError(err, "expense", "scan expense")
		}
		expenses = append(expenses, *e)
	}
	return expenses, rows.Err()
}

// MarkPaid settles a pending expense
func (r *ExpenseRepository) MarkPaid(ctx context.Context, id int64, paidOn time.Time) (*domain.Expense, error) {
	query, args, err := psql.Update("expenses").
		Set("status", domain.ExpenseStatusPaid).
		Set("paid_on", paidOn).
		Where(squirrel.Eq{"id": id, "status": domain.ExpenseStatusPending}).
		Suffix("RETURNING " + strings.Join(expenseColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, err
	}

	e, err := scanExpense(r.db.QueryRow(ctx, query, args...))
	if err == nil {
		return e, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, mapError(err, "expense", "mark expense paid")
	}

	// Nothing matched: either the expense is missing or already paid.
	existsQuery, existsArgs, err := psql.Select("status").From("expenses").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	var status domain.ExpenseStatus
	if err := r.db.QueryRow(ctx, existsQuery, existsArgs...).Scan(&status); err != nil {
		return nil, mapError(err, "expense", "get expense")
	}
	return nil, apperrors.Conflict("expense is already paid")
}

func scanExpense(row rowScanner) (*domain.Expense, error) {
	var e domain.Expense
	if err := row.Scan(&e.ID, &e.Type, &e.Description, &e.Amount, &e.DueOn, &e.Status, &e.PaidOn, &e.CreatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

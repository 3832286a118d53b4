package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/motopecasjacare/erp/internal/domain"
)

// revenueStatuses are the order statuses counted as sales in reports
var revenueStatuses = []string{string(domain.OrderStatusCompleted)}

const lowStockSQL = `
SELECT p.id, p.sku, p.description, p.brand, p.stock_current, p.stock_minimum, s.trade_name AS supplier
FROM products p
JOIN suppliers s ON s.id = p.supplier_id
WHERE p.active AND p.stock_current <= p.stock_minimum
ORDER BY (p.stock_minimum - p.stock_current) DESC, p.description`

const cashFlowSQL = `
WITH months AS (
	SELECT generate_series(date_trunc('month', $1::date), date_trunc('month', $2::date), interval '1 month') AS month
),
sales AS (
	SELECT date_trunc('month', placed_at) AS month, SUM(total) AS total
	FROM orders
	WHERE status = ANY($3) AND placed_at >= $1::date AND placed_at < ($2::date + 1)
	GROUP BY 1
),
paid AS (
	SELECT date_trunc('month', paid_on) AS month, SUM(amount) AS total
	FROM expenses
	WHERE status = 'paid' AND paid_on BETWEEN $1::date AND $2::date
	GROUP BY 1
)
SELECT m.month::date AS month,
	COALESCE(s.total, 0) AS sales,
	COALESCE(p.total, 0) AS expenses,
	COALESCE(s.total, 0) - COALESCE(p.total, 0) AS balance
FROM months m
LEFT JOIN sales s ON s.month = m.month
LEFT JOIN paid p ON p.month = m.month
ORDER BY m.month`

const summarySQL = `
SELECT
	(SELECT COUNT(*) FROM orders WHERE status = 'pending') AS pending_orders,
	(SELECT COUNT(*) FROM products WHERE active AND stock_current <= stock_minimum) AS low_stock,
	(SELECT COUNT(*) FROM expenses WHERE status = 'pending' AND due_on < $1::date) AS overdue_expenses,
	(SELECT COALESCE(SUM(total), 0) FROM orders
		WHERE status = ANY($2) AND placed_at >= date_trunc('month', $1::date)) AS month_sales`

const overdueExpensesSQL = `
SELECT id, expense_type, description, amount, due_on
FROM expenses
WHERE status = 'pending' AND due_on < $1::date
ORDER BY due_on, id`

// exportQueries holds the query of every exportable dataset
var exportQueries = map[domain.ExportDataset]string{
	domain.ExportDatasetCustomers: `SELECT id, name, document, phone, COALESCE(email, '') AS email, address, created_at FROM customers ORDER BY id`,
	domain.ExportDatasetSuppliers: `SELECT id, trade_name, cnpj, phone, email, contact, created_at FROM suppliers ORDER BY id`,
	domain.ExportDatasetProducts: `SELECT p.id, p.sku, p.description, p.brand, p.cost_price, p.sale_price, p.stock_current, p.stock_minimum,
		c.name AS category, s.trade_name AS supplier, p.bike_model, p.bike_year, p.active
		FROM products p JOIN categories c ON c.id = p.category_id JOIN suppliers s ON s.id = p.supplier_id ORDER BY p.id`,
	domain.ExportDatasetPurchases: `SELECT e.id, s.trade_name AS supplier, p.sku, p.description, e.issued_on, e.received_on, e.quantity, e.unit_cost, e.invoice_number
		FROM stock_entries e JOIN suppliers s ON s.id = e.supplier_id JOIN products p ON p.id = e.product_id ORDER BY e.id`,
	domain.ExportDatasetOrders: `SELECT o.id, c.name AS customer, o.placed_at, o.status, o.payment_method, i.product_id, p.description,
		i.quantity, i.unit_price, i.discount_percent, i.subtotal, o.total
		FROM orders o JOIN customers c ON c.id = o.customer_id JOIN order_items i ON i.order_id = o.id
		JOIN products p ON p.id = i.product_id ORDER BY o.id, i.id`,
	domain.ExportDatasetExpenses: `SELECT id, expense_type, description, amount, due_on, status, paid_on, created_at FROM expenses ORDER BY id`,
}

// ReportRepository serves read-only aggregations over the sqlx handle
type ReportRepository struct {
	db *sqlx.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// LowStock returns active products at or below their minimum stock
func (r *ReportRepository) LowStock(ctx context.Context) ([]domain.LowStockRow, error) {
	rows := []domain.LowStockRow{}
	if err := r.db.SelectContext(ctx, &rows, lowStockSQL); err != nil {
		return nil, fmt.Errorf("failed to query low stock: %w", err)
	}
	return rows, nil
}

// CashFlow returns monthly sales, paid expenses and balance between from and to
func (r *ReportRepository) CashFlow(ctx context.Context, from, to time.Time) ([]domain.CashFlowMonth, error) {
	rows := []domain.CashFlowMonth{}
	err := r.db.SelectContext(ctx, &rows, cashFlowSQL, from, to, pq.Array(revenueStatuses))
	if err != nil {
		return nil, fmt.Errorf("failed to query cash flow: %w", err)
	}
	return rows, nil
}

// Summary returns the dashboard counters as of today
func (r *ReportRepository) Summary(ctx context.Context, today time.Time) (*domain.DashboardSummary, error) {
	var s domain.DashboardSummary
	if err := r.db.GetContext(ctx, &s, summarySQL, today, pq.Array(revenueStatuses)); err != nil {
		return nil, fmt.Errorf("failed to query summary: %w", err)
	}
	return &s, nil
}

// OverdueExpenses returns pending expenses due before today
func (r *ReportRepository) OverdueExpenses(ctx context.Context, today time.Time) ([]domain.OverdueExpenseRow, error) {
	rows := []domain.OverdueExpenseRow{}
	if err := r.db.SelectContext(ctx, &rows, overdueExpensesSQL, today); err != nil {
		return nil, fmt.Errorf("failed to query overdue expenses: %w", err)
	}
	return rows, nil
}

// ExportRows streams every row of a dataset to fn as formatted strings.
// The header is passed once before the first row.
func (r *ReportRepository) ExportRows(ctx context.Context, dataset domain.ExportDataset, header func([]string) error, fn func([]string) error) error {
	query, ok := exportQueries[dataset]
	if !ok {
		return fmt.Errorf("unknown dataset %q", dataset)
	}

	rows, err := r.db.QueryxContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", dataset, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return err
	}
	if err := header(columns); err != nil {
		return err
	}

	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return fmt.Errorf("failed to scan %s row: %w", dataset, err)
		}
		record := make([]string, len(values))
		for i, v := range values {
			record[i] = formatCell(v)
		}
		if err := fn(record); err != nil {
			return err
		}
	}
	return rows.Err()
}

func formatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(val)
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 {
			return val.Format("2006-01-02")
		}
		return val.Format(time.RFC3339)
	default:
		return fmt.Sprint(val)
	}
}

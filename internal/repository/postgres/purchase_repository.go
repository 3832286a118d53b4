package postgres

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/motopecasjacare/erp/internal/domain"
	"github.com/motopecasjacare/erp/internal/pkg/database"
	"github.com/motopecasjacare/erp/internal/pkg/pagination"
)

// PurchaseRepository handles stock receipts
type PurchaseRepository struct {
	db database.Pool
}

// NewPurchaseRepository creates a new purchase repository
func NewPurchaseRepository(db database.Pool) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

// RecordReceipt stores a stock entry and updates the product stock and cost
// in one transaction. newCost receives the stock and cost held before the
// receipt; the product row stays locked while it runs.
func (r *PurchaseRepository) RecordReceipt(ctx context.Context, entry *domain.StockEntry, newCost func(stock int, cost decimal.Decimal) decimal.Decimal) (*domain.PurchaseResult, error) {
	result := &domain.PurchaseResult{Entry: entry}

	err := database.Transaction(ctx, r.db, func(tx pgx.Tx) error {
		lockQuery, lockArgs, err := psql.Select("stock_current", "cost_price").
			From("products").
			Where(squirrel.Eq{"id": entry.ProductID}).
			Suffix("FOR UPDATE").
			ToSql()
		if err != nil {
			return err
		}

		var stock int
		var cost decimal.Decimal
		if err := tx.QueryRow(ctx, lockQuery, lockArgs...).Scan(&stock, &cost); err != nil {
			return mapError(err, "product", "lock product")
		}

		insertQuery, insertArgs, err := psql.Insert("stock_entries").
			Columns("product_id", "supplier_id", "received_on", "issued_on", "quantity", "unit_cost", "invoice_number").
			Values(entry.ProductID, entry.SupplierID, entry.ReceivedOn, entry.IssuedOn, entry.Quantity, entry.UnitCost, entry.InvoiceNumber).
			Suffix("RETURNING id, created_at").
			ToSql()
		if err != nil {
			return err
		}
		if err := tx.QueryRow(ctx, insertQuery, insertArgs...).Scan(&entry.ID, &entry.CreatedAt); err != nil {
			return mapError(err, "stock entry", "insert stock entry")
		}

		result.NewCost = newCost(stock, cost)

		updateQuery, updateArgs, err := psql.Update("products").
			Set("stock_current", squirrel.Expr("stock_current + ?", entry.Quantity)).
			Set("cost_price", result.NewCost).
			Where(squirrel.Eq{"id": entry.ProductID}).
			Suffix("RETURNING stock_current").
			ToSql()
		if err != nil {
			return err
		}
		if err := tx.QueryRow(ctx, updateQuery, updateArgs...).Scan(&result.NewStock); err != nil {
			return mapError(err, "product", "update product stock")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// List returns the receipt history, most recent first
func (r *PurchaseRepository) List(ctx context.Context, page pagination.Params) ([]domain.PurchaseHistoryRow, error) {
	query, args, err := psql.Select(
		"e.id", "s.trade_name", "p.description", "e.issued_on", "e.received_on",
		"e.quantity", "e.unit_cost", "e.invoice_number",
	).
		From("stock_entries e").
		Join("suppliers s ON s.id = e.supplier_id").
		Join("products p ON p.id = e.product_id").
		OrderBy("e.received_on DESC", "e.id DESC").
		Limit(page.FetchLimit()).
		Offset(uint64(page.Offset)).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "stock entry", "list purchases")
	}
	defer rows.Close()

	history := []domain.PurchaseHistoryRow{}
	for rows.Next() {
		var h domain.PurchaseHistoryRow
		if err := rows.Scan(
			&h.ID, &h.Supplier, &h.Product, &h.IssuedOn, &h.ReceivedOn,
			&h.Quantity, &h.UnitCost, &h.InvoiceNumber,
		); err != nil {
			return nil, mapError(err, "stock entry", "scan purchase")
		}
		history = append(history, h)
	}
	return history, rows.Err()
}

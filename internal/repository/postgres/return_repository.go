package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/motopecasjacare/erp/internal/domain"
	"github.com/motopecasjacare/erp/internal/pkg/database"
	apperrors "github.com/motopecasjacare/erp/internal/pkg/errors"
	"github.com/motopecasjacare/erp/internal/pkg/pagination"
)

const returnableItemsSQL = `
SELECT i.product_id, p.description, SUM(i.quantity) AS quantity, MIN(i.unit_price) AS unit_price,
	COALESCE((
		SELECT SUM(r.quantity) FROM product_returns r
		WHERE r.order_id = i.order_id AND r.product_id = i.product_id
	), 0) AS returned
FROM order_items i
JOIN products p ON p.id = i.product_id
WHERE i.order_id = $1
GROUP BY i.order_id, i.product_id, p.description
ORDER BY p.description`

// ReturnRepository handles product returns
type ReturnRepository struct {
	db database.Pool
}

// NewReturnRepository creates a new return repository
func NewReturnRepository(db database.Pool) *ReturnRepository {
	return &ReturnRepository{db: db}
}

// ListReturnableOrders returns completed orders, newest first
func (r *ReturnRepository) ListReturnableOrders(ctx context.Context) ([]domain.ReturnableOrder, error) {
	query, args, err := psql.Select("o.id", "c.name", "o.placed_at", "o.total").
		From("orders o").
		Join("customers c ON c.id = o.customer_id").
		Where(squirrel.Eq{"o.status": domain.OrderStatusCompleted}).
		OrderBy("o.placed_at DESC", "o.id DESC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "order", "list completed orders")
	}
	defer rows.Close()

	orders := []domain.ReturnableOrder{}
	for rows.Next() {
		var o domain.ReturnableOrder
		if err := rows.Scan(&o.ID, &o.CustomerName, &o.PlacedAt, &o.Total); err != nil {
			return nil, mapError(err, "order", "scan order")
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// ListReturnableItems returns the products of an order with the quantity
// already returned
func (r *ReturnRepository) ListReturnableItems(ctx context.Context, orderID int64) ([]domain.ReturnableItem, error) {
	rows, err := r.db.Query(ctx, returnableItemsSQL, orderID)
	if err != nil {
		return nil, mapError(err, "order item", "list returnable items")
	}
	defer rows.Close()

	items := []domain.ReturnableItem{}
	for rows.Next() {
		var it domain.ReturnableItem
		if err := rows.Scan(&it.ProductID, &it.Description, &it.Quantity, &it.UnitPrice, &it.Returned); err != nil {
			return nil, mapError(err, "order item", "scan returnable item")
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Create registers a return and, when ret.Restocked is set, puts the units
// back in stock. The order row is locked so concurrent returns of the same
// order are checked against each other.
func (r *ReturnRepository) Create(ctx context.Context, ret *domain.ProductReturn) (*domain.ReturnResult, error) {
	err := database.Transaction(ctx, r.db, func(tx pgx.Tx) error {
		query, args, err := psql.Select("status").
			From("orders").
			Where(squirrel.Eq{"id": ret.OrderID}).
			Suffix("FOR UPDATE").
			ToSql()
		if err != nil {
			return err
		}
		var status domain.OrderStatus
		if err := tx.QueryRow(ctx, query, args...).Scan(&status); err != nil {
			return mapError(err, "order", "lock order")
		}
		if status != domain.OrderStatusCompleted {
			return apperrors.Conflict(fmt.Sprintf("only completed orders accept returns (order is %s)", status))
		}

		sold, err := sumQuantity(ctx, tx, "order_items", ret.OrderID, ret.ProductID)
		if err != nil {
			return err
		}
		if sold == 0 {
			return apperrors.Unprocessable("product is not part of this order")
		}
		returned, err := sumQuantity(ctx, tx, "product_returns", ret.OrderID, ret.ProductID)
		if err != nil {
			return err
		}
		if remaining := sold - returned; ret.Quantity > remaining {
			return apperrors.Unprocessable(fmt.Sprintf("only %d unit(s) of this product can still be returned", remaining))
		}

		insert, insertArgs, err := psql.Insert("product_returns").
			Columns("order_id", "product_id", "quantity", "condition", "restocked", "reason", "returned_on").
			Values(ret.OrderID, ret.ProductID, ret.Quantity, ret.Condition, ret.Restocked, ret.Reason, ret.ReturnedOn).
			Suffix("RETURNING id, created_at").
			ToSql()
		if err != nil {
			return err
		}
		if err := tx.QueryRow(ctx, insert, insertArgs...).Scan(&ret.ID, &ret.CreatedAt); err != nil {
			return mapError(err, "return", "insert return")
		}

		if !ret.Restocked {
			return nil
		}
		update, updateArgs, err := psql.Update("products").
			Set("stock_current", squirrel.Expr("stock_current + ?", ret.Quantity)).
			Where(squirrel.Eq{"id": ret.ProductID}).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, update, updateArgs...); err != nil {
			return mapError(err, "product", "restock returned product")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &domain.ReturnResult{Return: ret, StockUpdated: ret.Restocked}, nil
}

func sumQuantity(ctx context.Context, tx pgx.Tx, table string, orderID, productID int64) (int, error) {
	query, args, err := psql.Select("COALESCE(SUM(quantity), 0)").
		From(table).
		Where(squirrel.Eq{"order_id": orderID, "product_id": productID}).
		ToSql()
	if err != nil {
		return 0, err
	}

	var total int
	if err := tx.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, mapError(err, table, "sum "+table+" quantity")
	}
	return total, nil
}

// List returns registered returns, most recent first
func (r *ReturnRepository) List(ctx context.Context, page pagination.Params) ([]domain.ProductReturn, error) {
	query, args, err := psql.Select(
		"r.id", "r.order_id", "r.product_id", "r.quantity", "r.condition", "r.restocked",
		"r.reason", "r.returned_on", "r.created_at", "c.name", "p.description",
	).
		From("product_returns r").
		Join("orders o ON o.id = r.order_id").
		Join("customers c ON c.id = o.customer_id").
		Join("products p ON p.id = r.product_id").
		OrderBy("r.returned_on DESC", "r.id DESC").
		Limit(page.FetchLimit()).
		Offset(uint64(page.Offset)).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "return", "list returns")
	}
	defer rows.Close()

	returns := []domain.ProductReturn{}
	for rows.Next() {
		var pr domain.ProductReturn
		if err := rows.Scan(
			&pr.ID, &pr.OrderID, &pr.ProductID, &pr.Quantity, &pr.Condition, &pr.Restocked,
			&pr.Reason, &pr.ReturnedOn, &pr.CreatedAt, &pr.CustomerName, &pr.Description,
		); err != nil {
			return nil, mapError(err, "return", "scan return")
		}
		returns = append(returns, pr)
	}
	return returns, rows.Err()
}

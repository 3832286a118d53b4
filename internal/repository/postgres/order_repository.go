package postgres

import (
	"context"
	"errors"
	"slices"
	"strconv"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/motopecasjacare/erp/internal/domain"
	"github.com/motopecasjacare/erp/internal/pkg/database"
	apperrors "github.com/motopecasjacare/erp/internal/pkg/errors"
)

const restockOrdersSQL = `
UPDATE products p
SET stock_current = p.stock_current + x.quantity
FROM (
	SELECT product_id, SUM(quantity) AS quantity
	FROM order_items
	WHERE order_id = ANY($1)
	GROUP BY product_id
) x
WHERE p.id = x.product_id`

// OrderRepository handles sales order data operations
type OrderRepository struct {
	db database.Pool
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db database.Pool) *OrderRepository {
	return &OrderRepository{db: db}
}

// CreateWithItems inserts the order, its items and takes the sold quantities
// out of stock in one transaction. A line that would leave a product with
// negative stock fails the whole order.
func (r *OrderRepository) CreateWithItems(ctx context.Context, order *domain.Order) ([]domain.StockLevel, error) {
	levels := make([]domain.StockLevel, 0, len(order.Items))

	err := database.Transaction(ctx, r.db, func(tx pgx.Tx) error {
		query, args, err := psql.Insert("orders").
			Columns("customer_id", "total", "status", "payment_method").
			Values(order.CustomerID, order.Total, order.Status, order.PaymentMethod).
			Suffix("RETURNING id, placed_at").
			ToSql()
		if err != nil {
			return err
		}
		if err := tx.QueryRow(ctx, query, args...).Scan(&order.ID, &order.PlacedAt); err != nil {
			return mapError(err, "order", "insert order")
		}

		for i := range order.Items {
			item := &order.Items[i]
			item.OrderID = order.ID

			query, args, err := psql.Insert("order_items").
				Columns("order_id", "product_id", "quantity", "unit_price", "subtotal", "discount_percent").
				Values(item.OrderID, item.ProductID, item.Quantity, item.UnitPrice, item.Subtotal, item.DiscountPercent).
				Suffix("RETURNING id").
				ToSql()
			if err != nil {
				return err
			}
			if err := tx.QueryRow(ctx, query, args...).Scan(&item.ID); err != nil {
				return mapError(err, "order item", "insert order item")
			}

			level, err := decrementStock(ctx, tx, item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			levels = append(levels, *level)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return levels, nil
}

// decrementStock takes quantity units out of a product. The update only
// matches while enough stock is available.
func decrementStock(ctx context.Context, tx pgx.Tx, productID int64, quantity int) (*domain.StockLevel, error) {
	query, args, err := psql.Update("products").
		Set("stock_current", squirrel.Expr("stock_current - ?", quantity)).
		Where(squirrel.Eq{"id": productID}).
		Where(squirrel.GtOrEq{"stock_current": quantity}).
		Suffix("RETURNING id, description, stock_current, stock_minimum").
		ToSql()
	if err != nil {
		return nil, err
	}

	var level domain.StockLevel
	err = tx.QueryRow(ctx, query, args...).Scan(&level.ProductID, &level.Description, &level.StockCurrent, &level.StockMinimum)
	if err == nil {
		return &level, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, mapError(err, "product", "decrement stock")
	}

	stockQuery, stockArgs, err := psql.Select("stock_current").
		From("products").
		Where(squirrel.Eq{"id": productID}).
		ToSql()
	if err != nil {
		return nil, err
	}
	var available int
	if err := tx.QueryRow(ctx, stockQuery, stockArgs...).Scan(&available); err != nil {
		return nil, mapError(err, "product", "read stock")
	}
	return nil, apperrors.InsufficientStock(available).
		WithDetail("productId", strconv.FormatInt(productID, 10))
}

// ListSummaries returns orders with the customer name, oldest first
func (r *OrderRepository) ListSummaries(ctx context.Context, filter domain.OrderFilter) ([]domain.OrderSummary, error) {
	qb := psql.Select("o.id", "c.name", "o.placed_at", "o.total", "o.status").
		From("orders o").
		Join("customers c ON c.id = o.customer_id").
		OrderBy("o.placed_at ASC", "o.id ASC")

	if filter.Status != nil {
		qb = qb.Where(squirrel.Eq{"o.status": *filter.Status})
	}
	if filter.Limit > 0 {
		qb = qb.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		qb = qb.Offset(uint64(filter.Offset))
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "order", "list orders")
	}
	defer rows.Close()

	summaries := []domain.OrderSummary{}
	for rows.Next() {
		var s domain.OrderSummary
		if err := rows.Scan(&s.ID, &s.CustomerName, &s.PlacedAt, &s.Total, &s.Status); err != nil {
			return nil, mapError(err, "order", "scan order")
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// GetByID retrieves an order with its customer and items
func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	query, args, err := psql.Select(
		"o.id", "o.customer_id", "o.placed_at", "o.total", "o.status", "o.payment_method",
		"c.name", "c.document", "c.phone", "c.email", "c.address", "c.created_at",
	).
		From("orders o").
		Join("customers c ON c.id = o.customer_id").
		Where(squirrel.Eq{"o.id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	order := domain.Order{Customer: &domain.Customer{}}
	cust := order.Customer
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&order.ID, &order.CustomerID, &order.PlacedAt, &order.Total, &order.Status, &order.PaymentMethod,
		&cust.Name, &cust.Document, &cust.Phone, &cust.Email, &cust.Address, &cust.CreatedAt,
	)
	if err != nil {
		return nil, mapError(err, "order", "get order")
	}
	cust.ID = order.CustomerID

	items, err := r.listItems(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return &order, nil
}

func (r *OrderRepository) listItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	query, args, err := psql.Select(
		"i.id", "i.order_id", "i.product_id", "p.description",
		"i.quantity", "i.unit_price", "i.subtotal", "i.discount_percent",
	).
		From("order_items i").
		Join("products p ON p.id = i.product_id").
		Where(squirrel.Eq{"i.order_id": orderID}).
		OrderBy("i.id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "order item", "list order items")
	}
	defer rows.Close()

	items := []domain.OrderItem{}
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(
			&it.ID, &it.OrderID, &it.ProductID, &it.Description,
			&it.Quantity, &it.UnitPrice, &it.Subtotal, &it.DiscountPercent,
		); err != nil {
			return nil, mapError(err, "order item", "scan order item")
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// TransitionPending moves pending orders to status and returns the IDs that
// changed. With restock the sold quantities of the changed orders go back to
// stock inside the same transaction, so an order can only be restocked once.
func (r *OrderRepository) TransitionPending(ctx context.Context, ids []int64, status domain.OrderStatus, restock bool) ([]int64, error) {
	var changed []int64

	err := database.Transaction(ctx, r.db, func(tx pgx.Tx) error {
		query, args, err := psql.Update("orders").
			Set("status", status).
			Where(squirrel.Expr("id = ANY(?)", ids)).
			Where(squirrel.Eq{"status": domain.OrderStatusPending}).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return err
		}

		rows, err := tx.Query(ctx, query, args...)
		if err != nil {
			return mapError(err, "order", "update order status")
		}
		changed, err = pgx.CollectRows(rows, pgx.RowTo[int64])
		if err != nil {
			return mapError(err, "order", "collect changed orders")
		}

		if !restock || len(changed) == 0 {
			return nil
		}
		if _, err := tx.Exec(ctx, restockOrdersSQL, changed); err != nil {
			return mapError(err, "product", "restock cancelled orders")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(changed)
	return changed, nil
}

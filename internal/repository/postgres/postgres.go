package postgres

import (
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	apperrors "github.com/motopecasjacare/erp/internal/pkg/errors"
)

// psql builds queries with PostgreSQL placeholders
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// constraintMessages maps unique and foreign key constraint names to the
// message returned to API clients.
var constraintMessages = map[string]string{
	"users_username_key":             "username already exists",
	"customers_document_key":         "a customer with this document already exists",
	"customers_email_key":            "a customer with this email already exists",
	"suppliers_cnpj_key":             "a supplier with this CNPJ already exists",
	"categories_name_key":            "category already exists",
	"products_sku_key":               "a product with this SKU already exists",
	"products_category_id_fkey":      "category does not exist",
	"products_supplier_id_fkey":      "supplier does not exist",
	"stock_entries_supplier_id_fkey": "supplier does not exist",
	"stock_entries_product_id_fkey":  "product does not exist",
	"orders_customer_id_fkey":        "customer does not exist",
	"order_items_product_id_fkey":    "product does not exist",
}

// mapError converts driver errors into application errors. resource names
// the entity for not-found errors; action is used to wrap anything else.
func mapError(err error, resource, action string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NotFound(resource)
	}
	if apperrors.IsAppError(err) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		msg, known := constraintMessages[pgErr.ConstraintName]
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			if !known {
				msg = resource + " already exists"
			}
			return apperrors.Conflict(msg).WithError(err)
		case pgerrcode.ForeignKeyViolation:
			if !known {
				msg = "referenced record does not exist"
			}
			return apperrors.Unprocessable(msg).WithError(err)
		case pgerrcode.CheckViolation:
			if pgErr.ConstraintName == "products_stock_current_check" {
				return apperrors.InsufficientStock(-1).WithError(err)
			}
			return apperrors.Validation("value out of range").WithError(err)
		}
	}

	return fmt.Errorf("failed to %s: %w", action, err)
}

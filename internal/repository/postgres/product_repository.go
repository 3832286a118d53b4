package postgres

import (
	"context"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/motopecasjacare/erp/internal/domain"
	"github.com/motopecasjacare/erp/internal/pkg/database"
)

var productColumns = []string{
	"id", "sku", "description", "brand", "cost_price", "sale_price",
	"stock_current", "stock_minimum", "category_id", "supplier_id",
	"bike_model", "bike_year", "active", "created_at",
}

// ProductRepository handles product data operations
type ProductRepository struct {
	db database.Pool
}

// NewProductRepository creates a new product repository
func NewProductRepository(db database.Pool) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create inserts a product and fills its ID and creation time
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	query, args, err := psql.Insert("products").
		Columns(
			"sku", "description", "brand", "cost_price", "sale_price",
			"stock_current", "stock_minimum", "category_id", "supplier_id",
			"bike_model", "bike_year", "active",
		).
		Values(
			p.SKU, p.Description, p.Brand, p.CostPrice, p.SalePrice,
			p.StockCurrent, p.StockMinimum, p.CategoryID, p.SupplierID,
			p.BikeModel, p.BikeYear, p.Active,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return err
	}

	err = r.db.QueryRow(ctx, query, args...).Scan(&p.ID, &p.CreatedAt)
	return mapError(err, "product", "create product")
}

// GetByID retrieves a product by ID
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query, args, err := psql.Select(productColumns...).
		From("products").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	p, err := scanProduct(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapError(err, "product", "get product")
	}
	return p, nil
}

// UpdatePrices sets the cost and sale price of a product
func (r *ProductRepository) UpdatePrices(ctx context.Context, id int64, cost, sale decimal.Decimal) (*domain.Product, error) {
	query, args, err := psql.Update("products").
		Set("cost_price", cost).
		Set("sale_price", sale).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(productColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, err
	}

	p, err := scanProduct(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapError(err, "product", "update product prices")
	}
	return p, nil
}

// ListStock returns every product joined with its category and supplier names
func (r *ProductRepository) ListStock(ctx context.Context) ([]domain.StockView, error) {
	query, args, err := psql.Select(
		"p.id", "p.sku", "p.brand", "p.description", "p.bike_year",
		"p.cost_price", "p.sale_price", "p.stock_current", "p.stock_minimum",
		"c.name", "s.trade_name", "p.active",
	).
		From("products p").
		Join("categories c ON c.id = p.category_id").
		Join("suppliers s ON s.id = p.supplier_id").
		OrderBy("p.description", "p.id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "product", "list stock")
	}
	defer rows.Close()

	items := []domain.StockView{}
	for rows.Next() {
		var v domain.StockView
		if err := rows.Scan(
			&v.ID, &v.SKU, &v.Brand, &v.Description, &v.BikeYear,
			&v.CostPrice, &v.SalePrice, &v.StockCurrent, &v.StockMinimum,
			&v.Category, &v.Supplier, &v.Active,
		); err != nil {
			return nil, mapError(err, "product", "scan stock row")
		}
		items = append(items, v)
	}
	return items, rows.Err()
}

// Search finds active products whose description contains term, ignoring case
func (r *ProductRepository) Search(ctx context.Context, term string) ([]domain.ProductSearchRow, error) {
	query, args, err := psql.Select("id", "description", "brand", "stock_current", "sale_price").
		From("products").
		Where(squirrel.ILike{"description": "%" + escapeLike(term) + "%"}).
		Where(squirrel.Eq{"active": true}).
		OrderBy("description", "id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "product", "search products")
	}
	defer rows.Close()

	results := []domain.ProductSearchRow{}
	for rows.Next() {
		var p domain.ProductSearchRow
		if err := rows.Scan(&p.ID, &p.Description, &p.Brand, &p.StockCurrent, &p.SalePrice); err != nil {
			return nil, mapError(err, "product", "scan product")
		}
		results = append(results, p)
	}
	return results, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID, &p.SKU, &p.Description, &p.Brand, &p.CostPrice, &p.SalePrice,
		&p.StockCurrent, &p.StockMinimum, &p.CategoryID, &p.SupplierID,
		&p.BikeModel, &p.BikeYear, &p.Active, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// escapeLike escapes the LIKE wildcards in user input
func escapeLike(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '%' || r == '_' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}

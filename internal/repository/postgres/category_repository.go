package postgres

import (
	"context"

	"github.com/motopecasjacare/erp/internal/domain"
	"github.com/motopecasjacare/erp/internal/pkg/database"
)

// CategoryRepository handles category data operations
type CategoryRepository struct {
	db database.Pool
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db database.Pool) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create inserts a category and fills its ID
func (r *CategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	query, args, err := psql.Insert("categories").
		Columns("name").
		Values(c.Name).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return err
	}

	err = r.db.QueryRow(ctx, query, args...).Scan(&c.ID)
	return mapError(err, "category", "create category")
}

// List returns all categories ordered by name
func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	query, args, err := psql.Select("id", "name").
		From("categories").
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "category", "list categories")
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, mapError(err, "category", "scan category")
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// Count returns the number of categories
func (r *CategoryRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "categories")
}

func count(ctx context.Context, db database.Pool, table string) (int, error) {
	query, args, err := psql.Select("COUNT(*)").From(table).ToSql()
	if err != nil {
		return 0, err
	}

	var n int
	if err := db.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, mapError(err, table, "count "+table)
	}
	return n, nil
}

package postgres

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/motopecasjacare/erp/internal/domain"
	"github.com/motopecasjacare/erp/internal/pkg/database"
)

var customerColumns = []string{"id", "name", "document", "phone", "email", "address", "created_at"}

// CustomerRepository handles customer data operations
type CustomerRepository struct {
	db database.Pool
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db database.Pool) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// Create inserts a customer and fills its ID
func (r *CustomerRepository) Create(ctx context.Context, c *domain.Customer) error {
	query, args, err := psql.Insert("customers").
		Columns("name", "document", "phone", "email", "address", "created_at").
		Values(c.Name, c.Document, c.Phone, c.Email, c.Address, c.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return err
	}

	err = r.db.QueryRow(ctx, query, args...).Scan(&c.ID)
	return mapError(err, "customer", "create customer")
}

// GetByID retrieves a customer by ID
func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	query, args, err := psql.Select(customerColumns...).
		From("customers").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var c domain.Customer
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&c.ID, &c.Name, &c.Document, &c.Phone, &c.Email, &c.Address, &c.CreatedAt,
	)
	if err != nil {
		return nil, mapError(err, "customer", "get customer")
	}
	return &c, nil
}

// List returns all customers ordered by name
func (r *CustomerRepository) List(ctx context.Context) ([]domain.Customer, error) {
	query, args, err := psql.Select(customerColumns...).
		From("customers").
		OrderBy("name", "id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "customer", "list customers")
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Document, &c.Phone, &c.Email, &c.Address, &c.CreatedAt); err != nil {
			return nil, mapError(err, "customer", "scan customer")
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

package postgres

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/motopecasjacare/erp/internal/domain"
	"github.com/motopecasjacare/erp/internal/pkg/database"
)

var supplierColumns = []string{"id", "trade_name", "cnpj", "phone", "email", "contact", "created_at"}

// SupplierRepository handles supplier data operations
type SupplierRepository struct {
	db database.Pool
}

// NewSupplierRepository creates a new supplier repository
func NewSupplierRepository(db database.Pool) *SupplierRepository {
	return &SupplierRepository{db: db}
}

// Create inserts a supplier and fills its ID and creation time
func (r *SupplierRepository) Create(ctx context.Context, s *domain.Supplier) error {
	query, args, err := psql.Insert("suppliers").
		Columns("trade_name", "cnpj", "phone", "email", "contact").
		Values(s.TradeName, s.CNPJ, s.Phone, s.Email, s.Contact).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return err
	}

	err = r.db.QueryRow(ctx, query, args...).Scan(&s.ID, &s.CreatedAt)
	return mapError(err, "supplier", "create supplier")
}

// GetByID retrieves a supplier by ID
func (r *SupplierRepository) GetByID(ctx context.Context, id int64) (*domain.Supplier, error) {
	query, args, err := psql.Select(supplierColumns...).
		From("suppliers").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var s domain.Supplier
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&s.ID, &s.TradeName, &s.CNPJ, &s.Phone, &s.Email, &s.Contact, &s.CreatedAt,
	)
	if err != nil {
		return nil, mapError(err, "supplier", "get supplier")
	}
	return &s, nil
}

// List returns all suppliers ordered by trade name
func (r *SupplierRepository) List(ctx context.Context) ([]domain.Supplier, error) {
	query, args, err := psql.Select(supplierColumns...).
		From("suppliers").
		OrderBy("trade_name", "id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "supplier", "list suppliers")
	}
	defer rows.Close()

	suppliers := []domain.Supplier{}
	for rows.Next() {
		var s domain.Supplier
		if err := rows.Scan(&s.ID, &s.TradeName, &s.CNPJ, &s.Phone, &s.Email, &s.Contact, &s.CreatedAt); err != nil {
			return nil, mapError(err, "supplier", "scan supplier")
		}
		suppliers = append(suppliers, s)
	}
	return suppliers, rows.Err()
}

// Count returns the number of registered suppliers
func (r *SupplierRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "suppliers")
}

package postgres

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/motopecasjacare/erp/internal/domain"
	"github.com/motopecasjacare/erp/internal/pkg/database"
)

var userColumns = []string{"id", "username", "name", "password_hash", "role", "active", "created_at"}

// UserRepository handles user data operations
type UserRepository struct {
	db database.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a user and fills its ID and creation time
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	query, args, err := psql.Insert("users").
		Columns("username", "name", "password_hash", "role", "active").
		Values(u.Username, u.Name, u.PasswordHash, u.Role, u.Active).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return err
	}

	err = r.db.QueryRow(ctx, query, args...).Scan(&u.ID, &u.CreatedAt)
	return mapError(err, "user", "create user")
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByUsername retrieves a user by username, ignoring case
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getOne(ctx, squirrel.Expr("LOWER(username) = LOWER(?)", username))
}

func (r *UserRepository) getOne(ctx context.Context, pred squirrel.Sqlizer) (*domain.User, error) {
	query, args, err := psql.Select(userColumns...).
		From("users").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, err
	}

	var u domain.User
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&u.ID, &u.Username, &u.Name, &u.PasswordHash, &u.Role, &u.Active, &u.CreatedAt,
	)
	if err != nil {
		return nil, mapError(err, "user", "get user")
	}
	return &u, nil
}

// List returns all users ordered by username
func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	query, args, err := psql.Select(userColumns...).
		From("users").
		OrderBy("username").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "user", "list users")
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Name, &u.PasswordHash, &u.Role, &u.Active, &u.CreatedAt); err != nil {
			return nil, mapError(err, "user", "scan user")
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Count returns the number of users
func (r *UserRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "users")
}

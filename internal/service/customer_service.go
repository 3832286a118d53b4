package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/motopecasjacare/erp/internal/domain"
	"github.com/motopecasjacare/erp/internal/pkg/logger"
)

// CustomerRepository defines customer repository operations
type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
}

// CustomerService handles customer registration
type CustomerService struct {
	repo CustomerRepository
	now  func() time.Time
}

// NewCustomerService creates a new customer service
func NewCustomerService(repo CustomerRepository) *CustomerService {
	return &CustomerService{repo: repo, now: time.Now}
}

// Create registers a customer dated today
func (s *CustomerService) Create(ctx context.Context, input *domain.CustomerInput) (*domain.Customer, error) {
	customer := &domain.Customer{
		Name:      strings.TrimSpace(input.Name),
		Document:  strings.TrimSpace(input.Document),
		Phone:     strings.TrimSpace(input.Phone),
		Address:   strings.TrimSpace(input.Address),
		CreatedAt: today(s.now()),
	}
	if input.Email != nil {
		if email := strings.ToLower(strings.TrimSpace(*input.Email)); email != "" {
			customer.Email = &email
		}
	}

	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, err
	}

	logger.Info("customer registered", zap.Int64("customer_id", customer.ID))
	return customer, nil
}

// Get returns a customer
func (s *CustomerService) Get(ctx context.Context, id int64) (*domain.Customer, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns every customer ordered by name
func (s *CustomerService) List(ctx context.Context) ([]domain.Customer, error) {
	return s.repo.List(ctx)
}

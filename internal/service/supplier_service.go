package service

import (
	"context"
	"strings"

	"github.com/motopecasjacare/erp/internal/domain"
)

// SupplierRepository defines supplier repository operations
type SupplierRepository interface {
	Create(ctx context.Context, s *domain.Supplier) error
	GetByID(ctx context.Context, id int64) (*domain.Supplier, error)
	List(ctx context.Context) ([]domain.Supplier, error)
	Count(ctx context.Context) (int, error)
}

// SupplierService handles supplier registration
type SupplierService struct {
	repo SupplierRepository
}

// NewSupplierService creates a new supplier service
func NewSupplierService(repo SupplierRepository) *SupplierService {
	return &SupplierService{repo: repo}
}

// Create registers a supplier
func (s *SupplierService) Create(ctx context.Context, input *domain.SupplierInput) (*domain.Supplier, error) {
	supplier := &domain.Supplier{
		TradeName: strings.TrimSpace(input.TradeName),
		CNPJ:      strings.TrimSpace(input.CNPJ),
		Phone:     strings.TrimSpace(input.Phone),
		Email:     strings.ToLower(strings.TrimSpace(input.Email)),
		Contact:   strings.TrimSpace(input.Contact),
	}
	if err := s.repo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// Get returns a supplier
func (s *SupplierService) Get(ctx context.Context, id int64) (*domain.Supplier, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns every supplier
func (s *SupplierService) List(ctx context.Context) ([]domain.Supplier, error) {
	return s.repo.List(ctx)
}

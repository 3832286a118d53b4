package service

import (
	"context"
	"strings"

	"github.com/motopecasjacare/erp/internal/domain"
)

// CategoryRepository defines category repository operations
type CategoryRepository interface {
	Create(ctx context.Context, c *domain.Category) error
	List(ctx context.Context) ([]domain.Category, error)
	Count(ctx context.Context) (int, error)
}

// CategoryService handles product categories
type CategoryService struct {
	repo CategoryRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(repo CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// Create registers a category
func (s *CategoryService) Create(ctx context.Context, input *domain.CategoryInput) (*domain.Category, error) {
	category := &domain.Category{Name: strings.TrimSpace(input.Name)}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// List returns every category
func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.repo.List(ctx)
}

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/motopecasjacare/erp/internal/domain"
	apperrors "github.com/motopecasjacare/erp/internal/pkg/errors"
	"github.com/motopecasjacare/erp/internal/pkg/logger"
	"github.com/motopecasjacare/erp/internal/repository/cache"
)

// ProductRepository defines product repository operations
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	UpdatePrices(ctx context.Context, id int64, cost, sale decimal.Decimal) (*domain.Product, error)
	ListStock(ctx context.Context) ([]domain.StockView, error)
	Search(ctx context.Context, term string) ([]domain.ProductSearchRow, error)
}

// Counter counts the rows of a registry
type Counter interface {
	Count(ctx context.Context) (int, error)
}

// ProductService handles the product catalog and stock view
type ProductService struct {
	repo       ProductRepository
	categories Counter
	suppliers  Counter
	cache      Cache
}

// NewProductService creates a new product service. c may be nil.
func NewProductService(repo ProductRepository, categories, suppliers Counter, c Cache) *ProductService {
	return &ProductService{
		repo:       repo,
		categories: categories,
		suppliers:  suppliers,
		cache:      cacheOrNop(c),
	}
}

// Create registers a product. At least one category and one supplier must
// exist first.
func (s *ProductService) Create(ctx context.Context, input *domain.ProductInput) (*domain.Product, error) {
	categories, err := s.categories.Count(ctx)
	if err != nil {
		return nil, err
	}
	suppliers, err := s.suppliers.Count(ctx)
	if err != nil {
		return nil, err
	}
	if categories == 0 || suppliers == 0 {
		return nil, apperrors.Unprocessable("register at least one category and one supplier before adding products")
	}

	product := &domain.Product{
		SKU:          strings.TrimSpace(input.SKU),
		Description:  strings.TrimSpace(input.Description),
		Brand:        strings.TrimSpace(input.Brand),
		CostPrice:    input.CostPrice,
		SalePrice:    input.SalePrice.Round(2),
		StockCurrent: input.StockCurrent,
		StockMinimum: input.StockMinimum,
		CategoryID:   input.CategoryID,
		SupplierID:   input.SupplierID,
		BikeModel:    strings.TrimSpace(input.BikeModel),
		BikeYear:     input.BikeYear,
		Active:       true,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	invalidate(ctx, s.cache, productsNamespace)

	logger.Info("product created",
		zap.Int64("product_id", product.ID),
		zap.String("sku", product.SKU),
	)
	return product, nil
}

// UpdatePrices changes the cost and sale price of a product
func (s *ProductService) UpdatePrices(ctx context.Context, id int64, input *domain.PriceUpdateInput) (*domain.Product, error) {
	product, err := s.repo.UpdatePrices(ctx, id, input.CostPrice, input.SalePrice.Round(2))
	if err != nil {
		return nil, err
	}
	invalidate(ctx, s.cache, productsNamespace)
	return product, nil
}

// Get returns a product
func (s *ProductService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return cache.Remember(ctx, s.cache, fmt.Sprintf("%s:item:%d", productsNamespace, id), func(ctx context.Context) (*domain.Product, error) {
		return s.repo.GetByID(ctx, id)
	})
}

// ListStock returns the stock view of every product
func (s *ProductService) ListStock(ctx context.Context) ([]domain.StockView, error) {
	return cache.Remember(ctx, s.cache, productsNamespace+":stock", s.repo.ListStock)
}

// Search finds active products by description
func (s *ProductService) Search(ctx context.Context, term string) ([]domain.ProductSearchRow, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, apperrors.BadRequest("search term is required")
	}
	key := productsNamespace + ":search:" + strings.ToLower(term)
	return cache.Remember(ctx, s.cache, key, func(ctx context.Context) ([]domain.ProductSearchRow, error) {
		return s.repo.Search(ctx, term)
	})
}

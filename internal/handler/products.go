package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/motopecasjacare/erp/internal/domain"
	"github.com/motopecasjacare/erp/internal/dto"
)

// CategoryManager is the category service as seen by the handlers
type CategoryManager interface {
	Create(ctx context.Context, input *domain.CategoryInput) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
}

// ProductManager is the product service as seen by the handlers
type ProductManager interface {
	Create(ctx context.Context, input *domain.ProductInput) (*domain.Product, error)
	UpdatePrices(ctx context.Context, id int64, input *domain.PriceUpdateInput) (*domain.Product, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
	ListStock(ctx context.Context) ([]domain.StockView, error)
	Search(ctx context.Context, term string) ([]domain.ProductSearchRow, error)
}

// ProductHandler handles the catalog: categories and products
type ProductHandler struct {
	categories CategoryManager
	products   ProductManager
}

// NewProductHandler creates a new product handler
func NewProductHandler(categories CategoryManager, products ProductManager) *ProductHandler {
	return &ProductHandler{categories: categories, products: products}
}

// CreateCategory handles POST /api/categories
func (h *ProductHandler) CreateCategory(c *fiber.Ctx) error {
	var input domain.CategoryInput
	if err := dto.ParseAndValidate(c, &input); err != nil {
		return err
	}

	category, err := h.categories.Create(c.UserContext(), &input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// ListCategories handles GET /api/categories
func (h *ProductHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.categories.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(categories)
}

// CreateProduct handles POST /api/products
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var input domain.ProductInput
	if err := dto.ParseAndValidate(c, &input); err != nil {
		return err
	}

	product, err := h.products.Create(c.UserContext(), &input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// UpdatePrices handles PATCH /api/products/:id/prices
func (h *ProductHandler) UpdatePrices(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var input domain.PriceUpdateInput
	if err := dto.ParseAndValidate(c, &input); err != nil {
		return err
	}

	product, err := h.products.UpdatePrices(c.UserContext(), id, &input)
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// ListProducts handles GET /api/products
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	rows, err := h.products.ListStock(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(rows)
}

// SearchProducts handles GET /api/products/search?q=
func (h *ProductHandler) SearchProducts(c *fiber.Ctx) error {
	rows, err := h.products.Search(c.UserContext(), c.Query("q"))
	if err != nil {
		return err
	}
	return c.JSON(rows)
}

// GetProduct handles GET /api/products/:id
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	product, err := h.products.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(product)
}

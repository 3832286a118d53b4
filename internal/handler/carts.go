package handler

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/motopecasjacare/erp/internal/domain"
	"github.com/motopecasjacare/erp/internal/dto"
	apperrors "github.com/motopecasjacare/erp/internal/pkg/errors"
	"github.com/motopecasjacare/erp/internal/service"
)

// CartManager is the cart service as seen by the handlers
type CartManager interface {
	Create(ctx context.Context) (*domain.Cart, error)
	Get(ctx context.Context, id string) (*domain.CartView, error)
	AddItem(ctx context.Context, cartID string, line *domain.OrderLineInput) (*domain.CartView, error)
	Clear(ctx context.Context, cartID string) (*domain.CartView, error)
	Quote(ctx context.Context, cartID string, customerID int64) (*domain.Quote, error)
	Checkout(ctx context.Context, cartID string, customerID int64, method domain.PaymentMethod) (*domain.PlacedOrder, error)
}

// QuoteRenderer renders printable quotes
type QuoteRenderer interface {
	Quote(q *domain.Quote, format service.DocumentFormat) ([]byte, error)
}

// CartHandler handles the sales cart
type CartHandler struct {
	carts     CartManager
	documents QuoteRenderer
}

// NewCartHandler creates a new cart handler
func NewCartHandler(carts CartManager, documents QuoteRenderer) *CartHandler {
	return &CartHandler{carts: carts, documents: documents}
}

// Create handles POST /api/carts
func (h *CartHandler) Create(c *fiber.Ctx) error {
	cart, err := h.carts.Create(c.UserContext())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(domain.NewCartView(cart))
}

// Get handles GET /api/carts/:id
func (h *CartHandler) Get(c *fiber.Ctx) error {
	view, err := h.carts.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(view)
}

// AddItem handles POST /api/carts/:id/items
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var req dto.CartItemRequest
	if err := dto.ParseAndValidate(c, &req); err != nil {
		return err
	}

	view, err := h.carts.AddItem(c.UserContext(), c.Params("id"), &domain.OrderLineInput{
		ProductID:       req.ProductID,
		Quantity:        req.Quantity,
		DiscountPercent: req.DiscountPercent,
	})
	if err != nil {
		return err
	}
	return c.JSON(view)
}

// Clear handles DELETE /api/carts/:id/items
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	view, err := h.carts.Clear(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(view)
}

// Quote handles GET /api/carts/:id/quote?customerId=&format=html|pdf
func (h *CartHandler) Quote(c *fiber.Ctx) error {
	customerID, err := strconv.ParseInt(c.Query("customerId"), 10, 64)
	if err != nil || customerID <= 0 {
		return apperrors.Validation("customerId is required").WithDetail("customerId", "required")
	}
	format, err := parseFormat(c, service.FormatHTML, service.FormatHTML, service.FormatPDF)
	if err != nil {
		return err
	}

	quote, err := h.carts.Quote(c.UserContext(), c.Params("id"), customerID)
	if err != nil {
		return err
	}
	body, err := h.documents.Quote(quote, format)
	if err != nil {
		return err
	}
	return sendDocument(c, body, format, "orcamento")
}

// Checkout handles POST /api/carts/:id/checkout
func (h *CartHandler) Checkout(c *fiber.Ctx) error {
	var req dto.CheckoutRequest
	if err := dto.ParseAndValidate(c, &req); err != nil {
		return err
	}

	placed, err := h.carts.Checkout(c.UserContext(), c.Params("id"), req.CustomerID, req.PaymentMethod)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(placed)
}

package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/motopecasjacare/erp/internal/domain"
	"github.com/motopecasjacare/erp/internal/dto"
	"github.com/motopecasjacare/erp/internal/pkg/pagination"
)

// ReturnManager is the return service as seen by the handlers
type ReturnManager interface {
	Register(ctx context.Context, input *domain.ReturnInput) (*domain.ReturnResult, error)
	ReturnableOrders(ctx context.Context) ([]domain.ReturnableOrder, error)
	ReturnableItems(ctx context.Context, orderID int64) ([]domain.ReturnableItem, error)
	History(ctx context.Context, page pagination.Params) (*pagination.Page[domain.ProductReturn], error)
}

// ReturnHandler handles product returns
type ReturnHandler struct {
	returns ReturnManager
}

// NewReturnHandler creates a new return handler
func NewReturnHandler(returns ReturnManager) *ReturnHandler {
	return &ReturnHandler{returns: returns}
}

// ReturnableOrders handles GET /api/returns/orders
func (h *ReturnHandler) ReturnableOrders(c *fiber.Ctx) error {
	orders, err := h.returns.ReturnableOrders(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(orders)
}

// ReturnableItems handles GET /api/returns/orders/:id/items
func (h *ReturnHandler) ReturnableItems(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	items, err := h.returns.ReturnableItems(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(items)
}

// Register handles POST /api/returns
func (h *ReturnHandler) Register(c *fiber.Ctx) error {
	var input domain.ReturnInput
	if err := dto.ParseAndValidate(c, &input); err != nil {
		return err
	}

	result, err := h.returns.Register(c.UserContext(), &input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// History handles GET /api/returns
func (h *ReturnHandler) History(c *fiber.Ctx) error {
	page, err := h.returns.History(c.UserContext(), parsePagination(c))
	if err != nil {
		return err
	}
	return c.JSON(page)
}

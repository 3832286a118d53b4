package handler

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/motopecasjacare/erp/internal/domain"
	"github.com/motopecasjacare/erp/internal/dto"
	apperrors "github.com/motopecasjacare/erp/internal/pkg/errors"
	"github.com/motopecasjacare/erp/internal/pkg/pagination"
	"github.com/motopecasjacare/erp/internal/service"
)

// OrderManager is the order service as seen by the handlers
type OrderManager interface {
	Place(ctx context.Context, input *domain.OrderInput) (*domain.PlacedOrder, error)
	List(ctx context.Context, filter domain.OrderFilter) ([]domain.OrderSummary, error)
	Get(ctx context.Context, id int64) (*domain.Order, error)
	Complete(ctx context.Context, ids []int64, printReceipt bool) (*domain.StatusChange, error)
	Cancel(ctx context.Context, ids []int64) (*domain.StatusChange, error)
}

// ReceiptRenderer renders printable receipts
type ReceiptRenderer interface {
	Receipt(order *domain.Order, format service.DocumentFormat) ([]byte, error)
}

// OrderHandler handles sales orders
type OrderHandler struct {
	orders    OrderManager
	documents ReceiptRenderer
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orders OrderManager, documents ReceiptRenderer) *OrderHandler {
	return &OrderHandler{orders: orders, documents: documents}
}

// Place handles POST /api/orders
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	var input domain.OrderInput
	if err := dto.ParseAndValidate(c, &input); err != nil {
		return err
	}

	placed, err := h.orders.Place(c.UserContext(), &input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(placed)
}

// List handles GET /api/orders?status=
func (h *OrderHandler) List(c *fiber.Ctx) error {
	// Without a limit every matching order is listed.
	filter := domain.OrderFilter{
		Limit:  min(c.QueryInt("limit", 0), pagination.MaxLimit),
		Offset: max(c.QueryInt("offset", 0), 0),
	}
	if raw := c.Query("status"); raw != "" {
		status := domain.OrderStatus(raw)
		if !status.IsValid() {
			return apperrors.Validation("invalid order status").WithDetail("status", raw)
		}
		filter.Status = &status
	}

	orders, err := h.orders.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(orders)
}

// Get handles GET /api/orders/:id
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	order, err := h.orders.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(order)
}

// Complete handles POST /api/orders/complete
func (h *OrderHandler) Complete(c *fiber.Ctx) error {
	var req dto.CompleteOrdersRequest
	if err := dto.ParseAndValidate(c, &req); err != nil {
		return err
	}

	change, err := h.orders.Complete(c.UserContext(), req.OrderIDs, req.PrintReceipt)
	if err != nil {
		return err
	}
	return c.JSON(change)
}

// Cancel handles POST /api/orders/cancel
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	var req dto.CancelOrdersRequest
	if err := dto.ParseAndValidate(c, &req); err != nil {
		return err
	}

	change, err := h.orders.Cancel(c.UserContext(), req.OrderIDs)
	if err != nil {
		return err
	}
	return c.JSON(change)
}

// Receipt handles GET /api/orders/:id/receipt?format=text|html|pdf
func (h *OrderHandler) Receipt(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	format, err := parseFormat(c, service.FormatText, service.FormatText, service.FormatHTML, service.FormatPDF)
	if err != nil {
		return err
	}

	order, err := h.orders.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	body, err := h.documents.Receipt(order, format)
	if err != nil {
		return err
	}
	return sendDocument(c, body, format, fmt.Sprintf("cupom-%d", id))
}

package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/motopecasjacare/erp/internal/domain"
	"github.com/motopecasjacare/erp/internal/dto"
	"github.com/motopecasjacare/erp/internal/pkg/pagination"
)

// PurchaseManager is the purchase service as seen by the handlers
type PurchaseManager interface {
	Receive(ctx context.Context, input *domain.PurchaseInput) (*domain.PurchaseResult, error)
	History(ctx context.Context, page pagination.Params) (*pagination.Page[domain.PurchaseHistoryRow], error)
}

// PurchaseHandler handles stock receipts
type PurchaseHandler struct {
	purchases PurchaseManager
}

// NewPurchaseHandler creates a new purchase handler
func NewPurchaseHandler(purchases PurchaseManager) *PurchaseHandler {
	return &PurchaseHandler{purchases: purchases}
}

// Receive handles POST /api/purchases
func (h *PurchaseHandler) Receive(c *fiber.Ctx) error {
	var input domain.PurchaseInput
	if err := dto.ParseAndValidate(c, &input); err != nil {
		return err
	}

	result, err := h.purchases.Receive(c.UserContext(), &input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// History handles GET /api/purchases
func (h *PurchaseHandler) History(c *fiber.Ctx) error {
	page, err := h.purchases.History(c.UserContext(), parsePagination(c))
	if err != nil {
		return err
	}
	return c.JSON(page)
}

package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/motopecasjacare/erp/internal/domain"
	"github.com/motopecasjacare/erp/internal/dto"
)

// CustomerManager is the customer service as seen by the handlers
type CustomerManager interface {
	Create(ctx context.Context, input *domain.CustomerInput) (*domain.Customer, error)
	Get(ctx context.Context, id int64) (*domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
}

// SupplierManager is the supplier service as seen by the handlers
type SupplierManager interface {
	Create(ctx context.Context, input *domain.SupplierInput) (*domain.Supplier, error)
	Get(ctx context.Context, id int64) (*domain.Supplier, error)
	List(ctx context.Context) ([]domain.Supplier, error)
}

// PartnerHandler handles customer and supplier registration
type PartnerHandler struct {
	customers CustomerManager
	suppliers SupplierManager
}

// NewPartnerHandler creates a new partner handler
func NewPartnerHandler(customers CustomerManager, suppliers SupplierManager) *PartnerHandler {
	return &PartnerHandler{customers: customers, suppliers: suppliers}
}

// CreateCustomer handles POST /api/customers
func (h *PartnerHandler) CreateCustomer(c *fiber.Ctx) error {
	var input domain.CustomerInput
	if err := dto.ParseAndValidate(c, &input); err != nil {
		return err
	}

	customer, err := h.customers.Create(c.UserContext(), &input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

// ListCustomers handles GET /api/customers
func (h *PartnerHandler) ListCustomers(c *fiber.Ctx) error {
	customers, err := h.customers.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(customers)
}

// GetCustomer handles GET /api/customers/:id
func (h *PartnerHandler) GetCustomer(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	customer, err := h.customers.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(customer)
}

// CreateSupplier handles POST /api/suppliers
func (h *PartnerHandler) CreateSupplier(c *fiber.Ctx) error {
	var input domain.SupplierInput
	if err := dto.ParseAndValidate(c, &input); err != nil {
		return err
	}

	supplier, err := h.suppliers.Create(c.UserContext(), &input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(supplier)
}

// ListSuppliers handles GET /api/suppliers
func (h *PartnerHandler) ListSuppliers(c *fiber.Ctx) error {
	suppliers, err := h.suppliers.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(suppliers)
}

// GetSupplier handles GET /api/suppliers/:id
func (h *PartnerHandler) GetSupplier(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	supplier, err := h.suppliers.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(supplier)
}

package service

import (
	"context"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/motopecasjacare/erp/internal/domain"
	apperrors "github.com/motopecasjacare/erp/internal/pkg/errors"
	"github.com/motopecasjacare/erp/internal/pkg/logger"
	"github.com/motopecasjacare/erp/internal/pkg/money"
)

// CartStore defines cart storage operations
type CartStore interface {
	Create(ctx context.Context) (*domain.Cart, error)
	Get(ctx context.Context, id string) (*domain.Cart, error)
	Update(ctx context.Context, id string, fn func(*domain.Cart) error) (*domain.Cart, error)
	Delete(ctx context.Context, id string) error
}

// OrderPlacer places orders
type OrderPlacer interface {
	Place(ctx context.Context, input *domain.OrderInput) (*domain.PlacedOrder, error)
}

// CartService assembles sales at the counter before they become orders
type CartService struct {
	store     CartStore
	products  ProductReader
	customers CustomerReader
	orders    OrderPlacer
	now       func() time.Time
}

// NewCartService creates a new cart service
func NewCartService(store CartStore, products ProductReader, customers CustomerReader, orders OrderPlacer) *CartService {
	return &CartService{
		store:     store,
		products:  products,
		customers: customers,
		orders:    orders,
		now:       time.Now,
	}
}

// Create opens an empty cart
func (s *CartService) Create(ctx context.Context) (*domain.Cart, error) {
	return s.store.Create(ctx)
}

// Get returns a cart with its total
func (s *CartService) Get(ctx context.Context, id string) (*domain.CartView, error) {
	cart, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	view := domain.NewCartView(cart)
	return &view, nil
}

// AddItem prices a product with its discount and adds it to the cart. The
// quantity in the cart for a product may not exceed its current stock.
func (s *CartService) AddItem(ctx context.Context, cartID string, line *domain.OrderLineInput) (*domain.CartView, error) {
	product, err := s.products.GetByID(ctx, line.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.Active {
		return nil, apperrors.Unprocessable("product is not for sale")
	}

	discount := decimal.Zero
	if line.DiscountPercent != nil {
		discount = *line.DiscountPercent
	}
	unit := money.DiscountedUnitPrice(product.SalePrice, &discount)

	cart, err := s.store.Update(ctx, cartID, func(c *domain.Cart) error {
		inCart := 0
		for _, item := range c.Items {
			if item.ProductID == product.ID {
				inCart += item.Quantity
			}
		}
		if inCart+line.Quantity > product.StockCurrent {
			return apperrors.InsufficientStock(max(product.StockCurrent-inCart, 0)).
				WithDetail("productId", strconv.FormatInt(product.ID, 10))
		}

		c.Items = append(c.Items, domain.CartItem{
			ProductID:       product.ID,
			Description:     product.Description,
			Quantity:        line.Quantity,
			UnitPrice:       unit,
			Subtotal:        money.DiscountedLineTotal(product.SalePrice, &discount, line.Quantity),
			DiscountPercent: discount,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	view := domain.NewCartView(cart)
	return &view, nil
}

// Clear removes every item of the cart
func (s *CartService) Clear(ctx context.Context, cartID string) (*domain.CartView, error) {
	cart, err := s.store.Update(ctx, cartID, func(c *domain.Cart) error {
		c.Items = []domain.CartItem{}
		return nil
	})
	if err != nil {
		return nil, err
	}
	view := domain.NewCartView(cart)
	return &view, nil
}

// Quote builds the quote of a cart for a customer
func (s *CartService) Quote(ctx context.Context, cartID string, customerID int64) (*domain.Quote, error) {
	cart, err := s.store.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, apperrors.Unprocessable("cart is empty")
	}

	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	return &domain.Quote{
		CartID:   cart.ID,
		Customer: customer,
		IssuedAt: s.now(),
		Items:    cart.Items,
		Total:    cart.Total(),
	}, nil
}

// Checkout places an order with the cart's items and deletes the cart.
// Prices and stock are checked again when the order is placed.
func (s *CartService) Checkout(ctx context.Context, cartID string, customerID int64, method domain.PaymentMethod) (*domain.PlacedOrder, error) {
	cart, err := s.store.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, apperrors.Unprocessable("cart is empty")
	}

	placed, err := s.orders.Place(ctx, &domain.OrderInput{
		CustomerID:    customerID,
		PaymentMethod: method,
		Items:         cart.Lines(),
	})
	if err != nil {
		return nil, err
	}

	if err := s.store.Delete(ctx, cartID); err != nil {
		logger.Warn("failed to delete checked out cart",
			zap.String("cart_id", cartID),
			zap.Error(err),
		)
	}
	return placed, nil
}

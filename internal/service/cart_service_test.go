package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/motopecasjacare/erp/internal/domain"
	apperrors "github.com/motopecasjacare/erp/internal/pkg/errors"
)

type cartServiceMocks struct {
	store     *MockCartStore
	products  *MockProductRepository
	customers *MockCustomerRepository
	orders    *MockOrderPlacer
}

func newTestCartService() (*CartService, *cartServiceMocks) {
	m := &cartServiceMocks{
		store:     new(MockCartStore),
		products:  new(MockProductRepository),
		customers: new(MockCustomerRepository),
		orders:    new(MockOrderPlacer),
	}
	svc := NewCartService(m.store, m.products, m.customers, m.orders)
	svc.now = clock
	return svc, m
}

func cartWith(items ...domain.CartItem) *domain.Cart {
	return &domain.Cart{ID: "c1", Items: items}
}

func TestCartService_AddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("prices the item with its discount", func(t *testing.T) {
		svc, m := newTestCartService()
		m.products.On("GetByID", ctx, int64(1)).Return(pastilha(), nil)
		m.store.On("Update", ctx, "c1").Return(cartWith(), nil)

		view, err := svc.AddItem(ctx, "c1", &domain.OrderLineInput{ProductID: 1, Quantity: 3, DiscountPercent: decPtr("5")})

		require.NoError(t, err)
		require.Len(t, view.Items, 1)
		item := view.Items[0]
		assert.Equal(t, "34.11", item.UnitPrice.StringFixed(2))
		// 34.105 x 3, rounded once
		assert.Equal(t, "102.32", item.Subtotal.StringFixed(2))
		assert.Equal(t, "5", item.DiscountPercent.String())
		assert.Equal(t, "102.32", view.Total.StringFixed(2))
	})

	t.Run("treats a missing discount as zero", func(t *testing.T) {
		svc, m := newTestCartService()
		m.products.On("GetByID", ctx, int64(1)).Return(pastilha(), nil)
		m.store.On("Update", ctx, "c1").Return(cartWith(), nil)

		view, err := svc.AddItem(ctx, "c1", &domain.OrderLineInput{ProductID: 1, Quantity: 1})

		require.NoError(t, err)
		assert.Equal(t, "35.90", view.Items[0].UnitPrice.StringFixed(2))
		assert.True(t, view.Items[0].DiscountPercent.IsZero())
	})

	t.Run("counts what is already in the cart against stock", func(t *testing.T) {
		svc, m := newTestCartService()
		m.products.On("GetByID", ctx, int64(2)).Return(oleo(), nil)
		m.store.On("Update", ctx, "c1").Return(cartWith(domain.CartItem{ProductID: 2, Quantity: 2}), nil)

		_, err := svc.AddItem(ctx, "c1", &domain.OrderLineInput{ProductID: 2, Quantity: 2})

		require.True(t, apperrors.IsInsufficientStock(err))
		appErr := apperrors.GetAppError(err)
		assert.Equal(t, "1", appErr.Details["available"])
		assert.Equal(t, "2", appErr.Details["productId"])
	})

	t.Run("rejects a quantity above stock", func(t *testing.T) {
		svc, m := newTestCartService()
		m.products.On("GetByID", ctx, int64(2)).Return(oleo(), nil)
		m.store.On("Update", ctx, "c1").Return(cartWith(), nil)

		_, err := svc.AddItem(ctx, "c1", &domain.OrderLineInput{ProductID: 2, Quantity: 4})

		require.True(t, apperrors.IsInsufficientStock(err))
		require.NotNil(t, apperrors.GetAppError(err))
		assert.Equal(t, "insufficient stock: 3 available", apperrors.GetAppError(err).Message)
	})

	t.Run("rejects a product that is not for sale", func(t *testing.T) {
		svc, m := newTestCartService()
		inactive := pastilha()
		inactive.Active = false
		m.products.On("GetByID", ctx, int64(1)).Return(inactive, nil)

		_, err := svc.AddItem(ctx, "c1", &domain.OrderLineInput{ProductID: 1, Quantity: 1})

		assert.True(t, apperrors.IsUnprocessable(err))
		m.store.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("reports an expired cart", func(t *testing.T) {
		svc, m := newTestCartService()
		m.products.On("GetByID", ctx, int64(1)).Return(pastilha(), nil)
		m.store.On("Update", ctx, "gone").Return(nil, apperrors.NotFound("cart"))

		_, err := svc.AddItem(ctx, "gone", &domain.OrderLineInput{ProductID: 1, Quantity: 1})

		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestCartService_Clear(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestCartService()
	m.store.On("Update", ctx, "c1").Return(cartWith(domain.CartItem{ProductID: 1, Quantity: 1, Subtotal: dec("10")}), nil)

	view, err := svc.Clear(ctx, "c1")

	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.True(t, view.Total.IsZero())
}

func TestCartService_Quote(t *testing.T) {
	ctx := context.Background()

	t.Run("builds a quote for the customer", func(t *testing.T) {
		svc, m := newTestCartService()
		items := []domain.CartItem{{ProductID: 1, Quantity: 2, Subtotal: dec("71.80")}}
		m.store.On("Get", ctx, "c1").Return(cartWith(items...), nil)
		m.customers.On("GetByID", ctx, int64(4)).Return(&domain.Customer{ID: 4, Name: "João"}, nil)

		quote, err := svc.Quote(ctx, "c1", 4)

		require.NoError(t, err)
		assert.Equal(t, "c1", quote.CartID)
		assert.Equal(t, "João", quote.Customer.Name)
		assert.Equal(t, fixedNow, quote.IssuedAt)
		assert.Equal(t, "71.80", quote.Total.StringFixed(2))
	})

	t.Run("rejects an empty cart", func(t *testing.T) {
		svc, m := newTestCartService()
		m.store.On("Get", ctx, "c1").Return(cartWith(), nil)

		_, err := svc.Quote(ctx, "c1", 4)

		assert.True(t, apperrors.IsUnprocessable(err))
	})
}

func TestCartService_Checkout(t *testing.T) {
	ctx := context.Background()

	t.Run("places the order and deletes the cart", func(t *testing.T) {
		svc, m := newTestCartService()
		m.store.On("Get", ctx, "c1").Return(cartWith(
			domain.CartItem{ProductID: 1, Quantity: 2, DiscountPercent: dec("0")},
			domain.CartItem{ProductID: 2, Quantity: 1, DiscountPercent: dec("10")},
		), nil)
		placed := &domain.PlacedOrder{Order: &domain.Order{ID: 30}}
		m.orders.On("Place", ctx, mock.MatchedBy(func(in *domain.OrderInput) bool {
			return in.CustomerID == 4 &&
				in.PaymentMethod == domain.PaymentMethodCash &&
				len(in.Items) == 2 &&
				in.Items[1].DiscountPercent.Equal(dec("10"))
		})).Return(placed, nil)
		m.store.On("Delete", ctx, "c1").Return(nil)

		got, err := svc.Checkout(ctx, "c1", 4, domain.PaymentMethodCash)

		require.NoError(t, err)
		assert.Equal(t, placed, got)
		m.store.AssertExpectations(t)
	})

	t.Run("keeps the cart when the order fails", func(t *testing.T) {
		svc, m := newTestCartService()
		m.store.On("Get", ctx, "c1").Return(cartWith(domain.CartItem{ProductID: 2, Quantity: 5}), nil)
		m.orders.On("Place", ctx, mock.Anything).Return(nil, apperrors.InsufficientStock(3))

		_, err := svc.Checkout(ctx, "c1", 4, domain.PaymentMethodPix)

		assert.True(t, apperrors.IsInsufficientStock(err))
		m.store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("succeeds even if the cart cannot be deleted", func(t *testing.T) {
		svc, m := newTestCartService()
		m.store.On("Get", ctx, "c1").Return(cartWith(domain.CartItem{ProductID: 1, Quantity: 1}), nil)
		m.orders.On("Place", ctx, mock.Anything).Return(&domain.PlacedOrder{Order: &domain.Order{ID: 1}}, nil)
		m.store.On("Delete", ctx, "c1").Return(errors.New("redis down"))

		_, err := svc.Checkout(ctx, "c1", 4, domain.PaymentMethodPix)

		assert.NoError(t, err)
	})

	t.Run("rejects an empty cart", func(t *testing.T) {
		svc, m := newTestCartService()
		m.store.On("Get", ctx, "c1").Return(cartWith(), nil)

		_, err := svc.Checkout(ctx, "c1", 4, domain.PaymentMethodPix)

		assert.True(t, apperrors.IsUnprocessable(err))
		m.orders.AssertNotCalled(t, "Place", mock.Anything, mock.Anything)
	})
}

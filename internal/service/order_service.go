package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/motopecasjacare/erp/internal/domain"
	apperrors "github.com/motopecasjacare/erp/internal/pkg/errors"
	"github.com/motopecasjacare/erp/internal/pkg/logger"
	"github.com/motopecasjacare/erp/internal/pkg/metrics"
	"github.com/motopecasjacare/erp/internal/pkg/money"
)

// OrderRepository defines sales order repository operations
type OrderRepository interface {
	CreateWithItems(ctx context.Context, order *domain.Order) ([]domain.StockLevel, error)
	ListSummaries(ctx context.Context, filter domain.OrderFilter) ([]domain.OrderSummary, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	TransitionPending(ctx context.Context, ids []int64, status domain.OrderStatus, restock bool) ([]int64, error)
}

// ProductReader loads single products
type ProductReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
}

// CustomerReader loads single customers
type CustomerReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
}

// ReceiptRenderer renders the receipt text of an order
type ReceiptRenderer interface {
	ReceiptText(order *domain.Order) (string, error)
}

// OrderService handles sales orders
type OrderService struct {
	orders    OrderRepository
	products  ProductReader
	customers CustomerReader
	receipts  ReceiptRenderer
	cache     Cache
	events    EventPublisher
}

// NewOrderService creates a new order service
func NewOrderService(
	orders OrderRepository,
	products ProductReader,
	customers CustomerReader,
	receipts ReceiptRenderer,
	c Cache,
	events EventPublisher,
) *OrderService {
	return &OrderService{
		orders:    orders,
		products:  products,
		customers: customers,
		receipts:  receipts,
		cache:     cacheOrNop(c),
		events:    publisherOrNop(events),
	}
}

// Place prices the requested lines at the current sale prices and stores a
// pending order, taking the quantities out of stock.
func (s *OrderService) Place(ctx context.Context, input *domain.OrderInput) (*domain.PlacedOrder, error) {
	if len(input.Items) == 0 {
		return nil, apperrors.Validation("order has no items")
	}

	customer, err := s.customers.GetByID(ctx, input.CustomerID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Unprocessable("customer does not exist")
		}
		return nil, err
	}

	order := &domain.Order{
		CustomerID:    customer.ID,
		Status:        domain.OrderStatusPending,
		PaymentMethod: input.PaymentMethod,
		Customer:      customer,
		Items:         make([]domain.OrderItem, 0, len(input.Items)),
	}

	total := decimal.Zero
	for _, line := range input.Items {
		item, err := s.priceLine(ctx, line)
		if err != nil {
			return nil, err
		}
		total = total.Add(item.Subtotal)
		order.Items = append(order.Items, *item)
	}
	order.Total = total

	levels, err := s.orders.CreateWithItems(ctx, order)
	if err != nil {
		return nil, err
	}

	invalidate(ctx, s.cache, productsNamespace)
	totalFloat, _ := order.Total.Float64()
	metrics.RecordOrderPlaced(string(order.PaymentMethod), totalFloat)

	s.events.Publish(ctx, domain.EventOrderCreated, map[string]any{
		"orderId":    order.ID,
		"customerId": order.CustomerID,
		"total":      order.Total,
	})
	for _, level := range levels {
		if level.IsLow() {
			s.events.Publish(ctx, domain.EventStockLow, level)
		}
	}

	logger.WithOrderID(order.ID).Info("order placed",
		zap.Int64("customer_id", order.CustomerID),
		zap.Int("items", len(order.Items)),
		zap.String("total", order.Total.StringFixed(money.PriceScale)),
	)
	return &domain.PlacedOrder{Order: order, StockLevels: levels}, nil
}

func (s *OrderService) priceLine(ctx context.Context, line domain.OrderLineInput) (*domain.OrderItem, error) {
	if line.Quantity <= 0 {
		return nil, apperrors.Validation("quantity must be positive").
			WithDetail("productId", fmt.Sprint(line.ProductID))
	}

	product, err := s.products.GetByID(ctx, line.ProductID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Unprocessable(fmt.Sprintf("product %d does not exist", line.ProductID))
		}
		return nil, err
	}
	if !product.Active {
		return nil, apperrors.Unprocessable(fmt.Sprintf("product %d is not for sale", line.ProductID))
	}

	discount := decimal.Zero
	if line.DiscountPercent != nil {
		discount = *line.DiscountPercent
	}
	unit := money.DiscountedUnitPrice(product.SalePrice, &discount)

	return &domain.OrderItem{
		ProductID:       product.ID,
		Description:     product.Description,
		Quantity:        line.Quantity,
		UnitPrice:       unit,
		Subtotal:        money.DiscountedLineTotal(product.SalePrice, &discount, line.Quantity),
		DiscountPercent: discount,
	}, nil
}

// List returns order summaries, oldest first
func (s *OrderService) List(ctx context.Context, filter domain.OrderFilter) ([]domain.OrderSummary, error) {
	return s.orders.ListSummaries(ctx, filter)
}

// Get returns an order with its customer and items
func (s *OrderService) Get(ctx context.Context, id int64) (*domain.Order, error) {
	return s.orders.GetByID(ctx, id)
}

// Complete marks pending orders as completed. With printReceipt the
// receipt of every completed order is rendered.
func (s *OrderService) Complete(ctx context.Context, ids []int64, printReceipt bool) (*domain.StatusChange, error) {
	change, err := s.transition(ctx, ids, domain.OrderStatusCompleted, false)
	if err != nil {
		return nil, err
	}
	if !printReceipt {
		return change, nil
	}

	for _, id := range change.Changed {
		order, err := s.orders.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		text, err := s.receipts.ReceiptText(order)
		if err != nil {
			return nil, err
		}
		change.Receipts = append(change.Receipts, domain.Receipt{OrderID: id, Text: text})
	}
	return change, nil
}

// Cancel marks pending orders as cancelled and returns their items to stock
func (s *OrderService) Cancel(ctx context.Context, ids []int64) (*domain.StatusChange, error) {
	change, err := s.transition(ctx, ids, domain.OrderStatusCancelled, true)
	if err != nil {
		return nil, err
	}
	if len(change.Changed) > 0 {
		invalidate(ctx, s.cache, productsNamespace)
	}
	return change, nil
}

func (s *OrderService) transition(ctx context.Context, ids []int64, status domain.OrderStatus, restock bool) (*domain.StatusChange, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil, apperrors.Validation("select at least one order")
	}

	changed, err := s.orders.TransitionPending(ctx, ids, status, restock)
	if err != nil {
		return nil, err
	}

	change := &domain.StatusChange{
		Status:  status,
		Changed: changed,
		Skipped: []int64{},
	}
	if change.Changed == nil {
		change.Changed = []int64{}
	}
	for _, id := range ids {
		if !slices.Contains(changed, id) {
			change.Skipped = append(change.Skipped, id)
		}
	}

	metrics.RecordOrderTransition(string(status), len(changed))
	eventType := domain.EventOrderCompleted
	if status == domain.OrderStatusCancelled {
		eventType = domain.EventOrderCancelled
	}
	for _, id := range changed {
		s.events.Publish(ctx, eventType, map[string]int64{"orderId": id})
	}

	logger.Info("orders updated",
		zap.String("status", string(status)),
		zap.Int64s("changed", change.Changed),
		zap.Int64s("skipped", change.Skipped),
	)
	return change, nil
}

// uniqueIDs sorts ids and drops duplicates and non-positive values
func uniqueIDs(ids []int64) []int64 {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id > 0 {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

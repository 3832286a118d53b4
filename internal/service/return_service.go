package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/motopecasjacare/erp/internal/domain"
	apperrors "github.com/motopecasjacare/erp/internal/pkg/errors"
	"github.com/motopecasjacare/erp/internal/pkg/logger"
	"github.com/motopecasjacare/erp/internal/pkg/metrics"
	"github.com/motopecasjacare/erp/internal/pkg/pagination"
)

// ReturnRepository defines product return operations
type ReturnRepository interface {
	ListReturnableOrders(ctx context.Context) ([]domain.ReturnableOrder, error)
	ListReturnableItems(ctx context.Context, orderID int64) ([]domain.ReturnableItem, error)
	Create(ctx context.Context, ret *domain.ProductReturn) (*domain.ReturnResult, error)
	List(ctx context.Context, page pagination.Params) ([]domain.ProductReturn, error)
}

// ReturnService handles parts brought back by customers
type ReturnService struct {
	repo   ReturnRepository
	cache  Cache
	events EventPublisher
	now    func() time.Time
}

// NewReturnService creates a new return service
func NewReturnService(repo ReturnRepository, c Cache, events EventPublisher) *ReturnService {
	return &ReturnService{
		repo:   repo,
		cache:  cacheOrNop(c),
		events: publisherOrNop(events),
		now:    time.Now,
	}
}

// Register records a return against a completed order. Parts in new
// condition go back to stock unless the caller says otherwise.
func (s *ReturnService) Register(ctx context.Context, input *domain.ReturnInput) (*domain.ReturnResult, error) {
	returnedOn, err := parseDate(input.ReturnedOn, today(s.now()))
	if err != nil {
		return nil, apperrors.Validation("invalid return date").WithDetail("returnedOn", err.Error())
	}

	restock := input.Condition == domain.ReturnConditionNew
	if input.Restock != nil {
		restock = *input.Restock
	}

	result, err := s.repo.Create(ctx, &domain.ProductReturn{
		OrderID:    input.OrderID,
		ProductID:  input.ProductID,
		Quantity:   input.Quantity,
		Condition:  input.Condition,
		Restocked:  restock,
		Reason:     strings.TrimSpace(input.Reason),
		ReturnedOn: returnedOn,
	})
	if apperrors.IsNotFound(err) {
		return nil, apperrors.Unprocessable("order does not exist").
			WithDetail("orderId", strconv.FormatInt(input.OrderID, 10))
	}
	if err != nil {
		return nil, err
	}

	if result.StockUpdated {
		invalidate(ctx, s.cache, productsNamespace)
	}
	metrics.RecordReturn(string(input.Condition), result.StockUpdated)
	s.events.Publish(ctx, domain.EventReturnRegistered, result.Return)

	logger.WithOrderID(input.OrderID).Info("return registered",
		zap.Int64("product_id", input.ProductID),
		zap.Int("quantity", input.Quantity),
		zap.String("condition", string(input.Condition)),
		zap.Bool("restocked", result.StockUpdated),
	)
	return result, nil
}

// ReturnableOrders lists completed orders
func (s *ReturnService) ReturnableOrders(ctx context.Context) ([]domain.ReturnableOrder, error) {
	return s.repo.ListReturnableOrders(ctx)
}

// ReturnableItems lists the lines of an order with the quantities already returned
func (s *ReturnService) ReturnableItems(ctx context.Context, orderID int64) ([]domain.ReturnableItem, error) {
	return s.repo.ListReturnableItems(ctx, orderID)
}

// History returns a page of returns, most recent first
func (s *ReturnService) History(ctx context.Context, page pagination.Params) (*pagination.Page[domain.ProductReturn], error) {
	page = page.Normalize()
	rows, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, err
	}
	return pagination.NewPage(rows, page), nil
}

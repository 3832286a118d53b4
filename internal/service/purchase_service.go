package service

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/motopecasjacare/erp/internal/domain"
	apperrors "github.com/motopecasjacare/erp/internal/pkg/errors"
	"github.com/motopecasjacare/erp/internal/pkg/logger"
	"github.com/motopecasjacare/erp/internal/pkg/metrics"
	"github.com/motopecasjacare/erp/internal/pkg/money"
	"github.com/motopecasjacare/erp/internal/pkg/pagination"
)

// PurchaseRepository defines stock receipt operations
type PurchaseRepository interface {
	RecordReceipt(ctx context.Context, entry *domain.StockEntry, newCost func(stock int, cost decimal.Decimal) decimal.Decimal) (*domain.PurchaseResult, error)
	List(ctx context.Context, page pagination.Params) ([]domain.PurchaseHistoryRow, error)
}

// PurchaseService handles goods received from suppliers
type PurchaseService struct {
	repo   PurchaseRepository
	cache  Cache
	events EventPublisher
	now    func() time.Time
}

// NewPurchaseService creates a new purchase service
func NewPurchaseService(repo PurchaseRepository, c Cache, events EventPublisher) *PurchaseService {
	return &PurchaseService{
		repo:   repo,
		cache:  cacheOrNop(c),
		events: publisherOrNop(events),
		now:    time.Now,
	}
}

// Receive records a stock receipt and recomputes the product's average cost.
// Missing dates default to today.
func (s *PurchaseService) Receive(ctx context.Context, input *domain.PurchaseInput) (*domain.PurchaseResult, error) {
	day := today(s.now())
	issuedOn, err := parseDate(input.IssuedOn, day)
	if err != nil {
		return nil, apperrors.Validation("invalid issue date").WithDetail("issuedOn", err.Error())
	}
	receivedOn, err := parseDate(input.ReceivedOn, day)
	if err != nil {
		return nil, apperrors.Validation("invalid receipt date").WithDetail("receivedOn", err.Error())
	}

	entry := &domain.StockEntry{
		ProductID:     input.ProductID,
		SupplierID:    input.SupplierID,
		ReceivedOn:    receivedOn,
		IssuedOn:      issuedOn,
		Quantity:      input.Quantity,
		UnitCost:      input.UnitCost,
		InvoiceNumber: strings.TrimSpace(input.InvoiceNumber),
	}

	result, err := s.repo.RecordReceipt(ctx, entry, func(stock int, cost decimal.Decimal) decimal.Decimal {
		return money.MovingAverageCost(stock, cost, entry.Quantity, entry.UnitCost)
	})
	if err != nil {
		return nil, err
	}

	invalidate(ctx, s.cache, productsNamespace)
	metrics.RecordStockReceived(entry.Quantity)
	s.events.Publish(ctx, domain.EventStockReceived, map[string]any{
		"productId": entry.ProductID,
		"quantity":  entry.Quantity,
		"newStock":  result.NewStock,
		"newCost":   result.NewCost,
	})

	logger.Info("stock received",
		zap.Int64("product_id", entry.ProductID),
		zap.Int("quantity", entry.Quantity),
		zap.Int("new_stock", result.NewStock),
		zap.String("new_cost", result.NewCost.String()),
	)
	return result, nil
}

// History returns a page of receipts, most recent first
func (s *PurchaseService) History(ctx context.Context, page pagination.Params) (*pagination.Page[domain.PurchaseHistoryRow], error) {
	page = page.Normalize()
	rows, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, err
	}
	return pagination.NewPage(rows, page), nil
}

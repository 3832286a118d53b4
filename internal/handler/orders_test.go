package handler

import (
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/motopecasjacare/erp/internal/domain"
	apperrors "github.com/motopecasjacare/erp/internal/pkg/errors"
	"github.com/motopecasjacare/erp/internal/service"
	"github.com/motopecasjacare/erp/internal/testutil"
)

func setupOrdersApp(orders *MockOrderManager, docs *MockDocuments) *fiber.App {
	h := NewOrderHandler(orders, docs)
	return newTestApp(func(app *fiber.App) {
		app.Post("/api/orders", h.Place)
		app.Get("/api/orders", h.List)
		app.Post("/api/orders/complete", h.Complete)
		app.Post("/api/orders/cancel", h.Cancel)
		app.Get("/api/orders/:id", h.Get)
		app.Get("/api/orders/:id/receipt", h.Receipt)
	})
}

func TestOrderHandler_Place(t *testing.T) {
	t.Run("requires at least one item", func(t *testing.T) {
		orders := new(MockOrderManager)

		resp := doRequest(t, setupOrdersApp(orders, nil), http.MethodPost, "/api/orders",
			map[string]any{"customerId": 7, "paymentMethod": "pix", "items": []any{}})

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, decodeBody[ErrorResponse](t, resp).Details, "items")
	})

	t.Run("insufficient stock", func(t *testing.T) {
		orders := new(MockOrderManager)
		orders.On("Place", mock.Anything, mock.Anything).Return(nil, apperrors.InsufficientStock(1))

		resp := doRequest(t, setupOrdersApp(orders, nil), http.MethodPost, "/api/orders", map[string]any{
			"customerId": 7, "paymentMethod": "pix",
			"items": []map[string]any{{"productId": 3, "quantity": 2}},
		})

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, apperrors.CodeInsufficientStock, decodeBody[ErrorResponse](t, resp).Code)
	})

	t.Run("created", func(t *testing.T) {
		orders := new(MockOrderManager)
		placed := &domain.PlacedOrder{Order: testutil.NewTestOrder()}
		orders.On("Place", mock.Anything, mock.MatchedBy(func(in *domain.OrderInput) bool {
			return in.CustomerID == 7 && len(in.Items) == 1 && in.Items[0].DiscountPercent == nil
		})).Return(placed, nil)

		resp := doRequest(t, setupOrdersApp(orders, nil), http.MethodPost, "/api/orders", map[string]any{
			"customerId": 7, "paymentMethod": "pix",
			"items": []map[string]any{{"productId": 3, "quantity": 2}},
		})

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		orders.AssertExpectations(t)
	})
}

func TestOrderHandler_List(t *testing.T) {
	t.Run("filters by status", func(t *testing.T) {
		orders := new(MockOrderManager)
		pending := domain.OrderStatusPending
		orders.On("List", mock.Anything, domain.OrderFilter{Status: &pending}).
			Return([]domain.OrderSummary{{ID: 42, CustomerName: "Oficina do Zé"}}, nil)

		resp := doRequest(t, setupOrdersApp(orders, nil), http.MethodGet, "/api/orders?status=pending", nil)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Len(t, decodeBody[[]domain.OrderSummary](t, resp), 1)
	})

	t.Run("unknown status", func(t *testing.T) {
		orders := new(MockOrderManager)

		resp := doRequest(t, setupOrdersApp(orders, nil), http.MethodGet, "/api/orders?status=shipped", nil)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestOrderHandler_Complete(t *testing.T) {
	orders := new(MockOrderManager)
	change := &domain.StatusChange{
		Status:   domain.OrderStatusCompleted,
		Changed:  []int64{42},
		Skipped:  []int64{43},
		Receipts: []domain.Receipt{{OrderID: 42, Text: "CUPOM NÃO FISCAL"}},
	}
	orders.On("Complete", mock.Anything, []int64{42, 43}, true).Return(change, nil)

	resp := doRequest(t, setupOrdersApp(orders, nil), http.MethodPost, "/api/orders/complete",
		map[string]any{"orderIds": []int64{42, 43}, "printReceipt": true})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody[domain.StatusChange](t, resp)
	assert.Equal(t, []int64{43}, body.Skipped)
	assert.Len(t, body.Receipts, 1)
}

func TestOrderHandler_Cancel(t *testing.T) {
	orders := new(MockOrderManager)

	resp := doRequest(t, setupOrdersApp(orders, nil), http.MethodPost, "/api/orders/cancel",
		map[string]any{"orderIds": []int64{0}})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	orders.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything)
}

func TestOrderHandler_Receipt(t *testing.T) {
	t.Run("text by default", func(t *testing.T) {
		orders := new(MockOrderManager)
		docs := new(MockDocuments)
		order := testutil.NewTestOrder()
		orders.On("Get", mock.Anything, int64(42)).Return(order, nil)
		docs.On("Receipt", order, service.FormatText).Return([]byte("CUPOM NÃO FISCAL"), nil)

		resp := doRequest(t, setupOrdersApp(orders, docs), http.MethodGet, "/api/orders/42/receipt", nil)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "text/plain; charset=utf-8", resp.Header.Get("Content-Type"))
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "CUPOM NÃO FISCAL", string(raw))
	})

	t.Run("pdf attachment is named after the order", func(t *testing.T) {
		orders := new(MockOrderManager)
		docs := new(MockDocuments)
		order := testutil.NewTestOrder()
		orders.On("Get", mock.Anything, int64(42)).Return(order, nil)
		docs.On("Receipt", order, service.FormatPDF).Return([]byte("%PDF-"), nil)

		resp := doRequest(t, setupOrdersApp(orders, docs), http.MethodGet, "/api/orders/42/receipt?format=pdf", nil)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Disposition"), "cupom-42.pdf")
	})

	t.Run("unknown format", func(t *testing.T) {
		orders := new(MockOrderManager)

		resp := doRequest(t, setupOrdersApp(orders, nil), http.MethodGet, "/api/orders/42/receipt?format=docx", nil)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "docx", decodeBody[ErrorResponse](t, resp).Details["format"])
	})
}

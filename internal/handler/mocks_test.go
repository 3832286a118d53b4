package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/motopecasjacare/erp/internal/domain"
	"github.com/motopecasjacare/erp/internal/pkg/pagination"
	"github.com/motopecasjacare/erp/internal/service"
	"github.com/motopecasjacare/erp/internal/testutil"
)

func newTestApp(register func(app *fiber.App)) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zap.NewNop(), false)})
	app.Use(testutil.TestUserMiddleware(testutil.NewTestUser(domain.UserRoleAdmin)))
	register(app)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// MockAuthenticator mocks the auth service
type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Login(ctx context.Context, username, password string) (*domain.AuthResult, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthResult), args.Error(1)
}

func (m *MockAuthenticator) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthenticator) ListUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockAuthenticator) CreateUser(ctx context.Context, input *domain.UserInput) (*domain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockProductManager mocks the product service
type MockProductManager struct {
	mock.Mock
}

func (m *MockProductManager) Create(ctx context.Context, input *domain.ProductInput) (*domain.Product, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductManager) UpdatePrices(ctx context.Context, id int64, input *domain.PriceUpdateInput) (*domain.Product, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductManager) Get(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductManager) ListStock(ctx context.Context) ([]domain.StockView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockView), args.Error(1)
}

func (m *MockProductManager) Search(ctx context.Context, term string) ([]domain.ProductSearchRow, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProductSearchRow), args.Error(1)
}

// MockCartManager mocks the cart service
type MockCartManager struct {
	mock.Mock
}

func (m *MockCartManager) Create(ctx context.Context) (*domain.Cart, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}

func (m *MockCartManager) Get(ctx context.Context, id string) (*domain.CartView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CartView), args.Error(1)
}

func (m *MockCartManager) AddItem(ctx context.Context, cartID string, line *domain.OrderLineInput) (*domain.CartView, error) {
	args := m.Called(ctx, cartID, line)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CartView), args.Error(1)
}

func (m *MockCartManager) Clear(ctx context.Context, cartID string) (*domain.CartView, error) {
	args := m.Called(ctx, cartID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CartView), args.Error(1)
}

func (m *MockCartManager) Quote(ctx context.Context, cartID string, customerID int64) (*domain.Quote, error) {
	args := m.Called(ctx, cartID, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quote), args.Error(1)
}

func (m *MockCartManager) Checkout(ctx context.Context, cartID string, customerID int64, method domain.PaymentMethod) (*domain.PlacedOrder, error) {
	args := m.Called(ctx, cartID, customerID, method)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlacedOrder), args.Error(1)
}

// MockDocuments mocks the document renderer
type MockDocuments struct {
	mock.Mock
}

func (m *MockDocuments) Quote(q *domain.Quote, format service.DocumentFormat) ([]byte, error) {
	args := m.Called(q, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockDocuments) Receipt(order *domain.Order, format service.DocumentFormat) ([]byte, error) {
	args := m.Called(order, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockOrderManager mocks the order service
type MockOrderManager struct {
	mock.Mock
}

func (m *MockOrderManager) Place(ctx context.Context, input *domain.OrderInput) (*domain.PlacedOrder, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlacedOrder), args.Error(1)
}

func (m *MockOrderManager) List(ctx context.Context, filter domain.OrderFilter) ([]domain.OrderSummary, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OrderSummary), args.Error(1)
}

func (m *MockOrderManager) Get(ctx context.Context, id int64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderManager) Complete(ctx context.Context, ids []int64, printReceipt bool) (*domain.StatusChange, error) {
	args := m.Called(ctx, ids, printReceipt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StatusChange), args.Error(1)
}

func (m *MockOrderManager) Cancel(ctx context.Context, ids []int64) (*domain.StatusChange, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StatusChange), args.Error(1)
}

// MockExpenseManager mocks the expense service
type MockExpenseManager struct {
	mock.Mock
}

func (m *MockExpenseManager) Create(ctx context.Context, input *domain.ExpenseInput) (*domain.Expense, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseManager) History(ctx context.Context, page pagination.Params) (*pagination.Page[domain.Expense], error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pagination.Page[domain.Expense]), args.Error(1)
}

func (m *MockExpenseManager) Pay(ctx context.Context, id int64, paidOn *string) (*domain.Expense, error) {
	args := m.Called(ctx, id, paidOn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

// MockReporter mocks the report service
type MockReporter struct {
	mock.Mock
}

func (m *MockReporter) LowStock(ctx context.Context) ([]domain.LowStockRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LowStockRow), args.Error(1)
}

func (m *MockReporter) CashFlow(ctx context.Context, from, to *string) ([]domain.CashFlowMonth, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashFlowMonth), args.Error(1)
}

func (m *MockReporter) Summary(ctx context.Context) (*domain.DashboardSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardSummary), args.Error(1)
}

func (m *MockReporter) OverdueExpenses(ctx context.Context) ([]domain.OverdueExpenseRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OverdueExpenseRow), args.Error(1)
}

// MockExportManager mocks the export service
type MockExportManager struct {
	mock.Mock
}

func (m *MockExportManager) Request(ctx context.Context, dataset domain.ExportDataset) (*domain.ExportJob, error) {
	args := m.Called(ctx, dataset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExportJob), args.Error(1)
}

func (m *MockExportManager) List(ctx context.Context, dataset string) ([]domain.ExportFile, error) {
	args := m.Called(ctx, dataset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExportFile), args.Error(1)
}

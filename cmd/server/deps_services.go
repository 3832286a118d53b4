package main

import (
	"fmt"

	"github.com/motopecasjacare/erp/internal/config"
	"github.com/motopecasjacare/erp/internal/service"
	"github.com/motopecasjacare/erp/internal/worker"
)

// Services holds all service instances
type Services struct {
	Auth     *service.AuthService
	Customer *service.CustomerService
	Supplier *service.SupplierService
	Category *service.CategoryService
	Product  *service.ProductService
	Purchase *service.PurchaseService
	Order    *service.OrderService
	Cart     *service.CartService
	Return   *service.ReturnService
	Expense  *service.ExpenseService
	Report   *service.ReportService
	Export   *service.ExportService
	Document *service.DocumentService
	Realtime *service.RealtimeService
}

// initServices initializes all services
func initServices(cfg *config.Config, dbs *Databases, repos *Repositories) (*Services, error) {
	documents, err := service.NewDocumentService(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize documents: %w", err)
	}

	svcs := &Services{
		Document: documents,
		Realtime: service.NewRealtimeService(),
	}

	svcs.Auth = service.NewAuthService(cfg, repos.User)
	svcs.Customer = service.NewCustomerService(repos.Customer)
	svcs.Supplier = service.NewSupplierService(repos.Supplier)
	svcs.Category = service.NewCategoryService(repos.Category)
	svcs.Product = service.NewProductService(repos.Product, repos.Category, repos.Supplier, repos.Cache)
	svcs.Purchase = service.NewPurchaseService(repos.Purchase, repos.Cache, svcs.Realtime)
	svcs.Order = service.NewOrderService(
		repos.Order,
		repos.Product,
		repos.Customer,
		documents,
		repos.Cache,
		svcs.Realtime,
	)
	svcs.Cart = service.NewCartService(repos.Carts, repos.Product, repos.Customer, svcs.Order)
	svcs.Return = service.NewReturnService(repos.Return, repos.Cache, svcs.Realtime)
	svcs.Expense = service.NewExpenseService(repos.Expense)
	svcs.Report = service.NewReportService(repos.Report)
	svcs.Export = service.NewExportService(
		worker.NewEnqueuer(dbs.AsynqClient, cfg.Worker.QueueLow),
		repos.Exports,
	)

	return svcs, nil
}

package main

import (
	"go.uber.org/zap"

	"github.com/motopecasjacare/erp/internal/handler"
)

// Handlers holds all HTTP handler instances
type Handlers struct {
	Health    *handler.HealthHandler
	Docs      *handler.DocsHandler
	Auth      *handler.AuthHandler
	Partners  *handler.PartnerHandler
	Products  *handler.ProductHandler
	Purchases *handler.PurchaseHandler
	Carts     *handler.CartHandler
	Orders    *handler.OrderHandler
	Returns   *handler.ReturnHandler
	Finance   *handler.FinanceHandler
	Exports   *handler.ExportHandler
	Events    *handler.EventsHandler
}

// initHandlers initializes all handlers
func initHandlers(dbs *Databases, repos *Repositories, svcs *Services, logger *zap.Logger) *Handlers {
	return &Handlers{
		Health: handler.NewHealthHandler(appVersion, map[string]handler.CheckFunc{
			"postgres": dbs.Postgres.Ping,
			"redis":    dbs.Redis.Ping,
			"minio":    repos.Exports.Ping,
		}),
		Docs:      handler.NewDocsHandler(),
		Auth:      handler.NewAuthHandler(svcs.Auth),
		Partners:  handler.NewPartnerHandler(svcs.Customer, svcs.Supplier),
		Products:  handler.NewProductHandler(svcs.Category, svcs.Product),
		Purchases: handler.NewPurchaseHandler(svcs.Purchase),
		Carts:     handler.NewCartHandler(svcs.Cart, svcs.Document),
		Orders:    handler.NewOrderHandler(svcs.Order, svcs.Document),
		Returns:   handler.NewReturnHandler(svcs.Return),
		Finance:   handler.NewFinanceHandler(svcs.Expense, svcs.Report),
		Exports:   handler.NewExportHandler(svcs.Export),
		Events:    handler.NewEventsHandler(svcs.Realtime, logger),
	}
}

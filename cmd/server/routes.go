package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/motopecasjacare/erp/internal/domain"
	"github.com/motopecasjacare/erp/internal/middleware"
)

// registerRoutes registers all HTTP routes
func registerRoutes(app *fiber.App, deps *Dependencies) {
	h := deps.Handlers

	// Platform routes (no auth required)
	app.Get("/health", h.Health.Health)
	app.Get("/livez", h.Health.Liveness)
	app.Get("/readyz", h.Health.Readiness)
	app.Get("/version", h.Health.Version)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/openapi.yaml", h.Docs.OpenAPISpec)
	app.Get("/docs", h.Docs.SwaggerUI)

	limit := func(c *fiber.Ctx) error { return c.Next() }
	if deps.Config.RateLimit.Enabled {
		limit = deps.RateLimitMiddleware.Handler()
	}

	auth := app.Group("/auth", limit)
	auth.Post("/login", h.Auth.Login)

	// JWT runs before the limiter so authenticated clients are keyed by user
	api := app.Group("/api", deps.AuthMiddleware.RequireJWT(), limit)

	api.Get("/me", h.Auth.Me)
	admin := middleware.RequireRole(domain.UserRoleAdmin)
	api.Get("/users", admin, h.Auth.ListUsers)
	api.Post("/users", admin, h.Auth.CreateUser)

	// Partners
	api.Post("/customers", h.Partners.CreateCustomer)
	api.Get("/customers", h.Partners.ListCustomers)
	api.Get("/customers/:id", h.Partners.GetCustomer)
	api.Post("/suppliers", h.Partners.CreateSupplier)
	api.Get("/suppliers", h.Partners.ListSuppliers)
	api.Get("/suppliers/:id", h.Partners.GetSupplier)

	// Catalog
	api.Post("/categories", h.Products.CreateCategory)
	api.Get("/categories", h.Products.ListCategories)
	api.Post("/products", h.Products.CreateProduct)
	api.Get("/products", h.Products.ListProducts)
	api.Get("/products/search", h.Products.SearchProducts)
	api.Get("/products/:id", h.Products.GetProduct)
	api.Patch("/products/:id/prices", h.Products.UpdatePrices)

	// Purchases
	api.Post("/purchases", h.Purchases.Receive)
	api.Get("/purchases", h.Purchases.History)

	// Carts
	api.Post("/carts", h.Carts.Create)
	api.Get("/carts/:id", h.Carts.Get)
	api.Post("/carts/:id/items", h.Carts.AddItem)
	api.Delete("/carts/:id/items", h.Carts.Clear)
	api.Get("/carts/:id/quote", h.Carts.Quote)
	api.Post("/carts/:id/checkout", h.Carts.Checkout)

	// Orders
	api.Post("/orders", h.Orders.Place)
	api.Get("/orders", h.Orders.List)
	api.Post("/orders/complete", h.Orders.Complete)
	api.Post("/orders/cancel", h.Orders.Cancel)
	api.Get("/orders/:id", h.Orders.Get)
	api.Get("/orders/:id/receipt", h.Orders.Receipt)

	// Returns
	api.Get("/returns/orders", h.Returns.ReturnableOrders)
	api.Get("/returns/orders/:id/items", h.Returns.ReturnableItems)
	api.Post("/returns", h.Returns.Register)
	api.Get("/returns", h.Returns.History)

	// Finance
	api.Post("/expenses", h.Finance.CreateExpense)
	api.Get("/expenses", h.Finance.ExpenseHistory)
	api.Post("/expenses/:id/pay", h.Finance.PayExpense)

	// Reports
	api.Get("/reports/low-stock", h.Finance.LowStock)
	api.Get("/reports/cash-flow", h.Finance.CashFlow)
	api.Get("/reports/summary", h.Finance.Summary)
	api.Get("/reports/overdue-expenses", h.Finance.OverdueExpenses)

	// Exports
	api.Post("/exports", h.Exports.Request)
	api.Get("/exports", h.Exports.List)

	// Realtime
	api.Get("/events", h.Events.Stream)
	api.Get("/events/subscribers", admin, h.Events.Subscribers)
}

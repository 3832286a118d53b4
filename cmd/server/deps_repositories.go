package main

import (
	"github.com/motopecasjacare/erp/internal/config"
	"github.com/motopecasjacare/erp/internal/repository/cache"
	"github.com/motopecasjacare/erp/internal/repository/objectstore"
	pgrepo "github.com/motopecasjacare/erp/internal/repository/postgres"
)

// Repositories holds all repository instances
type Repositories struct {
	// PostgreSQL repositories
	User     *pgrepo.UserRepository
	Customer *pgrepo.CustomerRepository
	Supplier *pgrepo.SupplierRepository
	Category *pgrepo.CategoryRepository
	Product  *pgrepo.ProductRepository
	Purchase *pgrepo.PurchaseRepository
	Order    *pgrepo.OrderRepository
	Return   *pgrepo.ReturnRepository
	Expense  *pgrepo.ExpenseRepository
	Report   *pgrepo.ReportRepository

	// Redis stores
	Cache *cache.Cache
	Carts *cache.CartStore

	// Object storage
	Exports *objectstore.ExportStore
}

// initRepositories initializes all repositories
func initRepositories(cfg *config.Config, dbs *Databases) *Repositories {
	pool := dbs.Postgres.Pool
	return &Repositories{
		User:     pgrepo.NewUserRepository(pool),
		Customer: pgrepo.NewCustomerRepository(pool),
		Supplier: pgrepo.NewSupplierRepository(pool),
		Category: pgrepo.NewCategoryRepository(pool),
		Product:  pgrepo.NewProductRepository(pool),
		Purchase: pgrepo.NewPurchaseRepository(pool),
		Order:    pgrepo.NewOrderRepository(pool),
		Return:   pgrepo.NewReturnRepository(pool),
		Expense:  pgrepo.NewExpenseRepository(pool),
		Report:   pgrepo.NewReportRepository(dbs.Reporting),

		Cache: cache.New(dbs.Redis.Client, cfg.Cache.TTL),
		Carts: cache.NewCartStore(dbs.Redis.Client, cfg.Cache.CartTTL),

		Exports: objectstore.NewExportStore(dbs.Minio, cfg.MinIO.Bucket, cfg.MinIO.URLExpiry),
	}
}

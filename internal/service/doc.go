// Package service contains the business logic layer of the ERP.
//
// Services coordinate between handlers and repositories, implementing
// the shop's rules (pricing, stock movements, order status changes,
// returns, expenses) and orchestrating calls across repositories.
//
// Services depend on repository interfaces defined in this package,
// following the dependency inversion principle.
//
// # Architecture
//
// The service layer sits between:
//   - HTTP handlers (presentation layer)
//   - Repository implementations (data access layer)
//
// Services are responsible for:
//   - Business rules and defaults (dates, discounts, restock policy)
//   - Cache invalidation after writes
//   - Domain event publishing and business metrics
//
// # Thread Safety
//
// All services are safe for concurrent use from multiple goroutines.
package service

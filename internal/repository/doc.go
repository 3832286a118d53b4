// Package repository contains data access implementations for the ERP.
//
// Repositories provide persistence operations for domain entities,
// abstracting the underlying data stores (PostgreSQL, Redis, MinIO).
//
// # Architecture
//
// Repository interfaces are defined at the service layer (consumer-defined
// interfaces). This package tree contains the concrete implementations.
//
// # Data Stores
//
//   - postgres: transactional data (catalog, partners, stock, sales,
//     returns, expenses, users) over pgx, plus read-only reports over sqlx
//   - cache: Redis-backed read cache and sales carts
//   - objectstore: CSV exports in MinIO
//
// # Thread Safety
//
// All repository implementations are safe for concurrent use.
// Connection pools are managed at the database layer.
package repository

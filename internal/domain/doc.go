// Package domain contains the business entities of the Moto Peças Jacaré ERP.
//
// This package defines:
//   - Registry entities (Customer, Supplier, Category, Product)
//   - Stock movements (StockEntry, ProductReturn)
//   - Sales (Cart, Order, OrderItem)
//   - Finance (Expense, CashFlowMonth)
//   - Enums with the Portuguese labels printed on documents
//
// Money values use shopspring/decimal. Sale amounts carry two decimal
// places; the moving-average product cost carries four.
//
// # Naming Conventions
//
// Types ending in "Input" are used for create/update operations.
// Types ending in "Row" or "View" are denormalized read models.
package domain

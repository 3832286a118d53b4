// Package handler contains the HTTP handlers of the ERP API.
//
// Handlers parse and validate requests with the dto package, call the
// services and render JSON or printable documents. Errors are returned
// unchanged and rendered by ErrorHandler, which maps *AppError values to
// their status codes.
//
// # Route Organization
//
//   - /auth/* - login (no auth required)
//   - /api/* - business routes (JWT authentication)
//   - /health, /livez, /readyz, /version, /openapi.yaml, /docs - platform
//
// All handlers are safe for concurrent use.
package handler

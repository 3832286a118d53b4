// Package errors provides application error types for the ERP API.
//
// Every error that crosses the service boundary is an *AppError carrying a
// stable code and the HTTP status the handlers answer with:
//
//   - NotFound: record does not exist (404)
//   - Validation: invalid input data (400)
//   - Unauthorized: missing or invalid credentials (401)
//   - Forbidden: role not allowed (403)
//   - Conflict: duplicate document/SKU or a state that forbids the change (409)
//   - InsufficientStock: sale or cart quantity above the stock on hand (409)
//   - Unprocessable: references to records that cannot be used (422)
//   - Internal: unexpected server error (500)
//
// # Usage
//
//	return apperrors.NotFound("product")
//	return apperrors.InsufficientStock(available)
//
//	if apperrors.IsNotFound(err) {
//	    // ...
//	}
package errors

// Package validator provides struct validation for the ERP API.
//
// This package wraps go-playground/validator to provide:
//   - Consistent validation across all handlers
//   - Human-readable error messages
//   - Structured validation error responses
//
// # Usage
//
// Use validator.Validate() directly or through dto.ParseAndValidate():
//
//	if err := validator.Validate(myStruct); err != nil {
//	    // err is a validator.ValidationErrors
//	}
//
// # Custom Validations
//
// decimal.Decimal fields are converted to float64 before validation, so
// money fields use the numeric tags: `validate:"gte=0"`.
// The validator instance is package-level and thread-safe.
package validator

package dto

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/motopecasjacare/erp/internal/pkg/errors"
	"github.com/motopecasjacare/erp/internal/validator"
)

// ParseAndValidate parses the request body into the given struct and validates it.
// A malformed body yields a bad request error; failed tags yield a validation
// error carrying one detail per field.
func ParseAndValidate(c *fiber.Ctx, v any) error {
	if err := c.BodyParser(v); err != nil {
		return apperrors.BadRequest("Invalid request body: " + err.Error())
	}
	return Validate(v)
}

// Validate runs the struct tags of v and converts failures into an AppError
func Validate(v any) error {
	err := validator.Validate(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.BadRequest(err.Error())
	}

	appErr := apperrors.Validation("Request validation failed")
	for _, fe := range fieldErrs {
		appErr.WithDetail(fe.Field, fe.Message)
	}
	return appErr
}

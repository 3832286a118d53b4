// Package testutil provides shared test utilities for the ERP API.
package testutil

import (
	"github.com/gofiber/fiber/v2"

	"github.com/motopecasjacare/erp/internal/domain"
	"github.com/motopecasjacare/erp/internal/middleware"
)

// TestUserMiddleware stores the identity of user in the request the way the
// JWT middleware does. Use it to simulate authenticated requests.
func TestUserMiddleware(user *domain.User) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(string(middleware.ContextKeyUserID), user.ID)
		c.Locals(string(middleware.ContextKeyUsername), user.Username)
		c.Locals(string(middleware.ContextKeyRole), user.Role)
		return c.Next()
	}
}

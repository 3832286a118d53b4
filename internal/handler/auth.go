package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/motopecasjacare/erp/internal/domain"
	"github.com/motopecasjacare/erp/internal/dto"
	"github.com/motopecasjacare/erp/internal/middleware"
	apperrors "github.com/motopecasjacare/erp/internal/pkg/errors"
)

// Authenticator is the part of the auth service used by AuthHandler
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*domain.AuthResult, error)
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	CreateUser(ctx context.Context, input *domain.UserInput) (*domain.User, error)
}

// AuthHandler handles login and user management
type AuthHandler struct {
	auth Authenticator
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth Authenticator) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := dto.ParseAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// Me handles GET /api/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return apperrors.Unauthorized("")
	}

	user, err := h.auth.GetUserByID(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// ListUsers handles GET /api/users
func (h *AuthHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.auth.ListUsers(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(users)
}

// CreateUser handles POST /api/users
func (h *AuthHandler) CreateUser(c *fiber.Ctx) error {
	var input domain.UserInput
	if err := dto.ParseAndValidate(c, &input); err != nil {
		return err
	}

	user, err := h.auth.CreateUser(c.UserContext(), &input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

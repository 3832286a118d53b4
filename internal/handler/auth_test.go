package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/motopecasjacare/erp/internal/domain"
	apperrors "github.com/motopecasjacare/erp/internal/pkg/errors"
	"github.com/motopecasjacare/erp/internal/testutil"
)

func setupAuthApp(auth *MockAuthenticator) *fiber.App {
	h := NewAuthHandler(auth)
	return newTestApp(func(app *fiber.App) {
		app.Post("/auth/login", h.Login)
		app.Get("/api/me", h.Me)
		app.Get("/api/users", h.ListUsers)
		app.Post("/api/users", h.CreateUser)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("returns the token", func(t *testing.T) {
		auth := new(MockAuthenticator)
		user := testutil.NewTestUser(domain.UserRoleOperator)
		expires := time.Date(2024, 5, 11, 2, 30, 0, 0, time.UTC)
		auth.On("Login", mock.Anything, "caixa", "segredo123").
			Return(&domain.AuthResult{User: user, AccessToken: "tok", ExpiresAt: expires}, nil)

		resp := doRequest(t, setupAuthApp(auth), http.MethodPost, "/auth/login",
			map[string]string{"username": "caixa", "password": "segredo123"})

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody[map[string]any](t, resp)
		assert.Equal(t, "tok", body["accessToken"])
		assert.Equal(t, "2024-05-11T02:30:00Z", body["expiresAt"])
		assert.NotContains(t, body["user"], "passwordHash")
		auth.AssertExpectations(t)
	})

	t.Run("missing password", func(t *testing.T) {
		auth := new(MockAuthenticator)

		resp := doRequest(t, setupAuthApp(auth), http.MethodPost, "/auth/login",
			map[string]string{"username": "caixa"})

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeBody[ErrorResponse](t, resp)
		assert.Contains(t, body.Details, "password")
		auth.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("wrong credentials", func(t *testing.T) {
		auth := new(MockAuthenticator)
		auth.On("Login", mock.Anything, "caixa", "errada").
			Return(nil, apperrors.Unauthorized("invalid credentials"))

		resp := doRequest(t, setupAuthApp(auth), http.MethodPost, "/auth/login",
			map[string]string{"username": "caixa", "password": "errada"})

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "invalid credentials", decodeBody[ErrorResponse](t, resp).Message)
	})
}

func TestAuthHandler_Me(t *testing.T) {
	auth := new(MockAuthenticator)
	user := testutil.NewTestUser(domain.UserRoleAdmin)
	auth.On("GetUserByID", mock.Anything, user.ID).Return(user, nil)

	resp := doRequest(t, setupAuthApp(auth), http.MethodGet, "/api/me", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody[map[string]any](t, resp)
	assert.Equal(t, "caixa", body["username"])
	assert.Equal(t, "admin", body["role"])
}

func TestAuthHandler_CreateUser(t *testing.T) {
	t.Run("creates an operator", func(t *testing.T) {
		auth := new(MockAuthenticator)
		created := &domain.User{ID: 5, Username: "balcao", Name: "Balcão", Role: domain.UserRoleOperator, Active: true}
		auth.On("CreateUser", mock.Anything, mock.MatchedBy(func(in *domain.UserInput) bool {
			return in.Username == "balcao" && in.Role == domain.UserRoleOperator
		})).Return(created, nil)

		resp := doRequest(t, setupAuthApp(auth), http.MethodPost, "/api/users", map[string]string{
			"username": "balcao", "name": "Balcão", "password": "segredo123", "role": "operator",
		})

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		auth.AssertExpectations(t)
	})

	t.Run("rejects an unknown role", func(t *testing.T) {
		auth := new(MockAuthenticator)

		resp := doRequest(t, setupAuthApp(auth), http.MethodPost, "/api/users", map[string]string{
			"username": "balcao", "name": "Balcão", "password": "segredo123", "role": "root",
		})

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, decodeBody[ErrorResponse](t, resp).Details, "role")
	})
}

package middleware

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		expected string
	}{
		{name: "generates an id when none is sent", incoming: "", expected: "generated"},
		{name: "keeps a client id", incoming: "pdv-01-000123", expected: "pdv-01-000123"},
		{name: "replaces an id with spaces", incoming: "bad id", expected: "generated"},
		{name: "replaces an oversized id", incoming: strings.Repeat("a", 65), expected: "generated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()

			var local string
			app.Use(RequestID(func() string { return "generated" }))
			app.Get("/test", func(c *fiber.Ctx) error {
				local = GetRequestID(c)
				return c.SendStatus(200)
			})

			req := httptest.NewRequest("GET", "/test", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)

			assert.Equal(t, tt.expected, resp.Header.Get(RequestIDHeader))
			assert.Equal(t, tt.expected, local)
		})
	}
}

func TestRequestIDDefaultGenerator(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())
	app.Get("/test", func(c *fiber.Ctx) error { return c.SendStatus(200) })

	resp, err := app.Test(httptest.NewRequest("GET", "/test", nil))
	require.NoError(t, err)

	// UUID format: xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx
	assert.Len(t, resp.Header.Get(RequestIDHeader), 36)
}

func TestGetRequestIDWithoutMiddleware(t *testing.T) {
	app := fiber.New()

	var local string
	app.Get("/test", func(c *fiber.Ctx) error {
		local = GetRequestID(c)
		return c.SendStatus(200)
	})

	_, err := app.Test(httptest.NewRequest("GET", "/test", nil))
	require.NoError(t, err)
	assert.Empty(t, local)
}

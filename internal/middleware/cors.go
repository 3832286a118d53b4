package middleware

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CORSConfig configures the CORS middleware
type CORSConfig struct {
	// AllowOrigins lists exact origins, "*" or wildcard subdomains such as
	// "https://*.jacare.com.br"
	AllowOrigins  []string
	AllowMethods  []string
	AllowHeaders  []string
	ExposeHeaders []string
	// MaxAge is how long, in seconds, a preflight answer may be cached
	MaxAge int
}

// DefaultCORSConfig returns the CORS settings for the API with the given
// origins.
func DefaultCORSConfig(origins []string) CORSConfig {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{
			fiber.MethodGet,
			fiber.MethodPost,
			fiber.MethodPut,
			fiber.MethodPatch,
			fiber.MethodDelete,
			fiber.MethodOptions,
		},
		AllowHeaders: []string{
			fiber.HeaderOrigin,
			fiber.HeaderContentType,
			fiber.HeaderAccept,
			fiber.HeaderAuthorization,
			RequestIDHeader,
		},
		ExposeHeaders: []string{
			RequestIDHeader,
			"X-RateLimit-Limit",
			"X-RateLimit-Remaining",
			"X-RateLimit-Reset",
			fiber.HeaderContentDisposition,
		},
		MaxAge: 86400,
	}
}

// CORS answers preflight requests and sets the CORS response headers for
// allowed origins. Requests from other origins pass through without them.
// Credentials are never allowed since the API authenticates with bearer
// tokens.
func CORS(config CORSConfig) fiber.Handler {
	allowMethods := strings.Join(config.AllowMethods, ", ")
	allowHeaders := strings.Join(config.AllowHeaders, ", ")
	exposeHeaders := strings.Join(config.ExposeHeaders, ", ")
	maxAge := strconv.Itoa(config.MaxAge)

	return func(c *fiber.Ctx) error {
		origin := c.Get(fiber.HeaderOrigin)
		if origin == "" {
			return c.Next()
		}

		allowed := matchOrigin(config.AllowOrigins, origin)
		if allowed == "" {
			return c.Next()
		}

		c.Vary(fiber.HeaderOrigin)
		c.Set(fiber.HeaderAccessControlAllowOrigin, allowed)
		if exposeHeaders != "" {
			c.Set(fiber.HeaderAccessControlExposeHeaders, exposeHeaders)
		}

		if c.Method() != fiber.MethodOptions {
			return c.Next()
		}

		c.Set(fiber.HeaderAccessControlAllowMethods, allowMethods)
		c.Set(fiber.HeaderAccessControlAllowHeaders, allowHeaders)
		if config.MaxAge > 0 {
			c.Set(fiber.HeaderAccessControlMaxAge, maxAge)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// matchOrigin returns the Access-Control-Allow-Origin value for origin, or
// "" when it is not allowed.
func matchOrigin(allowed []string, origin string) string {
	for _, o := range allowed {
		switch {
		case o == "*":
			return "*"
		case o == origin:
			return origin
		case strings.Contains(o, "://*."):
			scheme, domain, _ := strings.Cut(o, "*")
			if strings.HasPrefix(origin, scheme) && strings.HasSuffix(origin, domain) {
				return origin
			}
		}
	}
	return ""
}

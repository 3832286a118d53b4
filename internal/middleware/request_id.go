package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader carries the request id in and out
	RequestIDHeader = "X-Request-ID"
	localRequestID  = "requestID"
	// maxRequestIDLen bounds ids accepted from clients
	maxRequestIDLen = 64
)

// RequestID tags every request with an id, keeping a well-formed id sent
// by the client and generating a UUID otherwise
func RequestID(generator ...func() string) fiber.Handler {
	generate := func() string { return uuid.New().String() }
	if len(generator) > 0 && generator[0] != nil {
		generate = generator[0]
	}

	return func(c *fiber.Ctx) error {
		requestID := c.Get(RequestIDHeader)
		if !validRequestID(requestID) {
			requestID = generate()
		}

		c.Set(RequestIDHeader, requestID)
		c.Locals(localRequestID, requestID)

		return c.Next()
	}
}

// validRequestID accepts short ids made of visible ASCII characters
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}

// GetRequestID gets the request ID from context
func GetRequestID(c *fiber.Ctx) string {
	if requestID, ok := c.Locals(localRequestID).(string); ok {
		return requestID
	}
	return ""
}

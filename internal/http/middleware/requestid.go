package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader carries the correlation ID between services.
	RequestIDHeader = "X-Request-ID"
	// RequestIDLocalKey is where the ID is stashed in Fiber locals.
	RequestIDLocalKey = "request_id"
)

// RequestID tags each request with a correlation ID. An inbound
// X-Request-ID is kept as-is so upstream callers can trace their own IDs;
// otherwise a fresh UUID is minted. The ID lands in locals for the logger
// and error payloads and is echoed on the response header.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(RequestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals(RequestIDLocalKey, rid)
		c.Set(RequestIDHeader, rid)
		return c.Next()
	}
}

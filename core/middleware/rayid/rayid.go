// Package rayid provides a Fiber middleware that tags every request with a
// unique identifier, stored in the request locals and echoed in a response
// header so logs and client reports can be correlated.
package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName is the response header carrying the ray id.
const HeaderName = "X-Ray-Id"

// New creates the ray-id middleware. An incoming X-Ray-Id header is honored
// so upstream proxies can thread their own id through; otherwise a fresh
// UUID is generated.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(HeaderName)
		if rid == "" {
			rid = uuid.NewString()
		}

		c.Locals("ray_id", rid)
		c.Set(HeaderName, rid)

		return c.Next()
	}
}

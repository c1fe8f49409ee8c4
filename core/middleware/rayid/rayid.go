package rayid

import (
	"catalog-insights/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName is the response header echoing the request id.
const HeaderName = "X-Ray-ID"

// New creates a middleware that assigns every request a ray id. An incoming
// X-Ray-ID header is kept so callers can correlate their own traces.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderName)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(logger.RayIDKey, id)
		c.Set(HeaderName, id)
		return c.Next()
	}
}

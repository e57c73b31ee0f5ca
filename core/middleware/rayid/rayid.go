// Package rayid tags every request with a unique id.
package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// Header is the response header carrying the id.
	Header = "X-Ray-ID"
	// Local is the fiber locals key read by logger.WithRayID.
	Local = "ray_id"
)

// New returns a handler that reuses an incoming ray id or generates one.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(Header)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(Local, id)
		c.Set(Header, id)
		return c.Next()
	}
}

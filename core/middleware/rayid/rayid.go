// Package rayid assigns a unique RayID to every request.
package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName is the response header carrying the RayID.
const HeaderName = "X-Ray-ID"

// LocalsKey is the fiber Locals key holding the RayID.
const LocalsKey = "ray_id"

// New returns a middleware that generates a RayID for each request,
// storing it in Locals and echoing it in the response headers. An ID
// supplied by the client is preserved so upstream proxies can correlate.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(HeaderName)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals(LocalsKey, rid)
		c.Set(HeaderName, rid)
		return c.Next()
	}
}

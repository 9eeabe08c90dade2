package session

import "github.com/gofiber/fiber/v2"

// HeaderName carries the client's session identifier. One session owns one
// cart and one checkout draft.
const HeaderName = "X-Session-ID"

// DefaultID is used when the client sends no session header, matching the
// single-tab model of the storefront.
const DefaultID = "default"

// FromCtx extracts the session id for a request. Several handlers need
// this, so it lives here for reuse.
func FromCtx(c *fiber.Ctx) string {
	if id := c.Get(HeaderName); id != "" {
		return id
	}
	return DefaultID
}

package shipping

import "github.com/gofiber/fiber/v2"

// Handler exposes the shipping catalog for the checkout page.
type Handler struct {
	catalog *Catalog
}

func NewHandler(c *Catalog) *Handler {
	return &Handler{catalog: c}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/v1/shipping/methods", h.listMethods)
}

func (h *Handler) listMethods(c *fiber.Ctx) error {
	return c.JSON(h.catalog.List())
}

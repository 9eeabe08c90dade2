package order

import (
	"github.com/gofiber/fiber/v2"

	"github.com/elegantshop/storefront-backend/internal/session"
	"github.com/elegantshop/storefront-backend/internal/storage"
)

// Handler serves submitted order records. The "last" route reads the
// per-session last-order key written on submission so the confirmation
// page works without knowing an order id.
type Handler struct {
	repo  Repository
	store storage.Store
}

func NewHandler(repo Repository, store storage.Store) *Handler {
	return &Handler{repo: repo, store: store}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/v1/orders/last", h.getLastOrder)
	app.Get("/api/v1/orders/:id", h.getOrder)
}

func (h *Handler) getOrder(c *fiber.Ctx) error {
	ord, err := h.repo.GetByID(c.Params("id"))
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(ord)
}

func (h *Handler) getLastOrder(c *fiber.Ctx) error {
	raw, err := h.store.Load(LastOrderKey(session.FromCtx(c)))
	if err != nil {
		if err == storage.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "no completed order"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	c.Set("Content-Type", "application/json")
	return c.Send(raw)
}

// LastOrderKey is the storage key holding a session's most recent
// completed order.
func LastOrderKey(sessionID string) string {
	return "lastorder:" + sessionID
}

package cart

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/elegantshop/storefront-backend/internal/coupon"
	"github.com/elegantshop/storefront-backend/internal/product"
	"github.com/elegantshop/storefront-backend/internal/session"
	"github.com/elegantshop/storefront-backend/internal/shipping"
)

// Handler delegates cart operations to the cart service. This keeps
// cart-specific HTTP routing isolated.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/v1/cart", h.getCart)
	app.Post("/api/v1/cart/items", h.addItem)
	app.Patch("/api/v1/cart/items/:id", h.updateItem)
	app.Delete("/api/v1/cart/items/:id", h.removeItem)
	app.Delete("/api/v1/cart", h.clearCart)
	app.Post("/api/v1/cart/coupon", h.applyCoupon)
	app.Delete("/api/v1/cart/coupon", h.removeCoupon)
	app.Put("/api/v1/cart/shipping", h.setShipping)
}

type addItemRequest struct {
	ProductID int `json:"productID"`
	Quantity  int `json:"quantity,omitempty"`
}

type updateItemRequest struct {
	Quantity *int   `json:"quantity,omitempty"`
	Action   string `json:"action,omitempty"`
}

type couponRequest struct {
	Code string `json:"code"`
}

type shippingRequest struct {
	MethodID string `json:"methodID"`
}

type cartResponse struct {
	Items        []LineItem     `json:"items"`
	Coupon       *coupon.Coupon `json:"coupon,omitempty"`
	ShippingCost float64        `json:"shippingCost"`
	Summary      Breakdown      `json:"summary"`
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	snapshot, summary := h.service.Get(session.FromCtx(c))
	return c.JSON(cartResponse{
		Items:        snapshot.Items,
		Coupon:       snapshot.Coupon,
		ShippingCost: snapshot.ShippingCost,
		Summary:      summary,
	})
}

func (h *Handler) addItem(c *fiber.Ctx) error {
	payload := new(addItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ProductID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid productID"})
	}

	summary, err := h.service.AddItem(session.FromCtx(c), payload.ProductID, payload.Quantity)
	if err != nil {
		switch err {
		case product.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(summary)
}

func (h *Handler) updateItem(c *fiber.Ctx) error {
	itemID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid item id"})
	}
	payload := new(updateItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	sessionID := session.FromCtx(c)

	var summary Breakdown
	switch {
	case payload.Action != "":
		action := QuantityAction(payload.Action)
		if action != ActionIncrease && action != ActionDecrease {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "unknown action"})
		}
		summary, err = h.service.StepQuantity(sessionID, itemID, action)
	case payload.Quantity != nil:
		summary, err = h.service.SetQuantity(sessionID, itemID, *payload.Quantity)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "quantity or action required"})
	}

	if err != nil {
		switch err {
		case ErrItemNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "item not found"})
		case ErrQuantityLimit:
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"message": "maximum quantity reached"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(summary)
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	itemID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid item id"})
	}
	// removal is idempotent, unknown ids are fine
	return c.JSON(h.service.RemoveItem(session.FromCtx(c), itemID))
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	h.service.Clear(session.FromCtx(c))
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) applyCoupon(c *fiber.Ctx) error {
	payload := new(couponRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	applied, summary, err := h.service.ApplyCoupon(session.FromCtx(c), payload.Code)
	if err != nil {
		switch err {
		case coupon.ErrInvalidCoupon:
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"message": "invalid coupon code"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(fiber.Map{"coupon": applied, "summary": summary})
}

func (h *Handler) removeCoupon(c *fiber.Ctx) error {
	return c.JSON(h.service.RemoveCoupon(session.FromCtx(c)))
}

func (h *Handler) setShipping(c *fiber.Ctx) error {
	payload := new(shippingRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	summary, err := h.service.SetShippingMethod(session.FromCtx(c), payload.MethodID)
	if err != nil {
		switch err {
		case shipping.ErrUnknownMethod:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "unknown shipping method"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(summary)
}

package checkout

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/elegantshop/storefront-backend/internal/session"
	"github.com/elegantshop/storefront-backend/internal/shipping"
)

// Handler delegates checkout flow operations to the stage controller.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/v1/checkout", h.getState)
	app.Post("/api/v1/checkout", h.start)
	app.Post("/api/v1/checkout/advance", h.advance)
	app.Post("/api/v1/checkout/back", h.retreat)
	app.Post("/api/v1/checkout/submit", h.submit)
}

type advanceRequest struct {
	Target int `json:"target"`
	AdvanceInput
}

type retreatRequest struct {
	Target int `json:"target"`
}

func (h *Handler) getState(c *fiber.Ctx) error {
	return c.JSON(h.service.Get(session.FromCtx(c)))
}

func (h *Handler) start(c *fiber.Ctx) error {
	st, err := h.service.Start(session.FromCtx(c))
	if err != nil {
		switch err {
		case ErrEmptyCart:
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "your cart is empty"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(st)
}

func (h *Handler) advance(c *fiber.Ctx) error {
	payload := new(advanceRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	st, err := h.service.Advance(session.FromCtx(c), Stage(payload.Target), payload.AdvanceInput)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(st)
}

func (h *Handler) retreat(c *fiber.Ctx) error {
	payload := new(retreatRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	st, err := h.service.Retreat(session.FromCtx(c), Stage(payload.Target))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(st)
}

func (h *Handler) submit(c *fiber.Ctx) error {
	ord, err := h.service.Submit(session.FromCtx(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ord)
}

// respondError maps controller errors onto HTTP statuses. Validation
// failures carry the stage, reason and offending field so the client can
// render the precise message.
func respondError(c *fiber.Ctx, err error) error {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": verr.Error(),
			"stage":   verr.Stage,
			"reason":  verr.Reason,
			"field":   verr.Field,
		})
	}
	switch err {
	case ErrEmptyCart:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "your cart is empty"})
	case ErrNotAtReview:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "complete the review stage before submitting"})
	case ErrInvalidStage:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "stage out of range"})
	case shipping.ErrUnknownMethod:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "unknown shipping method"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}

package checkout

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/storefront-labs/shop-backend/internal/inventory"
)

type Handler struct {
	orchestrator *Orchestrator
}

func NewHandler(orchestrator *Orchestrator) *Handler {
	return &Handler{orchestrator: orchestrator}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Post("/api/v1/purchases/:owner", h.checkout)
}

func (h *Handler) checkout(c *fiber.Ctx) error {
	p, err := h.orchestrator.Checkout(c.UserContext(), c.Params("owner"))
	if err != nil {
		return h.checkoutError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "purchase successfully completed",
		"uid":         p.UID,
		"owner":       p.Owner,
		"products":    p.Products,
		"totalAmount": p.TotalAmount,
	})
}

func (h *Handler) checkoutError(c *fiber.Ctx, err error) error {
	var notFound *ProductNotFoundError
	var unavailable *ProductUnavailableError
	var insufficient *inventory.InsufficientStockError

	switch {
	case errors.Is(err, ErrCartNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "cart not found for this owner"})
	case errors.Is(err, ErrEmptyCart):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "cart is empty"})
	case errors.As(err, &notFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": notFound.Error()})
	case errors.As(err, &unavailable):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": unavailable.Error()})
	case errors.As(err, &insufficient):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": insufficient.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}

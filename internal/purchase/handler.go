package purchase

import "github.com/gofiber/fiber/v2"

// Handler exposes the read-only reporting surface over purchases. Creating a
// purchase goes through the checkout handler.
type Handler struct {
	recorder *Recorder
}

func NewHandler(recorder *Recorder) *Handler {
	return &Handler{recorder: recorder}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/v1/purchases/:owner", h.listByOwner)
	app.Get("/api/v1/purchases", h.listByProduct)
}

func (h *Handler) listByOwner(c *fiber.Ctx) error {
	purchases, err := h.recorder.ListByOwner(c.Params("owner"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"purchases": purchases})
}

func (h *Handler) listByProduct(c *fiber.Ctx) error {
	productID := c.Query("product")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "product query parameter is required"})
	}
	purchases, err := h.recorder.ListByProduct(productID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"purchases": purchases})
}

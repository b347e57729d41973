package provisioning

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/storefront-labs/shop-backend/internal/user"
)

// Handler exposes registration, the entry point of the provisioning saga.
type Handler struct {
	saga *Saga
}

func NewHandler(saga *Saga) *Handler {
	return &Handler{saga: saga}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Post("/api/v1/register", h.register)
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) register(c *fiber.Ctx) error {
	payload := new(registerRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	u, cart, err := h.saga.Register(c.UserContext(), payload.Name, payload.Email, payload.Password)
	if err != nil {
		return h.registerError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"uid":   u.ID,
		"name":  u.Name,
		"email": u.Email,
		"cart":  cart,
	})
}

func (h *Handler) registerError(c *fiber.Ctx, err error) error {
	var provisioning *ProvisioningError
	var remote *RemoteError

	switch {
	case errors.Is(err, user.ErrEmailExists):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "email is already in use"})
	case errors.Is(err, user.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "name, valid email and a password of at least 6 characters are required"})
	case errors.As(err, &provisioning):
		if errors.As(err, &remote) {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": remote.Message})
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": "error creating cart"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}

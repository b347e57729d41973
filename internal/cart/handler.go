package cart

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ProvisionVerifier checks the short-lived credential minted by the user
// service before a cart may be created.
type ProvisionVerifier interface {
	VerifyProvisionToken(token string) (owner string, err error)
}

type Handler struct {
	service  *Service
	verifier ProvisionVerifier
}

func NewHandler(service *Service, verifier ProvisionVerifier) *Handler {
	return &Handler{service: service, verifier: verifier}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Post("/api/v1/carts/:owner", h.create)
	app.Get("/api/v1/carts/:owner", h.get)
	app.Post("/api/v1/carts/:owner/products", h.addProduct)
	app.Delete("/api/v1/carts/:owner/products/:productId", h.removeProduct)
	app.Delete("/api/v1/carts/:owner/products", h.clear)
}

// create is the remote end of the provisioning saga. It is idempotent per
// owner: a repeat call fails with a distinguishable 409 so a retried saga can
// classify "already provisioned" as success.
func (h *Handler) create(c *fiber.Ctx) error {
	owner := c.Params("owner")

	token := bearerToken(c)
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "missing provisioning token"})
	}
	subject, err := h.verifier.VerifyProvisionToken(token)
	if err != nil || subject != owner {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "invalid provisioning token"})
	}

	created, err := h.service.Create(owner)
	if err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "cart already exists for this owner"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "cart created successfully",
		"cart":    created,
	})
}

func (h *Handler) get(c *fiber.Ctx) error {
	found, err := h.service.Get(c.Params("owner"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "cart not found for this owner"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"cart": found})
}

type addProductRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (h *Handler) addProduct(c *fiber.Ctx) error {
	payload := new(addProductRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "productId is required"})
	}

	updated, err := h.service.AddItem(c.Params("owner"), payload.ProductID, payload.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "cart not found for this owner"})
		case errors.Is(err, ErrProductUnavailable):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "product is unavailable and cannot be added to the cart"})
		case errors.Is(err, ErrInvalidQuantity):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "quantity must be at least 1"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(fiber.Map{"message": "product added to cart successfully", "cart": updated})
}

func (h *Handler) removeProduct(c *fiber.Ctx) error {
	updated, err := h.service.RemoveOneUnit(c.Params("owner"), c.Params("productId"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "cart not found for this owner"})
		case errors.Is(err, ErrProductNotInCart):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found in this cart"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(fiber.Map{"message": "product removed successfully", "cart": updated})
}

func (h *Handler) clear(c *fiber.Ctx) error {
	updated, err := h.service.Clear(c.Params("owner"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "cart not found for this owner"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "all products removed successfully", "cart": updated})
}

func bearerToken(c *fiber.Ctx) string {
	auth := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(auth, "Bearer ")
}

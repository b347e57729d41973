package product

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/storefront-labs/shop-backend/internal/inventory"
)

// Adjuster is the slice of the inventory ledger the product API needs for the
// increment/decrement endpoints.
type Adjuster interface {
	TryDecrement(productID string, amount int) (int, error)
	Increment(productID string, amount int) (int, error)
}

type Handler struct {
	service *Service
	ledger  Adjuster
}

func NewHandler(service *Service, ledger Adjuster) *Handler {
	return &Handler{service: service, ledger: ledger}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Post("/api/v1/products", h.create)
	app.Get("/api/v1/products", h.list)
	app.Get("/api/v1/products/:uid", h.get)
	app.Put("/api/v1/products/:uid", h.update)
	app.Delete("/api/v1/products/:uid", h.softDelete)
	app.Patch("/api/v1/products/:uid/increment", h.increment)
	app.Patch("/api/v1/products/:uid/decrement", h.decrement)
}

type createRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

func (h *Handler) create(c *fiber.Ctx) error {
	payload := new(createRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	created, err := h.service.Create(payload.Name, payload.Description, payload.Price, payload.Quantity)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid product payload"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) list(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)

	products, total, err := h.service.List(page, limit)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "page and limit must be positive"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{
		"page":  page,
		"limit": limit,
		"total": total,
		"data":  products,
	})
}

func (h *Handler) get(c *fiber.Ctx) error {
	p, err := h.service.GetByUID(c.Params("uid"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(p)
}

func (h *Handler) update(c *fiber.Ctx) error {
	payload := new(Update)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	updated, err := h.service.Update(c.Params("uid"), *payload)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		case errors.Is(err, ErrDeleted):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "cannot edit a deleted product"})
		case errors.Is(err, ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid product payload"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(updated)
}

func (h *Handler) softDelete(c *fiber.Ctx) error {
	err := h.service.SoftDelete(c.Params("uid"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		case errors.Is(err, ErrDeleted):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "cannot delete a deleted product"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(fiber.Map{"message": "product soft deleted successfully"})
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) increment(c *fiber.Ctx) error {
	payload := new(quantityRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Quantity < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "quantity must be at least 1"})
	}

	newQty, err := h.ledger.Increment(c.Params("uid"), payload.Quantity)
	if err != nil {
		return h.ledgerError(c, err)
	}
	return c.JSON(fiber.Map{"message": "product quantity incremented successfully", "quantity": newQty})
}

func (h *Handler) decrement(c *fiber.Ctx) error {
	payload := new(quantityRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Quantity < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "quantity must be at least 1"})
	}

	newQty, err := h.ledger.TryDecrement(c.Params("uid"), payload.Quantity)
	if err != nil {
		return h.ledgerError(c, err)
	}
	return c.JSON(fiber.Map{"message": "product quantity decremented successfully", "quantity": newQty})
}

func (h *Handler) ledgerError(c *fiber.Ctx, err error) error {
	var insufficient *inventory.InsufficientStockError
	switch {
	case errors.Is(err, inventory.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	case errors.Is(err, inventory.ErrDeleted):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "cannot change quantity of a deleted product"})
	case errors.As(err, &insufficient):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": insufficient.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}

package user

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// User is an account record. DeletedAt doubles as the provisioning saga's
// compensation marker: a user whose cart could not be created is soft-deleted
// rather than left active without a cart.
type User struct {
	ID        string     `json:"uid"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Password  string     `json:"-"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

func (u User) Deleted() bool {
	return u.DeletedAt != nil
}

// GetUserIDFromCtx extracts the authenticated user id placed in the request
// context by the JWT middleware.
func GetUserIDFromCtx(c *fiber.Ctx) (string, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return "", fiber.ErrUnauthorized
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fiber.ErrUnauthorized
	}
	id, ok := claims["user_id"].(string)
	if !ok || id == "" {
		return "", fiber.ErrUnauthorized
	}
	return id, nil
}

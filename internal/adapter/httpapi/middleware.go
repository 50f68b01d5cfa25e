package httpapi

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const userLocalsKey = "userID"

// AuthMiddleware validates the bearer token and resolves the caller identity
// from the X-User-ID header set by the session layer in front of this service.
// Session handling itself is delegated; this service only needs a trusted
// caller id to scope every operation.
func AuthMiddleware(validToken string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || token != validToken {
			return c.Status(fiber.StatusUnauthorized).JSON(errorBody("unauthorized", "missing or invalid token"))
		}

		userID, err := uuid.Parse(c.Get("X-User-ID"))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(errorBody("unauthorized", "missing or invalid X-User-ID header"))
		}

		c.Locals(userLocalsKey, userID)
		return c.Next()
	}
}

func currentUserID(c *fiber.Ctx) uuid.UUID {
	return c.Locals(userLocalsKey).(uuid.UUID)
}

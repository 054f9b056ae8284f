package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/interview-coach/internal/services"
)

const userIDKey = "user_id"

// TokenValidator is satisfied by services.AuthService.
type TokenValidator interface {
	ValidateToken(tokenString string) (uuid.UUID, error)
}

// RequireAuth accepts "Authorization: Bearer <token>" and stores the user id
// in the request locals.
func RequireAuth(tokens TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		parts := strings.Fields(c.Get(fiber.HeaderAuthorization))
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		userID, err := tokens.ValidateToken(parts[1])
		if err != nil && !errors.Is(err, services.ErrInvalidToken) {
			return respondError(c, err)
		}
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": services.ErrInvalidToken.Error(),
			})
		}

		c.Locals(userIDKey, userID)
		return c.Next()
	}
}

// currentUser returns the id stored by RequireAuth.
func currentUser(c *fiber.Ctx) uuid.UUID {
	if id, ok := c.Locals(userIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"gift-exchange-system/utils"
)

// UserContextMiddleware resolves the Bearer session token into request
// locals. Handlers downstream read the identity with UserID(c).
func UserContextMiddleware(tokens *utils.TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing Authorization header",
			})
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := tokens.Parse(token)
		if err != nil {
			msg := "invalid session token"
			if errors.Is(err, utils.ErrTokenExpired) {
				msg = "session token expired"
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": msg})
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("username", claims.Username)
		return c.Next()
	}
}

// UserID reads the authenticated user id set by UserContextMiddleware.
func UserID(c *fiber.Ctx) string {
	if id, ok := c.Locals("user_id").(string); ok {
		return id
	}
	return ""
}

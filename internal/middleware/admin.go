package middleware

import (
	"github.com/campuspulse/mental-pulse-backend/internal/authn"
	"github.com/campuspulse/mental-pulse-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// AdminRequired rejects non-admin callers. Runs after ActiveUserRequired, so
// authorization failure here is 403, never 401.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := authn.CurrentUser(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		if !user.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Admin access required",
			})
		}

		return c.Next()
	}
}

package middleware

import (
	"sportify-backend/internal/models"
	"sportify-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// RequireRole lets the request through only when the caller holds one of roles.
// It must run after JWTMiddleware.
func RequireRole(roles ...models.Role) fiber.Handler {
	allowed := make(map[models.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *fiber.Ctx) error {
		identity, err := GetIdentity(c)
		if err != nil {
			return utils.Error(c, "No token provided", fiber.StatusUnauthorized)
		}
		if !allowed[identity.Role] {
			return utils.Error(c, "Access denied for role "+string(identity.Role), fiber.StatusForbidden)
		}
		return c.Next()
	}
}

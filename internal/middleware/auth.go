package middleware

import (
	"strings"

	"sportify-backend/internal/config"
	"sportify-backend/internal/models"
	"sportify-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	tokenKey    = "token"
	identityKey = "identity"
)

// JWTMiddleware verifies the bearer token and stores the caller's Identity
// in the request locals.
func JWTMiddleware(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:    []byte(cfg.JWTSecret),
		SigningMethod: "HS256",
		ContextKey:    tokenKey,
		ErrorHandler:  jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals(tokenKey).(*jwt.Token)
			if !ok {
				return utils.Error(c, "Invalid or expired token", fiber.StatusUnauthorized)
			}
			identity, err := identityFromClaims(token.Claims)
			if err != nil {
				return utils.Error(c, "Invalid or expired token", fiber.StatusUnauthorized)
			}
			c.Locals(identityKey, identity)
			return c.Next()
		},
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	auth := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if auth == "" || strings.EqualFold(auth, "Bearer") {
		return utils.Error(c, "No token provided", fiber.StatusUnauthorized)
	}
	return utils.Error(c, "Invalid or expired token", fiber.StatusUnauthorized)
}

func identityFromClaims(claims jwt.Claims) (models.Identity, error) {
	mapClaims, ok := claims.(jwt.MapClaims)
	if !ok {
		return models.Identity{}, fiber.ErrUnauthorized
	}

	rawID, _ := mapClaims["user_id"].(string)
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return models.Identity{}, err
	}

	role := models.Role(stringClaim(mapClaims, "role"))
	if !role.Valid() {
		return models.Identity{}, fiber.ErrUnauthorized
	}

	return models.Identity{
		UserID: userID,
		Email:  stringClaim(mapClaims, "email"),
		Role:   role,
	}, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	v, _ := claims[key].(string)
	return v
}

// GetIdentity returns the caller placed in locals by JWTMiddleware.
func GetIdentity(c *fiber.Ctx) (models.Identity, error) {
	identity, ok := c.Locals(identityKey).(models.Identity)
	if !ok || identity.UserID == uuid.Nil {
		return models.Identity{}, fiber.NewError(fiber.StatusUnauthorized, "User not authenticated")
	}
	return identity, nil
}

package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/lizsears/contentcal/internal/logger"
)

// UserIDKey is the Locals key the auth middleware stores the user id under.
const UserIDKey = "userID"

// KeyResolver maps an API key to a user id. An empty user id means the key is
// unknown.
type KeyResolver func(c *fiber.Ctx, key string) (string, error)

// RequireUser authenticates requests via the X-API-Key header (a "Bearer "
// prefix is tolerated) and stores the resolved user id in the context.
// Unauthenticated calls get 401.
func RequireUser(resolve KeyResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Get("X-API-Key")
		if key == "" {
			key = strings.TrimPrefix(c.Get("Authorization"), "Bearer ")
		}
		if key == "" {
			return unauthorized(c, "missing API key")
		}

		userID, err := resolve(c, key)
		if err != nil {
			logger.Error().Err(err).Str("path", c.Path()).Msg("API key lookup failed")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Internal server error",
			})
		}
		if userID == "" {
			return unauthorized(c, "invalid API key")
		}

		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}

// UserID returns the authenticated user id stored by RequireUser.
func UserID(c *fiber.Ctx) string {
	if id, ok := c.Locals(UserIDKey).(string); ok {
		return id
	}
	return ""
}

func unauthorized(c *fiber.Ctx, reason string) error {
	logger.Warn().
		Str("method", c.Method()).
		Str("path", c.Path()).
		Str("ip", c.IP()).
		Str("reason", reason).
		Msg("Authentication failed")

	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Unauthorized",
	})
}

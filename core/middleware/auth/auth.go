package auth

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Header names read by the middleware.
const (
	APIKeyHeader = "X-API-Key"
	UserIDHeader = "X-User-ID"
)

// UserIDKey is the locals key holding the authenticated user id.
const UserIDKey = "user_id"

// Config holds the middleware settings.
type Config struct {
	// ApiKey is the shared secret. Empty disables the key check.
	ApiKey string
	// Skip lists path prefixes served without authentication.
	Skip []string
}

// New returns a middleware that checks the API key and records the caller's
// user id. Users are authenticated upstream; the gateway forwards their id.
func New(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		for _, prefix := range cfg.Skip {
			if strings.HasPrefix(c.Path(), prefix) {
				return c.Next()
			}
		}

		if cfg.ApiKey != "" {
			key := c.Get(APIKeyHeader)
			if subtle.ConstantTimeCompare([]byte(key), []byte(cfg.ApiKey)) != 1 {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or missing API key"})
			}
		}

		if uid := c.Get(UserIDHeader); uid != "" {
			c.Locals(UserIDKey, uid)
		}
		return c.Next()
	}
}

// UserID returns the user id stored by New, or "".
func UserID(c *fiber.Ctx) string {
	uid, _ := c.Locals(UserIDKey).(string)
	return uid
}

// RequireUser rejects requests without a user id.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if UserID(c) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing user id"})
		}
		return c.Next()
	}
}

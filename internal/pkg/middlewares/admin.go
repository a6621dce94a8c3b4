package middlewares

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"

	"github.com/sevenkilo/tracker-backend/internal/app/appconfig"
	"github.com/sevenkilo/tracker-backend/internal/pkg/apperr"
)

// AdminKeyAuth guards the admin surface with the configured shared key,
// supplied as a bearer token. An empty configured key disables the surface
// entirely rather than leaving it open.
func AdminKeyAuth(conf *appconfig.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if conf.AdminKey == "" {
			return apperr.ErrUnauthorized.Msg("admin surface is disabled: no admin key configured")
		}

		token := c.Get(fiber.HeaderAuthorization)
		const prefix = "Bearer "
		if len(token) <= len(prefix) || token[:len(prefix)] != prefix {
			return apperr.ErrUnauthorized
		}
		if subtle.ConstantTimeCompare([]byte(token[len(prefix):]), []byte(conf.AdminKey)) != 1 {
			return apperr.ErrUnauthorized
		}
		return c.Next()
	}
}

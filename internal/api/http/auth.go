package httpapi

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/keyauth"
)

// NewAuthMiddleware gates the API behind the client's shareable token,
// passed in an `apikey` header. Preflight and health checks stay open, and
// the gate runs before body parsing so a bad token is a 401 even when the
// body is also bad.
func NewAuthMiddleware(token string) fiber.Handler {
	return keyauth.New(keyauth.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions || c.Path() == "/health"
		},
		KeyLookup: "header:apikey",
		Validator: func(c *fiber.Ctx, key string) (bool, error) {
			if subtle.ConstantTimeCompare([]byte(key), []byte(token)) == 1 {
				return true, nil
			}
			return false, keyauth.ErrMissingOrMalformedAPIKey
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return respondError(c, fiber.StatusUnauthorized, "missing or invalid api key", "")
		},
	})
}

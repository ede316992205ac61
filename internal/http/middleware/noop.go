package middleware

import "github.com/gofiber/fiber/v2"

// Noop simply calls the next handler. It stands in for a limiter when rate limiting
// is switched off.
func Noop() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Next()
	}
}

package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Logger emits one entry per request with request_id, method, path, status and
// latency_ms. Server errors log at error, client errors at warn.
func Logger(log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := statusOf(c, err)
		entry := log.WithFields(logrus.Fields{
			"request_id": RequestIDFrom(c),
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     status,
			"latency_ms": float64(time.Since(start).Microseconds()) / 1000,
		})

		switch {
		case status >= fiber.StatusInternalServerError:
			if err != nil {
				entry = entry.WithField("error", err.Error())
			}
			entry.Error("request failed")
		case status >= fiber.StatusBadRequest:
			entry.Warn("request rejected")
		default:
			entry.Info("request completed")
		}

		return err
	}
}

// statusOf reports the status the error handler will answer with when the chain
// returned an error, and the written status otherwise.
func statusOf(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}

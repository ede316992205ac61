package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"projectapi/internal/http/middleware"
	"projectapi/internal/http/response"
	"projectapi/internal/service"
)

const msgInternalError = "Internal Server Error"

// writeError writes the standard envelope with a null data field. message must be safe
// to show to callers.
func writeError(c *fiber.Ctx, status int, message string) error {
	return response.Error(c, status, message)
}

// writeServiceError maps service errors to status codes. Anything unrecognised is logged
// with the request id and reported as a generic 500.
func writeServiceError(c *fiber.Ctx, log logrus.FieldLogger, err error) error {
	var verr *service.ValidationError
	var missing *service.MissingProjectsError

	switch {
	case errors.As(err, &verr):
		return writeError(c, fiber.StatusBadRequest, verr.Message)
	case errors.Is(err, service.ErrProjectNotFound):
		return writeError(c, fiber.StatusNotFound, err.Error())
	case errors.As(err, &missing):
		return writeError(c, fiber.StatusNotFound, missing.Error())
	}

	log.WithFields(logrus.Fields{
		"request_id": middleware.RequestIDFrom(c),
		"method":     c.Method(),
		"path":       c.Path(),
		"error":      err.Error(),
	}).Error("request failed")
	return writeError(c, fiber.StatusInternalServerError, msgInternalError)
}

// ErrorHandler returns a Fiber global error handler that renders errors escaping the
// handlers (unknown routes, bad bodies, panics) with the standard envelope.
func ErrorHandler(log logrus.FieldLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "Bad Request")
		case fiber.StatusNotFound:
			return writeError(c, status, "Not Found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "Method Not Allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "Payload Too Large")
		case fiber.StatusTooManyRequests:
			return writeError(c, status, "Too many requests, please try again later.")
		default:
			log.WithFields(logrus.Fields{
				"request_id": middleware.RequestIDFrom(c),
				"path":       c.Path(),
				"error":      err.Error(),
			}).Error("unhandled error")
			return writeError(c, fiber.StatusInternalServerError, msgInternalError)
		}
	}
}

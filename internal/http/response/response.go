// Package response renders the {code, message, data} envelope every endpoint answers with.
package response

import "github.com/gofiber/fiber/v2"

// Envelope is the standard response body. Data is null on errors.
type Envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// CountedEnvelope is used by listings that report a total without paging.
type CountedEnvelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Total   int    `json:"total"`
	Data    any    `json:"data"`
}

// Page echoes the page window of a paginated listing.
type Page struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// PageEnvelope is the body of a paginated listing.
type PageEnvelope struct {
	Code       int    `json:"code"`
	Message    string `json:"message"`
	Total      int    `json:"total"`
	TotalPages int    `json:"totalPages"`
	Data       any    `json:"data"`
	Pagination Page   `json:"pagination"`
}

// JSON writes data inside the envelope with the given status.
func JSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Envelope{Code: status, Message: message, Data: data})
}

// Error writes an envelope with a null data field.
func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, message, nil)
}

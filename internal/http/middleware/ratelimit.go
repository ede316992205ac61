package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"projectapi/internal/http/response"
)

const (
	msgTooManyRequests = "Too many requests, please try again later."
	msgUploadLimit     = "Upload limit exceeded, please try again later."
)

// LimitRule describes one per-client request budget.
type LimitRule struct {
	Name    string
	Max     int
	Window  time.Duration
	Message string
}

var (
	// BasicRule guards project create and update.
	BasicRule = LimitRule{Name: "basic", Max: 100, Window: 15 * time.Minute, Message: msgTooManyRequests}
	// StrictRule guards batch deletes.
	StrictRule = LimitRule{Name: "strict", Max: 10, Window: 15 * time.Minute, Message: msgTooManyRequests}
	// UploadRule guards thumbnail uploads.
	UploadRule = LimitRule{Name: "upload", Max: 10, Window: time.Hour, Message: msgUploadLimit}
)

// Limiters bundles the handlers mounted in front of mutating routes.
type Limiters struct {
	Basic  fiber.Handler
	Strict fiber.Handler
	Upload fiber.Handler
}

// NewLimiters builds the three limiters. A nil store keeps counters in process memory.
// When disabled every limiter is a pass-through.
func NewLimiters(enabled bool, store fiber.Storage) Limiters {
	if !enabled {
		return Limiters{Basic: Noop(), Strict: Noop(), Upload: Noop()}
	}
	return Limiters{
		Basic:  RateLimit(BasicRule, store),
		Strict: RateLimit(StrictRule, store),
		Upload: RateLimit(UploadRule, store),
	}
}

// RateLimit allows rule.Max requests per client IP within rule.Window and answers
// 429 with the standard envelope beyond that.
func RateLimit(rule LimitRule, store fiber.Storage) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        rule.Max,
		Expiration: rule.Window,
		// Limiters may share one store, so keys are namespaced per rule.
		KeyGenerator: func(c *fiber.Ctx) string {
			return rule.Name + ":" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return response.Error(c, fiber.StatusTooManyRequests, rule.Message)
		},
		Storage: store,
	})
}

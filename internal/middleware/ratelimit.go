package middleware

import (
	"time"

	"zenith-backend/internal/config"
	"zenith-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// GlobalRateLimiter applies the env-configured window/max to every route.
func GlobalRateLimiter(cfg *config.Config) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: cfg.RateLimitWindow,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return utils.Error(c, "Too many requests, please try again later", fiber.StatusTooManyRequests)
		},
	})
}

// LoginRateLimiter is stricter; it guards credential stuffing on /auth/login.
func LoginRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        5,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return utils.Error(c, "Too many login attempts, please try again later", fiber.StatusTooManyRequests)
		},
	})
}

// IntakeRateLimiter guards the public registration endpoints.
func IntakeRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        10,
		Expiration: 5 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return utils.Error(c, "Too many registration attempts, please try again later", fiber.StatusTooManyRequests)
		},
	})
}

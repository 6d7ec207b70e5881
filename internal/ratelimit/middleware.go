package ratelimit

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/pekay23/raymond-gray-platform/pkg/util"
)

// Middleware throttles a route keyed by caller IP. The limiter check itself
// failing must not take the endpoint down, so limiter errors fail open.
func Middleware(limiter Limiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		result, err := limiter.Allow(c.UserContext(), c.IP())
		if err != nil {
			return c.Next()
		}

		c.Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		if !result.Allowed {
			return apperrors.NewRateLimited("too many requests", map[string]any{
				"retry_after": result.ResetAt,
			})
		}
		return c.Next()
	}
}

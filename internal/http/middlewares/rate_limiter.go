package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"task-market.com/task-market/internal/ratelimit"
)

// RateLimiter gates each client IP through the shared limiter. A limiter
// error lets the request through.
func RateLimiter(limiter ratelimit.Limiter, limit int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			allowed, err := limiter.Allow(c.Request().Context(), c.RealIP(), limit, window)
			if err != nil {
				return next(c)
			}

			if !allowed {
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}

			return next(c)
		}
	}
}

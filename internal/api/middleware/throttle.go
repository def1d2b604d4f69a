package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// RateLimiter abstracts the request-throttling store (Redis).
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Throttle limits repeated calls to credential endpoints per client IP and
// path. When the limiter store is unreachable the request is let through;
// losing throttling beats locking everyone out.
func Throttle(limiter RateLimiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.RealIP() + ":" + c.Path()
			allowed, err := limiter.Allow(c.Request().Context(), key)
			if err != nil {
				log.Warn().Err(err).Str("key", key).Msg("throttle check failed, allowing request")
				return next(c)
			}
			if !allowed {
				return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "too many requests"})
			}
			return next(c)
		}
	}
}

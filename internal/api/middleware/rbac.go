package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireAnyRole lets the request through when the authenticated identity's
// role set intersects the required set. A missing identity is always 403,
// never silently treated as anonymous-allowed.
func RequireAnyRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity := IdentityFrom(c)
			if !identity.HasAnyRole(roles...) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

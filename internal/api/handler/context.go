package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/barcrafted/bar-system/internal/api/middleware"
	"github.com/barcrafted/bar-system/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Auth middleware and
// fast-fails before any service call. An empty identity means the route was
// wired without the guard; reject instead of proceeding anonymously.
func ctxIdentity(c echo.Context) (*domain.Identity, error) {
	identity := middleware.IdentityFrom(c)
	if identity == nil || identity.UserID == 0 {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return identity, nil
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/barcrafted/bar-system/internal/core/domain"
	"github.com/barcrafted/bar-system/internal/core/token"
)

const (
	identityKey     = "identity"
	inviteClaimsKey = "invite_claims"
)

// Auth verifies the bearer access credential and injects the normalized
// identity into the request context. Any verification failure is a plain
// 401; the reason is not distinguished to the caller.
func Auth(codec *token.Codec) echo.MiddlewareFunc {
	return credentialMiddleware(codec, token.KindAccess, func(c echo.Context, claims *token.Claims) {
		c.Set(identityKey, claims.Identity())
	})
}

// InviteSession verifies the bearer invite-session credential and injects
// the raw claims, which carry the id of the redeemable token.
func InviteSession(codec *token.Codec) echo.MiddlewareFunc {
	return credentialMiddleware(codec, token.KindInvite, func(c echo.Context, claims *token.Claims) {
		c.Set(inviteClaimsKey, claims)
	})
}

func credentialMiddleware(codec *token.Codec, kind token.Kind, inject func(echo.Context, *token.Claims)) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := bearerToken(c)
			if err != nil {
				return err
			}

			claims, err := codec.Verify(raw, kind)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid credential")
			}

			inject(c, claims)
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}
	return parts[1], nil
}

// IdentityFrom returns the identity injected by Auth, or nil when absent.
func IdentityFrom(c echo.Context) *domain.Identity {
	id, _ := c.Get(identityKey).(*domain.Identity)
	return id
}

// InviteClaimsFrom returns the claims injected by InviteSession, or nil.
func InviteClaimsFrom(c echo.Context) *token.Claims {
	claims, _ := c.Get(inviteClaimsKey).(*token.Claims)
	return claims
}

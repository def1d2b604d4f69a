package ports

import (
	"context"

	"github.com/barcrafted/bar-system/internal/core/domain"
)

// Session is the credential pair handed out on successful authentication.
type Session struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         *domain.User `json:"user"`
}

// StaffSession extends Session with the workplace context staff clients
// bootstrap from.
type StaffSession struct {
	Session
	Bar       *domain.Bar       `json:"bar"`
	Favorites []domain.Cocktail `json:"favorites"`
}

// AuthService authenticates operators and bar staff and refreshes access
// credentials.
type AuthService interface {
	LoginOperator(ctx context.Context, identifier, password string) (*Session, error)
	// LoginStaff additionally checks the supplied workplace key against the
	// user's bar; a mismatch is domain.ErrForbidden, not a lookup failure.
	LoginStaff(ctx context.Context, barKey, identifier, password string) (*StaffSession, error)
	// Refresh exchanges a valid refresh credential for a new access
	// credential without re-authenticating the password.
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

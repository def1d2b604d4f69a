package ports

import (
	"context"

	"github.com/barcrafted/bar-system/internal/core/token"
)

// InviteResult carries the profile fields a client needs to bootstrap a
// normal authenticated session after setting its first password.
type InviteResult struct {
	Roles []string `json:"roles"`
	BarID *int64   `json:"bar_id,omitempty"`
}

// InviteService converts single-use invite tokens into short-lived sessions
// that gate password creation.
type InviteService interface {
	// OpenSession resolves a raw invite token and mints an invite-session
	// credential. The underlying token is not consumed yet.
	OpenSession(ctx context.Context, rawToken string) (string, error)
	// ConfirmPassword re-resolves the token named by the session claims,
	// stores the new password, atomically consumes the token, and
	// invalidates sibling invites.
	ConfirmPassword(ctx context.Context, claims *token.Claims, newPassword string) (*InviteResult, error)
	// Reissue invalidates all unused invites for the user, creates a fresh
	// one, and returns its raw form for one-time out-of-band delivery.
	Reissue(ctx context.Context, userID int64) (string, error)
}

package ports

import (
	"context"
	"time"

	"github.com/barcrafted/bar-system/internal/core/domain"
)

// TokenRepository is the one-time-token half of the credential store contract.
type TokenRepository interface {
	Create(ctx context.Context, t *domain.PasswordToken) (*domain.PasswordToken, error)
	// FindByID looks a token up by id and purpose. Returns
	// domain.ErrTokenInvalid when absent.
	FindByID(ctx context.Context, id string, purpose domain.TokenPurpose) (*domain.PasswordToken, error)
	// FindByHash looks a token up by secret hash and purpose.
	FindByHash(ctx context.Context, tokenHash string, purpose domain.TokenPurpose) (*domain.PasswordToken, error)
	// FindByUserAndHash scopes the hash lookup to a single user.
	FindByUserAndHash(ctx context.Context, userID int64, tokenHash string, purpose domain.TokenPurpose) (*domain.PasswordToken, error)
	// MarkUsed sets used_at in a single atomic conditional write guarded by
	// "used_at is still null" and reports whether the row actually
	// transitioned. This is the property that makes redemption at-most-once;
	// it must never be implemented as a read followed by a write.
	MarkUsed(ctx context.Context, id string, now time.Time) (bool, error)
	// MarkAllUnused invalidates every unredeemed token of the given purpose
	// for the user. Used when (re)issuing a fresh invite and on invite
	// redemption, so sibling invites never stay redeemable.
	MarkAllUnused(ctx context.Context, userID int64, purpose domain.TokenPurpose, now time.Time) error
}

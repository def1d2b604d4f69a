package ports

import "context"

// ResetService issues and redeems numeric one-time codes for password
// replacement on an already-authenticated account.
type ResetService interface {
	// RequestReset generates a 6-digit code, stores its hash, and hands the
	// raw code to the out-of-band delivery channel.
	RequestReset(ctx context.Context, userID int64) error
	// ConfirmReset redeems a code scoped to the user. Other outstanding
	// reset codes for the same user stay valid; only the redeemed one
	// becomes inert.
	ConfirmReset(ctx context.Context, userID int64, code, newPassword string) error
}

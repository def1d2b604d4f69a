package domain

import "time"

// TokenPurpose tags what a one-time token may be redeemed for.
type TokenPurpose string

const (
	PurposeInvite TokenPurpose = "invite"
	PurposeReset  TokenPurpose = "reset"
)

// PasswordToken is the stored half of a one-time secret. Only the hash is
// ever persisted; the raw value exists once, on the wire to the user.
// UsedAt transitions from nil to a timestamp exactly once; after that the
// row is permanently inert.
type PasswordToken struct {
	ID        string       `json:"id"`
	UserID    int64        `json:"user_id"`
	Purpose   TokenPurpose `json:"purpose"`
	TokenHash string       `json:"-"`
	ExpiresAt time.Time    `json:"expires_at"`
	UsedAt    *time.Time   `json:"used_at,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

// Used reports whether the token has already been redeemed.
func (t *PasswordToken) Used() bool {
	return t.UsedAt != nil
}

// Expired reports whether the token is past its expiry at the given instant.
// A token expiring exactly now is still valid.
func (t *PasswordToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// Redeemable reports whether the token can still be used at the given instant.
func (t *PasswordToken) Redeemable(now time.Time) bool {
	return !t.Used() && !t.Expired(now)
}

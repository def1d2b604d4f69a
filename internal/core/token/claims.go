package token

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/barcrafted/bar-system/internal/core/domain"
)

// Kind selects which secret and TTL a token is issued and verified against.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
	KindInvite  Kind = "invite"
)

// Claims is the single claim shape carried by all three credential kinds.
// BarID ("bar_id") is canonical; LegacyBarID ("bar") is the field name an
// older token shape used and is folded into BarID on verification.
// TokenID is set only on invite-session credentials and names the
// PasswordToken the session is allowed to redeem.
type Claims struct {
	jwt.RegisteredClaims
	UserID      int64    `json:"user_id"`
	Roles       []string `json:"roles,omitempty"`
	BarID       *int64   `json:"bar_id,omitempty"`
	LegacyBarID *int64   `json:"bar,omitempty"`
	TokenID     string   `json:"token_id,omitempty"`
}

// normalize rewrites the claims into canonical form: role set filtered and
// deduplicated, workplace under bar_id with the numeric field winning over
// the legacy one. Applied on issue and again, defensively, on verify.
func (c *Claims) normalize() {
	c.Roles = domain.NormalizeRoles(c.Roles)
	if c.BarID == nil && c.LegacyBarID != nil {
		c.BarID = c.LegacyBarID
	}
	c.LegacyBarID = nil
}

// Identity converts verified claims into the guard's normalized identity.
func (c *Claims) Identity() *domain.Identity {
	return &domain.Identity{
		UserID: c.UserID,
		Roles:  c.Roles,
		BarID:  c.BarID,
	}
}

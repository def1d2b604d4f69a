// Package token signs and verifies the three bearer credential kinds:
// short-lived access tokens, longer-lived refresh tokens, and the
// invite-session tokens that gate first password creation.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/barcrafted/bar-system/internal/core/domain"
)

const issuer = "bar-system"

// Config carries the signing secrets and lifetimes, built once at startup.
// Each kind has its own secret so one leaked key never compromises another
// credential class.
type Config struct {
	AccessSecret  string
	RefreshSecret string
	InviteSecret  string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	InviteTTL     time.Duration
}

// Codec issues and verifies HS256-signed credentials. Verification is a pure
// function of the token and the current time; it never touches stored state.
type Codec struct {
	cfg Config
	log zerolog.Logger
	now func() time.Time
}

func NewCodec(cfg Config, log zerolog.Logger) (*Codec, error) {
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" || cfg.InviteSecret == "" {
		return nil, errors.New("token: all three signing secrets must be set")
	}
	return &Codec{cfg: cfg, log: log, now: time.Now}, nil
}

// IssueAccess mints a short-lived access credential from the user's id,
// normalized role set, and resolved workplace reference.
func (c *Codec) IssueAccess(user *domain.User) (string, error) {
	return c.sign(c.userClaims(user), KindAccess)
}

// IssueRefresh mints a refresh credential with the same claim shape as an
// access credential but the longer refresh lifetime and distinct secret.
func (c *Codec) IssueRefresh(user *domain.User) (string, error) {
	return c.sign(c.userClaims(user), KindRefresh)
}

// IssueInvite mints an invite-session credential scoping the holder to
// "may set a password for this user via this token".
func (c *Codec) IssueInvite(userID int64, tokenID string) (string, error) {
	return c.sign(&Claims{UserID: userID, TokenID: tokenID}, KindInvite)
}

// Verify validates signature and expiry against the secret for the given
// kind and returns re-normalized claims. Every failure mode collapses into
// domain.ErrTokenInvalid; the distinction is logged internally only.
func (c *Codec) Verify(tokenString string, kind Kind) (*Claims, error) {
	secret, _, err := c.kindConfig(kind)
	if err != nil {
		return nil, err
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	}, jwt.WithTimeFunc(c.now))
	if err != nil || !parsed.Valid {
		c.log.Debug().Err(err).Str("kind", string(kind)).Msg("credential rejected")
		return nil, domain.ErrTokenInvalid
	}

	claims.normalize()
	return claims, nil
}

func (c *Codec) userClaims(user *domain.User) *Claims {
	return &Claims{
		UserID: user.ID,
		Roles:  user.Roles,
		BarID:  user.Workplace(),
	}
}

func (c *Codec) sign(claims *Claims, kind Kind) (string, error) {
	secret, ttl, err := c.kindConfig(kind)
	if err != nil {
		return "", err
	}

	claims.normalize()
	now := c.now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

func (c *Codec) kindConfig(kind Kind) (secret string, ttl time.Duration, err error) {
	switch kind {
	case KindAccess:
		return c.cfg.AccessSecret, c.cfg.AccessTTL, nil
	case KindRefresh:
		return c.cfg.RefreshSecret, c.cfg.RefreshTTL, nil
	case KindInvite:
		return c.cfg.InviteSecret, c.cfg.InviteTTL, nil
	default:
		return "", 0, domain.ErrTokenInvalid
	}
}

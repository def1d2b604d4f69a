package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/barcrafted/bar-system/internal/core/domain"
	"github.com/barcrafted/bar-system/internal/core/ports"
	"github.com/barcrafted/bar-system/internal/core/token"
)

// InviteService drives the invite token lifecycle: open a short-lived
// session from a raw token, confirm the first password, reissue.
type InviteService struct {
	users      ports.UserRepository
	tokens     ports.TokenRepository
	codec      *token.Codec
	notifier   ports.Notifier
	bcryptCost int
	inviteTTL  time.Duration
	log        zerolog.Logger
	now        func() time.Time
}

func NewInviteService(
	users ports.UserRepository,
	tokens ports.TokenRepository,
	codec *token.Codec,
	notifier ports.Notifier,
	bcryptCost int,
	inviteTTL time.Duration,
	log zerolog.Logger,
) *InviteService {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &InviteService{
		users:      users,
		tokens:     tokens,
		codec:      codec,
		notifier:   notifier,
		bcryptCost: bcryptCost,
		inviteTTL:  inviteTTL,
		log:        log,
		now:        time.Now,
	}
}

// OpenSession resolves a raw invite token into an invite-session credential.
// The token itself stays unconsumed until ConfirmPassword.
func (s *InviteService) OpenSession(ctx context.Context, rawToken string) (string, error) {
	if rawToken == "" {
		return "", domain.ErrTokenInvalid
	}

	t, err := s.tokens.FindByHash(ctx, HashSecret(rawToken), domain.PurposeInvite)
	if err != nil {
		return "", err
	}
	if t.Used() {
		return "", domain.ErrTokenUsed
	}
	if t.Expired(s.now()) {
		return "", domain.ErrTokenExpired
	}

	return s.codec.IssueInvite(t.UserID, t.ID)
}

// ConfirmPassword sets the user's first password. The token named by the
// session claims is re-resolved and re-checked, so a replayed session fails
// even if the underlying token was invalidated independently.
func (s *InviteService) ConfirmPassword(ctx context.Context, claims *token.Claims, newPassword string) (*ports.InviteResult, error) {
	if claims == nil || claims.TokenID == "" {
		return nil, domain.ErrTokenInvalid
	}
	if len(newPassword) < minPasswordLen {
		return nil, domain.ErrWeakPassword
	}

	t, err := s.tokens.FindByID(ctx, claims.TokenID, domain.PurposeInvite)
	if err != nil {
		return nil, err
	}
	if t.UserID != claims.UserID {
		return nil, domain.ErrTokenInvalid
	}
	if t.Used() {
		return nil, domain.ErrTokenUsed
	}
	now := s.now()
	if t.Expired(now) {
		return nil, domain.ErrTokenExpired
	}

	user, err := s.users.FindByID(ctx, t.UserID)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = string(hash)
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	// The single write that makes redemption at-most-once. Losing the race
	// here means another request already consumed the token.
	won, err := s.tokens.MarkUsed(ctx, t.ID, now)
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, domain.ErrTokenUsed
	}

	// An invite session must not leave sibling invites redeemable.
	if err := s.tokens.MarkAllUnused(ctx, user.ID, domain.PurposeInvite, now); err != nil {
		s.log.Warn().Err(err).Int64("user_id", user.ID).Msg("sibling invite invalidation failed")
	}

	if err := s.notifier.StaffJoined(ctx, user.Workplace(), user.Name); err != nil {
		s.log.Warn().Err(err).Int64("user_id", user.ID).Msg("staff joined notification failed")
	}

	s.log.Info().Int64("user_id", user.ID).Str("token_id", t.ID).Msg("invite redeemed")
	return &ports.InviteResult{
		Roles: domain.NormalizeRoles(user.Roles),
		BarID: user.Workplace(),
	}, nil
}

// Reissue invalidates every unused invite for the user and creates a fresh
// one, returning its raw form for one-time delivery.
func (s *InviteService) Reissue(ctx context.Context, userID int64) (string, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return "", err
	}

	now := s.now()
	if err := s.tokens.MarkAllUnused(ctx, userID, domain.PurposeInvite, now); err != nil {
		return "", err
	}

	raw := NewRawToken()
	_, err := s.tokens.Create(ctx, &domain.PasswordToken{
		UserID:    userID,
		Purpose:   domain.PurposeInvite,
		TokenHash: HashSecret(raw),
		ExpiresAt: now.Add(s.inviteTTL),
		CreatedAt: now,
	})
	if err != nil {
		return "", err
	}

	s.log.Info().Int64("user_id", userID).Msg("invite issued")
	return raw, nil
}

var _ ports.InviteService = (*InviteService)(nil)

package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/barcrafted/bar-system/internal/core/domain"
	"github.com/barcrafted/bar-system/internal/core/ports"
)

// ResetService issues and redeems the numeric one-time codes used to replace
// a password on an already-authenticated account.
type ResetService struct {
	users      ports.UserRepository
	tokens     ports.TokenRepository
	mailer     ports.Mailer
	bcryptCost int
	codeTTL    time.Duration
	log        zerolog.Logger
	now        func() time.Time
}

func NewResetService(
	users ports.UserRepository,
	tokens ports.TokenRepository,
	mailer ports.Mailer,
	bcryptCost int,
	codeTTL time.Duration,
	log zerolog.Logger,
) *ResetService {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &ResetService{
		users:      users,
		tokens:     tokens,
		mailer:     mailer,
		bcryptCost: bcryptCost,
		codeTTL:    codeTTL,
		log:        log,
		now:        time.Now,
	}
}

// RequestReset stores a fresh code hash and hands the raw code to the
// out-of-band delivery channel. Outstanding codes for the user stay valid;
// each request is independent.
func (s *ResetService) RequestReset(ctx context.Context, userID int64) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	now := s.now()
	code := NewResetCode()
	_, err = s.tokens.Create(ctx, &domain.PasswordToken{
		UserID:    userID,
		Purpose:   domain.PurposeReset,
		TokenHash: HashSecret(code),
		ExpiresAt: now.Add(s.codeTTL),
		CreatedAt: now,
	})
	if err != nil {
		return err
	}

	if err := s.mailer.SendResetCode(ctx, user.Email, user.Name, code); err != nil {
		// The code is already stored; a delivery failure must not undo that.
		s.log.Error().Err(err).Int64("user_id", userID).Msg("reset code delivery failed")
		return err
	}

	s.log.Info().Int64("user_id", userID).Msg("reset code issued")
	return nil
}

// ConfirmReset redeems a code scoped to the user. Unlike the invite flow,
// sibling reset codes are left alone: only the redeemed one becomes inert.
func (s *ResetService) ConfirmReset(ctx context.Context, userID int64, code, newPassword string) error {
	if len(newPassword) < minPasswordLen {
		return domain.ErrWeakPassword
	}

	t, err := s.tokens.FindByUserAndHash(ctx, userID, HashSecret(code), domain.PurposeReset)
	if err != nil {
		return err
	}
	if t.Used() {
		return domain.ErrTokenUsed
	}
	now := s.now()
	if t.Expired(now) {
		return domain.ErrTokenExpired
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	if err := s.users.Save(ctx, user); err != nil {
		return err
	}

	won, err := s.tokens.MarkUsed(ctx, t.ID, now)
	if err != nil {
		return err
	}
	if !won {
		return domain.ErrTokenUsed
	}

	s.log.Info().Int64("user_id", userID).Msg("password reset via code")
	return nil
}

var _ ports.ResetService = (*ResetService)(nil)

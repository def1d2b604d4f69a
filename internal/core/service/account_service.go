package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/barcrafted/bar-system/internal/core/domain"
	"github.com/barcrafted/bar-system/internal/core/ports"
)

// AccountService provisions staff records and manages role sets. Every write
// passes through the role constraint validator before persistence.
type AccountService struct {
	users      ports.UserRepository
	invites    ports.InviteService
	mailer     ports.Mailer
	bcryptCost int
	log        zerolog.Logger
}

func NewAccountService(
	users ports.UserRepository,
	invites ports.InviteService,
	mailer ports.Mailer,
	bcryptCost int,
	log zerolog.Logger,
) *AccountService {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AccountService{users: users, invites: invites, mailer: mailer, bcryptCost: bcryptCost, log: log}
}

// CreateStaff persists a new staff record and delivers an invite. The record
// is created with an unusable random placeholder hash so the staff password
// constraint holds from the first write; the invite flow replaces it.
func (s *AccountService) CreateStaff(ctx context.Context, actor *domain.Identity, in ports.CreateStaffInput) (*domain.User, error) {
	// A bar_admin may only provision into their own bar.
	if !actor.HasAnyRole(domain.RoleSuperAdmin) {
		if actor.BarID == nil || in.BarID == nil || *actor.BarID != *in.BarID {
			return nil, domain.ErrForbidden
		}
	}

	roles := domain.NormalizeRoles(in.Roles)
	if err := domain.ValidateRoleConstraints(roles, true, in.BarID != nil); err != nil {
		return nil, err
	}

	placeholder, err := s.placeholderHash()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        in.Email,
		Login:        in.Login,
		Name:         in.Name,
		Roles:        roles,
		PasswordHash: placeholder,
		BarID:        in.BarID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.deliverInvite(ctx, created); err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", created.ID).Strs("roles", roles).Msg("staff account created")
	return created, nil
}

// UpdateRoles replaces the user's role set after constraint validation
// against the record's current password and bar state.
func (s *AccountService) UpdateRoles(ctx context.Context, userID int64, roles []string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	roles = domain.NormalizeRoles(roles)
	if err := domain.ValidateRoleConstraints(roles, user.HasPassword(), user.HasWorkplace()); err != nil {
		return nil, err
	}

	user.Roles = roles
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ReissueInvite invalidates outstanding invites and delivers a fresh one.
func (s *AccountService) ReissueInvite(ctx context.Context, userID int64) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	return s.deliverInvite(ctx, user)
}

func (s *AccountService) deliverInvite(ctx context.Context, user *domain.User) error {
	raw, err := s.invites.Reissue(ctx, user.ID)
	if err != nil {
		return err
	}
	// Delivery goes through the async dispatcher; the raw token is never
	// persisted on this side.
	return s.mailer.SendInvite(ctx, user.Email, user.Name, raw)
}

// placeholderHash returns the hash of a random secret nobody knows, keeping
// an invited record constraint-legal while making login impossible until the
// invite is confirmed.
func (s *AccountService) placeholderHash() (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(NewRawToken()), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

var _ ports.AccountService = (*AccountService)(nil)

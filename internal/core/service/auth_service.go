package service

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/barcrafted/bar-system/internal/core/domain"
	"github.com/barcrafted/bar-system/internal/core/ports"
	"github.com/barcrafted/bar-system/internal/core/token"
)

// AuthService implements operator and staff login plus access refresh.
type AuthService struct {
	users ports.UserRepository
	bars  ports.BarRepository
	codec *token.Codec
	log   zerolog.Logger
}

func NewAuthService(users ports.UserRepository, bars ports.BarRepository, codec *token.Codec, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, bars: bars, codec: codec, log: log}
}

func (s *AuthService) LoginOperator(ctx context.Context, identifier, password string) (*ports.Session, error) {
	user, err := s.authenticate(ctx, identifier, password)
	if err != nil {
		return nil, err
	}

	session, err := s.mintSession(user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", user.ID).Msg("operator login")
	return session, nil
}

func (s *AuthService) LoginStaff(ctx context.Context, barKey, identifier, password string) (*ports.StaffSession, error) {
	bar, err := s.bars.FindByKey(ctx, barKey)
	if err != nil {
		return nil, err
	}

	user, err := s.authenticate(ctx, identifier, password)
	if err != nil {
		return nil, err
	}

	// The workplace key must match the user's own bar; a valid password for
	// the wrong bar is a role problem, not a credential problem.
	if wp := user.Workplace(); wp == nil || *wp != bar.ID {
		return nil, domain.ErrForbidden
	}
	if !domain.HasAnyRole(user.Roles, domain.RoleStaff, domain.RoleBarAdmin) {
		return nil, domain.ErrForbidden
	}

	favorites, err := s.bars.ListFavorites(ctx, bar.ID)
	if err != nil {
		return nil, err
	}

	session, err := s.mintSession(user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", user.ID).Int64("bar_id", bar.ID).Msg("staff login")
	return &ports.StaffSession{Session: *session, Bar: bar, Favorites: favorites}, nil
}

// Refresh verifies the refresh credential and mints a new access credential
// from the user's current record, so role changes take effect at the next
// refresh rather than living out the whole refresh TTL.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.codec.Verify(refreshToken, token.KindRefresh)
	if err != nil {
		return "", err
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return "", domain.ErrTokenInvalid
		}
		return "", err
	}

	return s.codec.IssueAccess(user)
}

func (s *AuthService) authenticate(ctx context.Context, identifier, password string) (*domain.User, error) {
	if identifier == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}

	if !user.HasPassword() {
		return nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

func (s *AuthService) mintSession(user *domain.User) (*ports.Session, error) {
	access, err := s.codec.IssueAccess(user)
	if err != nil {
		return nil, err
	}
	refresh, err := s.codec.IssueRefresh(user)
	if err != nil {
		return nil, err
	}
	return &ports.Session{AccessToken: access, RefreshToken: refresh, User: user}, nil
}

var _ ports.AuthService = (*AuthService)(nil)

package ports

import (
	"context"

	"github.com/barcrafted/bar-system/internal/core/domain"
)

// UserRepository is the user half of the credential store contract.
type UserRepository interface {
	// FindByIdentifier matches email, login, or display name exactly
	// (case-sensitive). Used during login lookups.
	FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// Save persists an updated user record. Implementations must refuse a
	// record that fails domain.ValidateRoleConstraints.
	Save(ctx context.Context, user *domain.User) error
}

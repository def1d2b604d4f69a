package ports

import (
	"context"

	"github.com/barcrafted/bar-system/internal/core/domain"
)

// CreateStaffInput is the admin-supplied shape of a new staff record.
// No password is collected; the invite flow establishes it.
type CreateStaffInput struct {
	Email string
	Login string
	Name  string
	Roles []string
	BarID *int64
}

// AccountService provisions staff accounts and manages role sets, running
// every write through the role constraint validator.
type AccountService interface {
	// CreateStaff persists the record and issues an invite for out-of-band
	// delivery. A bar_admin actor may only provision into their own bar.
	CreateStaff(ctx context.Context, actor *domain.Identity, in CreateStaffInput) (*domain.User, error)
	// UpdateRoles replaces the user's role set after constraint validation.
	UpdateRoles(ctx context.Context, userID int64, roles []string) (*domain.User, error)
	// ReissueInvite invalidates outstanding invites and delivers a new one.
	ReissueInvite(ctx context.Context, userID int64) error
}

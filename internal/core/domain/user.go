package domain

import (
	"strconv"
	"time"
)

// Role tags a user may hold. A user holds a set of these, not a single one.
const (
	RoleUser       = "user"
	RoleStaff      = "staff"
	RoleBarAdmin   = "bar_admin"
	RoleSuperAdmin = "super_admin"
)

// User models an authenticated actor: an operator, bar staff, or a regular
// patron account. Email, Login and Name are each unique and any of them is
// accepted as the login identifier.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Login        string    `json:"login"`
	Name         string    `json:"name"`
	Roles        []string  `json:"roles"`
	PasswordHash string    `json:"-"`
	BarID        *int64    `json:"bar_id,omitempty"`
	BarRef       string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasPassword reports whether a password hash is stored for the user.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// Workplace resolves the user's bar reference. The numeric BarID always wins;
// BarRef is a looser identifier kept by older imports and is consulted only
// when BarID is unset.
func (u *User) Workplace() *int64 {
	if u.BarID != nil {
		return u.BarID
	}
	if u.BarRef == "" {
		return nil
	}
	id, err := strconv.ParseInt(u.BarRef, 10, 64)
	if err != nil {
		return nil
	}
	return &id
}

// HasWorkplace reports whether the user resolves to a bar.
func (u *User) HasWorkplace() bool {
	return u.Workplace() != nil
}

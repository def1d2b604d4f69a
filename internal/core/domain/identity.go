package domain

// Identity is the normalized result of verifying an access credential.
// It is what handlers and the RBAC middleware see; raw claims never leave
// the guard.
type Identity struct {
	UserID int64
	Roles  []string
	BarID  *int64
}

// HasAnyRole reports whether the identity holds at least one required role.
func (i *Identity) HasAnyRole(required ...string) bool {
	if i == nil {
		return false
	}
	return HasAnyRole(i.Roles, required...)
}

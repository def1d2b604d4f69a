package domain

import (
	"fmt"
	"strings"
)

// NormalizeRoles drops empty entries and duplicates while preserving order.
// Issuance and verification both go through this function so a role set
// always round-trips to the same canonical form.
func NormalizeRoles(roles []string) []string {
	out := make([]string, 0, len(roles))
	seen := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}

// HasAnyRole reports whether the role set intersects the required set.
func HasAnyRole(roles []string, required ...string) bool {
	for _, have := range roles {
		for _, want := range required {
			if have == want {
				return true
			}
		}
	}
	return false
}

// ConstraintError reports every role constraint a user record violates.
type ConstraintError struct {
	Violations []string
}

func (e *ConstraintError) Error() string {
	return "role constraints violated: " + strings.Join(e.Violations, "; ")
}

// ValidateRoleConstraints checks which combinations of role set, password
// presence and bar association are legal. The rules form an unordered
// conjunction; every violated rule is reported.
//
//	staff | bar_admin → password and bar both required
//	user              → password required, bar forbidden
//	super_admin       → bar forbidden
func ValidateRoleConstraints(roles []string, hasPassword, hasBar bool) error {
	var violations []string
	for _, r := range NormalizeRoles(roles) {
		switch r {
		case RoleStaff, RoleBarAdmin:
			if !hasPassword {
				violations = append(violations, fmt.Sprintf("role %q requires a password", r))
			}
			if !hasBar {
				violations = append(violations, fmt.Sprintf("role %q requires a bar association", r))
			}
		case RoleUser:
			if !hasPassword {
				violations = append(violations, `role "user" requires a password`)
			}
			if hasBar {
				violations = append(violations, `role "user" must not have a bar association`)
			}
		case RoleSuperAdmin:
			if hasBar {
				violations = append(violations, `role "super_admin" must not have a bar association`)
			}
		}
	}
	if len(violations) > 0 {
		return &ConstraintError{Violations: violations}
	}
	return nil
}

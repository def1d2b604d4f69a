package domain

import (
	"reflect"
	"testing"
)

func TestNormalizeRoles(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		want []string
	}{
		{"empty", nil, []string{}},
		{"drops empties", []string{"", "staff", "  ", "user"}, []string{"staff", "user"}},
		{"dedupes keeping order", []string{"staff", "user", "staff", "user"}, []string{"staff", "user"}},
		{"trims whitespace", []string{" staff ", "staff"}, []string{"staff"}},
	}

	for _, tc := range cases {
		got := NormalizeRoles(tc.in)
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("%s: NormalizeRoles(%v) = %v, want %v", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestHasAnyRole(t *testing.T) {
	roles := []string{RoleStaff, RoleUser}

	if !HasAnyRole(roles, RoleStaff) {
		t.Fatalf("expected staff to match")
	}
	if !HasAnyRole(roles, RoleBarAdmin, RoleUser) {
		t.Fatalf("expected user to match in a wider required set")
	}
	if HasAnyRole(roles, RoleSuperAdmin) {
		t.Fatalf("super_admin should not match")
	}
	if HasAnyRole(nil, RoleStaff) {
		t.Fatalf("empty role set should never match")
	}
}

func TestValidateRoleConstraints_StaffNeedsPasswordAndBar(t *testing.T) {
	err := ValidateRoleConstraints([]string{RoleStaff}, false, false)
	if err == nil {
		t.Fatalf("expected constraint violations")
	}
	ce, ok := err.(*ConstraintError)
	if !ok {
		t.Fatalf("expected *ConstraintError, got %T", err)
	}
	if len(ce.Violations) != 2 {
		t.Fatalf("expected both violations reported, got %v", ce.Violations)
	}

	if err := ValidateRoleConstraints([]string{RoleStaff}, true, true); err != nil {
		t.Fatalf("valid staff record rejected: %v", err)
	}
}

func TestValidateRoleConstraints_UserForbidsBar(t *testing.T) {
	if err := ValidateRoleConstraints([]string{RoleUser}, true, true); err == nil {
		t.Fatalf("user with a bar association should be rejected")
	}
	if err := ValidateRoleConstraints([]string{RoleUser}, true, false); err != nil {
		t.Fatalf("valid user record rejected: %v", err)
	}
	if err := ValidateRoleConstraints([]string{RoleUser}, false, false); err == nil {
		t.Fatalf("user without a password should be rejected")
	}
}

func TestValidateRoleConstraints_SuperAdminForbidsBar(t *testing.T) {
	if err := ValidateRoleConstraints([]string{RoleSuperAdmin}, false, true); err == nil {
		t.Fatalf("super_admin with a bar association should be rejected")
	}
	// A password is not required for super_admin by the role rules alone.
	if err := ValidateRoleConstraints([]string{RoleSuperAdmin}, false, false); err != nil {
		t.Fatalf("valid super_admin record rejected: %v", err)
	}
}

func TestValidateRoleConstraints_CombinedRolesReportAll(t *testing.T) {
	// user forbids a bar, staff requires one; with a bar present and no
	// password the staff password rule and the user bar rule both fire.
	err := ValidateRoleConstraints([]string{RoleUser, RoleStaff}, false, true)
	if err == nil {
		t.Fatalf("expected violations")
	}
	ce := err.(*ConstraintError)
	if len(ce.Violations) != 3 {
		t.Fatalf("expected 3 violations (user password, user bar, staff password), got %v", ce.Violations)
	}
}

package domain

import (
	"testing"
	"time"
)

func TestPasswordToken_ExpiryBoundary(t *testing.T) {
	now := time.Now()
	tok := &PasswordToken{ExpiresAt: now}

	// Expiring exactly now is still valid; one instant later is not.
	if tok.Expired(now) {
		t.Fatalf("token expiring exactly now must still be valid")
	}
	if !tok.Expired(now.Add(time.Nanosecond)) {
		t.Fatalf("token must be expired one instant past ExpiresAt")
	}
}

func TestPasswordToken_Redeemable(t *testing.T) {
	now := time.Now()
	used := now.Add(-time.Minute)

	cases := []struct {
		name string
		tok  PasswordToken
		want bool
	}{
		{"fresh", PasswordToken{ExpiresAt: now.Add(time.Hour)}, true},
		{"used", PasswordToken{ExpiresAt: now.Add(time.Hour), UsedAt: &used}, false},
		{"expired", PasswordToken{ExpiresAt: now.Add(-time.Hour)}, false},
	}

	for _, tc := range cases {
		if got := tc.tok.Redeemable(now); got != tc.want {
			t.Fatalf("%s: Redeemable = %v, want %v", tc.name, got, tc.want)
		}
	}
}

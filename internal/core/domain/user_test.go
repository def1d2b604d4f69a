package domain

import "testing"

func TestUser_Workplace_NumericWins(t *testing.T) {
	barID := int64(4)
	u := &User{BarID: &barID, BarRef: "9"}

	wp := u.Workplace()
	if wp == nil || *wp != 4 {
		t.Fatalf("expected numeric bar id 4 to win, got %v", wp)
	}
}

func TestUser_Workplace_LegacyRefFallback(t *testing.T) {
	u := &User{BarRef: "7"}

	wp := u.Workplace()
	if wp == nil || *wp != 7 {
		t.Fatalf("expected legacy ref to resolve to 7, got %v", wp)
	}
}

func TestUser_Workplace_UnparseableRef(t *testing.T) {
	u := &User{BarRef: "the-blue-door"}

	if u.Workplace() != nil {
		t.Fatalf("non-numeric legacy ref must not resolve")
	}
	if u.HasWorkplace() {
		t.Fatalf("HasWorkplace should be false")
	}
}

func TestUser_HasPassword(t *testing.T) {
	if (&User{}).HasPassword() {
		t.Fatalf("empty hash should report no password")
	}
	if !(&User{PasswordHash: "x"}).HasPassword() {
		t.Fatalf("stored hash should report a password")
	}
}

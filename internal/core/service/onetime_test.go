package service

import "testing"

func TestNewResetCode_Format(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := NewResetCode()
		if len(code) != 6 {
			t.Fatalf("code %q is not 6 characters", code)
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("code %q contains a non-digit", code)
			}
		}
	}
}

func TestNewRawToken_Format(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		raw := NewRawToken()
		if len(raw) != 32 {
			t.Fatalf("token %q is not 32 characters", raw)
		}
		if _, dup := seen[raw]; dup {
			t.Fatalf("duplicate token %q", raw)
		}
		seen[raw] = struct{}{}
	}
}

func TestHashSecret(t *testing.T) {
	a := HashSecret("abc")
	b := HashSecret("abc")
	if a != b {
		t.Fatalf("hash must be deterministic")
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(a))
	}
	if a == "abc" || HashSecret("abd") == a {
		t.Fatalf("hash must differ from input and across inputs")
	}
}

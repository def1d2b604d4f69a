package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/barcrafted/bar-system/internal/core/domain"
)

type resetFixture struct {
	users  *stubUsers
	tokens *stubTokens
	mailer *recordMailer
	svc    *ResetService
	user   *domain.User
}

func newResetFixture(t *testing.T) *resetFixture {
	t.Helper()
	users := newStubUsers()
	user := users.add(&domain.User{
		Email:        "ivy@example.com",
		Login:        "ivy",
		Name:         "Ivy",
		Roles:        []string{domain.RoleUser},
		PasswordHash: mustHash(t, "old-password"),
	})
	tokens := newStubTokens()
	mailer := &recordMailer{}
	svc := NewResetService(users, tokens, mailer, bcrypt.MinCost, 15*time.Minute, zerolog.Nop())
	return &resetFixture{users: users, tokens: tokens, mailer: mailer, svc: svc, user: user}
}

func TestResetService_RequestReset(t *testing.T) {
	f := newResetFixture(t)

	if err := f.svc.RequestReset(context.Background(), f.user.ID); err != nil {
		t.Fatalf("RequestReset: %v", err)
	}

	sent := f.mailer.lastCode()
	if sent == nil {
		t.Fatalf("expected a delivered code")
	}
	if sent.to != "ivy@example.com" {
		t.Fatalf("code sent to %q", sent.to)
	}
	if len(sent.payload) != 6 {
		t.Fatalf("expected 6-digit code, got %q", sent.payload)
	}

	// Only the hash is persisted.
	stored, err := f.tokens.FindByUserAndHash(context.Background(), f.user.ID, HashSecret(sent.payload), domain.PurposeReset)
	if err != nil {
		t.Fatalf("stored code not found by hash: %v", err)
	}
	if stored.TokenHash == sent.payload {
		t.Fatalf("raw code must never be stored")
	}
}

func TestResetService_RequestReset_UnknownUser(t *testing.T) {
	f := newResetFixture(t)
	if err := f.svc.RequestReset(context.Background(), 404); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestResetService_ConfirmReset(t *testing.T) {
	f := newResetFixture(t)
	ctx := context.Background()

	if err := f.svc.RequestReset(ctx, f.user.ID); err != nil {
		t.Fatalf("RequestReset: %v", err)
	}
	code := f.mailer.lastCode().payload

	if err := f.svc.ConfirmReset(ctx, f.user.ID, code, "new-password-1"); err != nil {
		t.Fatalf("ConfirmReset: %v", err)
	}

	saved, _ := f.users.FindByID(ctx, f.user.ID)
	if err := bcrypt.CompareHashAndPassword([]byte(saved.PasswordHash), []byte("new-password-1")); err != nil {
		t.Fatalf("password not replaced: %v", err)
	}

	// The redeemed code is inert from here on.
	if err := f.svc.ConfirmReset(ctx, f.user.ID, code, "new-password-2"); err != domain.ErrTokenUsed {
		t.Fatalf("replayed code: expected ErrTokenUsed, got %v", err)
	}
}

func TestResetService_ConfirmReset_Rejections(t *testing.T) {
	f := newResetFixture(t)
	ctx := context.Background()

	if err := f.svc.ConfirmReset(ctx, f.user.ID, "123456", "short"); err != domain.ErrWeakPassword {
		t.Fatalf("short password: expected ErrWeakPassword, got %v", err)
	}
	if err := f.svc.ConfirmReset(ctx, f.user.ID, "000000", "new-password-1"); err != domain.ErrTokenInvalid {
		t.Fatalf("unknown code: expected ErrTokenInvalid, got %v", err)
	}

	// Codes are scoped to the requesting account.
	other := f.users.add(&domain.User{
		Email:        "judy@example.com",
		Login:        "judy",
		Name:         "Judy",
		Roles:        []string{domain.RoleUser},
		PasswordHash: mustHash(t, "judy-password"),
	})
	if err := f.svc.RequestReset(ctx, f.user.ID); err != nil {
		t.Fatalf("RequestReset: %v", err)
	}
	code := f.mailer.lastCode().payload
	if err := f.svc.ConfirmReset(ctx, other.ID, code, "new-password-1"); err != domain.ErrTokenInvalid {
		t.Fatalf("cross-account code: expected ErrTokenInvalid, got %v", err)
	}
}

func TestResetService_ConfirmReset_Expired(t *testing.T) {
	f := newResetFixture(t)
	ctx := context.Background()

	if err := f.svc.RequestReset(ctx, f.user.ID); err != nil {
		t.Fatalf("RequestReset: %v", err)
	}
	code := f.mailer.lastCode().payload

	f.svc.now = func() time.Time { return time.Now().Add(16 * time.Minute) }
	if err := f.svc.ConfirmReset(ctx, f.user.ID, code, "new-password-1"); err != domain.ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestResetService_SiblingCodesStayValid(t *testing.T) {
	f := newResetFixture(t)
	ctx := context.Background()

	// Two independent requests, both codes outstanding.
	if err := f.svc.RequestReset(ctx, f.user.ID); err != nil {
		t.Fatalf("RequestReset: %v", err)
	}
	first := f.mailer.lastCode().payload
	if err := f.svc.RequestReset(ctx, f.user.ID); err != nil {
		t.Fatalf("RequestReset: %v", err)
	}
	second := f.mailer.lastCode().payload

	if err := f.svc.ConfirmReset(ctx, f.user.ID, first, "new-password-1"); err != nil {
		t.Fatalf("first code: %v", err)
	}
	// Redeeming one code leaves the other alive. This asymmetry with the
	// invite flow is intentional.
	if err := f.svc.ConfirmReset(ctx, f.user.ID, second, "new-password-2"); err != nil {
		t.Fatalf("second code should still redeem: %v", err)
	}

	saved, _ := f.users.FindByID(ctx, f.user.ID)
	if err := bcrypt.CompareHashAndPassword([]byte(saved.PasswordHash), []byte("new-password-2")); err != nil {
		t.Fatalf("latest password not in effect: %v", err)
	}
}

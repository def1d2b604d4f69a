package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/barcrafted/bar-system/internal/core/domain"
	"github.com/barcrafted/bar-system/internal/core/ports"
)

type stubAuthService struct {
	loginOperatorFn func(ctx context.Context, identifier, password string) (*ports.Session, error)
	loginStaffFn    func(ctx context.Context, barKey, identifier, password string) (*ports.StaffSession, error)
	refreshFn       func(ctx context.Context, refreshToken string) (string, error)
}

func (s *stubAuthService) LoginOperator(ctx context.Context, identifier, password string) (*ports.Session, error) {
	return s.loginOperatorFn(ctx, identifier, password)
}

func (s *stubAuthService) LoginStaff(ctx context.Context, barKey, identifier, password string) (*ports.StaffSession, error) {
	return s.loginStaffFn(ctx, barKey, identifier, password)
}

func (s *stubAuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	return s.refreshFn(ctx, refreshToken)
}

func jsonRequest(method, target, body string) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req, httptest.NewRecorder()
}

func newHandlerEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newHandlerEcho()
	stub := &stubAuthService{
		loginOperatorFn: func(_ context.Context, identifier, password string) (*ports.Session, error) {
			if identifier != "alice" || password != "s3cret-pass" {
				t.Fatalf("unexpected args: %s %s", identifier, password)
			}
			return &ports.Session{
				AccessToken:  "access-1",
				RefreshToken: "refresh-1",
				User:         &domain.User{ID: 1, Login: "alice", Roles: []string{domain.RoleUser}},
			}, nil
		},
	}
	handler := NewAuthHandler(stub)

	req, rec := jsonRequest(http.MethodPost, "/auth/login", `{"identifier":"alice","password":"s3cret-pass"}`)
	c := e.NewContext(req, rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["access_token"] != "access-1" || resp["refresh_token"] != "refresh-1" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	e := newHandlerEcho()
	stub := &stubAuthService{
		loginOperatorFn: func(_ context.Context, _, _ string) (*ports.Session, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	req, rec := jsonRequest(http.MethodPost, "/auth/login", `{"identifier":"alice"}`)
	c := e.NewContext(req, rec)

	err := handler.Login(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newHandlerEcho()
	stub := &stubAuthService{
		loginOperatorFn: func(_ context.Context, _, _ string) (*ports.Session, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub)

	req, rec := jsonRequest(http.MethodPost, "/auth/login", `{"identifier":"alice","password":"wrong-pass1"}`)
	c := e.NewContext(req, rec)

	// The sentinel flows out untouched; the central error handler maps it.
	if err := handler.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_StaffLogin_Success(t *testing.T) {
	e := newHandlerEcho()
	stub := &stubAuthService{
		loginStaffFn: func(_ context.Context, barKey, identifier, password string) (*ports.StaffSession, error) {
			if barKey != "blue-door" {
				t.Fatalf("unexpected bar key %q", barKey)
			}
			return &ports.StaffSession{
				Session: ports.Session{
					AccessToken:  "access-1",
					RefreshToken: "refresh-1",
					User:         &domain.User{ID: 2, Login: identifier},
				},
				Bar:       &domain.Bar{ID: 3, Key: barKey, Name: "The Blue Door"},
				Favorites: []domain.Cocktail{{ID: 1, Name: "Negroni"}},
			}, nil
		},
	}
	handler := NewAuthHandler(stub)

	req, rec := jsonRequest(http.MethodPost, "/auth/bar/login",
		`{"bar_key":"blue-door","identifier":"dave","password":"staff-pass1"}`)
	c := e.NewContext(req, rec)

	if err := handler.StaffLogin(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if _, ok := resp["bar"]; !ok {
		t.Fatalf("expected bar in payload: %+v", resp)
	}
	if _, ok := resp["favorites"]; !ok {
		t.Fatalf("expected favorites in payload: %+v", resp)
	}
}

func TestAuthHandler_Refresh(t *testing.T) {
	e := newHandlerEcho()
	stub := &stubAuthService{
		refreshFn: func(_ context.Context, refreshToken string) (string, error) {
			if refreshToken != "refresh-1" {
				t.Fatalf("unexpected token %q", refreshToken)
			}
			return "access-2", nil
		},
	}
	handler := NewAuthHandler(stub)

	req, rec := jsonRequest(http.MethodPost, "/auth/refresh", `{"refresh_token":"refresh-1"}`)
	c := e.NewContext(req, rec)

	if err := handler.Refresh(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp refreshResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.AccessToken != "access-2" {
		t.Fatalf("unexpected access token %q", resp.AccessToken)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	e := newHandlerEcho()
	handler := NewAuthHandler(&stubAuthService{})

	req, rec := jsonRequest(http.MethodPost, "/auth/logout", "")
	c := e.NewContext(req, rec)

	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

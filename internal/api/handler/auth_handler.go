package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/barcrafted/bar-system/internal/api/metrics"
	"github.com/barcrafted/bar-system/internal/core/domain"
	"github.com/barcrafted/bar-system/internal/core/ports"
)

// AuthHandler handles login, refresh and logout.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password"   validate:"required"`
}

type staffLoginRequest struct {
	BarKey     string `json:"bar_key"    validate:"required"`
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password"   validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type refreshResponse struct {
	AccessToken string `json:"access_token"`
}

// Login authenticates an operator and returns access+refresh credentials.
//
// @Summary      Operator login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  ports.Session
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	session, err := h.authService.LoginOperator(c.Request().Context(), req.Identifier, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("operator", loginResult(err)).Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("operator", "success").Inc()
	metrics.CredentialsIssuedTotal.WithLabelValues("access").Inc()
	metrics.CredentialsIssuedTotal.WithLabelValues("refresh").Inc()
	return c.JSON(http.StatusOK, session)
}

// StaffLogin authenticates bar staff against their workplace key and returns
// credentials plus the workplace-scoped favorites.
//
// @Summary      Staff login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      staffLoginRequest  true  "Workplace key and credentials"
// @Success      200   {object}  ports.StaffSession
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /auth/bar/login [post]
func (h *AuthHandler) StaffLogin(c echo.Context) error {
	var req staffLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	session, err := h.authService.LoginStaff(c.Request().Context(), req.BarKey, req.Identifier, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("staff", loginResult(err)).Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("staff", "success").Inc()
	metrics.CredentialsIssuedTotal.WithLabelValues("access").Inc()
	metrics.CredentialsIssuedTotal.WithLabelValues("refresh").Inc()
	return c.JSON(http.StatusOK, session)
}

// Refresh exchanges a refresh credential for a new access credential.
//
// @Summary      Refresh access credential
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      refreshRequest  true  "Refresh credential"
// @Success      200   {object}  refreshResponse
// @Failure      400   {object}  map[string]string
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	access, err := h.authService.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return err
	}

	metrics.CredentialsIssuedTotal.WithLabelValues("access").Inc()
	return c.JSON(http.StatusOK, refreshResponse{AccessToken: access})
}

// Logout acknowledges the client discarding its credentials. No server-side
// revocation exists; short TTLs bound the exposure.
//
// @Summary      Logout
// @Tags         auth
// @Success      204  "no content"
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrUserNotFound):
		return "invalid"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	default:
		return "error"
	}
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/barcrafted/bar-system/internal/api/metrics"
	"github.com/barcrafted/bar-system/internal/api/middleware"
	"github.com/barcrafted/bar-system/internal/core/domain"
	"github.com/barcrafted/bar-system/internal/core/ports"
	"github.com/barcrafted/bar-system/internal/core/token"
)

// InviteHandler drives the invite-session flow: open a session from a raw
// token, set the first password, ask for a new invite.
type InviteHandler struct {
	invites  ports.InviteService
	accounts ports.AccountService
	codec    *token.Codec
}

func NewInviteHandler(invites ports.InviteService, accounts ports.AccountService, codec *token.Codec) *InviteHandler {
	return &InviteHandler{invites: invites, accounts: accounts, codec: codec}
}

type openSessionRequest struct {
	Token string `json:"token"`
}

type sessionTokenResponse struct {
	SessionToken string `json:"session_token"`
}

type confirmPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

type acceptedResponse struct {
	Message string `json:"message"`
}

// OpenSession exchanges a raw invite token for an invite-session credential.
// A request without a raw token but with a still-valid session credential is
// a continuation: the open session is simply confirmed, supporting page
// reloads mid-flow.
//
// @Summary      Open an invite session
// @Tags         invite
// @Accept       json
// @Produce      json
// @Param        body  body      openSessionRequest  true  "Raw invite token (optional when continuing)"
// @Success      200   {object}  sessionTokenResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      410   {object}  map[string]string
// @Router       /auth/invite/session [post]
func (h *InviteHandler) OpenSession(c echo.Context) error {
	var req openSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if req.Token == "" {
		return h.continueSession(c)
	}

	sessionToken, err := h.invites.OpenSession(c.Request().Context(), req.Token)
	if err != nil {
		metrics.OneTimeTokensTotal.WithLabelValues(string(domain.PurposeInvite), "rejected").Inc()
		return err
	}

	metrics.CredentialsIssuedTotal.WithLabelValues("invite").Inc()
	return c.JSON(http.StatusOK, sessionTokenResponse{SessionToken: sessionToken})
}

// continueSession treats an existing valid invite credential as "session
// already open" rather than an error.
func (h *InviteHandler) continueSession(c echo.Context) error {
	authHeader := c.Request().Header.Get("Authorization")
	if len(authHeader) > 7 {
		raw := authHeader[7:] // strip "Bearer "
		if _, err := h.codec.Verify(raw, token.KindInvite); err == nil {
			return c.JSON(http.StatusOK, sessionTokenResponse{SessionToken: raw})
		}
	}
	return domain.ErrTokenInvalid
}

// ConfirmPassword sets the invited user's first password and returns the
// profile fields needed to bootstrap a normal session.
//
// @Summary      Set password via invite session
// @Tags         invite
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      confirmPasswordRequest  true  "New password"
// @Success      200   {object}  ports.InviteResult
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      410   {object}  map[string]string
// @Router       /auth/invite/password [post]
func (h *InviteHandler) ConfirmPassword(c echo.Context) error {
	var req confirmPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	claims := middleware.InviteClaimsFrom(c)
	result, err := h.invites.ConfirmPassword(c.Request().Context(), claims, req.Password)
	if err != nil {
		metrics.OneTimeTokensTotal.WithLabelValues(string(domain.PurposeInvite), "rejected").Inc()
		return err
	}

	metrics.OneTimeTokensTotal.WithLabelValues(string(domain.PurposeInvite), "redeemed").Inc()
	return c.JSON(http.StatusOK, result)
}

// Reissue invalidates outstanding invites for the session's user and
// delivers a fresh one out-of-band.
//
// @Summary      Reissue invite
// @Tags         invite
// @Produce      json
// @Security     BearerAuth
// @Success      202  {object}  acceptedResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /auth/invite/reissue [post]
func (h *InviteHandler) Reissue(c echo.Context) error {
	claims := middleware.InviteClaimsFrom(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing invite session")
	}

	if err := h.accounts.ReissueInvite(c.Request().Context(), claims.UserID); err != nil {
		return err
	}

	metrics.OneTimeTokensTotal.WithLabelValues(string(domain.PurposeInvite), "issued").Inc()
	return c.JSON(http.StatusAccepted, acceptedResponse{Message: "invite sent"})
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/barcrafted/bar-system/internal/api/metrics"
	"github.com/barcrafted/bar-system/internal/core/domain"
	"github.com/barcrafted/bar-system/internal/core/ports"
)

// PasswordHandler handles the reset-code flow on an authenticated account.
type PasswordHandler struct {
	resets ports.ResetService
}

func NewPasswordHandler(resets ports.ResetService) *PasswordHandler {
	return &PasswordHandler{resets: resets}
}

type confirmResetRequest struct {
	Code     string `json:"code"     validate:"required,len=6,numeric"`
	Password string `json:"password" validate:"required,min=8"`
}

// RequestReset issues a one-time code delivered out-of-band.
//
// @Summary      Request a password reset code
// @Tags         password
// @Produce      json
// @Security     BearerAuth
// @Success      202  {object}  acceptedResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/password/reset [post]
func (h *PasswordHandler) RequestReset(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.resets.RequestReset(c.Request().Context(), identity.UserID); err != nil {
		return err
	}

	metrics.OneTimeTokensTotal.WithLabelValues(string(domain.PurposeReset), "issued").Inc()
	return c.JSON(http.StatusAccepted, acceptedResponse{Message: "reset code sent"})
}

// ConfirmReset redeems a code and replaces the password.
//
// @Summary      Confirm password via reset code
// @Tags         password
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  confirmResetRequest  true  "Code and new password"
// @Success      204   "no content"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      410   {object}  map[string]string
// @Router       /auth/password/confirm [post]
func (h *PasswordHandler) ConfirmReset(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req confirmResetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.resets.ConfirmReset(c.Request().Context(), identity.UserID, req.Code, req.Password); err != nil {
		metrics.OneTimeTokensTotal.WithLabelValues(string(domain.PurposeReset), "rejected").Inc()
		return err
	}

	metrics.OneTimeTokensTotal.WithLabelValues(string(domain.PurposeReset), "redeemed").Inc()
	return c.NoContent(http.StatusNoContent)
}

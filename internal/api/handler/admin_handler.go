package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/barcrafted/bar-system/internal/api/metrics"
	"github.com/barcrafted/bar-system/internal/core/domain"
	"github.com/barcrafted/bar-system/internal/core/ports"
)

// AdminHandler exposes staff provisioning and role management.
type AdminHandler struct {
	accounts ports.AccountService
}

func NewAdminHandler(accounts ports.AccountService) *AdminHandler {
	return &AdminHandler{accounts: accounts}
}

type createStaffRequest struct {
	Email string   `json:"email"  validate:"required,email"`
	Login string   `json:"login"  validate:"required"`
	Name  string   `json:"name"   validate:"required"`
	Roles []string `json:"roles"  validate:"required,min=1,dive,oneof=user staff bar_admin super_admin"`
	BarID *int64   `json:"bar_id"`
}

type updateRolesRequest struct {
	Roles []string `json:"roles" validate:"required,min=1,dive,oneof=user staff bar_admin super_admin"`
}

// CreateStaff creates a staff record and delivers an invite out-of-band.
//
// @Summary      Create a staff account
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createStaffRequest  true  "Staff account details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /admin/users [post]
func (h *AdminHandler) CreateStaff(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createStaffRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.accounts.CreateStaff(c.Request().Context(), identity, ports.CreateStaffInput{
		Email: req.Email,
		Login: req.Login,
		Name:  req.Name,
		Roles: req.Roles,
		BarID: req.BarID,
	})
	if err != nil {
		return err
	}

	metrics.OneTimeTokensTotal.WithLabelValues(string(domain.PurposeInvite), "issued").Inc()
	return c.JSON(http.StatusCreated, user)
}

// UpdateRoles replaces a user's role set.
//
// @Summary      Update a user's roles
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                 true  "User id"
// @Param        body  body      updateRolesRequest  true  "New role set"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /admin/users/{id}/roles [put]
func (h *AdminHandler) UpdateRoles(c echo.Context) error {
	userID, err := pathUserID(c)
	if err != nil {
		return err
	}

	var req updateRolesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.accounts.UpdateRoles(c.Request().Context(), userID, req.Roles)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// ReissueInvite invalidates a user's outstanding invites and delivers a new one.
//
// @Summary      Reissue a user's invite
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "User id"
// @Success      202  {object}  acceptedResponse
// @Failure      404  {object}  map[string]string
// @Router       /admin/users/{id}/invite [post]
func (h *AdminHandler) ReissueInvite(c echo.Context) error {
	userID, err := pathUserID(c)
	if err != nil {
		return err
	}

	if err := h.accounts.ReissueInvite(c.Request().Context(), userID); err != nil {
		return err
	}

	metrics.OneTimeTokensTotal.WithLabelValues(string(domain.PurposeInvite), "issued").Inc()
	return c.JSON(http.StatusAccepted, acceptedResponse{Message: "invite sent"})
}

func pathUserID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	return id, nil
}

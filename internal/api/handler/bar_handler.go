package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/barcrafted/bar-system/internal/core/domain"
	"github.com/barcrafted/bar-system/internal/core/ports"
)

// BarHandler serves the thin workplace data the staff client fetches after
// authenticating.
type BarHandler struct {
	bars ports.BarRepository
}

func NewBarHandler(bars ports.BarRepository) *BarHandler {
	return &BarHandler{bars: bars}
}

// Favorites lists a bar's favorite cocktails. Staff may only read their own
// workplace; super_admin may read any.
//
// @Summary      Workplace favorites
// @Tags         bars
// @Produce      json
// @Security     BearerAuth
// @Param        key  path  string  true  "Bar key"
// @Success      200  {array}   domain.Cocktail
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /bars/{key}/favorites [get]
func (h *BarHandler) Favorites(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	bar, err := h.bars.FindByKey(c.Request().Context(), c.Param("key"))
	if err != nil {
		return err
	}

	if !identity.HasAnyRole(domain.RoleSuperAdmin) {
		if identity.BarID == nil || *identity.BarID != bar.ID {
			return domain.ErrForbidden
		}
	}

	favorites, err := h.bars.ListFavorites(c.Request().Context(), bar.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, favorites)
}

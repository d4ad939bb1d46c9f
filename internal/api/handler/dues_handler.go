package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/khatahub/khata-dashboard/internal/core/domain"
	"github.com/khatahub/khata-dashboard/internal/core/ports"
)

// DuesHandler proxies due operations to the remote khata API. Errors are
// surfaced inline per screen; they never touch the session.
type DuesHandler struct {
	api ports.DataAPI
}

func NewDuesHandler(api ports.DataAPI) *DuesHandler {
	return &DuesHandler{api: api}
}

// List returns the dues visible to the current identity.
//
// @Summary      List dues
// @Tags         dues
// @Produce      json
// @Success      200  {array}  domain.Due
// @Router       /api/dues [get]
func (h *DuesHandler) List(c echo.Context) error {
	dues, err := h.api.ListDues(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dues)
}

// Create records a new due against a retailer. Only supplier sessions may
// create dues; the guard's user_type claim gates it before the upstream call,
// which enforces the same rule authoritatively.
//
// @Summary      Create a due
// @Tags         dues
// @Accept       json
// @Produce      json
// @Param        body  body      domain.NewDue  true  "Due fields"
// @Success      201   {object}  domain.Due
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/dues [post]
func (h *DuesHandler) Create(c echo.Context) error {
	if ut, ok := c.Get("user_type").(string); ok && ut != domain.UserTypeSupplier {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "only suppliers can create dues"})
	}

	var req domain.NewDue
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	created, err := h.api.CreateDue(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// Summary returns the supplier-side dues aggregate.
//
// @Summary      Dues summary
// @Tags         dues
// @Produce      json
// @Success      200  {object}  domain.DueSummary
// @Router       /api/dues/summary [get]
func (h *DuesHandler) Summary(c echo.Context) error {
	summary, err := h.api.DuesSummary(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

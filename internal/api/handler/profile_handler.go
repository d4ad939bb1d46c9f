package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/khatahub/khata-dashboard/internal/core/domain"
	"github.com/khatahub/khata-dashboard/internal/core/ports"
)

// ProfileHandler serves the business profile screen.
type ProfileHandler struct {
	api ports.DataAPI
}

func NewProfileHandler(api ports.DataAPI) *ProfileHandler {
	return &ProfileHandler{api: api}
}

// Get fetches the identity for the stored credential.
//
// @Summary      Get profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  domain.Identity
// @Router       /api/profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	ident, err := h.api.Profile(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ident)
}

// Update replaces the mutable identity fields.
//
// @Summary      Update profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      domain.ProfileUpdate  true  "Fields to update"
// @Success      200   {object}  domain.Identity
// @Failure      400   {object}  map[string]string
// @Router       /api/profile [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	var req domain.ProfileUpdate
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	ident, err := h.api.UpdateProfile(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ident)
}

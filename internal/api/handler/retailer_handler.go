package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/khatahub/khata-dashboard/internal/core/ports"
)

// RetailerHandler serves the supplier-side retailer search box.
type RetailerHandler struct {
	api ports.DataAPI
}

func NewRetailerHandler(api ports.DataAPI) *RetailerHandler {
	return &RetailerHandler{api: api}
}

// Search looks up retailers by name or phone. The gateway short-circuits
// queries under three characters, so undersized input yields an empty list
// without an upstream call.
//
// @Summary      Search retailers
// @Tags         retailers
// @Produce      json
// @Param        q    query    string  true  "Search text, min 3 chars"
// @Success      200  {array}  domain.Identity
// @Router       /api/retailers/search [get]
func (h *RetailerHandler) Search(c echo.Context) error {
	results, err := h.api.SearchRetailers(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, results)
}

// Get fetches a single retailer profile.
//
// @Summary      Get retailer
// @Tags         retailers
// @Produce      json
// @Param        id   path      int  true  "Retailer id"
// @Success      200  {object}  domain.Identity
// @Failure      400  {object}  map[string]string
// @Router       /api/retailers/{id} [get]
func (h *RetailerHandler) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid retailer id"})
	}

	ident, err := h.api.GetRetailer(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ident)
}

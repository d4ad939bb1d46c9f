package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/khatahub/khata-dashboard/internal/probe"
)

// ConnectivityProber reports the latest upstream connectivity check.
type ConnectivityProber interface {
	Snapshot() probe.Status
}

// StatusHandler serves the local liveness probe and the connectivity
// indicator widget.
type StatusHandler struct {
	prober ConnectivityProber
}

func NewStatusHandler(prober ConnectivityProber) *StatusHandler {
	return &StatusHandler{prober: prober}
}

// Liveness confirms the dashboard process itself is alive.
//
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *StatusHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Connectivity reports the latest remote-API probe result.
//
// @Summary      Upstream connectivity
// @Tags         health
// @Produce      json
// @Success      200  {object}  probe.Status
// @Router       /status [get]
func (h *StatusHandler) Connectivity(c echo.Context) error {
	return c.JSON(http.StatusOK, h.prober.Snapshot())
}

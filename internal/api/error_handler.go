package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/khatahub/khata-dashboard/internal/core/domain"
)

// errorResponse is the canonical error envelope for all dashboard errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps gateway and domain errors to appropriate HTTP status codes.
//   - Passes upstream error details through unmodified, since the remote
//     service owns the business rules behind them.
//   - Logs unexpected errors without leaking details to the browser.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// A 401 from any upstream call has already cleared the credential and
	// invalidated the session; the browser lands on the login screen.
	if errors.Is(err, domain.ErrUnauthorized) {
		return http.StatusUnauthorized, "session expired"
	}
	if errors.Is(err, domain.ErrUnreachable) {
		return http.StatusBadGateway, "khata service unreachable"
	}

	// Structured upstream errors keep their status and message.
	var ue *domain.UpstreamError
	if errors.As(err, &ue) {
		msg := ue.Detail
		if msg == "" {
			msg = http.StatusText(ue.StatusCode)
		}
		return ue.StatusCode, msg
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

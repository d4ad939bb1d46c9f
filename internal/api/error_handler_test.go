package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/khatahub/khata-dashboard/internal/core/domain"
)

func render(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/dues", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return rec, body
}

func TestErrorHandler_Unauthorized(t *testing.T) {
	rec, body := render(t, fmt.Errorf("gateway dues_list: %w", domain.ErrUnauthorized))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if body["error"] != "session expired" {
		t.Fatalf("unexpected message: %q", body["error"])
	}
}

func TestErrorHandler_Unreachable(t *testing.T) {
	rec, body := render(t, fmt.Errorf("gateway health: %w", domain.ErrUnreachable))
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if body["error"] != "khata service unreachable" {
		t.Fatalf("unexpected message: %q", body["error"])
	}
}

func TestErrorHandler_UpstreamErrorPassesThrough(t *testing.T) {
	rec, body := render(t, &domain.UpstreamError{StatusCode: 400, Detail: "Only suppliers can view summary"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body["error"] != "Only suppliers can view summary" {
		t.Fatalf("unexpected message: %q", body["error"])
	}
}

func TestErrorHandler_UpstreamErrorWithoutDetail(t *testing.T) {
	rec, body := render(t, &domain.UpstreamError{StatusCode: 422})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if body["error"] != http.StatusText(http.StatusUnprocessableEntity) {
		t.Fatalf("unexpected message: %q", body["error"])
	}
}

func TestErrorHandler_EchoErrorPassesThrough(t *testing.T) {
	rec, body := render(t, echo.NewHTTPError(http.StatusNotFound, "not found"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if body["error"] != "not found" {
		t.Fatalf("unexpected message: %q", body["error"])
	}
}

func TestErrorHandler_UnexpectedErrorIsGeneric(t *testing.T) {
	rec, body := render(t, errors.New("something internal leaked"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body["error"] != "internal server error" {
		t.Fatalf("expected generic message, got %q", body["error"])
	}
}

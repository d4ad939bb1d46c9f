package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/khatahub/khata-dashboard/internal/api/middleware"
	"github.com/khatahub/khata-dashboard/internal/core/domain"
	"github.com/khatahub/khata-dashboard/internal/core/ports"
)

const sessionCookieTTL = 24 * time.Hour

// AuthHandler exposes the session store to the browser: login, register,
// logout, and the current-identity lookup the route-gated UI boots from.
type AuthHandler struct {
	session ports.Session
	secret  string
}

func NewAuthHandler(session ports.Session, secret string) *AuthHandler {
	return &AuthHandler{session: session, secret: secret}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	BusinessName string `json:"business_name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required"`
	GSTNumber    string `json:"gst_number" validate:"required"`
	Password     string `json:"password" validate:"required"`
	UserType     string `json:"user_type" validate:"required,oneof=SUPPLIER RETAILER"`
	Address      string `json:"address"`

	PANNumber       string  `json:"pan_number"`
	AnnualTurnover  float64 `json:"annual_turnover"`
	YearsInBusiness int     `json:"years_in_business"`
	BusinessType    string  `json:"business_type"`
	ShopOwnership   string  `json:"shop_ownership" validate:"omitempty,oneof=owned rented"`
	HasBankAccount  bool    `json:"has_bank_account"`
}

type sessionResponse struct {
	Status domain.SessionStatus `json:"status"`
	User   *domain.Identity     `json:"user,omitempty"`
}

// Login authenticates the operator against the remote khata API.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := h.session.Login(c.Request().Context(), req.Email, req.Password); err != nil {
		msg := h.session.LastError()
		if msg == "" {
			msg = "invalid credentials"
		}
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": msg})
	}

	return h.respondAuthenticated(c, http.StatusOK)
}

// Register creates an account and signs the operator in.
//
// @Summary      Register a new business account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	data := domain.RegistrationData{
		BusinessName:    req.BusinessName,
		Email:           req.Email,
		Phone:           req.Phone,
		GSTNumber:       req.GSTNumber,
		Password:        req.Password,
		UserType:        req.UserType,
		Address:         req.Address,
		PANNumber:       req.PANNumber,
		AnnualTurnover:  req.AnnualTurnover,
		YearsInBusiness: req.YearsInBusiness,
		BusinessType:    req.BusinessType,
		ShopOwnership:   req.ShopOwnership,
		HasBankAccount:  req.HasBankAccount,
	}

	if err := h.session.Register(c.Request().Context(), data); err != nil {
		msg := h.session.LastError()
		if msg == "" {
			msg = "registration failed"
		}
		return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
	}

	return h.respondAuthenticated(c, http.StatusCreated)
}

// Logout clears the session. It always reports success to the browser, even
// when the server-side call failed.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.session.Logout(c.Request().Context())
	c.SetCookie(middleware.ClearedSessionCookie())
	return c.JSON(http.StatusOK, map[string]string{"message": "logged out"})
}

// Me reports the current session state for the route-gated UI.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, sessionResponse{
		Status: h.session.Status(),
		User:   h.session.Identity(),
	})
}

func (h *AuthHandler) respondAuthenticated(c echo.Context, code int) error {
	ident := h.session.Identity()
	if ident == nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "session state inconsistent")
	}

	cookie, err := middleware.MintSessionCookie(h.secret, ident, sessionCookieTTL)
	if err != nil {
		return err
	}
	c.SetCookie(cookie)

	return c.JSON(code, sessionResponse{
		Status: h.session.Status(),
		User:   ident,
	})
}

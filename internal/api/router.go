package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/khatahub/khata-dashboard/internal/api/handler"
	"github.com/khatahub/khata-dashboard/internal/api/middleware"
	"github.com/khatahub/khata-dashboard/internal/core/ports"
)

// Dependencies carries everything the router needs wired in.
type Dependencies struct {
	Session ports.Session
	Data    ports.DataAPI
	Prober  handler.ConnectivityProber
	Secret  string
	Log     zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("khata_dashboard"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Session, deps.Secret)
	duesHandler := handler.NewDuesHandler(deps.Data)
	retailerHandler := handler.NewRetailerHandler(deps.Data)
	txHandler := handler.NewTransactionHandler(deps.Data)
	profileHandler := handler.NewProfileHandler(deps.Data)
	statusHandler := handler.NewStatusHandler(deps.Prober)

	// --- Public routes ---
	e.GET("/health", statusHandler.Liveness)
	e.GET("/status", statusHandler.Connectivity)
	e.GET("/metrics", echoprometheus.NewHandler())

	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/register", authHandler.Register)
	// Logout stays public: it must always succeed, even for a browser
	// whose session is already gone.
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/me", authHandler.Me)

	// --- Route-gated screens ---
	guard := middleware.Guard(deps.Secret, deps.Session)
	g := e.Group("/api", guard)

	g.GET("/retailers/search", retailerHandler.Search)
	g.GET("/retailers/:id", retailerHandler.Get)

	g.GET("/dues", duesHandler.List)
	g.POST("/dues", duesHandler.Create)
	g.GET("/dues/summary", duesHandler.Summary)

	g.GET("/transactions", txHandler.List)
	g.POST("/transactions", txHandler.Create)

	g.GET("/profile", profileHandler.Get)
	g.PUT("/profile", profileHandler.Update)

	return e
}

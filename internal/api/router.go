package api

import (
	"net/url"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/courtside/auth-gateway/docs"
	"github.com/courtside/auth-gateway/internal/api/handler"
	"github.com/courtside/auth-gateway/internal/api/middleware"
	"github.com/courtside/auth-gateway/internal/core/ports"
)

// Deps carries the constructed collaborators the router wires together.
type Deps struct {
	Log      zerolog.Logger
	Mongo    *mongo.Database
	Redis    *redis.Client
	Auth     ports.AuthService
	Tokens   ports.TokenStore
	Upstream *url.URL
	Frontend *url.URL
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("courtside"))

	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)
	e.Validator = handler.NewValidator()

	// Edge guard first (request metadata only), then the authoritative
	// in-app gate (hydrated session).
	e.Use(middleware.Guard(deps.Log))
	e.Use(middleware.CompletionGate(deps.Auth, deps.Log))

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	auth := e.Group("/auth")
	auth.POST("/signin", authHandler.SignIn)
	auth.POST("/private", authHandler.PrivateSignIn)
	auth.POST("/signup", authHandler.SignUp)
	auth.POST("/signout", authHandler.SignOut)
	auth.POST("/refresh", authHandler.Refresh)
	auth.PUT("/profile", authHandler.UpdateProfile)
	auth.GET("/session", authHandler.Session)

	// --- Platform API pass-through ---
	e.Any("/api/*", handler.NewAPIProxy(deps.Upstream, deps.Tokens, deps.Auth, deps.Log))

	// --- Health probes / operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/healthz", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/healthz/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Everything else is a page: guard, then hand to the frontend ---
	if deps.Frontend != nil {
		e.Any("/*", handler.NewPageProxy(deps.Frontend, deps.Log))
	}

	return e
}

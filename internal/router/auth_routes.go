package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fleet-management/internal/handler"
	"github.com/iliyamo/fleet-management/internal/middleware"
)

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.  The limiter middleware wraps
// the whole /v1/auth group because login and the reset endpoints are the
// ones worth brute-forcing.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	g := e.Group("/v1/auth")
	if limiter != nil {
		g.Use(limiter)
	}
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Rotates the refresh token.
	g.POST("/refresh", a.Refresh)
	// Logout accepts a JSON body containing a `refresh_token` and
	// invalidates that token; no JWT is required.
	g.POST("/logout", a.Logout)

	// Password reset: request a code, verify it, set the new password.
	// Each step carries the opaque reset_token returned by the first.
	g.POST("/reset/request", a.RequestReset)
	g.POST("/reset/verify", a.VerifyReset)
	g.POST("/reset/confirm", a.ConfirmReset)

	// Protected endpoints require a valid access token.  Both roles are
	// accepted here; role-specific groups add their own RequireRole.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("MANAGER", "DRIVER"))
	auth.GET("/me", a.Me)
}

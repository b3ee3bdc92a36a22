package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fleet-management/internal/handler"
	"github.com/iliyamo/fleet-management/internal/middleware"
)

// RegisterDriver registers driver-scoped endpoints under /v1.  All routes
// require a valid JWT and the DRIVER role.  Drivers can only read their
// own profile, the vehicles assigned to them and those vehicles' papers.
func RegisterDriver(e *echo.Echo, h *handler.DriverFleetHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("DRIVER"),
	)
	g.GET("/my-vehicles", h.MyVehicles)
	g.GET("/my-vehicles/:id/documents", h.MyVehicleDocuments)
}

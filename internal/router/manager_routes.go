package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fleet-management/internal/handler"
	"github.com/iliyamo/fleet-management/internal/middleware"
)

// RegisterManager registers manager-scoped endpoints under /v1.  All routes
// require a valid JWT and the MANAGER role.  Managers own every fleet
// mutation: vehicles, driver profiles, documents and maintenance records.
func RegisterManager(e *echo.Echo, h *handler.ManagerHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("MANAGER"),
	)

	g.POST("/vehicles", h.CreateVehicle)
	g.GET("/vehicles", h.ListVehicles)
	g.GET("/vehicles/:id", h.GetVehicle)
	g.PUT("/vehicles/:id", h.UpdateVehicle)
	g.DELETE("/vehicles/:id", h.DeleteVehicle)
	g.POST("/vehicles/:id/assign", h.AssignVehicle)

	g.GET("/vehicles/:id/documents", h.ListDocuments)
	g.POST("/documents", h.CreateDocument)
	g.PUT("/documents/:id", h.UpdateDocument)
	g.DELETE("/documents/:id", h.DeleteDocument)

	g.GET("/vehicles/:id/maintenance", h.ListMaintenance)
	g.POST("/maintenance", h.CreateMaintenance)
	g.PUT("/maintenance/:id", h.UpdateMaintenance)
	g.DELETE("/maintenance/:id", h.DeleteMaintenance)

	g.GET("/drivers", h.ListDrivers)
	g.PUT("/drivers/:id", h.UpdateDriver)
	g.DELETE("/drivers/:id", h.DeleteDriver)
}

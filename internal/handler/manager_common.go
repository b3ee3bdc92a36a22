package handler // handler defines http handlers

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fleet-management/internal/repository"
)

// ManagerHandler bundles repositories for fleet-record mutations.
// Role policy is enforced by the route group middleware, so every
// method here can assume a MANAGER caller.
type ManagerHandler struct {
	VehicleRepo     *repository.VehicleRepo
	DriverRepo      *repository.DriverRepo
	DocumentRepo    *repository.DocumentRepo
	MaintenanceRepo *repository.MaintenanceRepo
}

// NewManagerHandler constructs a new ManagerHandler and panics if any dependency is nil
func NewManagerHandler(vehicleRepo *repository.VehicleRepo, driverRepo *repository.DriverRepo, documentRepo *repository.DocumentRepo, maintenanceRepo *repository.MaintenanceRepo) *ManagerHandler {
	if vehicleRepo == nil || driverRepo == nil || documentRepo == nil || maintenanceRepo == nil {
		panic("nil repository passed to NewManagerHandler")
	}
	return &ManagerHandler{
		VehicleRepo:     vehicleRepo,
		DriverRepo:      driverRepo,
		DocumentRepo:    documentRepo,
		MaintenanceRepo: maintenanceRepo,
	}
}

// getUserID extracts the user_id from echo.Context and converts it to uint64
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

package handler // driver-facing read-only fleet handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fleet-management/internal/repository"
)

// DriverFleetHandler exposes the slice of the fleet a driver may
// read: their own profile and the vehicles assigned to them.
type DriverFleetHandler struct {
	DriverRepo   *repository.DriverRepo
	VehicleRepo  *repository.VehicleRepo
	DocumentRepo *repository.DocumentRepo
}

func NewDriverFleetHandler(driverRepo *repository.DriverRepo, vehicleRepo *repository.VehicleRepo, documentRepo *repository.DocumentRepo) *DriverFleetHandler {
	if driverRepo == nil || vehicleRepo == nil || documentRepo == nil {
		panic("nil repository passed to NewDriverFleetHandler")
	}
	return &DriverFleetHandler{DriverRepo: driverRepo, VehicleRepo: vehicleRepo, DocumentRepo: documentRepo}
}

// MyVehicles handles GET /v1/my-vehicles and returns the caller's
// driver profile plus the vehicles assigned to it.
func (h *DriverFleetHandler) MyVehicles(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	driver, err := h.DriverRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "driver profile not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}

	vehicles, err := h.VehicleRepo.ListByDriver(ctx, driver.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"driver":          driver,
		"license_expired": driver.LicenseExpired(time.Now()),
		"vehicles":        vehicles,
	})
}

// MyVehicleDocuments handles GET /v1/my-vehicles/:id/documents.  The
// vehicle must be assigned to the calling driver.
func (h *DriverFleetHandler) MyVehicleDocuments(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	vehicleID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	driver, err := h.DriverRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "driver profile not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}

	v, err := h.VehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "vehicle not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	if v.DriverID == nil || *v.DriverID != driver.ID {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "vehicle not assigned to you"})
	}

	docs, err := h.DocumentRepo.ListByVehicle(ctx, vehicleID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	now := time.Now()
	items := make([]documentResp, 0, len(docs))
	for _, d := range docs {
		items = append(items, toDocumentResp(d, now))
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

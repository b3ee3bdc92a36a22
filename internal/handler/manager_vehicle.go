package handler // manager-facing vehicle handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fleet-management/internal/model"
	"github.com/iliyamo/fleet-management/internal/repository"
)

type vehicleReq struct {
	Plate   string `json:"plate"`
	Brand   string `json:"brand"`
	Model   string `json:"model"`
	Year    uint16 `json:"year"`
	Mileage uint32 `json:"mileage"`
	Status  string `json:"status"`
}

// CreateVehicle handles POST /v1/vehicles.
func (h *ManagerHandler) CreateVehicle(c echo.Context) error {
	var body vehicleReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	plate := strings.ToUpper(strings.TrimSpace(body.Plate))
	if plate == "" || strings.TrimSpace(body.Brand) == "" || strings.TrimSpace(body.Model) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "plate, brand and model are required"})
	}
	status := strings.ToUpper(strings.TrimSpace(body.Status))
	if status == "" {
		status = model.VehicleAvailable
	}
	if !model.ValidVehicleStatus(status) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "unknown vehicle status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	v := &model.Vehicle{
		Plate:   plate,
		Brand:   strings.TrimSpace(body.Brand),
		Model:   strings.TrimSpace(body.Model),
		Year:    body.Year,
		Mileage: body.Mileage,
		Status:  status,
	}
	if err := h.VehicleRepo.Create(ctx, v); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, map[string]string{"error": "plate already exists"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not create vehicle"})
	}
	return c.JSON(http.StatusCreated, v)
}

// UpdateVehicle handles PUT /v1/vehicles/:id.
func (h *ManagerHandler) UpdateVehicle(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	var body vehicleReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	v, err := h.VehicleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "vehicle not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}

	if p := strings.ToUpper(strings.TrimSpace(body.Plate)); p != "" {
		v.Plate = p
	}
	if b := strings.TrimSpace(body.Brand); b != "" {
		v.Brand = b
	}
	if m := strings.TrimSpace(body.Model); m != "" {
		v.Model = m
	}
	if body.Year != 0 {
		v.Year = body.Year
	}
	if body.Mileage != 0 {
		v.Mileage = body.Mileage
	}
	if s := strings.ToUpper(strings.TrimSpace(body.Status)); s != "" {
		if !model.ValidVehicleStatus(s) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "unknown vehicle status"})
		}
		v.Status = s
	}

	if err := h.VehicleRepo.Update(ctx, &v); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, map[string]string{"error": "plate already exists"})
		}
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "vehicle not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, v)
}

// ListVehicles handles GET /v1/vehicles.
func (h *ManagerHandler) ListVehicles(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.VehicleRepo.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

// GetVehicle handles GET /v1/vehicles/:id.
func (h *ManagerHandler) GetVehicle(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	v, err := h.VehicleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "vehicle not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, v)
}

// DeleteVehicle handles DELETE /v1/vehicles/:id.
func (h *ManagerHandler) DeleteVehicle(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.VehicleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "vehicle not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// AssignVehicle handles POST /v1/vehicles/:id/assign.  A null
// driver_id in the body clears the assignment.
func (h *ManagerHandler) AssignVehicle(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	var body struct {
		DriverID *uint64 `json:"driver_id"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if body.DriverID != nil {
		if _, err := h.DriverRepo.GetByID(ctx, *body.DriverID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return c.JSON(http.StatusNotFound, map[string]string{"error": "driver not found"})
			}
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}
	}

	if err := h.VehicleRepo.AssignDriver(ctx, id, body.DriverID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "vehicle not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "assign failed"})
	}

	v, err := h.VehicleRepo.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, v)
}

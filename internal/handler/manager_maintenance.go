package handler // manager-facing maintenance record handlers

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

type maintenanceReq struct {
	VehicleID uint64 `json:"vehicle_id"`
	MType     string `json:"mtype"`
	DueDate   string `json:"due_date"` // YYYY-MM-DD
	CostCents uint32 `json:"cost_cents"`
	Done      *bool  `json:"done"`
}

// CreateMaintenance handles POST /v1/maintenance.
func (h *ManagerHandler) CreateMaintenance(c echo.Context) error {
	var body maintenanceReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	mtype := strings.ToUpper(strings.TrimSpace(body.MType))
	if body.VehicleID == 0 || mtype == "" || body.DueDate == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "vehicle_id, mtype and due_date are required"})
	}
	if !model.ValidMaintenanceType(mtype) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "unknown maintenance type"})
	}
	due, err := time.Parse("2006-01-02", body.DueDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "due_date must be YYYY-MM-DD"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.VehicleRepo.GetByID(ctx, body.VehicleID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "vehicle not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}

	m := &model.MaintenanceRecord{
		VehicleID: body.VehicleID,
		MType:     mtype,
		DueDate:   due,
		CostCents: body.CostCents,
	}
	if body.Done != nil {
		m.Done = *body.Done
	}
	if err := h.MaintenanceRepo.Create(ctx, m); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not create maintenance record"})
	}
	return c.JSON(http.StatusCreated, m)
}

// ListMaintenance handles GET /v1/vehicles/:id/maintenance.
func (h *ManagerHandler) ListMaintenance(c echo.Context) error {
	vehicleID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.MaintenanceRepo.ListByVehicle(ctx, vehicleID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

// UpdateMaintenance handles PUT /v1/maintenance/:id.
func (h *ManagerHandler) UpdateMaintenance(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	var body maintenanceReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m, err := h.MaintenanceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "maintenance record not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}

	if t := strings.ToUpper(strings.TrimSpace(body.MType)); t != "" {
		if !model.ValidMaintenanceType(t) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "unknown maintenance type"})
		}
		m.MType = t
	}
	if body.DueDate != "" {
		due, err := time.Parse("2006-01-02", body.DueDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "due_date must be YYYY-MM-DD"})
		}
		m.DueDate = due
	}
	if body.CostCents != 0 {
		m.CostCents = body.CostCents
	}
	if body.Done != nil {
		m.Done = *body.Done
	}

	if err := h.MaintenanceRepo.Update(ctx, &m); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "maintenance record not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, m)
}

// DeleteMaintenance handles DELETE /v1/maintenance/:id.
func (h *ManagerHandler) DeleteMaintenance(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.MaintenanceRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "maintenance record not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

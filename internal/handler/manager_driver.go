package handler // manager-facing driver profile handlers

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

type driverReq struct {
	FullName      string `json:"full_name"`
	Phone         string `json:"phone"`
	Status        string `json:"status"`
	LicenseNumber string `json:"license_number"`
	LicenseExpiry string `json:"license_expiry"` // YYYY-MM-DD
}

// ListDrivers handles GET /v1/drivers.
func (h *ManagerHandler) ListDrivers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.DriverRepo.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

// UpdateDriver handles PUT /v1/drivers/:id.
func (h *ManagerHandler) UpdateDriver(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	var body driverReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	d, err := h.DriverRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "driver not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}

	if n := strings.TrimSpace(body.FullName); n != "" {
		d.FullName = n
	}
	if p := strings.TrimSpace(body.Phone); p != "" {
		d.Phone = p
	}
	if s := strings.ToUpper(strings.TrimSpace(body.Status)); s != "" {
		if s != model.DriverAvailable && s != model.DriverOnMission {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "unknown driver status"})
		}
		d.Status = s
	}
	if l := strings.TrimSpace(body.LicenseNumber); l != "" {
		d.LicenseNumber = l
	}
	if body.LicenseExpiry != "" {
		exp, err := time.Parse("2006-01-02", body.LicenseExpiry)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "license_expiry must be YYYY-MM-DD"})
		}
		d.LicenseExpiry = exp
	}

	if err := h.DriverRepo.Update(ctx, &d); err != nil {
		if errors.Is(err, repository.ErrLicenseExists) {
			return c.JSON(http.StatusConflict, map[string]string{"error": "license number already exists"})
		}
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "driver not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, d)
}

// DeleteDriver handles DELETE /v1/drivers/:id.  Only the profile is
// removed; the linked user account survives and its vehicles drop
// back to the unassigned pool.
func (h *ManagerHandler) DeleteDriver(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.DriverRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "driver not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

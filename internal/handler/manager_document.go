package handler // manager-facing vehicle document handlers

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

type documentReq struct {
	VehicleID uint64 `json:"vehicle_id"`
	DocType   string `json:"doc_type"`
	ExpiresAt string `json:"expires_at"` // YYYY-MM-DD
}

// documentResp decorates a stored document with its derived expiry
// state so clients need no date arithmetic.
type documentResp struct {
	model.VehicleDocument
	Expired      bool `json:"expired"`
	ExpiringSoon bool `json:"expiring_soon"`
}

func toDocumentResp(d model.VehicleDocument, now time.Time) documentResp {
	return documentResp{VehicleDocument: d, Expired: d.Expired(now), ExpiringSoon: d.ExpiringSoon(now)}
}

// CreateDocument handles POST /v1/documents.
func (h *ManagerHandler) CreateDocument(c echo.Context) error {
	var body documentReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	docType := strings.ToUpper(strings.TrimSpace(body.DocType))
	if body.VehicleID == 0 || docType == "" || body.ExpiresAt == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "vehicle_id, doc_type and expires_at are required"})
	}
	if !model.ValidDocType(docType) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "unknown document type"})
	}
	expires, err := time.Parse("2006-01-02", body.ExpiresAt)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "expires_at must be YYYY-MM-DD"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.VehicleRepo.GetByID(ctx, body.VehicleID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "vehicle not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}

	d := &model.VehicleDocument{VehicleID: body.VehicleID, DocType: docType, ExpiresAt: expires}
	if err := h.DocumentRepo.Create(ctx, d); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not create document"})
	}
	return c.JSON(http.StatusCreated, toDocumentResp(*d, time.Now()))
}

// ListDocuments handles GET /v1/vehicles/:id/documents.
func (h *ManagerHandler) ListDocuments(c echo.Context) error {
	vehicleID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

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

// UpdateDocument handles PUT /v1/documents/:id.
func (h *ManagerHandler) UpdateDocument(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	var body documentReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	d, err := h.DocumentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "document not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}

	if t := strings.ToUpper(strings.TrimSpace(body.DocType)); t != "" {
		if !model.ValidDocType(t) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "unknown document type"})
		}
		d.DocType = t
	}
	if body.ExpiresAt != "" {
		expires, err := time.Parse("2006-01-02", body.ExpiresAt)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "expires_at must be YYYY-MM-DD"})
		}
		d.ExpiresAt = expires
	}

	if err := h.DocumentRepo.Update(ctx, &d); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "document not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, toDocumentResp(d, time.Now()))
}

// DeleteDocument handles DELETE /v1/documents/:id.
func (h *ManagerHandler) DeleteDocument(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.DocumentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "document not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

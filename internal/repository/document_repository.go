package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/fleet-management/internal/model"
)

type DocumentRepo struct{ DB *sql.DB }

func NewDocumentRepo(db *sql.DB) *DocumentRepo { return &DocumentRepo{DB: db} }

const documentColumns = "id,vehicle_id,doc_type,expires_at,created_at"

// Create inserts a vehicle document and fills in its generated ID.
func (r *DocumentRepo) Create(ctx context.Context, d *model.VehicleDocument) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO vehicle_documents (vehicle_id, doc_type, expires_at) VALUES (?,?,?)",
		d.VehicleID, d.DocType, d.ExpiresAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	d.ID = uint64(id)
	return nil
}

// GetByID fetches a document by id.
func (r *DocumentRepo) GetByID(ctx context.Context, id uint64) (model.VehicleDocument, error) {
	var d model.VehicleDocument
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+documentColumns+" FROM vehicle_documents WHERE id=? LIMIT 1",
		id).Scan(&d.ID, &d.VehicleID, &d.DocType, &d.ExpiresAt, &d.CreatedAt)
	if err == sql.ErrNoRows {
		return d, ErrNotFound
	}
	return d, err
}

// ListByVehicle returns a vehicle's documents nearest expiry first.
func (r *DocumentRepo) ListByVehicle(ctx context.Context, vehicleID uint64) ([]model.VehicleDocument, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+documentColumns+" FROM vehicle_documents WHERE vehicle_id=? ORDER BY expires_at, id",
		vehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []model.VehicleDocument{}
	for rows.Next() {
		var d model.VehicleDocument
		if err := rows.Scan(&d.ID, &d.VehicleID, &d.DocType, &d.ExpiresAt, &d.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

// Update rewrites the mutable document fields.
func (r *DocumentRepo) Update(ctx context.Context, d *model.VehicleDocument) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE vehicle_documents SET doc_type=?, expires_at=? WHERE id=?",
		d.DocType, d.ExpiresAt, d.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a document.
func (r *DocumentRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM vehicle_documents WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/fleet-management/internal/model"
)

type MaintenanceRepo struct{ DB *sql.DB }

func NewMaintenanceRepo(db *sql.DB) *MaintenanceRepo { return &MaintenanceRepo{DB: db} }

const maintenanceColumns = "id,vehicle_id,mtype,due_date,cost_cents,done,created_at"

// Create inserts a maintenance record and fills in its generated ID.
func (r *MaintenanceRepo) Create(ctx context.Context, m *model.MaintenanceRecord) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO maintenance_records (vehicle_id, mtype, due_date, cost_cents, done) VALUES (?,?,?,?,?)",
		m.VehicleID, m.MType, m.DueDate, m.CostCents, m.Done)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}

// GetByID fetches a maintenance record by id.
func (r *MaintenanceRepo) GetByID(ctx context.Context, id uint64) (model.MaintenanceRecord, error) {
	var m model.MaintenanceRecord
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+maintenanceColumns+" FROM maintenance_records WHERE id=? LIMIT 1",
		id).Scan(&m.ID, &m.VehicleID, &m.MType, &m.DueDate, &m.CostCents, &m.Done, &m.CreatedAt)
	if err == sql.ErrNoRows {
		return m, ErrNotFound
	}
	return m, err
}

// ListByVehicle returns a vehicle's maintenance history newest first.
func (r *MaintenanceRepo) ListByVehicle(ctx context.Context, vehicleID uint64) ([]model.MaintenanceRecord, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+maintenanceColumns+" FROM maintenance_records WHERE vehicle_id=? ORDER BY due_date DESC, id DESC",
		vehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []model.MaintenanceRecord{}
	for rows.Next() {
		var m model.MaintenanceRecord
		if err := rows.Scan(&m.ID, &m.VehicleID, &m.MType, &m.DueDate, &m.CostCents, &m.Done, &m.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// Update rewrites the mutable record fields.
func (r *MaintenanceRepo) Update(ctx context.Context, m *model.MaintenanceRecord) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE maintenance_records SET mtype=?, due_date=?, cost_cents=?, done=? WHERE id=?",
		m.MType, m.DueDate, m.CostCents, m.Done, m.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a maintenance record.
func (r *MaintenanceRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM maintenance_records WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

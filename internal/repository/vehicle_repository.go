package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/fleet-management/internal/model"
)

type VehicleRepo struct{ DB *sql.DB }

func NewVehicleRepo(db *sql.DB) *VehicleRepo { return &VehicleRepo{DB: db} }

const vehicleColumns = "id,plate,brand,model,year,mileage,status,driver_id,created_at"

func scanVehicle(row interface{ Scan(...any) error }) (model.Vehicle, error) {
	var (
		v        model.Vehicle
		driverID sql.NullInt64
	)
	err := row.Scan(&v.ID, &v.Plate, &v.Brand, &v.Model, &v.Year, &v.Mileage,
		&v.Status, &driverID, &v.CreatedAt)
	if driverID.Valid {
		id := uint64(driverID.Int64)
		v.DriverID = &id
	}
	return v, err
}

// Create inserts a vehicle and fills in its generated ID.
func (r *VehicleRepo) Create(ctx context.Context, v *model.Vehicle) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO vehicles (plate, brand, model, year, mileage, status) VALUES (?,?,?,?,?,?)",
		v.Plate, v.Brand, v.Model, v.Year, v.Mileage, v.Status)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)
	return nil
}

// GetByID fetches a vehicle by id.
func (r *VehicleRepo) GetByID(ctx context.Context, id uint64) (model.Vehicle, error) {
	v, err := scanVehicle(r.DB.QueryRowContext(ctx,
		"SELECT "+vehicleColumns+" FROM vehicles WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return v, ErrNotFound
	}
	return v, err
}

// List returns all vehicles ordered by creation time, newest first.
func (r *VehicleRepo) List(ctx context.Context) ([]model.Vehicle, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+vehicleColumns+" FROM vehicles ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []model.Vehicle{}
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, rows.Err()
}

// ListByDriver returns vehicles assigned to a driver profile.
func (r *VehicleRepo) ListByDriver(ctx context.Context, driverID uint64) ([]model.Vehicle, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+vehicleColumns+" FROM vehicles WHERE driver_id=? ORDER BY created_at DESC, id DESC",
		driverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []model.Vehicle{}
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, rows.Err()
}

// Update rewrites the mutable vehicle fields.
func (r *VehicleRepo) Update(ctx context.Context, v *model.Vehicle) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE vehicles SET plate=?, brand=?, model=?, year=?, mileage=?, status=? WHERE id=?",
		v.Plate, v.Brand, v.Model, v.Year, v.Mileage, v.Status, v.ID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrConflict
		}
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// AssignDriver sets or clears the driver assignment.  A nil driverID
// returns the vehicle to the unassigned pool.
func (r *VehicleRepo) AssignDriver(ctx context.Context, vehicleID uint64, driverID *uint64) error {
	var value any
	if driverID != nil {
		value = *driverID
	}
	res, err := r.DB.ExecContext(ctx,
		"UPDATE vehicles SET driver_id=? WHERE id=?", value, vehicleID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a vehicle.  Documents and maintenance rows cascade
// at the schema level.
func (r *VehicleRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM vehicles WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

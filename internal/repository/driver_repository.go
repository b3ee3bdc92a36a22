package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/fleet-management/internal/model"
)

type DriverRepo struct{ DB *sql.DB }

func NewDriverRepo(db *sql.DB) *DriverRepo { return &DriverRepo{DB: db} }

const driverColumns = "id,user_id,full_name,phone,status,license_number,license_expiry,created_at"

func scanDriver(row interface{ Scan(...any) error }) (model.Driver, error) {
	var (
		d      model.Driver
		userID sql.NullInt64
	)
	err := row.Scan(&d.ID, &userID, &d.FullName, &d.Phone, &d.Status,
		&d.LicenseNumber, &d.LicenseExpiry, &d.CreatedAt)
	if userID.Valid {
		id := uint64(userID.Int64)
		d.UserID = &id
	}
	return d, err
}

// Create inserts a driver profile and fills in its generated ID.
func (r *DriverRepo) Create(ctx context.Context, d *model.Driver) error {
	var userID any
	if d.UserID != nil {
		userID = *d.UserID
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO drivers (user_id, full_name, phone, status, license_number, license_expiry) VALUES (?,?,?,?,?,?)",
		userID, d.FullName, d.Phone, d.Status, d.LicenseNumber, d.LicenseExpiry)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrLicenseExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	d.ID = uint64(id)
	return nil
}

// GetByID fetches a driver profile by id.
func (r *DriverRepo) GetByID(ctx context.Context, id uint64) (model.Driver, error) {
	d, err := scanDriver(r.DB.QueryRowContext(ctx,
		"SELECT "+driverColumns+" FROM drivers WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return d, ErrNotFound
	}
	return d, err
}

// GetByUserID fetches the driver profile linked to a user account.
func (r *DriverRepo) GetByUserID(ctx context.Context, userID uint64) (model.Driver, error) {
	d, err := scanDriver(r.DB.QueryRowContext(ctx,
		"SELECT "+driverColumns+" FROM drivers WHERE user_id=? LIMIT 1", userID))
	if err == sql.ErrNoRows {
		return d, ErrNotFound
	}
	return d, err
}

// List returns all driver profiles ordered by name.
func (r *DriverRepo) List(ctx context.Context) ([]model.Driver, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+driverColumns+" FROM drivers ORDER BY full_name, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []model.Driver{}
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

// Update rewrites the mutable profile fields.
func (r *DriverRepo) Update(ctx context.Context, d *model.Driver) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE drivers SET full_name=?, phone=?, status=?, license_number=?, license_expiry=? WHERE id=?",
		d.FullName, d.Phone, d.Status, d.LicenseNumber, d.LicenseExpiry, d.ID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrLicenseExists
		}
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a driver profile.  Vehicles assigned to the driver
// fall back to unassigned via ON DELETE SET NULL.
func (r *DriverRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM drivers WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

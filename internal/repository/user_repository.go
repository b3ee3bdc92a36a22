package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/fleet-management/internal/model"
	"github.com/iliyamo/fleet-management/internal/utils"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,phone,username,first_name,last_name,password_hash,role,is_active,created_at,updated_at"

// Create inserts a user and returns its ID.  The phone number is the
// login key; the username defaults to the phone when empty so the
// unique constraint never trips on blanks.
func (r *UserRepo) Create(ctx context.Context, phone, username, firstName, lastName, password, role string, cost int) (uint64, error) {
	phone = strings.TrimSpace(phone)
	username = strings.TrimSpace(username)
	if username == "" {
		username = phone
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (phone, username, first_name, last_name, password_hash, role) VALUES (?,?,?,?,?,?)",
		phone, username, firstName, lastName, hash, role)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrPhoneExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByPhone fetches a user by the normalized phone number.
func (r *UserRepo) GetByPhone(ctx context.Context, phone string) (model.User, error) {
	phone = strings.TrimSpace(phone)
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE phone=? LIMIT 1",
		phone).Scan(&u.ID, &u.Phone, &u.Username, &u.FirstName, &u.LastName,
		&u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Phone, &u.Username, &u.FirstName, &u.LastName,
		&u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// UpdatePasswordHash overwrites the stored credential for a user.
// Called only by the reset orchestrator after the intent was verified.
func (r *UserRepo) UpdatePasswordHash(ctx context.Context, userID uint64, hash string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET password_hash=?, updated_at=NOW() WHERE id=?",
		hash, userID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

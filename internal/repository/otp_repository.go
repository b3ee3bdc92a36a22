package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/fleet-management/internal/model"
)

// OTPRepo persists one-time password-reset codes (the OTP ledger).
// Issuance replaces all outstanding codes for a user inside one
// transaction so concurrent reset requests can never leave zero or
// two active rows.
type OTPRepo struct{ DB *sql.DB }

func NewOTPRepo(db *sql.DB) *OTPRepo { return &OTPRepo{DB: db} }

// Replace deletes every code belonging to the user and inserts the
// new one atomically.  Returns the inserted row ID.
func (r *OTPRepo) Replace(ctx context.Context, userID uint64, code string) (uint64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM password_reset_otps WHERE user_id=?", userID); err != nil {
		return 0, err
	}
	res, err := tx.ExecContext(ctx,
		"INSERT INTO password_reset_otps (user_id, code, created_at, is_verified) VALUES (?,?,?,0)",
		userID, code, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// FindActive returns the unexpired code row matching user and code.
// Codes older than ttl are treated as gone; sql.ErrNoRows signals
// no match either way.
func (r *OTPRepo) FindActive(ctx context.Context, userID uint64, code string, ttl time.Duration) (model.PasswordResetOTP, error) {
	cutoff := time.Now().UTC().Add(-ttl)
	var o model.PasswordResetOTP
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,user_id,code,created_at,is_verified FROM password_reset_otps WHERE user_id=? AND code=? AND created_at>=? LIMIT 1",
		userID, code, cutoff).Scan(&o.ID, &o.UserID, &o.Code, &o.CreatedAt, &o.IsVerified)
	return o, err
}

// MarkVerified flips the is_verified flag on a code row.
func (r *OTPRepo) MarkVerified(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE password_reset_otps SET is_verified=1 WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteAllForUser purges every code for a user.  Called when a new
// password is committed.
func (r *OTPRepo) DeleteAllForUser(ctx context.Context, userID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"DELETE FROM password_reset_otps WHERE user_id=?", userID)
	return err
}

// CountForUser reports how many code rows a user currently has.
// Used by operational tooling and tests; the flow itself never needs it.
func (r *OTPRepo) CountForUser(ctx context.Context, userID uint64) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM password_reset_otps WHERE user_id=?", userID).Scan(&n)
	return n, err
}

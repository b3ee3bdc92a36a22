package auth

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/iliyamo/fleet-management/internal/model"
	"github.com/iliyamo/fleet-management/internal/utils"
)

// UserStore is the slice of the credential store the flow needs.
// *repository.UserRepo satisfies it.
type UserStore interface {
	GetByPhone(ctx context.Context, phone string) (model.User, error)
	UpdatePasswordHash(ctx context.Context, userID uint64, hash string) error
}

// OTPStore is the slice of the OTP ledger the flow needs.
// *repository.OTPRepo satisfies it.  Replace must purge all prior
// codes for the user and insert the new one atomically.
type OTPStore interface {
	Replace(ctx context.Context, userID uint64, code string) (uint64, error)
	FindActive(ctx context.Context, userID uint64, code string, ttl time.Duration) (model.PasswordResetOTP, error)
	MarkVerified(ctx context.Context, id uint64) error
	DeleteAllForUser(ctx context.Context, userID uint64) error
}

// SessionRevoker drops every live session of a user.
// *repository.TokenRepo satisfies it.
type SessionRevoker interface {
	RevokeAllForUser(ctx context.Context, userID uint64) error
}

// CodeDelivery hands a freshly issued code to the out-of-band
// channel (SMS).  Delivery is best-effort: a failing deliverer must
// never block the reset flow.
type CodeDelivery interface {
	Deliver(ctx context.Context, phone, code string) error
}

// Flow drives phone+password authentication and the reset flow
// START -> CODE_SENT -> CODE_VERIFIED -> DONE.  Each step validates
// the state recorded in the intent store, so requests may arrive on
// any instance in any order without corrupting the flow.
type Flow struct {
	users      UserStore
	otps       OTPStore
	sessions   SessionRevoker
	intents    IntentStore
	delivery   CodeDelivery
	bcryptCost int
	otpTTL     time.Duration
	resetTTL   time.Duration
}

// NewFlow wires the flow to its collaborators.  otpTTL bounds code
// lifetime, resetTTL bounds the whole flow; both should come from
// config.
func NewFlow(users UserStore, otps OTPStore, sessions SessionRevoker, intents IntentStore,
	delivery CodeDelivery, bcryptCost int, otpTTL, resetTTL time.Duration) *Flow {
	return &Flow{
		users:      users,
		otps:       otps,
		sessions:   sessions,
		intents:    intents,
		delivery:   delivery,
		bcryptCost: bcryptCost,
		otpTTL:     otpTTL,
		resetTTL:   resetTTL,
	}
}

// Authenticate checks phone+password against the credential store.
// Unknown phone, wrong password and a deactivated account all map to
// ErrInvalidCredentials so the response never reveals whether the
// number is registered.  Store failures propagate unchanged.
func (f *Flow) Authenticate(ctx context.Context, phone, password string) (model.User, error) {
	u, err := f.users.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, ErrInvalidCredentials
		}
		return model.User{}, err
	}
	if !u.IsActive || !utils.VerifyPassword(u.PasswordHash, password) {
		return model.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// RequestReset starts a reset flow for the given phone number.  It
// invalidates every outstanding code for the user, issues a fresh
// six-digit code, hands it to the delivery channel and records a
// pending intent.  The returned token identifies the flow in the
// verify and commit steps.
func (f *Flow) RequestReset(ctx context.Context, phone string) (string, error) {
	u, err := f.users.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrUnknownPhone
		}
		return "", err
	}

	code, err := utils.NewOTPCode()
	if err != nil {
		return "", err
	}
	if _, err := f.otps.Replace(ctx, u.ID, code); err != nil {
		return "", err
	}

	// Best effort: a dead SMS channel must not block the flow.
	if err := f.delivery.Deliver(ctx, u.Phone, code); err != nil {
		log.Printf("auth: code delivery to %s failed: %v", u.Phone, err)
	}

	token, err := utils.NewResetToken()
	if err != nil {
		return "", err
	}
	if err := f.intents.Put(ctx, token, ResetIntent{UserID: u.ID}, f.resetTTL); err != nil {
		return "", err
	}
	return token, nil
}

// VerifyCode checks a submitted code against the active code of the
// intent's user.  A wrong code leaves the intent untouched so the
// user may retry; a right one marks both the code row and the
// intent as verified.
func (f *Flow) VerifyCode(ctx context.Context, token, code string) error {
	intent, ok, err := f.intents.Get(ctx, token)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNoPendingReset
	}

	otp, err := f.otps.FindActive(ctx, intent.UserID, code, f.otpTTL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrInvalidCode
		}
		return err
	}
	if err := f.otps.MarkVerified(ctx, otp.ID); err != nil {
		return err
	}
	intent.Verified = true
	return f.intents.Put(ctx, token, intent, f.resetTTL)
}

// CommitPassword finishes the flow: it requires a verified intent,
// rewrites the credential, purges the user's codes, revokes all live
// sessions and destroys the intent.  After it returns, only the new
// password authenticates.
func (f *Flow) CommitPassword(ctx context.Context, token, newPassword string) error {
	intent, ok, err := f.intents.Get(ctx, token)
	if err != nil {
		return err
	}
	if !ok || !intent.Verified {
		return ErrResetNotVerified
	}

	hash, err := utils.HashPassword(newPassword, f.bcryptCost)
	if err != nil {
		return err
	}
	if err := f.users.UpdatePasswordHash(ctx, intent.UserID, hash); err != nil {
		return err
	}
	if err := f.otps.DeleteAllForUser(ctx, intent.UserID); err != nil {
		return err
	}
	if err := f.sessions.RevokeAllForUser(ctx, intent.UserID); err != nil {
		// Sessions die with the refresh TTL anyway; the commit itself succeeded.
		log.Printf("auth: revoking sessions for user %d failed: %v", intent.UserID, err)
	}
	return f.intents.Delete(ctx, token)
}

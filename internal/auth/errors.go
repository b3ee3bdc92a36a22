// Package auth implements phone-based authentication and the
// three-step one-time-code password-reset flow.  It owns no storage
// of its own: credentials and codes live behind narrow store
// interfaces and the session-scoped reset intent lives in an
// IntentStore keyed by an opaque reset token.
package auth

import "errors"

// Expected, recoverable failures of the auth core.  Handlers surface
// them as JSON rejections with the flow state unchanged; none of
// them is fatal to the process.
var (
	// ErrInvalidCredentials covers both unknown phone and wrong
	// password at login, so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid phone or password")

	// ErrUnknownPhone is returned when a reset is requested for an
	// unregistered number.  Revealing non-existence here is a
	// deliberate product choice: no code is issued on this path.
	ErrUnknownPhone = errors.New("unknown phone number")

	// ErrNoPendingReset is returned when a code is submitted without
	// a live reset intent (never requested, or expired).
	ErrNoPendingReset = errors.New("no pending password reset")

	// ErrInvalidCode is returned when the submitted code does not
	// match the active code.  The intent survives so the user can retry.
	ErrInvalidCode = errors.New("invalid code")

	// ErrResetNotVerified is returned when a new password is
	// committed before the code was verified (or after the intent
	// was already consumed).
	ErrResetNotVerified = errors.New("reset not verified")
)

// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios
// without parsing driver error strings.
package repository

import "errors"

// ErrPhoneExists is returned when registration collides with an
// existing phone or username.  Handlers should translate this into
// an HTTP 409 response.
var ErrPhoneExists = errors.New("phone already registered")

// ErrLicenseExists is returned when a driver profile collides with
// an existing licence number.
var ErrLicenseExists = errors.New("license number already exists")

// ErrNotFound is returned when a fleet record lookup matches no row.
// Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a delete or update cannot be
// performed because of conflicting state, such as deleting a
// vehicle that still has documents attached. Handlers should
// translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

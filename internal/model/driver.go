package model

import "time"

// Driver statuses stored in drivers.status.
const (
	DriverAvailable = "AVAILABLE"
	DriverOnMission = "ON_MISSION"
)

// Driver mirrors the `drivers` table.  A driver profile is created
// automatically when a DRIVER user registers and is linked 1:1 to
// that user via UserID.  The profile carries the licence data the
// fleet manager tracks.
//
// Fields:
//  ID            – primary key identifier.
//  UserID        – owning user account (nullable for imported legacy rows).
//  FullName      – display name copied from the user at registration.
//  Phone         – contact phone copied from the user at registration.
//  Status        – AVAILABLE or ON_MISSION.
//  LicenseNumber – unique driving licence number.
//  LicenseExpiry – licence expiration date.
//  CreatedAt     – timestamp of creation.
type Driver struct {
	ID            uint64    // drivers.id
	UserID        *uint64   // drivers.user_id (nullable)
	FullName      string    // drivers.full_name
	Phone         string    // drivers.phone
	Status        string    // drivers.status
	LicenseNumber string    // drivers.license_number
	LicenseExpiry time.Time // drivers.license_expiry
	CreatedAt     time.Time // drivers.created_at
}

// LicenseExpired reports whether the licence expiry date lies before now.
func (d Driver) LicenseExpired(now time.Time) bool {
	return d.LicenseExpiry.Before(truncateToDay(now))
}

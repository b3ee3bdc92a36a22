package model

import "time"

// Document types stored in vehicle_documents.doc_type.
const (
	DocInsurance    = "INSURANCE"
	DocInspection   = "INSPECTION"
	DocRegistration = "REGISTRATION"
)

// Days before expiry at which a document counts as expiring soon.
const expiryWarningDays = 30

// VehicleDocument mirrors the `vehicle_documents` table.  Each row
// tracks one expiring paper (insurance, technical inspection,
// registration card) attached to a vehicle.
//
// Fields:
//  ID        – primary key identifier.
//  VehicleID – vehicle the document belongs to.
//  DocType   – INSURANCE, INSPECTION or REGISTRATION.
//  ExpiresAt – expiration date of the document.
//  CreatedAt – timestamp of creation.
type VehicleDocument struct {
	ID        uint64    // vehicle_documents.id
	VehicleID uint64    // vehicle_documents.vehicle_id
	DocType   string    // vehicle_documents.doc_type
	ExpiresAt time.Time // vehicle_documents.expires_at
	CreatedAt time.Time // vehicle_documents.created_at
}

// Expired reports whether the document expired strictly before today.
func (d VehicleDocument) Expired(now time.Time) bool {
	return d.ExpiresAt.Before(truncateToDay(now))
}

// ExpiringSoon reports whether the document expires within the next
// 30 days (inclusive) without being expired yet.
func (d VehicleDocument) ExpiringSoon(now time.Time) bool {
	today := truncateToDay(now)
	days := int(d.ExpiresAt.Sub(today).Hours() / 24)
	return days >= 0 && days <= expiryWarningDays
}

// ValidDocType reports whether s is one of the known document types.
func ValidDocType(s string) bool {
	return s == DocInsurance || s == DocInspection || s == DocRegistration
}

// truncateToDay drops the time-of-day component so date comparisons
// behave like calendar comparisons regardless of the hour.
func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

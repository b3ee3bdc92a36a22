package model

import "time"

// Vehicle statuses stored in vehicles.status.
const (
	VehicleAvailable   = "AVAILABLE"
	VehicleOnMission   = "ON_MISSION"
	VehicleMaintenance = "MAINTENANCE"
)

// Vehicle mirrors the `vehicles` table.  A vehicle may be assigned
// to at most one driver at a time; the assignment is nullable so a
// vehicle can sit in the pool unassigned.
//
// Fields:
//  ID        – primary key identifier.
//  Plate     – unique registration plate.
//  Brand     – manufacturer name.
//  Model     – commercial model name.
//  Year      – year of first registration.
//  Mileage   – odometer reading in kilometres.
//  Status    – AVAILABLE, ON_MISSION or MAINTENANCE.
//  DriverID  – assigned driver (nullable).
//  CreatedAt – timestamp of creation.
type Vehicle struct {
	ID        uint64    // vehicles.id
	Plate     string    // vehicles.plate
	Brand     string    // vehicles.brand
	Model     string    // vehicles.model
	Year      uint16    // vehicles.year
	Mileage   uint32    // vehicles.mileage
	Status    string    // vehicles.status
	DriverID  *uint64   // vehicles.driver_id (nullable)
	CreatedAt time.Time // vehicles.created_at
}

// ValidVehicleStatus reports whether s is one of the known vehicle statuses.
func ValidVehicleStatus(s string) bool {
	return s == VehicleAvailable || s == VehicleOnMission || s == VehicleMaintenance
}

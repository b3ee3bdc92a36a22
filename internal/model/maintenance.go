package model

import "time"

// Maintenance types stored in maintenance_records.mtype.
const (
	MaintOilChange = "OIL_CHANGE"
	MaintRepair    = "REPAIR"
	MaintService   = "SERVICE"
)

// MaintenanceRecord mirrors the `maintenance_records` table.  Each
// row is one planned or completed workshop intervention on a
// vehicle.  Costs are stored in cents to avoid floating point.
//
// Fields:
//  ID        – primary key identifier.
//  VehicleID – vehicle the intervention applies to.
//  MType     – OIL_CHANGE, REPAIR or SERVICE.
//  DueDate   – date the intervention is scheduled for.
//  CostCents – cost in cents.
//  Done      – whether the intervention was carried out.
//  CreatedAt – timestamp of creation.
type MaintenanceRecord struct {
	ID        uint64    // maintenance_records.id
	VehicleID uint64    // maintenance_records.vehicle_id
	MType     string    // maintenance_records.mtype
	DueDate   time.Time // maintenance_records.due_date
	CostCents uint32    // maintenance_records.cost_cents
	Done      bool      // maintenance_records.done
	CreatedAt time.Time // maintenance_records.created_at
}

// Overdue reports whether the intervention is past due and still open.
func (m MaintenanceRecord) Overdue(now time.Time) bool {
	return !m.Done && m.DueDate.Before(truncateToDay(now))
}

// ValidMaintenanceType reports whether s is one of the known types.
func ValidMaintenanceType(s string) bool {
	return s == MaintOilChange || s == MaintRepair || s == MaintService
}

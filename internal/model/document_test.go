package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var noon = time.Date(2025, 6, 15, 12, 30, 0, 0, time.UTC)

func docExpiring(days int) VehicleDocument {
	return VehicleDocument{DocType: DocInsurance, ExpiresAt: noon.AddDate(0, 0, days).Truncate(24 * time.Hour)}
}

func TestDocumentExpired(t *testing.T) {
	require.True(t, docExpiring(-1).Expired(noon))
	require.False(t, docExpiring(0).Expired(noon))
	require.False(t, docExpiring(10).Expired(noon))
}

func TestDocumentExpiringSoon(t *testing.T) {
	require.False(t, docExpiring(-1).ExpiringSoon(noon))
	require.True(t, docExpiring(0).ExpiringSoon(noon))
	require.True(t, docExpiring(30).ExpiringSoon(noon))
	require.False(t, docExpiring(31).ExpiringSoon(noon))
}

func TestValidDocType(t *testing.T) {
	require.True(t, ValidDocType(DocInsurance))
	require.True(t, ValidDocType(DocInspection))
	require.True(t, ValidDocType(DocRegistration))
	require.False(t, ValidDocType("insurance"))
	require.False(t, ValidDocType(""))
}

func TestMaintenanceOverdue(t *testing.T) {
	past := noon.AddDate(0, 0, -3)
	require.True(t, MaintenanceRecord{MType: MaintRepair, DueDate: past}.Overdue(noon))
	require.False(t, MaintenanceRecord{MType: MaintRepair, DueDate: past, Done: true}.Overdue(noon))
	require.False(t, MaintenanceRecord{MType: MaintRepair, DueDate: noon.AddDate(0, 0, 3)}.Overdue(noon))
}

func TestDriverLicenseExpired(t *testing.T) {
	require.True(t, Driver{LicenseExpiry: noon.AddDate(0, 0, -1)}.LicenseExpired(noon))
	require.False(t, Driver{LicenseExpiry: noon.AddDate(0, 0, 1)}.LicenseExpired(noon))
}

func TestUserFullName(t *testing.T) {
	require.Equal(t, "Ada Lovelace", User{FirstName: "Ada", LastName: "Lovelace"}.FullName())
	require.Equal(t, "Ada", User{FirstName: "Ada"}.FullName())
	require.Equal(t, "Lovelace", User{LastName: "Lovelace"}.FullName())
}

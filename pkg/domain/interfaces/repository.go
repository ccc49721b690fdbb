package interfaces

import (
	"context"

	"github.com/hospitalops/pulse/pkg/domain/model/alert"
	"github.com/hospitalops/pulse/pkg/domain/model/resource"
	"github.com/hospitalops/pulse/pkg/domain/types"
)

// Repository is the persistence seam of the server. Implementations:
// pkg/repository/memory and pkg/repository/redis.
type Repository interface {
	// Alert management
	PutAlert(ctx context.Context, a *alert.Alert) error
	GetAlert(ctx context.Context, id types.AlertID) (*alert.Alert, error)
	DeleteAlert(ctx context.Context, id types.AlertID) error
	ListAlerts(ctx context.Context, filter alert.Filter) (alert.Alerts, error)
	MarkAllAlertsRead(ctx context.Context) error

	// Bed management
	PutBed(ctx context.Context, b *resource.Bed) error
	GetBed(ctx context.Context, id types.BedID) (*resource.Bed, error)
	DeleteBed(ctx context.Context, id types.BedID) error
	ListBeds(ctx context.Context) ([]*resource.Bed, error)

	// Patient management
	PutPatient(ctx context.Context, p *resource.Patient) error
	GetPatient(ctx context.Context, id types.PatientID) (*resource.Patient, error)
	DeletePatient(ctx context.Context, id types.PatientID) error
	ListPatients(ctx context.Context) ([]*resource.Patient, error)

	// Staff management
	PutStaff(ctx context.Context, s *resource.Staff) error
	GetStaff(ctx context.Context, id types.StaffID) (*resource.Staff, error)
	DeleteStaff(ctx context.Context, id types.StaffID) error
	ListStaff(ctx context.Context) ([]*resource.Staff, error)

	// Equipment management
	PutEquipment(ctx context.Context, e *resource.Equipment) error
	GetEquipment(ctx context.Context, id types.EquipmentID) (*resource.Equipment, error)
	DeleteEquipment(ctx context.Context, id types.EquipmentID) error
	ListEquipment(ctx context.Context) ([]*resource.Equipment, error)
}

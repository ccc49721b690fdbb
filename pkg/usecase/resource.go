package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/hospitalops/pulse/pkg/domain/model/errs"
	"github.com/hospitalops/pulse/pkg/domain/model/resource"
	"github.com/hospitalops/pulse/pkg/domain/types"
	"github.com/hospitalops/pulse/pkg/service/analytics"
	"github.com/hospitalops/pulse/pkg/utils/clock"
)

func (u *UseCases) CreateBed(ctx context.Context, number, ward string) (*resource.Bed, error) {
	b := resource.NewBed(ctx, number, ward)
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if err := u.repository.PutBed(ctx, b); err != nil {
		return nil, goerr.Wrap(err, "failed to store bed", goerr.V("bed_id", b.ID))
	}
	return b, nil
}

func (u *UseCases) UpdateBed(ctx context.Context, id types.BedID, status types.BedStatus, patientID types.PatientID) (*resource.Bed, error) {
	b, err := u.repository.GetBed(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	b.Status = status
	b.PatientID = patientID
	if status != types.BedStatusOccupied {
		b.PatientID = ""
	}
	b.UpdatedAt = clock.Now(ctx)

	if err := u.repository.PutBed(ctx, b); err != nil {
		return nil, goerr.Wrap(err, "failed to store bed", goerr.V("bed_id", id))
	}
	return b, nil
}

func (u *UseCases) ListBeds(ctx context.Context) ([]*resource.Bed, error) {
	return u.repository.ListBeds(ctx)
}

func (u *UseCases) DeleteBed(ctx context.Context, id types.BedID) error {
	return u.repository.DeleteBed(ctx, id)
}

func (u *UseCases) CreateStaff(ctx context.Context, name string, role types.StaffRole, department string) (*resource.Staff, error) {
	s := resource.NewStaff(ctx, name, role, department)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if err := u.repository.PutStaff(ctx, s); err != nil {
		return nil, goerr.Wrap(err, "failed to store staff", goerr.V("staff_id", s.ID))
	}
	return s, nil
}

func (u *UseCases) SetStaffDuty(ctx context.Context, id types.StaffID, onDuty bool) (*resource.Staff, error) {
	s, err := u.repository.GetStaff(ctx, id)
	if err != nil {
		return nil, err
	}

	s.OnDuty = onDuty
	s.UpdatedAt = clock.Now(ctx)

	if err := u.repository.PutStaff(ctx, s); err != nil {
		return nil, goerr.Wrap(err, "failed to store staff", goerr.V("staff_id", id))
	}
	return s, nil
}

func (u *UseCases) ListStaff(ctx context.Context) ([]*resource.Staff, error) {
	return u.repository.ListStaff(ctx)
}

func (u *UseCases) DeleteStaff(ctx context.Context, id types.StaffID) error {
	return u.repository.DeleteStaff(ctx, id)
}

func (u *UseCases) CreateEquipment(ctx context.Context, name, equipType, location string) (*resource.Equipment, error) {
	e := resource.NewEquipment(ctx, name, equipType, location)
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if err := u.repository.PutEquipment(ctx, e); err != nil {
		return nil, goerr.Wrap(err, "failed to store equipment", goerr.V("equipment_id", e.ID))
	}
	return e, nil
}

func (u *UseCases) UpdateEquipmentStatus(ctx context.Context, id types.EquipmentID, status types.EquipmentStatus) (*resource.Equipment, error) {
	e, err := u.repository.GetEquipment(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	e.Status = status
	e.UpdatedAt = clock.Now(ctx)

	if err := u.repository.PutEquipment(ctx, e); err != nil {
		return nil, goerr.Wrap(err, "failed to store equipment", goerr.V("equipment_id", id))
	}
	return e, nil
}

func (u *UseCases) ListEquipment(ctx context.Context) ([]*resource.Equipment, error) {
	return u.repository.ListEquipment(ctx)
}

func (u *UseCases) DeleteEquipment(ctx context.Context, id types.EquipmentID) error {
	return u.repository.DeleteEquipment(ctx, id)
}

// OptimizeResources sends the current inventory to the analytics service
// and returns its recommendations.
func (u *UseCases) OptimizeResources(ctx context.Context) (*analytics.Recommendations, error) {
	if u.analytics == nil {
		return nil, goerr.New("analytics service is not configured", goerr.T(errs.TagInvalidState))
	}

	beds, err := u.repository.ListBeds(ctx)
	if err != nil {
		return nil, err
	}
	staff, err := u.repository.ListStaff(ctx)
	if err != nil {
		return nil, err
	}
	equipment, err := u.repository.ListEquipment(ctx)
	if err != nil {
		return nil, err
	}

	return u.analytics.Optimize(ctx, analytics.OptimizeInput{
		Beds:      beds,
		Staff:     staff,
		Equipment: equipment,
	})
}

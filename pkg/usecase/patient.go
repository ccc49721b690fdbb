package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/hospitalops/pulse/pkg/domain/model/errs"
	"github.com/hospitalops/pulse/pkg/domain/model/resource"
	"github.com/hospitalops/pulse/pkg/domain/types"
	"github.com/hospitalops/pulse/pkg/utils/clock"
	"github.com/hospitalops/pulse/pkg/utils/logging"
)

// AdmitPatient registers a new patient. When a bed is given it is occupied
// atomically with the admission, and an occupied bed rejects the admission.
func (u *UseCases) AdmitPatient(ctx context.Context, input resource.PatientInput) (*resource.Patient, error) {
	p := resource.NewPatient(ctx, input)
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if p.BedID != "" {
		if err := u.occupyBed(ctx, p.BedID, p.ID); err != nil {
			return nil, err
		}
	}

	if err := u.repository.PutPatient(ctx, p); err != nil {
		return nil, goerr.Wrap(err, "failed to store patient", goerr.V("patient_id", p.ID))
	}

	logging.From(ctx).Info("Patient admitted",
		"patient_id", p.ID,
		"mrn", p.MRN,
		"bed_id", p.BedID)

	return p, nil
}

func (u *UseCases) GetPatient(ctx context.Context, id types.PatientID) (*resource.Patient, error) {
	return u.repository.GetPatient(ctx, id)
}

func (u *UseCases) ListPatients(ctx context.Context) ([]*resource.Patient, error) {
	return u.repository.ListPatients(ctx)
}

// UpdatePatient applies non-nil fields of the patch.
func (u *UseCases) UpdatePatient(ctx context.Context, id types.PatientID, patch resource.PatientPatch) (*resource.Patient, error) {
	p, err := u.repository.GetPatient(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Diagnosis != nil {
		p.Diagnosis = *patch.Diagnosis
	}
	if patch.BloodType != nil {
		p.BloodType = *patch.BloodType
	}
	p.UpdatedAt = clock.Now(ctx)

	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := u.repository.PutPatient(ctx, p); err != nil {
		return nil, goerr.Wrap(err, "failed to store patient", goerr.V("patient_id", id))
	}
	return p, nil
}

// TransferPatient moves the patient to another bed, freeing the old one.
func (u *UseCases) TransferPatient(ctx context.Context, id types.PatientID, bedID types.BedID) (*resource.Patient, error) {
	p, err := u.repository.GetPatient(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status != types.PatientStatusAdmitted && p.Status != types.PatientStatusTransferred {
		return nil, goerr.New("patient is not admitted",
			goerr.T(errs.TagInvalidState), goerr.V("patient_id", id), goerr.V("status", p.Status))
	}
	if p.BedID == bedID {
		return p, nil
	}

	if err := u.occupyBed(ctx, bedID, p.ID); err != nil {
		return nil, err
	}
	if p.BedID != "" {
		if err := u.releaseBed(ctx, p.BedID); err != nil {
			return nil, err
		}
	}

	p.BedID = bedID
	p.Status = types.PatientStatusTransferred
	p.UpdatedAt = clock.Now(ctx)

	if err := u.repository.PutPatient(ctx, p); err != nil {
		return nil, goerr.Wrap(err, "failed to store patient", goerr.V("patient_id", id))
	}
	return p, nil
}

// DischargePatient releases the patient's bed and marks the record
// discharged. Discharging twice returns the stored record unchanged.
func (u *UseCases) DischargePatient(ctx context.Context, id types.PatientID) (*resource.Patient, error) {
	p, err := u.repository.GetPatient(ctx, id)
	if err != nil {
		return nil, err
	}

	bedID := p.BedID
	if !p.Discharge(ctx) {
		return p, nil
	}
	if bedID != "" {
		if err := u.releaseBed(ctx, bedID); err != nil {
			return nil, err
		}
	}

	if err := u.repository.PutPatient(ctx, p); err != nil {
		return nil, goerr.Wrap(err, "failed to store patient", goerr.V("patient_id", id))
	}

	logging.From(ctx).Info("Patient discharged", "patient_id", p.ID, "mrn", p.MRN)
	return p, nil
}

func (u *UseCases) DeletePatient(ctx context.Context, id types.PatientID) error {
	p, err := u.repository.GetPatient(ctx, id)
	if err != nil {
		return err
	}
	if p.BedID != "" {
		if err := u.releaseBed(ctx, p.BedID); err != nil {
			return err
		}
	}
	return u.repository.DeletePatient(ctx, id)
}

func (u *UseCases) occupyBed(ctx context.Context, bedID types.BedID, patientID types.PatientID) error {
	b, err := u.repository.GetBed(ctx, bedID)
	if err != nil {
		return err
	}
	if b.Status == types.BedStatusOccupied && b.PatientID != patientID {
		return goerr.New("bed is already occupied",
			goerr.T(errs.TagConflict), goerr.V("bed_id", bedID), goerr.V("patient_id", b.PatientID))
	}

	b.Status = types.BedStatusOccupied
	b.PatientID = patientID
	b.UpdatedAt = clock.Now(ctx)

	if err := u.repository.PutBed(ctx, b); err != nil {
		return goerr.Wrap(err, "failed to store bed", goerr.V("bed_id", bedID))
	}
	return nil
}

func (u *UseCases) releaseBed(ctx context.Context, bedID types.BedID) error {
	b, err := u.repository.GetBed(ctx, bedID)
	if err != nil {
		if goerr.HasTag(err, errs.TagNotFound) {
			return nil
		}
		return err
	}

	b.Status = types.BedStatusAvailable
	b.PatientID = ""
	b.UpdatedAt = clock.Now(ctx)

	if err := u.repository.PutBed(ctx, b); err != nil {
		return goerr.Wrap(err, "failed to store bed", goerr.V("bed_id", bedID))
	}
	return nil
}

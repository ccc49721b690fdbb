package resource

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/hospitalops/pulse/pkg/domain/model/errs"
	"github.com/hospitalops/pulse/pkg/domain/types"
	"github.com/hospitalops/pulse/pkg/utils/clock"
)

// Patient is an admitted or discharged patient record. BedID is set while
// the patient occupies a bed; the bed mirrors it through its PatientID.
type Patient struct {
	ID           types.PatientID     `json:"id"`
	MRN          string              `json:"mrn"`
	Name         string              `json:"name"`
	Age          int                 `json:"age"`
	Gender       string              `json:"gender,omitempty"`
	BloodType    string              `json:"blood_type,omitempty"`
	Diagnosis    string              `json:"diagnosis"`
	Status       types.PatientStatus `json:"status"`
	BedID        types.BedID         `json:"bed_id,omitempty"`
	AdmittedAt   time.Time           `json:"admitted_at"`
	DischargedAt *time.Time          `json:"discharged_at,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// PatientInput carries the admission fields.
type PatientInput struct {
	MRN       string      `json:"mrn"`
	Name      string      `json:"name"`
	Age       int         `json:"age"`
	Gender    string      `json:"gender,omitempty"`
	BloodType string      `json:"blood_type,omitempty"`
	Diagnosis string      `json:"diagnosis"`
	BedID     types.BedID `json:"bed_id,omitempty"`
}

// PatientPatch carries optional record updates. Nil fields stay unchanged.
type PatientPatch struct {
	Name      *string `json:"name,omitempty"`
	Diagnosis *string `json:"diagnosis,omitempty"`
	BloodType *string `json:"blood_type,omitempty"`
}

func NewPatient(ctx context.Context, input PatientInput) *Patient {
	now := clock.Now(ctx)
	return &Patient{
		ID:         types.NewPatientID(),
		MRN:        input.MRN,
		Name:       input.Name,
		Age:        input.Age,
		Gender:     input.Gender,
		BloodType:  input.BloodType,
		Diagnosis:  input.Diagnosis,
		Status:     types.PatientStatusAdmitted,
		BedID:      input.BedID,
		AdmittedAt: now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (x *Patient) Validate() error {
	if x.MRN == "" {
		return goerr.New("medical record number is required", goerr.T(errs.TagValidation))
	}
	if x.Name == "" {
		return goerr.New("patient name is required", goerr.T(errs.TagValidation))
	}
	if x.Age < 0 {
		return goerr.New("patient age must not be negative", goerr.T(errs.TagValidation))
	}
	if x.Diagnosis == "" {
		return goerr.New("diagnosis is required", goerr.T(errs.TagValidation))
	}
	return x.Status.Validate()
}

// Discharge moves the patient to discharged and releases the bed link.
// Returns false if the patient is already discharged.
func (x *Patient) Discharge(ctx context.Context) bool {
	if x.Status == types.PatientStatusDischarged {
		return false
	}
	now := clock.Now(ctx)
	x.Status = types.PatientStatusDischarged
	x.BedID = ""
	x.DischargedAt = &now
	x.UpdatedAt = now
	return true
}

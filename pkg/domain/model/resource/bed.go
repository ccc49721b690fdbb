package resource

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/hospitalops/pulse/pkg/domain/model/errs"
	"github.com/hospitalops/pulse/pkg/domain/types"
	"github.com/hospitalops/pulse/pkg/utils/clock"
)

type Bed struct {
	ID        types.BedID     `json:"id"`
	Number    string          `json:"number"`
	Ward      string          `json:"ward"`
	Status    types.BedStatus `json:"status"`
	PatientID types.PatientID `json:"patient_id,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func NewBed(ctx context.Context, number, ward string) *Bed {
	now := clock.Now(ctx)
	return &Bed{
		ID:        types.NewBedID(),
		Number:    number,
		Ward:      ward,
		Status:    types.BedStatusAvailable,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (x *Bed) Validate() error {
	if x.Number == "" {
		return goerr.New("bed number is required", goerr.T(errs.TagValidation))
	}
	if x.Ward == "" {
		return goerr.New("ward is required", goerr.T(errs.TagValidation))
	}
	return x.Status.Validate()
}

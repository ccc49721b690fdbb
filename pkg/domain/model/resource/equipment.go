package resource

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/hospitalops/pulse/pkg/domain/model/errs"
	"github.com/hospitalops/pulse/pkg/domain/types"
	"github.com/hospitalops/pulse/pkg/utils/clock"
)

type Equipment struct {
	ID              types.EquipmentID     `json:"id"`
	Name            string                `json:"name"`
	Type            string                `json:"type"`
	Location        string                `json:"location"`
	Status          types.EquipmentStatus `json:"status"`
	NextMaintenance *time.Time            `json:"next_maintenance,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

func NewEquipment(ctx context.Context, name, equipType, location string) *Equipment {
	now := clock.Now(ctx)
	return &Equipment{
		ID:        types.NewEquipmentID(),
		Name:      name,
		Type:      equipType,
		Location:  location,
		Status:    types.EquipmentStatusOperational,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (x *Equipment) Validate() error {
	if x.Name == "" {
		return goerr.New("equipment name is required", goerr.T(errs.TagValidation))
	}
	return x.Status.Validate()
}

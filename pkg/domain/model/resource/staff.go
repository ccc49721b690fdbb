package resource

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/hospitalops/pulse/pkg/domain/model/errs"
	"github.com/hospitalops/pulse/pkg/domain/types"
	"github.com/hospitalops/pulse/pkg/utils/clock"
)

type Staff struct {
	ID         types.StaffID   `json:"id"`
	Name       string          `json:"name"`
	Role       types.StaffRole `json:"role"`
	Department string          `json:"department"`
	OnDuty     bool            `json:"on_duty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func NewStaff(ctx context.Context, name string, role types.StaffRole, department string) *Staff {
	now := clock.Now(ctx)
	return &Staff{
		ID:         types.NewStaffID(),
		Name:       name,
		Role:       role,
		Department: department,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (x *Staff) Validate() error {
	if x.Name == "" {
		return goerr.New("staff name is required", goerr.T(errs.TagValidation))
	}
	return x.Role.Validate()
}

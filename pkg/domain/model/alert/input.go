package alert

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/hospitalops/pulse/pkg/domain/model/errs"
	"github.com/hospitalops/pulse/pkg/domain/types"
)

// CreateInput is the payload for creating an alert.
type CreateInput struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Priority    types.AlertPriority `json:"priority"`
	Category    types.AlertCategory `json:"category"`
	Source      string              `json:"source,omitempty"`
}

func (x CreateInput) Validate() error {
	if x.Title == "" {
		return goerr.New("title is required", goerr.T(errs.TagValidation))
	}
	if x.Description == "" {
		return goerr.New("description is required", goerr.T(errs.TagValidation))
	}
	if x.Category == "" {
		return goerr.New("category is required", goerr.T(errs.TagValidation))
	}
	// Empty priority is defaulted to medium by the usecase.
	if x.Priority != "" {
		if err := x.Priority.Validate(); err != nil {
			return goerr.Wrap(err, "invalid priority", goerr.T(errs.TagValidation))
		}
	}
	return nil
}

// UpdateInput is a partial update. Status transitions ride on this payload
// the way the REST API expresses them: {status: Acknowledged} or
// {status: Resolved, resolution: "..."}. Nil fields are left unchanged.
type UpdateInput struct {
	Title       *string              `json:"title,omitempty"`
	Description *string              `json:"description,omitempty"`
	Category    *types.AlertCategory `json:"category,omitempty"`
	Status      *types.AlertStatus   `json:"status,omitempty"`
	Resolution  *string              `json:"resolution,omitempty"`
	AssignedTo  *types.UserID        `json:"assigned_to,omitempty"`
}

func (x UpdateInput) Validate() error {
	if x.Status != nil {
		if err := x.Status.Validate(); err != nil {
			return goerr.Wrap(err, "invalid status", goerr.T(errs.TagValidation))
		}
	}
	return nil
}

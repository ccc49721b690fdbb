package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/hospitalops/pulse/pkg/domain/model/alert"
	"github.com/hospitalops/pulse/pkg/domain/model/auth"
	"github.com/hospitalops/pulse/pkg/domain/model/errs"
	"github.com/hospitalops/pulse/pkg/domain/types"
	"github.com/hospitalops/pulse/pkg/utils/logging"
)

// CreateAlert stores a new alert and pushes a new-alert event to every
// connected dashboard.
func (u *UseCases) CreateAlert(ctx context.Context, input alert.CreateInput) (*alert.Alert, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	priority := input.Priority
	if priority == "" {
		priority = types.AlertPriorityMedium
	}

	a := alert.New(ctx, input.Title, input.Description, priority, input.Category)
	a.Source = input.Source
	a.CreatedBy = auth.UserIDFromContext(ctx)

	if err := u.repository.PutAlert(ctx, a); err != nil {
		return nil, goerr.Wrap(err, "failed to store alert", goerr.V("alert_id", a.ID))
	}

	logging.From(ctx).Info("alert created",
		"alert_id", a.ID,
		"priority", a.Priority,
		"category", a.Category)

	if u.notifier != nil {
		u.notifier.NotifyNewAlert(a)
	}
	return a, nil
}

func (u *UseCases) GetAlert(ctx context.Context, id types.AlertID) (*alert.Alert, error) {
	return u.repository.GetAlert(ctx, id)
}

// Listings are unpaginated but capped, newest first.
const maxListAlerts = 500

func (u *UseCases) ListAlerts(ctx context.Context, filter alert.Filter) (alert.Alerts, error) {
	alerts, err := u.repository.ListAlerts(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(alerts) > maxListAlerts {
		alerts = alerts[:maxListAlerts]
	}
	return alerts, nil
}

// UpdateAlert applies a partial update. A status field in the patch is a
// lifecycle transition and goes through the state machine, so monotonicity
// holds regardless of what the client sends.
func (u *UseCases) UpdateAlert(ctx context.Context, id types.AlertID, patch alert.UpdateInput) (*alert.Alert, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	if patch.Status != nil {
		by := auth.UserIDFromContext(ctx)
		switch *patch.Status {
		case types.AlertStatusAcknowledged:
			return u.AcknowledgeAlert(ctx, id, by)
		case types.AlertStatusResolved:
			resolution := ""
			if patch.Resolution != nil {
				resolution = *patch.Resolution
			}
			return u.ResolveAlert(ctx, id, by, resolution)
		case types.AlertStatusActive:
			return nil, goerr.New("alert status cannot transition back to Active",
				goerr.T(errs.TagInvalidState), goerr.V("alert_id", id))
		}
	}

	a, err := u.repository.GetAlert(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		a.Title = *patch.Title
	}
	if patch.Description != nil {
		a.Description = *patch.Description
	}
	if patch.Category != nil {
		a.Category = *patch.Category
	}
	if patch.AssignedTo != nil {
		a.AssignedTo = *patch.AssignedTo
	}

	if err := u.repository.PutAlert(ctx, a); err != nil {
		return nil, goerr.Wrap(err, "failed to store alert", goerr.V("alert_id", id))
	}

	if u.notifier != nil {
		u.notifier.NotifyAlertUpdated(a)
	}
	return a, nil
}

func (u *UseCases) DeleteAlert(ctx context.Context, id types.AlertID) error {
	return u.repository.DeleteAlert(ctx, id)
}

// AcknowledgeAlert is idempotent: acknowledging an already acknowledged or
// resolved alert returns the current state without an event.
func (u *UseCases) AcknowledgeAlert(ctx context.Context, id types.AlertID, by types.UserID) (*alert.Alert, error) {
	a, err := u.repository.GetAlert(ctx, id)
	if err != nil {
		return nil, err
	}

	if !a.Acknowledge(ctx, by) {
		return a, nil
	}

	if err := u.repository.PutAlert(ctx, a); err != nil {
		return nil, goerr.Wrap(err, "failed to store alert", goerr.V("alert_id", id))
	}

	logging.From(ctx).Info("alert acknowledged", "alert_id", id, "by", by)

	if u.notifier != nil {
		u.notifier.NotifyAlertUpdated(a)
	}
	return a, nil
}

// ResolveAlert is idempotent like AcknowledgeAlert.
func (u *UseCases) ResolveAlert(ctx context.Context, id types.AlertID, by types.UserID, resolution string) (*alert.Alert, error) {
	a, err := u.repository.GetAlert(ctx, id)
	if err != nil {
		return nil, err
	}

	if !a.Resolve(ctx, by, resolution) {
		return a, nil
	}

	if err := u.repository.PutAlert(ctx, a); err != nil {
		return nil, goerr.Wrap(err, "failed to store alert", goerr.V("alert_id", id))
	}

	logging.From(ctx).Info("alert resolved", "alert_id", id, "by", by)

	if u.notifier != nil {
		u.notifier.NotifyAlertUpdated(a)
	}
	return a, nil
}

func (u *UseCases) MarkAlertRead(ctx context.Context, id types.AlertID) (*alert.Alert, error) {
	a, err := u.repository.GetAlert(ctx, id)
	if err != nil {
		return nil, err
	}

	if !a.MarkRead() {
		return a, nil
	}

	if err := u.repository.PutAlert(ctx, a); err != nil {
		return nil, goerr.Wrap(err, "failed to store alert", goerr.V("alert_id", id))
	}

	if u.notifier != nil {
		u.notifier.NotifyAlertUpdated(a)
	}
	return a, nil
}

func (u *UseCases) MarkAllAlertsRead(ctx context.Context) error {
	if err := u.repository.MarkAllAlertsRead(ctx); err != nil {
		return goerr.Wrap(err, "failed to mark all alerts read")
	}
	return nil
}

func (u *UseCases) GetAlertStats(ctx context.Context) (*alert.Stats, error) {
	alerts, err := u.repository.ListAlerts(ctx, alert.Filter{})
	if err != nil {
		return nil, err
	}
	return alert.NewStats(alerts), nil
}

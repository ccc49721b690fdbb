package usecase_test

import (
	"context"
	"sync"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/hospitalops/pulse/pkg/domain/model/alert"
	"github.com/hospitalops/pulse/pkg/domain/model/auth"
	"github.com/hospitalops/pulse/pkg/domain/model/errs"
	"github.com/hospitalops/pulse/pkg/domain/types"
	"github.com/hospitalops/pulse/pkg/repository/memory"
	"github.com/hospitalops/pulse/pkg/usecase"
)

type recordNotifier struct {
	mu      sync.Mutex
	created []*alert.Alert
	updated []*alert.Alert
}

func (x *recordNotifier) NotifyNewAlert(a *alert.Alert) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.created = append(x.created, a)
}

func (x *recordNotifier) NotifyAlertUpdated(a *alert.Alert) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.updated = append(x.updated, a)
}

func newInput() alert.CreateInput {
	return alert.CreateInput{
		Title:       "ICU bed shortage",
		Description: "Only 2 ICU beds remain",
		Priority:    types.AlertPriorityHigh,
		Category:    types.AlertCategoryResources,
	}
}

func TestCreateAlert(t *testing.T) {
	repo := memory.New()
	notifier := &recordNotifier{}
	uc := usecase.New(repo, usecase.WithNotifier(notifier))

	ctx := auth.WithClaims(context.Background(), &auth.Claims{UserID: "nurse-1"})

	created := gt.R1(uc.CreateAlert(ctx, newInput())).NoError(t)
	gt.Equal(t, created.Status, types.AlertStatusActive)
	gt.Equal(t, created.CreatedBy, types.UserID("nurse-1"))
	gt.False(t, created.Read)

	stored := gt.R1(repo.GetAlert(ctx, created.ID)).NoError(t)
	gt.Equal(t, stored.Title, "ICU bed shortage")

	gt.Array(t, notifier.created).Length(1)
	gt.Array(t, notifier.updated).Length(0)
}

func TestCreateAlertDefaultsPriority(t *testing.T) {
	uc := usecase.New(memory.New())
	ctx := context.Background()

	input := newInput()
	input.Priority = ""
	created := gt.R1(uc.CreateAlert(ctx, input)).NoError(t)
	gt.Equal(t, created.Priority, types.AlertPriorityMedium)
}

func TestCreateAlertValidation(t *testing.T) {
	uc := usecase.New(memory.New())

	input := newInput()
	input.Title = ""
	_, err := uc.CreateAlert(context.Background(), input)
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, errs.TagValidation))
}

func TestAcknowledgeAlert(t *testing.T) {
	repo := memory.New()
	notifier := &recordNotifier{}
	uc := usecase.New(repo, usecase.WithNotifier(notifier))
	ctx := context.Background()

	created := gt.R1(uc.CreateAlert(ctx, newInput())).NoError(t)

	acked := gt.R1(uc.AcknowledgeAlert(ctx, created.ID, "doctor-1")).NoError(t)
	gt.Equal(t, acked.Status, types.AlertStatusAcknowledged)
	gt.Equal(t, acked.AcknowledgedBy, types.UserID("doctor-1"))
	gt.Equal(t, acked.AssignedTo, types.UserID("doctor-1"))
	gt.NotNil(t, acked.AcknowledgedAt)
	gt.Array(t, notifier.updated).Length(1)

	// Second acknowledge is a no-op and does not broadcast again.
	again := gt.R1(uc.AcknowledgeAlert(ctx, created.ID, "doctor-2")).NoError(t)
	gt.Equal(t, again.AcknowledgedBy, types.UserID("doctor-1"))
	gt.Array(t, notifier.updated).Length(1)
}

func TestResolveAlert(t *testing.T) {
	repo := memory.New()
	notifier := &recordNotifier{}
	uc := usecase.New(repo, usecase.WithNotifier(notifier))
	ctx := context.Background()

	created := gt.R1(uc.CreateAlert(ctx, newInput())).NoError(t)

	resolved := gt.R1(uc.ResolveAlert(ctx, created.ID, "doctor-1", "capacity restored")).NoError(t)
	gt.Equal(t, resolved.Status, types.AlertStatusResolved)
	gt.Equal(t, resolved.Resolution, "capacity restored")
	gt.Array(t, notifier.updated).Length(1)

	again := gt.R1(uc.ResolveAlert(ctx, created.ID, "doctor-2", "other")).NoError(t)
	gt.Equal(t, again.Resolution, "capacity restored")
	gt.Array(t, notifier.updated).Length(1)
}

func TestUpdateAlertStatusTransition(t *testing.T) {
	repo := memory.New()
	uc := usecase.New(repo)
	ctx := auth.WithClaims(context.Background(), &auth.Claims{UserID: "doctor-1"})

	created := gt.R1(uc.CreateAlert(ctx, newInput())).NoError(t)

	status := types.AlertStatusAcknowledged
	updated := gt.R1(uc.UpdateAlert(ctx, created.ID, alert.UpdateInput{Status: &status})).NoError(t)
	gt.Equal(t, updated.Status, types.AlertStatusAcknowledged)
	gt.Equal(t, updated.AcknowledgedBy, types.UserID("doctor-1"))

	resolution := "fixed"
	status = types.AlertStatusResolved
	updated = gt.R1(uc.UpdateAlert(ctx, created.ID, alert.UpdateInput{Status: &status, Resolution: &resolution})).NoError(t)
	gt.Equal(t, updated.Status, types.AlertStatusResolved)
	gt.Equal(t, updated.Resolution, "fixed")

	// Going back to Active is rejected.
	status = types.AlertStatusActive
	_, err := uc.UpdateAlert(ctx, created.ID, alert.UpdateInput{Status: &status})
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, errs.TagInvalidState))
}

func TestUpdateAlertFields(t *testing.T) {
	repo := memory.New()
	uc := usecase.New(repo)
	ctx := context.Background()

	created := gt.R1(uc.CreateAlert(ctx, newInput())).NoError(t)

	title := "ICU bed shortage (ward B)"
	assignee := types.UserID("charge-nurse")
	updated := gt.R1(uc.UpdateAlert(ctx, created.ID, alert.UpdateInput{
		Title:      &title,
		AssignedTo: &assignee,
	})).NoError(t)
	gt.Equal(t, updated.Title, title)
	gt.Equal(t, updated.AssignedTo, assignee)
	gt.Equal(t, updated.Description, created.Description)
}

func TestMarkAlertRead(t *testing.T) {
	repo := memory.New()
	notifier := &recordNotifier{}
	uc := usecase.New(repo, usecase.WithNotifier(notifier))
	ctx := context.Background()

	created := gt.R1(uc.CreateAlert(ctx, newInput())).NoError(t)

	marked := gt.R1(uc.MarkAlertRead(ctx, created.ID)).NoError(t)
	gt.True(t, marked.Read)
	gt.Array(t, notifier.updated).Length(1)

	// Already read: no further broadcast.
	gt.R1(uc.MarkAlertRead(ctx, created.ID)).NoError(t)
	gt.Array(t, notifier.updated).Length(1)
}

func TestMarkAllAlertsRead(t *testing.T) {
	repo := memory.New()
	uc := usecase.New(repo)
	ctx := context.Background()

	for range 3 {
		gt.R1(uc.CreateAlert(ctx, newInput())).NoError(t)
	}

	gt.NoError(t, uc.MarkAllAlertsRead(ctx))

	alerts := gt.R1(uc.ListAlerts(ctx, alert.Filter{})).NoError(t)
	gt.Array(t, alerts).Length(3)
	for _, a := range alerts {
		gt.True(t, a.Read)
	}
}

func TestGetAlertStats(t *testing.T) {
	repo := memory.New()
	uc := usecase.New(repo)
	ctx := context.Background()

	a1 := gt.R1(uc.CreateAlert(ctx, newInput())).NoError(t)
	gt.R1(uc.CreateAlert(ctx, newInput())).NoError(t)
	gt.R1(uc.AcknowledgeAlert(ctx, a1.ID, "doctor-1")).NoError(t)
	gt.R1(uc.MarkAlertRead(ctx, a1.ID)).NoError(t)

	stats := gt.R1(uc.GetAlertStats(ctx)).NoError(t)
	gt.Equal(t, stats.Total, 2)
	gt.Equal(t, stats.Unread, 1)
	gt.Equal(t, stats.ByStatus[types.AlertStatusActive], 1)
	gt.Equal(t, stats.ByStatus[types.AlertStatusAcknowledged], 1)
}

func TestDeleteAlert(t *testing.T) {
	repo := memory.New()
	uc := usecase.New(repo)
	ctx := context.Background()

	created := gt.R1(uc.CreateAlert(ctx, newInput())).NoError(t)
	gt.NoError(t, uc.DeleteAlert(ctx, created.ID))

	_, err := uc.GetAlert(ctx, created.ID)
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, errs.TagNotFound))
}

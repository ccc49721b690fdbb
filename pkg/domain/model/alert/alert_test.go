package alert_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/hospitalops/pulse/pkg/domain/model/alert"
	"github.com/hospitalops/pulse/pkg/domain/types"
	"github.com/hospitalops/pulse/pkg/utils/clock"
)

func TestNewAlert(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	ctx := clock.With(context.Background(), func() time.Time { return now })

	a := alert.New(ctx, "ICU bed shortage", "ICU ward is at 95% capacity", types.AlertPriorityCritical, types.AlertCategoryResources)

	gt.NoError(t, a.Validate())
	gt.Equal(t, a.Status, types.AlertStatusActive)
	gt.False(t, a.Read)
	gt.Equal(t, a.CreatedAt, now)
	gt.Equal(t, a.ExpiresAt, now.Add(14*24*time.Hour))
	gt.Nil(t, a.AcknowledgedAt)
	gt.Nil(t, a.ResolvedAt)
}

func TestAcknowledge(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	ctx := clock.With(context.Background(), func() time.Time { return now })

	t.Run("active alert", func(t *testing.T) {
		a := alert.New(ctx, "test", "test", types.AlertPriorityHigh, types.AlertCategorySystems)

		gt.True(t, a.Acknowledge(ctx, "nurse-1"))
		gt.Equal(t, a.Status, types.AlertStatusAcknowledged)
		gt.Equal(t, a.AcknowledgedBy, types.UserID("nurse-1"))
		gt.Equal(t, a.AssignedTo, types.UserID("nurse-1"))
		gt.NotNil(t, a.AcknowledgedAt)
		gt.Equal(t, *a.AcknowledgedAt, now)
	})

	t.Run("second acknowledge is a no-op", func(t *testing.T) {
		a := alert.New(ctx, "test", "test", types.AlertPriorityHigh, types.AlertCategorySystems)
		gt.True(t, a.Acknowledge(ctx, "nurse-1"))

		firstAckAt := *a.AcknowledgedAt
		later := clock.With(ctx, func() time.Time { return now.Add(time.Hour) })

		gt.False(t, a.Acknowledge(later, "nurse-2"))
		gt.Equal(t, a.AcknowledgedBy, types.UserID("nurse-1"))
		gt.Equal(t, *a.AcknowledgedAt, firstAckAt)
	})

	t.Run("does not overwrite existing assignment", func(t *testing.T) {
		a := alert.New(ctx, "test", "test", types.AlertPriorityHigh, types.AlertCategorySystems)
		a.AssignedTo = "doctor-9"

		gt.True(t, a.Acknowledge(ctx, "nurse-1"))
		gt.Equal(t, a.AssignedTo, types.UserID("doctor-9"))
	})

	t.Run("resolved alert stays resolved", func(t *testing.T) {
		a := alert.New(ctx, "test", "test", types.AlertPriorityHigh, types.AlertCategorySystems)
		gt.True(t, a.Resolve(ctx, "nurse-1", "restocked"))

		gt.False(t, a.Acknowledge(ctx, "nurse-2"))
		gt.Equal(t, a.Status, types.AlertStatusResolved)
	})
}

func TestResolve(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	ctx := clock.With(context.Background(), func() time.Time { return now })

	t.Run("from active", func(t *testing.T) {
		a := alert.New(ctx, "test", "test", types.AlertPriorityMedium, types.AlertCategorySupplies)

		gt.True(t, a.Resolve(ctx, "nurse-1", "restocked"))
		gt.Equal(t, a.Status, types.AlertStatusResolved)
		gt.Equal(t, a.Resolution, "restocked")
		gt.Equal(t, a.ResolvedBy, types.UserID("nurse-1"))
		gt.NotNil(t, a.ResolvedAt)
		gt.Nil(t, a.AcknowledgedAt)
	})

	t.Run("from acknowledged", func(t *testing.T) {
		a := alert.New(ctx, "test", "test", types.AlertPriorityMedium, types.AlertCategorySupplies)
		gt.True(t, a.Acknowledge(ctx, "nurse-1"))

		gt.True(t, a.Resolve(ctx, "nurse-1", "fixed"))
		gt.Equal(t, a.Status, types.AlertStatusResolved)
		gt.NotNil(t, a.AcknowledgedAt)
	})

	t.Run("second resolve is a no-op", func(t *testing.T) {
		a := alert.New(ctx, "test", "test", types.AlertPriorityMedium, types.AlertCategorySupplies)
		gt.True(t, a.Resolve(ctx, "nurse-1", "fixed"))

		gt.False(t, a.Resolve(ctx, "nurse-2", "other"))
		gt.Equal(t, a.Resolution, "fixed")
		gt.Equal(t, a.ResolvedBy, types.UserID("nurse-1"))
	})
}

func TestMarkRead(t *testing.T) {
	ctx := context.Background()
	a := alert.New(ctx, "test", "test", types.AlertPriorityLow, types.AlertCategorySystems)

	gt.True(t, a.MarkRead())
	gt.True(t, a.Read)

	// read flag is never reset
	gt.False(t, a.MarkRead())
	gt.True(t, a.Read)
}

func TestReadIsOrthogonalToStatus(t *testing.T) {
	ctx := context.Background()
	a := alert.New(ctx, "test", "test", types.AlertPriorityLow, types.AlertCategorySystems)

	gt.True(t, a.Resolve(ctx, "nurse-1", "done"))
	gt.False(t, a.Read)

	gt.True(t, a.MarkRead())
	gt.Equal(t, a.Status, types.AlertStatusResolved)
}

func TestClone(t *testing.T) {
	ctx := context.Background()
	a := alert.New(ctx, "test", "test", types.AlertPriorityLow, types.AlertCategorySystems)
	gt.True(t, a.Acknowledge(ctx, "nurse-1"))

	c := a.Clone()
	gt.Equal(t, c.ID, a.ID)

	gt.True(t, c.Resolve(ctx, "nurse-2", "done"))
	gt.Equal(t, a.Status, types.AlertStatusAcknowledged)
	gt.Nil(t, a.ResolvedAt)
}

func TestFilter(t *testing.T) {
	ctx := context.Background()
	a := alert.New(ctx, "Ventilator offline", "Ventilator #3 is not responding", types.AlertPriorityCritical, types.AlertCategoryEquipment)

	cases := []struct {
		name   string
		filter alert.Filter
		match  bool
	}{
		{"empty filter matches", alert.Filter{}, true},
		{"status match", alert.Filter{Status: types.AlertStatusActive}, true},
		{"status mismatch", alert.Filter{Status: types.AlertStatusResolved}, false},
		{"priority match", alert.Filter{Priority: types.AlertPriorityCritical}, true},
		{"category mismatch", alert.Filter{Category: types.AlertCategoryStaffing}, false},
		{"search in title", alert.Filter{Search: "ventilator"}, true},
		{"search in description", alert.Filter{Search: "not responding"}, true},
		{"search mismatch", alert.Filter{Search: "oxygen"}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gt.Equal(t, tc.filter.Match(a), tc.match)
		})
	}
}

func TestFilterValuesRoundTrip(t *testing.T) {
	f := alert.Filter{
		Status:   types.AlertStatusActive,
		Priority: types.AlertPriorityHigh,
		Search:   "bed",
	}
	gt.Equal(t, alert.FilterFromValues(f.Values()), f)
}

func TestStats(t *testing.T) {
	ctx := context.Background()

	a1 := alert.New(ctx, "a1", "", types.AlertPriorityHigh, types.AlertCategoryResources)
	a2 := alert.New(ctx, "a2", "", types.AlertPriorityHigh, types.AlertCategoryEquipment)
	a3 := alert.New(ctx, "a3", "", types.AlertPriorityLow, types.AlertCategoryEquipment)
	a2.MarkRead()
	a3.Resolve(ctx, "nurse-1", "done")

	s := alert.NewStats(alert.Alerts{a1, a2, a3})
	gt.Equal(t, s.Total, 3)
	gt.Equal(t, s.Unread, 2)
	gt.Equal(t, s.ByStatus[types.AlertStatusActive], 2)
	gt.Equal(t, s.ByStatus[types.AlertStatusResolved], 1)
	gt.Equal(t, s.ByPriority[types.AlertPriorityHigh], 2)
	gt.Equal(t, s.ByCategory[types.AlertCategoryEquipment], 2)
}

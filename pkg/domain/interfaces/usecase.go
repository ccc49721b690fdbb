package interfaces

import (
	"context"

	"github.com/hospitalops/pulse/pkg/domain/model/alert"
	"github.com/hospitalops/pulse/pkg/domain/types"
)

// AlertUsecases is the set of alert operations exposed to the HTTP and
// websocket controllers.
type AlertUsecases interface {
	CreateAlert(ctx context.Context, input alert.CreateInput) (*alert.Alert, error)
	GetAlert(ctx context.Context, id types.AlertID) (*alert.Alert, error)
	ListAlerts(ctx context.Context, filter alert.Filter) (alert.Alerts, error)
	UpdateAlert(ctx context.Context, id types.AlertID, patch alert.UpdateInput) (*alert.Alert, error)
	DeleteAlert(ctx context.Context, id types.AlertID) error
	AcknowledgeAlert(ctx context.Context, id types.AlertID, by types.UserID) (*alert.Alert, error)
	ResolveAlert(ctx context.Context, id types.AlertID, by types.UserID, resolution string) (*alert.Alert, error)
	MarkAlertRead(ctx context.Context, id types.AlertID) (*alert.Alert, error)
	MarkAllAlertsRead(ctx context.Context) error
	GetAlertStats(ctx context.Context) (*alert.Stats, error)
}

// AlertNotifier broadcasts alert events to connected dashboard sessions.
// The websocket hub implements this.
type AlertNotifier interface {
	NotifyNewAlert(a *alert.Alert)
	NotifyAlertUpdated(a *alert.Alert)
}

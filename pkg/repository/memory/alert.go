package memory

import (
	"context"
	"sort"

	"github.com/m-mizutani/goerr/v2"

	"github.com/hospitalops/pulse/pkg/domain/model/alert"
	"github.com/hospitalops/pulse/pkg/domain/model/errs"
	"github.com/hospitalops/pulse/pkg/domain/types"
)

func (r *Memory) PutAlert(ctx context.Context, a *alert.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.alerts[a.ID] = a.Clone()
	return nil
}

func (r *Memory) GetAlert(ctx context.Context, id types.AlertID) (*alert.Alert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.alerts[id]
	if !ok {
		return nil, goerr.New("alert not found", goerr.T(errs.TagNotFound), goerr.V("alert_id", id))
	}
	return a.Clone(), nil
}

func (r *Memory) DeleteAlert(ctx context.Context, id types.AlertID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.alerts[id]; !ok {
		return goerr.New("alert not found", goerr.T(errs.TagNotFound), goerr.V("alert_id", id))
	}
	delete(r.alerts, id)
	return nil
}

func (r *Memory) ListAlerts(ctx context.Context, filter alert.Filter) (alert.Alerts, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	alerts := alert.Alerts{}
	for _, a := range r.alerts {
		if filter.Match(a) {
			alerts = append(alerts, a.Clone())
		}
	}

	// Newest first
	sort.Slice(alerts, func(i, j int) bool {
		return alerts[i].CreatedAt.After(alerts[j].CreatedAt)
	})

	return alerts, nil
}

func (r *Memory) MarkAllAlertsRead(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.alerts {
		a.Read = true
	}
	return nil
}

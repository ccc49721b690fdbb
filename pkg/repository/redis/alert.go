package redis

import (
	"context"
	"encoding/json"
	"sort"

	goredis "github.com/redis/go-redis/v9"

	"github.com/m-mizutani/goerr/v2"

	"github.com/hospitalops/pulse/pkg/domain/model/alert"
	"github.com/hospitalops/pulse/pkg/domain/model/errs"
	"github.com/hospitalops/pulse/pkg/domain/types"
)

func (r *Repository) PutAlert(ctx context.Context, a *alert.Alert) error {
	data, err := json.Marshal(a)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal alert", goerr.V("alert_id", a.ID))
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, alertKeyPrefix+a.ID.String(), data, 0)
	pipe.SAdd(ctx, alertIndexKey, a.ID.String())
	if _, err := pipe.Exec(ctx); err != nil {
		return goerr.Wrap(err, "failed to store alert",
			goerr.T(errs.TagDatabase), goerr.V("alert_id", a.ID))
	}
	return nil
}

func (r *Repository) GetAlert(ctx context.Context, id types.AlertID) (*alert.Alert, error) {
	data, err := r.client.Get(ctx, alertKeyPrefix+id.String()).Bytes()
	if err == goredis.Nil {
		return nil, goerr.New("alert not found", goerr.T(errs.TagNotFound), goerr.V("alert_id", id))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get alert",
			goerr.T(errs.TagDatabase), goerr.V("alert_id", id))
	}

	var a alert.Alert
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal alert", goerr.V("alert_id", id))
	}
	return &a, nil
}

func (r *Repository) DeleteAlert(ctx context.Context, id types.AlertID) error {
	deleted, err := r.client.Del(ctx, alertKeyPrefix+id.String()).Result()
	if err != nil {
		return goerr.Wrap(err, "failed to delete alert",
			goerr.T(errs.TagDatabase), goerr.V("alert_id", id))
	}
	if deleted == 0 {
		return goerr.New("alert not found", goerr.T(errs.TagNotFound), goerr.V("alert_id", id))
	}

	if err := r.client.SRem(ctx, alertIndexKey, id.String()).Err(); err != nil {
		return goerr.Wrap(err, "failed to remove alert from index",
			goerr.T(errs.TagDatabase), goerr.V("alert_id", id))
	}
	return nil
}

func (r *Repository) ListAlerts(ctx context.Context, filter alert.Filter) (alert.Alerts, error) {
	ids, err := r.client.SMembers(ctx, alertIndexKey).Result()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list alert index", goerr.T(errs.TagDatabase))
	}

	alerts := alert.Alerts{}
	for _, id := range ids {
		a, err := r.GetAlert(ctx, types.AlertID(id))
		if err != nil {
			// Index may trail behind a concurrent delete
			if goerr.HasTag(err, errs.TagNotFound) {
				continue
			}
			return nil, err
		}
		if filter.Match(a) {
			alerts = append(alerts, a)
		}
	}

	// Newest first
	sort.Slice(alerts, func(i, j int) bool {
		return alerts[i].CreatedAt.After(alerts[j].CreatedAt)
	})

	return alerts, nil
}

func (r *Repository) MarkAllAlertsRead(ctx context.Context) error {
	alerts, err := r.ListAlerts(ctx, alert.Filter{})
	if err != nil {
		return err
	}

	for _, a := range alerts {
		if a.MarkRead() {
			if err := r.PutAlert(ctx, a); err != nil {
				return err
			}
		}
	}
	return nil
}

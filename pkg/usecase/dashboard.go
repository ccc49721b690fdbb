package usecase

import (
	"context"

	"github.com/hospitalops/pulse/pkg/domain/model/alert"
	"github.com/hospitalops/pulse/pkg/domain/model/dashboard"
	"github.com/hospitalops/pulse/pkg/utils/clock"
)

// GetDashboardSummary aggregates beds, patients, staff, equipment and
// alerts into the overview snapshot.
func (u *UseCases) GetDashboardSummary(ctx context.Context) (*dashboard.Summary, error) {
	beds, err := u.repository.ListBeds(ctx)
	if err != nil {
		return nil, err
	}
	patients, err := u.repository.ListPatients(ctx)
	if err != nil {
		return nil, err
	}
	staff, err := u.repository.ListStaff(ctx)
	if err != nil {
		return nil, err
	}
	equipment, err := u.repository.ListEquipment(ctx)
	if err != nil {
		return nil, err
	}
	alerts, err := u.repository.ListAlerts(ctx, alert.Filter{})
	if err != nil {
		return nil, err
	}

	return dashboard.NewSummary(clock.Now(ctx), beds, patients, staff, equipment, alerts), nil
}

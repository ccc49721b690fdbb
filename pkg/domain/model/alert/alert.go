package alert

import (
	"context"
	"time"

	"github.com/hospitalops/pulse/pkg/domain/types"
	"github.com/hospitalops/pulse/pkg/utils/clock"
)

const (
	// Alerts expire 14 days after creation unless set explicitly.
	defaultExpiry = 14 * 24 * time.Hour
)

// Alert represents an operational condition requiring attention. Status
// transitions are monotonic and handled by Acknowledge/Resolve; the read
// flag is an independent dimension handled by MarkRead.
type Alert struct {
	ID          types.AlertID       `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Priority    types.AlertPriority `json:"priority"`
	Category    types.AlertCategory `json:"category"`
	Status      types.AlertStatus   `json:"status"`
	Source      string              `json:"source,omitempty"`
	Read        bool                `json:"read"`

	AssignedTo     types.UserID `json:"assigned_to,omitempty"`
	AcknowledgedBy types.UserID `json:"acknowledged_by,omitempty"`
	ResolvedBy     types.UserID `json:"resolved_by,omitempty"`
	Resolution     string       `json:"resolution,omitempty"`

	CreatedAt      time.Time  `json:"created_at"`
	AcknowledgedAt *time.Time `json:"acknowledged_at,omitempty"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
	ExpiresAt      time.Time  `json:"expires_at"`

	CreatedBy types.UserID `json:"created_by,omitempty"`
}

type Alerts []*Alert

// New creates an Alert in the initial state: Active, unread.
func New(ctx context.Context, title, description string, priority types.AlertPriority, category types.AlertCategory) *Alert {
	now := clock.Now(ctx)
	return &Alert{
		ID:          types.NewAlertID(),
		Title:       title,
		Description: description,
		Priority:    priority,
		Category:    category,
		Status:      types.AlertStatusActive,
		Read:        false,
		CreatedAt:   now,
		ExpiresAt:   now.Add(defaultExpiry),
	}
}

// Acknowledge moves the alert from Active to Acknowledged. Acknowledging an
// already Acknowledged or Resolved alert is an idempotent no-op: the UI
// issues these calls opportunistically and a double click must not fail.
// Returns true when the status actually changed.
func (x *Alert) Acknowledge(ctx context.Context, by types.UserID) bool {
	if x.Status != types.AlertStatusActive {
		return false
	}

	now := clock.Now(ctx)
	x.Status = types.AlertStatusAcknowledged
	x.AcknowledgedAt = &now
	x.AcknowledgedBy = by
	if x.AssignedTo == types.EmptyUserID {
		x.AssignedTo = by
	}
	return true
}

// Resolve moves the alert to Resolved from either Active or Acknowledged.
// Resolving an already Resolved alert is an idempotent no-op. Returns true
// when the status actually changed.
func (x *Alert) Resolve(ctx context.Context, by types.UserID, resolution string) bool {
	if x.Status == types.AlertStatusResolved {
		return false
	}

	now := clock.Now(ctx)
	x.Status = types.AlertStatusResolved
	x.ResolvedAt = &now
	x.ResolvedBy = by
	x.Resolution = resolution
	return true
}

// MarkRead sets the read flag. The flag is never forced back to false.
// Returns true when the flag actually changed.
func (x *Alert) MarkRead() bool {
	if x.Read {
		return false
	}
	x.Read = true
	return true
}

// Clone returns a deep copy. Timestamps pointers are duplicated so the copy
// never aliases the original.
func (x *Alert) Clone() *Alert {
	copied := *x
	if x.AcknowledgedAt != nil {
		t := *x.AcknowledgedAt
		copied.AcknowledgedAt = &t
	}
	if x.ResolvedAt != nil {
		t := *x.ResolvedAt
		copied.ResolvedAt = &t
	}
	return &copied
}

func (x *Alert) Validate() error {
	if err := x.ID.Validate(); err != nil {
		return err
	}
	if err := x.Status.Validate(); err != nil {
		return err
	}
	if err := x.Priority.Validate(); err != nil {
		return err
	}
	return nil
}

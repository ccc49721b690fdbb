package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

type AlertID string

func (x AlertID) String() string {
	return string(x)
}

func NewAlertID() AlertID {
	return AlertID(uuid.New().String())
}

const (
	EmptyAlertID AlertID = ""
)

func (x AlertID) Validate() error {
	if x == EmptyAlertID {
		return goerr.New("empty alert ID")
	}
	if _, err := uuid.Parse(string(x)); err != nil {
		return goerr.Wrap(err, "invalid alert ID format", goerr.V("id", x))
	}
	return nil
}

// AlertStatus is the lifecycle state of an alert. Transitions are monotonic:
// Active -> Acknowledged -> Resolved, or Active -> Resolved directly.
type AlertStatus string

const (
	AlertStatusActive       AlertStatus = "Active"
	AlertStatusAcknowledged AlertStatus = "Acknowledged"
	AlertStatusResolved     AlertStatus = "Resolved"
)

var alertStatusLabels = map[AlertStatus]string{
	AlertStatusActive:       "🔔 Active",
	AlertStatusAcknowledged: "👀 Acknowledged",
	AlertStatusResolved:     "✅️ Resolved",
}

func (s AlertStatus) String() string {
	return string(s)
}

func (s AlertStatus) Label() string {
	return alertStatusLabels[s]
}

func (s AlertStatus) Validate() error {
	switch s {
	case AlertStatusActive, AlertStatusAcknowledged, AlertStatusResolved:
		return nil
	}
	return goerr.New("invalid alert status", goerr.V("status", s))
}

// AlertPriority is fixed at creation and never transitioned.
type AlertPriority string

const (
	AlertPriorityCritical AlertPriority = "critical"
	AlertPriorityHigh     AlertPriority = "high"
	AlertPriorityMedium   AlertPriority = "medium"
	AlertPriorityLow      AlertPriority = "low"
)

var alertPriorityLabels = map[AlertPriority]string{
	AlertPriorityCritical: "🚨 Critical",
	AlertPriorityHigh:     "🔴 High",
	AlertPriorityMedium:   "🟡 Medium",
	AlertPriorityLow:      "🟢 Low",
}

func (p AlertPriority) String() string {
	return string(p)
}

func (p AlertPriority) Label() string {
	return alertPriorityLabels[p]
}

func (p AlertPriority) Validate() error {
	switch p {
	case AlertPriorityCritical, AlertPriorityHigh, AlertPriorityMedium, AlertPriorityLow:
		return nil
	}
	return goerr.New("invalid alert priority", goerr.V("priority", p))
}

// AlertCategory is a free-form classification tag. The constants below are
// the well-known categories; unknown values are accepted as-is.
type AlertCategory string

const (
	AlertCategoryResources AlertCategory = "resources"
	AlertCategoryEquipment AlertCategory = "equipment"
	AlertCategorySupplies  AlertCategory = "supplies"
	AlertCategoryStaffing  AlertCategory = "staffing"
	AlertCategorySystems   AlertCategory = "systems"
	AlertCategoryPatient   AlertCategory = "patient"
	AlertCategoryIncident  AlertCategory = "incident"
)

func (c AlertCategory) String() string {
	return string(c)
}

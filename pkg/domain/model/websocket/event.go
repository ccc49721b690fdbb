package websocket

import (
	"encoding/json"
	"time"

	"github.com/hospitalops/pulse/pkg/domain/model/alert"
	"github.com/hospitalops/pulse/pkg/domain/types"
)

// EventType identifies the kind of a push-channel event.
type EventType string

const (
	// Server to client
	EventNewAlert     EventType = "new-alert"
	EventAlertUpdated EventType = "alert-updated"
	EventStatus       EventType = "status"
	EventError        EventType = "error"
	EventPong         EventType = "pong"

	// Client to server
	EventAcknowledgeAlert EventType = "acknowledge-alert"
	EventPing             EventType = "ping"
)

// Event is the wire envelope exchanged over the push channel. Alert is set
// on new-alert/alert-updated; AlertID on acknowledge-alert; Message on
// status/error.
type Event struct {
	Type      EventType     `json:"type"`
	Alert     *alert.Alert  `json:"alert,omitempty"`
	AlertID   types.AlertID `json:"alert_id,omitempty"`
	Message   string        `json:"message,omitempty"`
	Timestamp int64         `json:"timestamp"`
}

func (e *Event) ToBytes() ([]byte, error) {
	return json.Marshal(e)
}

func (e *Event) FromBytes(data []byte) error {
	return json.Unmarshal(data, e)
}

func (e *Event) IsValidClientType() bool {
	switch e.Type {
	case EventAcknowledgeAlert, EventPing:
		return true
	default:
		return false
	}
}

func newEvent(t EventType) *Event {
	return &Event{
		Type:      t,
		Timestamp: time.Now().Unix(),
	}
}

// NewAlertEvent creates a new-alert event.
func NewAlertEvent(a *alert.Alert) *Event {
	e := newEvent(EventNewAlert)
	e.Alert = a
	return e
}

// AlertUpdatedEvent creates an alert-updated event.
func AlertUpdatedEvent(a *alert.Alert) *Event {
	e := newEvent(EventAlertUpdated)
	e.Alert = a
	return e
}

// AcknowledgeEvent creates a client-side acknowledge-alert event.
func AcknowledgeEvent(id types.AlertID) *Event {
	e := newEvent(EventAcknowledgeAlert)
	e.AlertID = id
	return e
}

// StatusEvent creates an informational status event.
func StatusEvent(message string) *Event {
	e := newEvent(EventStatus)
	e.Message = message
	return e
}

// ErrorEvent creates an error event.
func ErrorEvent(message string) *Event {
	e := newEvent(EventError)
	e.Message = message
	return e
}

// PongEvent creates a pong response to a client ping.
func PongEvent() *Event {
	return newEvent(EventPong)
}

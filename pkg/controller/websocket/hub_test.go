package websocket_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	websocket_controller "github.com/hospitalops/pulse/pkg/controller/websocket"
	"github.com/hospitalops/pulse/pkg/domain/model/alert"
	wsmodel "github.com/hospitalops/pulse/pkg/domain/model/websocket"
	"github.com/hospitalops/pulse/pkg/domain/types"
)

func recvEvent(t *testing.T, ch <-chan []byte) *wsmodel.Event {
	t.Helper()
	select {
	case data := <-ch:
		var evt wsmodel.Event
		gt.NoError(t, evt.FromBytes(data))
		return &evt
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for hub message")
		return nil
	}
}

func TestHubBroadcast(t *testing.T) {
	hub := websocket_controller.NewHub(context.Background())
	go hub.Run()
	t.Cleanup(func() { gt.NoError(t, hub.Close()) })

	c1 := hub.NewClient(nil, "nurse-1")
	c2 := hub.NewClient(nil, "doctor-1")
	hub.Register(c1)
	hub.Register(c2)

	// Both sessions receive a welcome status event first.
	gt.Equal(t, recvEvent(t, c1.Send()).Type, wsmodel.EventStatus)
	gt.Equal(t, recvEvent(t, c2.Send()).Type, wsmodel.EventStatus)
	gt.Equal(t, hub.ClientCount(), 2)

	a := &alert.Alert{
		ID:       types.NewAlertID(),
		Title:    "Pharmacy system down",
		Status:   types.AlertStatusActive,
		Priority: types.AlertPriorityCritical,
		Category: types.AlertCategorySystems,
	}
	hub.NotifyNewAlert(a)

	for _, c := range []*websocket_controller.Client{c1, c2} {
		evt := recvEvent(t, c.Send())
		gt.Equal(t, evt.Type, wsmodel.EventNewAlert)
		gt.NotNil(t, evt.Alert)
		gt.Equal(t, evt.Alert.ID, a.ID)
	}
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := websocket_controller.NewHub(context.Background())
	go hub.Run()
	t.Cleanup(func() { gt.NoError(t, hub.Close()) })

	slow := hub.NewClient(nil, "kiosk-1")
	hub.Register(slow)
	gt.Equal(t, recvEvent(t, slow.Send()).Type, wsmodel.EventStatus)
	gt.Equal(t, hub.ClientCount(), 1)

	a := &alert.Alert{
		ID:       types.NewAlertID(),
		Title:    "Oxygen supply low",
		Status:   types.AlertStatusActive,
		Priority: types.AlertPriorityCritical,
		Category: types.AlertCategorySystems,
	}

	// Overflow the stalled session's send buffer. The hub must drop it and
	// keep serving, not wedge on its own unregister channel.
	for i := 0; i <= websocket_controller.ClientSendBufferSize; i++ {
		hub.NotifyNewAlert(a)
	}

	deadline := time.Now().Add(3 * time.Second)
	for hub.ClientCount() != 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	gt.Equal(t, hub.ClientCount(), 0)

	// The loop still accepts new sessions and delivers to them.
	c := hub.NewClient(nil, "nurse-1")
	hub.Register(c)
	gt.Equal(t, recvEvent(t, c.Send()).Type, wsmodel.EventStatus)
	hub.NotifyAlertUpdated(a)
	gt.Equal(t, recvEvent(t, c.Send()).Type, wsmodel.EventAlertUpdated)
}

func TestHubUnregister(t *testing.T) {
	hub := websocket_controller.NewHub(context.Background())
	go hub.Run()
	t.Cleanup(func() { gt.NoError(t, hub.Close()) })

	c := hub.NewClient(nil, "nurse-1")
	hub.Register(c)
	recvEvent(t, c.Send())
	gt.Equal(t, hub.ClientCount(), 1)

	hub.Unregister(c)

	deadline := time.Now().Add(3 * time.Second)
	for hub.ClientCount() != 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	gt.Equal(t, hub.ClientCount(), 0)

	// Broadcast to an empty hub is a no-op.
	hub.NotifyAlertUpdated(&alert.Alert{ID: types.NewAlertID()})
}

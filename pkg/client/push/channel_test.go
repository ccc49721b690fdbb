package push_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/m-mizutani/gt"

	"github.com/hospitalops/pulse/pkg/client/push"
	"github.com/hospitalops/pulse/pkg/domain/model/alert"
	wsmodel "github.com/hospitalops/pulse/pkg/domain/model/websocket"
	"github.com/hospitalops/pulse/pkg/domain/types"
)

var upgrader = websocket.Upgrader{}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func testAlert() *alert.Alert {
	return &alert.Alert{
		ID:       types.NewAlertID(),
		Title:    "Ventilator fault",
		Status:   types.AlertStatusActive,
		Priority: types.AlertPriorityCritical,
		Category: types.AlertCategoryEquipment,
	}
}

func TestConnectAndReceive(t *testing.T) {
	a := testAlert()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.Equal(t, r.Header.Get("Authorization"), "Bearer test-token")

		conn := gt.R1(upgrader.Upgrade(w, r, nil)).NoError(t)
		defer conn.Close()

		data := gt.R1(wsmodel.NewAlertEvent(a).ToBytes()).NoError(t)
		gt.NoError(t, conn.WriteMessage(websocket.TextMessage, data))

		// Keep the connection open until the client goes away.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)

	ch := push.New(wsURL(srv), "test-token")
	t.Cleanup(ch.Disconnect)

	received := make(chan *wsmodel.Event, 1)
	ch.Subscribe(wsmodel.EventNewAlert, func(evt *wsmodel.Event) {
		received <- evt
	})

	ctx := context.Background()
	gt.NoError(t, ch.Connect(ctx))
	// Second connect is a no-op.
	gt.NoError(t, ch.Connect(ctx))
	gt.True(t, ch.Connected())

	select {
	case evt := <-received:
		gt.NotNil(t, evt.Alert)
		gt.Equal(t, evt.Alert.ID, a.ID)
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for pushed event")
	}
}

func TestEmit(t *testing.T) {
	received := make(chan *wsmodel.Event, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn := gt.R1(upgrader.Upgrade(w, r, nil)).NoError(t)
		defer conn.Close()

		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var evt wsmodel.Event
		gt.NoError(t, evt.FromBytes(data))
		received <- &evt
	}))
	t.Cleanup(srv.Close)

	ch := push.New(wsURL(srv), "")
	t.Cleanup(ch.Disconnect)

	ctx := context.Background()
	id := types.NewAlertID()

	// Not connected yet: dropped silently.
	ch.Emit(ctx, wsmodel.AcknowledgeEvent(id))

	gt.NoError(t, ch.Connect(ctx))
	ch.Emit(ctx, wsmodel.AcknowledgeEvent(id))

	select {
	case evt := <-received:
		gt.Equal(t, evt.Type, wsmodel.EventAcknowledgeAlert)
		gt.Equal(t, evt.AlertID, id)
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for emitted event")
	}
}

func TestEmitConcurrent(t *testing.T) {
	const emitters = 8
	const perEmitter = 20

	received := make(chan *wsmodel.Event, emitters*perEmitter)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn := gt.R1(upgrader.Upgrade(w, r, nil)).NoError(t)
		defer conn.Close()

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var evt wsmodel.Event
			gt.NoError(t, evt.FromBytes(data))
			received <- &evt
		}
	}))
	t.Cleanup(srv.Close)

	ch := push.New(wsURL(srv), "")
	t.Cleanup(ch.Disconnect)

	ctx := context.Background()
	gt.NoError(t, ch.Connect(ctx))

	// Several goroutines emitting at once must share the single connection
	// without tripping the websocket writer contract.
	var wg sync.WaitGroup
	for range emitters {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perEmitter {
				ch.Emit(ctx, wsmodel.AcknowledgeEvent(types.NewAlertID()))
			}
		}()
	}
	wg.Wait()

	for range emitters * perEmitter {
		select {
		case evt := <-received:
			gt.Equal(t, evt.Type, wsmodel.EventAcknowledgeAlert)
		case <-time.After(3 * time.Second):
			t.Fatal("timeout waiting for emitted events")
		}
	}
}

func TestSubscriptionCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn := gt.R1(upgrader.Upgrade(w, r, nil)).NoError(t)
		defer conn.Close()

		data := gt.R1(wsmodel.NewAlertEvent(testAlert()).ToBytes()).NoError(t)
		for range 2 {
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
			time.Sleep(100 * time.Millisecond)
		}
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)

	ch := push.New(wsURL(srv), "")
	t.Cleanup(ch.Disconnect)

	var count atomic.Int32
	sub := ch.Subscribe(wsmodel.EventNewAlert, func(evt *wsmodel.Event) {
		count.Add(1)
	})

	gt.NoError(t, ch.Connect(context.Background()))

	deadline := time.Now().Add(2 * time.Second)
	for count.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	gt.Equal(t, count.Load(), int32(1))
	sub.Cancel()
	sub.Cancel() // safe to repeat

	time.Sleep(300 * time.Millisecond)
	gt.Equal(t, count.Load(), int32(1))
}

func TestReconnect(t *testing.T) {
	var conns atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn := gt.R1(upgrader.Upgrade(w, r, nil)).NoError(t)

		n := conns.Add(1)
		if n == 1 {
			// Drop the first connection immediately to force a redial.
			conn.Close()
			return
		}

		defer conn.Close()
		data := gt.R1(wsmodel.NewAlertEvent(testAlert()).ToBytes()).NoError(t)
		gt.NoError(t, conn.WriteMessage(websocket.TextMessage, data))
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)

	ch := push.New(wsURL(srv), "",
		push.WithReconnectDelay(50*time.Millisecond),
		push.WithMaxReconnects(3),
	)
	t.Cleanup(ch.Disconnect)

	received := make(chan *wsmodel.Event, 1)
	ch.Subscribe(wsmodel.EventNewAlert, func(evt *wsmodel.Event) {
		received <- evt
	})

	gt.NoError(t, ch.Connect(context.Background()))

	select {
	case <-received:
		gt.True(t, conns.Load() >= 2)
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for event after reconnect")
	}
}

func TestReconnectExhaustion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn := gt.R1(upgrader.Upgrade(w, r, nil)).NoError(t)
		conn.Close()
	}))

	stale := make(chan struct{})
	ch := push.New(wsURL(srv), "",
		push.WithReconnectDelay(20*time.Millisecond),
		push.WithMaxReconnects(2),
		push.WithOnStale(func() { close(stale) }),
	)
	t.Cleanup(ch.Disconnect)

	gt.NoError(t, ch.Connect(context.Background()))

	// Kill the server so every redial fails.
	srv.Close()

	select {
	case <-stale:
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for stale notification")
	}
	gt.False(t, ch.Connected())
}

func TestDisconnectIdempotent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn := gt.R1(upgrader.Upgrade(w, r, nil)).NoError(t)
		defer conn.Close()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)

	ch := push.New(wsURL(srv), "")
	gt.NoError(t, ch.Connect(context.Background()))

	ch.Disconnect()
	ch.Disconnect()
	gt.False(t, ch.Connected())

	// Connect after close is rejected.
	gt.Error(t, ch.Connect(context.Background()))
}

package push

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/m-mizutani/goerr/v2"

	wsmodel "github.com/hospitalops/pulse/pkg/domain/model/websocket"
	"github.com/hospitalops/pulse/pkg/domain/model/errs"
	"github.com/hospitalops/pulse/pkg/utils/logging"
)

const (
	defaultReconnectDelay = 3 * time.Second
	defaultMaxReconnects  = 5
)

// Handler receives a decoded push event. Handlers run on the channel's read
// goroutine and must not block.
type Handler func(evt *wsmodel.Event)

// Subscription is the handle returned by Subscribe. Cancel releases the
// handler and is safe to call more than once.
type Subscription struct {
	once   sync.Once
	cancel func()
}

// NewSubscription builds a handle around a release function. Other Stream
// implementations use it to hand out cancelable handles.
func NewSubscription(cancel func()) *Subscription {
	return &Subscription{cancel: cancel}
}

func (x *Subscription) Cancel() {
	x.once.Do(func() {
		if x.cancel != nil {
			x.cancel()
		}
	})
}

// Channel maintains one authenticated websocket connection to the alert
// stream, redials on drop with a fixed delay and a capped attempt count,
// and fans decoded events out to subscribers. One Channel per session.
type Channel struct {
	url    string
	token  string
	dialer *websocket.Dialer

	reconnectDelay time.Duration
	maxReconnects  int
	onStale        func()

	// writeMu serializes writes to conn: gorilla/websocket allows at most
	// one concurrent writer.
	writeMu sync.Mutex

	mu        sync.Mutex
	conn      *websocket.Conn
	connected bool
	closed    bool
	cancel    context.CancelFunc
	subs      map[wsmodel.EventType]map[uint64]Handler
	nextSubID uint64
	wg        sync.WaitGroup
}

type Option func(*Channel)

func WithReconnectDelay(d time.Duration) Option {
	return func(c *Channel) {
		c.reconnectDelay = d
	}
}

func WithMaxReconnects(n int) Option {
	return func(c *Channel) {
		c.maxReconnects = n
	}
}

// WithOnStale registers a callback fired when reconnection attempts are
// exhausted and pushed updates are no longer flowing. The owner should
// prompt a manual re-fetch.
func WithOnStale(fn func()) Option {
	return func(c *Channel) {
		c.onStale = fn
	}
}

func WithDialer(dialer *websocket.Dialer) Option {
	return func(c *Channel) {
		c.dialer = dialer
	}
}

func New(url, token string, opts ...Option) *Channel {
	c := &Channel{
		url:            url,
		token:          token,
		dialer:         websocket.DefaultDialer,
		reconnectDelay: defaultReconnectDelay,
		maxReconnects:  defaultMaxReconnects,
		subs:           make(map[wsmodel.EventType]map[uint64]Handler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Connect dials the stream and starts the read loop. Calling Connect on an
// already connected channel is a no-op.
func (c *Channel) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return goerr.New("channel is closed", goerr.T(errs.TagChannelClosed))
	}
	if c.connected {
		return nil
	}

	conn, err := c.dial(ctx)
	if err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	c.conn = conn
	c.connected = true
	c.cancel = cancel

	c.wg.Add(1)
	go c.readLoop(runCtx, conn)

	return nil
}

func (c *Channel) dial(ctx context.Context) (*websocket.Conn, error) {
	header := http.Header{}
	if c.token != "" {
		header.Set("Authorization", "Bearer "+c.token)
	}

	conn, _, err := c.dialer.DialContext(ctx, c.url, header)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to dial push channel",
			goerr.T(errs.TagNetwork), goerr.V("url", c.url))
	}
	return conn, nil
}

// Disconnect closes the connection and discards all subscriptions.
// Idempotent.
func (c *Channel) Disconnect() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.connected = false
	if c.cancel != nil {
		c.cancel()
	}
	if c.conn != nil {
		c.conn.Close()
	}
	c.subs = make(map[wsmodel.EventType]map[uint64]Handler)
	c.mu.Unlock()

	c.wg.Wait()
}

// Subscribe registers a handler for one event type. Multiple handlers per
// event are allowed.
func (c *Channel) Subscribe(event wsmodel.EventType, handler Handler) *Subscription {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextSubID++
	id := c.nextSubID
	if c.subs[event] == nil {
		c.subs[event] = make(map[uint64]Handler)
	}
	c.subs[event][id] = handler

	return NewSubscription(func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs[event], id)
	})
}

// Emit sends an event to the server. Fire and forget: if the channel is not
// connected the event is dropped without error.
func (c *Channel) Emit(ctx context.Context, evt *wsmodel.Event) {
	c.mu.Lock()
	conn := c.conn
	connected := c.connected
	c.mu.Unlock()

	if !connected || conn == nil {
		logging.From(ctx).Debug("push channel not connected, dropping event", "type", evt.Type)
		return
	}

	data, err := evt.ToBytes()
	if err != nil {
		errs.Handle(ctx, goerr.Wrap(err, "failed to encode push event"))
		return
	}
	c.writeMu.Lock()
	err = conn.WriteMessage(websocket.TextMessage, data)
	c.writeMu.Unlock()
	if err != nil {
		logging.From(ctx).Warn("failed to emit push event", "type", evt.Type, "error", err)
	}
}

// Connected reports whether the channel currently holds a live connection.
func (c *Channel) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

func (c *Channel) readLoop(ctx context.Context, conn *websocket.Conn) {
	defer c.wg.Done()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return
			}

			c.mu.Lock()
			c.connected = false
			c.mu.Unlock()

			conn = c.reconnect(ctx)
			if conn == nil {
				return
			}
			continue
		}

		var evt wsmodel.Event
		if err := evt.FromBytes(data); err != nil {
			logging.From(ctx).Warn("failed to decode push event", "error", err)
			continue
		}

		c.fanOut(&evt)
	}
}

func (c *Channel) fanOut(evt *wsmodel.Event) {
	c.mu.Lock()
	handlers := make([]Handler, 0, len(c.subs[evt.Type]))
	for _, h := range c.subs[evt.Type] {
		handlers = append(handlers, h)
	}
	c.mu.Unlock()

	for _, h := range handlers {
		h(evt)
	}
}

// reconnect redials with a fixed delay up to the attempt cap. Returns the
// new connection, or nil when the channel is closed or attempts run out.
func (c *Channel) reconnect(ctx context.Context) *websocket.Conn {
	logger := logging.From(ctx)

	for attempt := 1; attempt <= c.maxReconnects; attempt++ {
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(c.reconnectDelay):
		}

		conn, err := c.dial(ctx)
		if err != nil {
			logger.Warn("push channel reconnect failed",
				"attempt", attempt, "max", c.maxReconnects, "error", err)
			continue
		}

		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			conn.Close()
			return nil
		}
		c.conn = conn
		c.connected = true
		c.mu.Unlock()

		logger.Info("push channel reconnected", "attempt", attempt)
		return conn
	}

	logger.Error("push channel reconnect attempts exhausted", "max", c.maxReconnects)
	if c.onStale != nil {
		c.onStale()
	}
	return nil
}

package cache

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/hospitalops/pulse/pkg/client/push"
	"github.com/hospitalops/pulse/pkg/domain/model/alert"
	"github.com/hospitalops/pulse/pkg/domain/model/errs"
	wsmodel "github.com/hospitalops/pulse/pkg/domain/model/websocket"
	"github.com/hospitalops/pulse/pkg/domain/types"
	"github.com/hospitalops/pulse/pkg/utils/logging"
)

// Repository is the slice of the alert REST API the cache drives.
// *rest.Client satisfies it.
type Repository interface {
	List(ctx context.Context, filter alert.Filter) (alert.Alerts, error)
	MarkRead(ctx context.Context, id types.AlertID) (*alert.Alert, error)
	MarkAllRead(ctx context.Context) error
	Acknowledge(ctx context.Context, id types.AlertID) (*alert.Alert, error)
	Resolve(ctx context.Context, id types.AlertID, resolution string) (*alert.Alert, error)
}

// Stream is the push-channel surface the cache consumes. *push.Channel
// satisfies it.
type Stream interface {
	Subscribe(event wsmodel.EventType, handler push.Handler) *push.Subscription
	Emit(ctx context.Context, evt *wsmodel.Event)
}

// Snapshot is a point-in-time view of the cache state. The alert pointers
// are owned by the snapshot and safe to read after later mutations.
type Snapshot struct {
	Alerts      alert.Alerts
	UnreadCount int
	Loading     bool
	Err         error
}

// Cache holds the authoritative client-side view of active alerts. All
// state lives on a single reconciliation goroutine: the bulk fetch, pushed
// events, and mutation confirmations are each enqueued as one atomic state
// transition, so the unread counter never drifts from the read flags.
type Cache struct {
	repo   Repository
	stream Stream

	ops  chan func()
	done chan struct{}

	// Everything below is owned by the run goroutine.
	alerts   alert.Alerts
	unread   int
	loading  bool
	lastErr  error
	inflight map[types.AlertID]struct{}
	subs     []*push.Subscription
	onChange func(Snapshot)
}

type Option func(*Cache)

// WithOnChange registers a callback invoked synchronously after every
// visible state transition. It runs on the reconciliation goroutine and
// must not call back into the cache.
func WithOnChange(fn func(Snapshot)) Option {
	return func(c *Cache) {
		c.onChange = fn
	}
}

func New(repo Repository, stream Stream, opts ...Option) *Cache {
	c := &Cache{
		repo:     repo,
		stream:   stream,
		ops:      make(chan func(), 64),
		done:     make(chan struct{}),
		inflight: make(map[types.AlertID]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	go c.run()
	return c
}

func (c *Cache) run() {
	for {
		select {
		case op := <-c.ops:
			op()
		case <-c.done:
			return
		}
	}
}

// dispatch enqueues an op for the run goroutine. Returns false when the
// cache is closed, in which case the op is discarded.
func (c *Cache) dispatch(op func()) bool {
	select {
	case c.ops <- op:
		return true
	case <-c.done:
		return false
	}
}

// call runs an op on the run goroutine and waits for it.
func (c *Cache) call(op func()) bool {
	ran := make(chan struct{})
	if !c.dispatch(func() {
		op()
		close(ran)
	}) {
		return false
	}
	select {
	case <-ran:
		return true
	case <-c.done:
		return false
	}
}

var errCacheClosed = goerr.New("alert cache is closed", goerr.T(errs.TagChannelClosed))

// Start subscribes to the push stream and kicks off the initial fetch of
// active alerts. The fetch completes in the background; its outcome shows
// up in Snapshot as Loading/Err. A fetch that lands after Close is
// discarded.
func (c *Cache) Start(ctx context.Context) error {
	ok := c.call(func() {
		c.loading = true
		if c.stream != nil {
			c.subs = append(c.subs,
				c.stream.Subscribe(wsmodel.EventNewAlert, func(evt *wsmodel.Event) {
					c.dispatch(func() {
						c.applyNew(evt.Alert)
						c.notify()
					})
				}),
				c.stream.Subscribe(wsmodel.EventAlertUpdated, func(evt *wsmodel.Event) {
					c.dispatch(func() {
						c.applyUpdate(evt.Alert)
						c.notify()
					})
				}),
			)
		}
	})
	if !ok {
		return errCacheClosed
	}

	go func() {
		alerts, err := c.repo.List(ctx, alert.Filter{Status: types.AlertStatusActive})
		c.dispatch(func() {
			c.loading = false
			if err != nil {
				c.lastErr = goerr.Wrap(err, "failed to load active alerts", goerr.T(errs.TagFetchFailed))
				c.notify()
				return
			}
			c.lastErr = nil
			c.seed(alerts)
			c.notify()
		})
	}()

	return nil
}

// Refresh re-fetches active alerts synchronously and merges them in. Used
// after the push channel reports staleness.
func (c *Cache) Refresh(ctx context.Context) error {
	alerts, err := c.repo.List(ctx, alert.Filter{Status: types.AlertStatusActive})
	if err != nil {
		return goerr.Wrap(err, "failed to refresh alerts", goerr.T(errs.TagFetchFailed))
	}

	if !c.call(func() {
		c.lastErr = nil
		c.seed(alerts)
		c.notify()
	}) {
		return errCacheClosed
	}
	return nil
}

// seed merges a freshly fetched, newest-first list. Ids already present
// from pushed events take the fetched copy as an update rather than a
// duplicate entry.
func (c *Cache) seed(alerts alert.Alerts) {
	for i := len(alerts) - 1; i >= 0; i-- {
		c.applyNew(alerts[i])
	}
}

// applyNew implements the new-alert rule: prepend if unknown, otherwise
// fall through to the update path.
func (c *Cache) applyNew(a *alert.Alert) {
	if a == nil {
		return
	}
	if c.indexOf(a.ID) >= 0 {
		c.applyUpdate(a)
		return
	}

	c.alerts = append(alert.Alerts{a.Clone()}, c.alerts...)
	if !a.Read {
		c.unread++
	}
}

// applyUpdate implements the alert-updated rule: unknown ids are ignored,
// known ids are replaced last-write-wins with the unread counter adjusted
// by the read-flag delta.
func (c *Cache) applyUpdate(a *alert.Alert) {
	if a == nil {
		return
	}
	idx := c.indexOf(a.ID)
	if idx < 0 {
		return
	}

	prev := c.alerts[idx]
	if !prev.Read && a.Read && c.unread > 0 {
		c.unread--
	} else if prev.Read && !a.Read {
		c.unread++
	}
	c.alerts[idx] = a.Clone()
}

func (c *Cache) indexOf(id types.AlertID) int {
	for i, a := range c.alerts {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func (c *Cache) notify() {
	if c.onChange != nil {
		c.onChange(c.snapshot())
	}
}

func (c *Cache) snapshot() Snapshot {
	return Snapshot{
		Alerts:      append(alert.Alerts{}, c.alerts...),
		UnreadCount: c.unread,
		Loading:     c.loading,
		Err:         c.lastErr,
	}
}

// Snapshot returns the current state. A closed cache returns the zero
// snapshot.
func (c *Cache) Snapshot() Snapshot {
	var snap Snapshot
	c.call(func() {
		snap = c.snapshot()
	})
	return snap
}

func (c *Cache) UnreadCount() int {
	return c.Snapshot().UnreadCount
}

// mutate runs one server-confirmed write for a single alert id. A second
// call for the same id while the first is in flight is treated as the
// idempotent no-op rather than issued twice. State changes only after the
// server confirms, using its returned copy.
func (c *Cache) mutate(ctx context.Context, id types.AlertID, fn func(context.Context) (*alert.Alert, error)) (*alert.Alert, error) {
	var busy bool
	if !c.call(func() {
		if _, ok := c.inflight[id]; ok {
			busy = true
			return
		}
		c.inflight[id] = struct{}{}
	}) {
		return nil, errCacheClosed
	}
	if busy {
		logging.From(ctx).Debug("mutation already in flight, skipping", "alert_id", id)
		return nil, nil
	}
	defer c.call(func() {
		delete(c.inflight, id)
	})

	a, err := fn(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "alert mutation failed",
			goerr.T(errs.TagMutationFailed), goerr.V("alert_id", id))
	}

	c.call(func() {
		c.applyUpdate(a)
		c.notify()
	})
	return a, nil
}

func (c *Cache) MarkRead(ctx context.Context, id types.AlertID) error {
	_, err := c.mutate(ctx, id, func(ctx context.Context) (*alert.Alert, error) {
		return c.repo.MarkRead(ctx, id)
	})
	return err
}

// Acknowledge confirms the transition with the server, reconciles the
// returned copy, then emits acknowledge-alert so other open dashboards get
// the server's alert-updated push.
func (c *Cache) Acknowledge(ctx context.Context, id types.AlertID) error {
	a, err := c.mutate(ctx, id, func(ctx context.Context) (*alert.Alert, error) {
		return c.repo.Acknowledge(ctx, id)
	})
	if err != nil {
		return err
	}
	if a != nil && c.stream != nil {
		c.stream.Emit(ctx, wsmodel.AcknowledgeEvent(id))
	}
	return nil
}

func (c *Cache) Resolve(ctx context.Context, id types.AlertID, resolution string) error {
	_, err := c.mutate(ctx, id, func(ctx context.Context) (*alert.Alert, error) {
		return c.repo.Resolve(ctx, id, resolution)
	})
	return err
}

// MarkAllRead flips every cached alert to read in one state transition, so
// no subscriber observes an intermediate count.
func (c *Cache) MarkAllRead(ctx context.Context) error {
	if err := c.repo.MarkAllRead(ctx); err != nil {
		return goerr.Wrap(err, "mark all read failed", goerr.T(errs.TagMutationFailed))
	}

	if !c.call(func() {
		next := make(alert.Alerts, len(c.alerts))
		for i, a := range c.alerts {
			cp := a.Clone()
			cp.Read = true
			next[i] = cp
		}
		c.alerts = next
		c.unread = 0
		c.notify()
	}) {
		return errCacheClosed
	}
	return nil
}

// Close cancels the push subscriptions, clears state, and stops the
// reconciliation goroutine. Idempotent. Results of in-flight fetches are
// discarded.
func (c *Cache) Close() {
	c.call(func() {
		for _, sub := range c.subs {
			sub.Cancel()
		}
		c.subs = nil
		c.alerts = nil
		c.unread = 0

		select {
		case <-c.done:
		default:
			close(c.done)
		}
	})
}

package search

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"safenav_gateway/internal/geo"
	"safenav_gateway/platform/events"
	"safenav_gateway/platform/logger"
)

// resolver is the place-resolution dependency of a controller.
type resolver interface {
	Resolve(ctx context.Context, query string) []geo.PlaceCandidate
}

// UpdateFunc receives a session snapshot whenever the rendered state of
// a controller changes. It is called without the controller lock held
// and may call back into the controller.
type UpdateFunc func(role string, snap Snapshot)

// Controller owns one search field's session. Keystrokes are coalesced
// behind a debounce timer; only the newest scheduled lookup may land,
// and a lookup superseded while in flight is discarded on return.
type Controller struct {
	role     string
	resolver resolver
	bus      events.Bus
	debounce time.Duration
	minQuery int
	log      *logger.Logger
	onUpdate UpdateFunc

	ctx context.Context

	mu     sync.Mutex
	state  session
	closed bool
}

// NewController creates a controller for one endpoint role and
// subscribes it to the process-wide dismiss event. The context bounds
// resolver calls made by fired debounce timers and is typically the
// owning connection's context.
func NewController(ctx context.Context, role string, res resolver, bus events.Bus, debounce time.Duration, minQuery int, onUpdate UpdateFunc, log *logger.Logger) *Controller {
	c := &Controller{
		role:     role,
		resolver: res,
		bus:      bus,
		debounce: debounce,
		minQuery: minQuery,
		log:      log,
		onUpdate: onUpdate,
		ctx:      ctx,
	}
	if bus != nil {
		bus.Subscribe(DismissEventName, c)
	}
	return c
}

// TextChanged records a new field value. Any pending lookup is
// superseded. Queries shorter than the minimum clear and hide the
// suggestion list immediately without scheduling a lookup; longer
// queries schedule one lookup after the debounce interval.
func (c *Controller) TextChanged(text string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	c.state.cancelTimer()
	c.state.query = text
	c.state.seq++

	if utf8.RuneCountInString(strings.TrimSpace(text)) < c.minQuery {
		c.state.suggestions = nil
		c.state.visible = false
		snap := c.state.snapshot()
		c.mu.Unlock()
		c.notify(snap)
		return
	}

	seq := c.state.seq
	c.state.timer = time.AfterFunc(c.debounce, func() {
		c.fire(seq)
	})
	c.mu.Unlock()
}

// fire runs a debounced lookup. The sequence check runs twice: once
// before the resolver call, because Stop on an already-fired timer
// cannot retract it, and once after, because the session may have moved
// on while the lookup was in flight.
func (c *Controller) fire(seq uint64) {
	c.mu.Lock()
	if c.closed || seq != c.state.seq {
		c.mu.Unlock()
		return
	}
	query := c.state.query
	c.mu.Unlock()

	places := c.resolver.Resolve(c.ctx, query)

	c.mu.Lock()
	if c.closed || seq != c.state.seq {
		c.mu.Unlock()
		return
	}
	c.state.suggestions = places
	c.state.visible = true
	snap := c.state.snapshot()
	c.mu.Unlock()
	c.notify(snap)
}

// Focus reopens the suggestion list when a previous lookup left
// candidates behind. A focus on an empty session does nothing.
func (c *Controller) Focus() {
	c.mu.Lock()
	if c.closed || len(c.state.suggestions) == 0 || c.state.visible {
		c.mu.Unlock()
		return
	}
	c.state.visible = true
	snap := c.state.snapshot()
	c.mu.Unlock()
	c.notify(snap)
}

// Select commits the candidate at index: the field text becomes the
// place name, the coordinate is pinned for route requests, and the
// list is cleared and hidden. Any pending lookup is cancelled so it
// cannot repopulate the list afterwards.
func (c *Controller) Select(index int) (geo.PlaceCandidate, bool) {
	c.mu.Lock()
	if c.closed || index < 0 || index >= len(c.state.suggestions) {
		c.mu.Unlock()
		return geo.PlaceCandidate{}, false
	}

	candidate := c.state.suggestions[index]
	c.state.cancelTimer()
	c.state.seq++
	c.state.query = candidate.PlaceName
	coord := candidate.Coord
	c.state.selected = &coord
	c.state.suggestions = nil
	c.state.visible = false
	snap := c.state.snapshot()
	c.mu.Unlock()

	c.notify(snap)
	return candidate, true
}

// SetCoordinate pins a coordinate directly, as when the device position
// is adopted for the start field. The field text becomes the formatted
// coordinate and any open list is hidden.
func (c *Controller) SetCoordinate(coord geo.Coordinate) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.state.cancelTimer()
	c.state.seq++
	c.state.query = geo.FormatCoordinate(coord)
	pinned := coord
	c.state.selected = &pinned
	c.state.suggestions = nil
	c.state.visible = false
	snap := c.state.snapshot()
	c.mu.Unlock()
	c.notify(snap)
}

// Dismiss hides the suggestion list without discarding it, so a later
// Focus can reopen the same candidates.
func (c *Controller) Dismiss() {
	c.mu.Lock()
	if c.closed || !c.state.visible {
		c.mu.Unlock()
		return
	}
	c.state.visible = false
	snap := c.state.snapshot()
	c.mu.Unlock()
	c.notify(snap)
}

// Handle implements events.Handler for the dismiss event.
func (c *Controller) Handle(ctx context.Context, event events.Event) error {
	if event.EventName() == DismissEventName {
		c.Dismiss()
	}
	return nil
}

// Snapshot returns the current session state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.snapshot()
}

// Close cancels any pending lookup, unsubscribes from the dismiss
// event, and makes every further operation a no-op. A timer that fires
// during teardown finds the session closed and discards its result.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.state.cancelTimer()
	c.mu.Unlock()

	if c.bus != nil {
		c.bus.Unsubscribe(DismissEventName, c)
	}
}

func (c *Controller) notify(snap Snapshot) {
	if c.onUpdate != nil {
		c.onUpdate(c.role, snap)
	}
}

var _ events.Handler = (*Controller)(nil)

package events

import (
	"context"
	"sync"

	"safenav_gateway/platform/logger"
)

// InMemoryBus is a synchronous-registration, per-event-name dispatch bus.
// Subscribe/Unsubscribe are safe to call concurrently with Publish.
type InMemoryBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	log      *logger.Logger

	queueMu  sync.Mutex
	queue    []queuedEvent
	draining bool
}

type queuedEvent struct {
	ctx   context.Context
	event Event
}

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return &InMemoryBus{
		handlers: make(map[string][]Handler),
		log:      log,
	}
}

// Subscribe registers a handler for the given event name.
func (b *InMemoryBus) Subscribe(eventName string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventName] = append(b.handlers[eventName], handler)
}

// Unsubscribe removes a handler previously registered for the event name.
// Handlers are compared by identity, so the same value passed to Subscribe
// must be passed here and must be of a comparable type (a pointer, not a
// bare HandlerFunc).
func (b *InMemoryBus) Unsubscribe(eventName string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	registered := b.handlers[eventName]
	for i, h := range registered {
		if h == handler {
			b.handlers[eventName] = append(registered[:i:i], registered[i+1:]...)
			return
		}
	}
}

// Publish dispatches the event to all handlers asynchronously. Events
// are delivered in publish order: a single drain goroutine works through
// the queue, so a handler never sees a later event before an earlier one.
func (b *InMemoryBus) Publish(ctx context.Context, event Event) {
	b.queueMu.Lock()
	b.queue = append(b.queue, queuedEvent{ctx: ctx, event: event})
	if b.draining {
		b.queueMu.Unlock()
		return
	}
	b.draining = true
	b.queueMu.Unlock()

	go b.drain()
}

// drain delivers queued events one at a time and exits once the queue is
// empty, so an idle bus holds no goroutine.
func (b *InMemoryBus) drain() {
	for {
		b.queueMu.Lock()
		if len(b.queue) == 0 {
			b.draining = false
			b.queueMu.Unlock()
			return
		}
		next := b.queue[0]
		b.queue = b.queue[1:]
		b.queueMu.Unlock()

		for _, handler := range b.snapshot(next.event.EventName()) {
			if err := handler.Handle(next.ctx, next.event); err != nil && b.log != nil {
				b.log.Error("event handler failed", "event", next.event.EventName(), "error", err)
			}
		}
	}
}

// PublishSync dispatches the event and waits for every handler, returning
// the first error encountered.
func (b *InMemoryBus) PublishSync(ctx context.Context, event Event) error {
	var firstErr error
	for _, handler := range b.snapshot(event.EventName()) {
		if err := handler.Handle(ctx, event); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			if b.log != nil {
				b.log.Error("event handler failed", "event", event.EventName(), "error", err)
			}
		}
	}
	return firstErr
}

func (b *InMemoryBus) snapshot(eventName string) []Handler {
	b.mu.RLock()
	defer b.mu.RUnlock()

	registered := b.handlers[eventName]
	out := make([]Handler, len(registered))
	copy(out, registered)
	return out
}

var _ Bus = (*InMemoryBus)(nil)

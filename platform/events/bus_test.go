package events

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"safenav_gateway/platform/logger"
)

type seqEvent struct {
	BaseEvent
	n int
}

func (e seqEvent) EventName() string {
	return "test.seq"
}

type orderRecorder struct {
	mu   sync.Mutex
	seen []int
}

func (r *orderRecorder) Handle(ctx context.Context, event Event) error {
	e := event.(seqEvent)
	r.mu.Lock()
	r.seen = append(r.seen, e.n)
	r.mu.Unlock()
	return nil
}

func (r *orderRecorder) snapshot() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int, len(r.seen))
	copy(out, r.seen)
	return out
}

func TestPublish_DeliversInPublishOrder(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))
	recorder := &orderRecorder{}
	bus.Subscribe("test.seq", recorder)

	const count = 50
	for i := 0; i < count; i++ {
		bus.Publish(context.Background(), seqEvent{BaseEvent: NewBaseEvent(), n: i})
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(recorder.snapshot()) == count {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	seen := recorder.snapshot()
	if len(seen) != count {
		t.Fatalf("expected %d events, got %d", count, len(seen))
	}
	for i, n := range seen {
		if n != i {
			t.Fatalf("events delivered out of publish order: position %d holds %d", i, n)
		}
	}
}

func TestUnsubscribe_StopsDelivery(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))
	recorder := &orderRecorder{}
	bus.Subscribe("test.seq", recorder)

	bus.Publish(context.Background(), seqEvent{BaseEvent: NewBaseEvent(), n: 0})

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if len(recorder.snapshot()) == 1 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	if len(recorder.snapshot()) != 1 {
		t.Fatal("first event never delivered")
	}

	bus.Unsubscribe("test.seq", recorder)
	if err := bus.PublishSync(context.Background(), seqEvent{BaseEvent: NewBaseEvent(), n: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := recorder.snapshot(); len(got) != 1 {
		t.Fatalf("expected no delivery after unsubscribe, got %v", got)
	}
}

func TestPublishSync_ReturnsFirstHandlerError(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))
	bus.Subscribe("test.seq", HandlerFunc(func(ctx context.Context, event Event) error {
		return fmt.Errorf("first failure")
	}))
	bus.Subscribe("test.seq", HandlerFunc(func(ctx context.Context, event Event) error {
		return fmt.Errorf("second failure")
	}))

	err := bus.PublishSync(context.Background(), seqEvent{BaseEvent: NewBaseEvent()})
	if err == nil || err.Error() != "first failure" {
		t.Fatalf("expected the first handler error, got %v", err)
	}
}

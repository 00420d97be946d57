package route

import (
	"context"
	"errors"
	"sync"

	"safenav_gateway/internal/geo"
	"safenav_gateway/internal/notify"
	"safenav_gateway/platform/apperr"
	"safenav_gateway/platform/events"
	"safenav_gateway/platform/logger"
)

// Endpoint roles, used for validation messages.
const (
	RoleStart = "start"
	RoleEnd   = "end"
)

// Endpoint is one side of a route request: the field's raw text plus the
// coordinate chosen from a suggestion, when one was selected. A selected
// coordinate wins; otherwise the text must parse as "lat,lng".
type Endpoint struct {
	Text     string
	Selected *geo.Coordinate
}

// Resolve returns the endpoint's coordinate or a validation error that
// never reaches the network.
func (e Endpoint) Resolve(role string) (geo.Coordinate, error) {
	if e.Selected != nil {
		return *e.Selected, nil
	}
	if coord, ok := geo.ParseCoordinate(e.Text); ok {
		return coord, nil
	}
	if role == RoleEnd {
		return geo.Coordinate{}, apperr.Validation("도착지를 선택하거나 올바른 좌표를 입력해주세요.")
	}
	return geo.Coordinate{}, apperr.Validation("출발지를 선택하거나 올바른 좌표를 입력해주세요.")
}

// router is the upstream dependency of the orchestrator.
type router interface {
	SafeRoute(ctx context.Context, start, end geo.Coordinate) (Result, error)
}

// Orchestrator dispatches safe-route requests and holds the last
// successful result. Failures keep the prior result and publish a
// failure notice; a request completing after a later-dispatched one
// never overwrites the newer result.
type Orchestrator struct {
	client router
	bus    events.Bus
	log    *logger.Logger

	mu      sync.Mutex
	seq     uint64
	applied uint64
	last    *Result
}

// NewOrchestrator creates an orchestrator over the given route client.
func NewOrchestrator(client router, bus events.Bus, log *logger.Logger) *Orchestrator {
	return &Orchestrator{client: client, bus: bus, log: log}
}

// RequestEndpoints resolves both endpoints and requests a route.
// Validation failures surface as notices and never reach the network.
func (o *Orchestrator) RequestEndpoints(ctx context.Context, start, end Endpoint) (Result, error) {
	startCoord, err := start.Resolve(RoleStart)
	if err != nil {
		notify.Publish(ctx, o.bus, notify.Error(err.Error()))
		return Result{}, err
	}
	endCoord, err := end.Resolve(RoleEnd)
	if err != nil {
		notify.Publish(ctx, o.bus, notify.Error(err.Error()))
		return Result{}, err
	}

	return o.Request(ctx, startCoord, endCoord)
}

// Request calls the route service with two resolved coordinates. On
// success the held result is replaced wholesale and a success notice
// carries the server message; on failure the prior result is untouched.
func (o *Orchestrator) Request(ctx context.Context, start, end geo.Coordinate) (Result, error) {
	o.mu.Lock()
	o.seq++
	seq := o.seq
	o.mu.Unlock()

	result, err := o.client.SafeRoute(ctx, start, end)
	if err != nil {
		notify.Publish(ctx, o.bus, notify.Error("경로 검색 실패: "+failureDetail(err)))
		return Result{}, err
	}

	o.mu.Lock()
	if seq > o.applied {
		o.applied = seq
		retained := result
		o.last = &retained
	}
	o.mu.Unlock()

	notify.Publish(ctx, o.bus, notify.Success(result.Message))
	return result, nil
}

// Last returns the most recent successful route, if any.
func (o *Orchestrator) Last() (Result, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.last == nil {
		return Result{}, false
	}
	return *o.last, true
}

// failureDetail extracts the upstream detail string for user-facing
// notices, falling back to a generic message.
func failureDetail(err error) string {
	var e *apperr.Error
	if errors.As(err, &e) {
		if detail, ok := e.Details.(string); ok && detail != "" {
			return detail
		}
	}
	return "서버 오류"
}

package risk

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

// predictor is the upstream dependency of the probe.
type predictor interface {
	PredictRisk(ctx context.Context, point geo.Coordinate) (Result, error)
}

// Probe dispatches risk checks and holds the last successful result. A
// failed check publishes a failure notice and leaves the prior result in
// place; a check that completes after a later-dispatched one never
// overwrites the newer result.
type Probe struct {
	client predictor
	bus    events.Bus
	log    *logger.Logger

	mu      sync.Mutex
	seq     uint64
	applied uint64
	last    *Result
}

// NewProbe creates a probe over the given upstream client.
func NewProbe(client predictor, bus events.Bus, log *logger.Logger) *Probe {
	return &Probe{client: client, bus: bus, log: log}
}

// Check probes the advisory service for the point's risk. The returned
// result is also retained as the probe's last known state.
func (p *Probe) Check(ctx context.Context, point geo.Coordinate) (Result, error) {
	p.mu.Lock()
	p.seq++
	seq := p.seq
	p.mu.Unlock()

	result, err := p.client.PredictRisk(ctx, point)
	if err != nil {
		notify.Publish(ctx, p.bus, notify.Error("위험도 예측 실패: "+failureDetail(err)))
		return Result{}, err
	}
	result.Tier = TierForScore(result.RiskScore)

	p.mu.Lock()
	if seq > p.applied {
		p.applied = seq
		retained := result
		p.last = &retained
	}
	p.mu.Unlock()

	return result, nil
}

// Last returns the most recent successful result, if any.
func (p *Probe) Last() (Result, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.last == nil {
		return Result{}, false
	}
	return *p.last, true
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

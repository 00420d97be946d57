package search

import (
	"time"

	"safenav_gateway/internal/geo"
)

// session is the per-role search state owned exclusively by one
// Controller. The pending timer handle is explicit so supersession and
// teardown can cancel it.
type session struct {
	query       string
	timer       *time.Timer
	seq         uint64
	suggestions []geo.PlaceCandidate
	visible     bool
	selected    *geo.Coordinate
}

// Snapshot is an immutable view of a session for rendering.
type Snapshot struct {
	Query       string               `json:"query"`
	Suggestions []geo.PlaceCandidate `json:"suggestions"`
	Visible     bool                 `json:"visible"`
	Selected    *geo.Coordinate      `json:"selected,omitempty"`
}

func (s *session) snapshot() Snapshot {
	suggestions := make([]geo.PlaceCandidate, len(s.suggestions))
	copy(suggestions, s.suggestions)

	snap := Snapshot{
		Query:       s.query,
		Suggestions: suggestions,
		Visible:     s.visible,
	}
	if s.selected != nil {
		selected := *s.selected
		snap.Selected = &selected
	}
	return snap
}

// cancelTimer stops the pending debounce timer, if any.
func (s *session) cancelTimer() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

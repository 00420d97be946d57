// Package search implements the debounced place-search controller: it
// owns per-role search sessions, coalesces keystrokes behind a debounce
// timer, discards stale lookup results, and drives the suggestion list
// lifecycle that interactive clients render.
package search

import "safenav_gateway/platform/events"

// DismissEventName identifies the process-wide outside-interaction
// signal. Every subscribed controller hides its suggestion list when it
// fires; suggestions themselves are retained so a refocus can reopen
// the last list.
const DismissEventName = "search.dismiss_all"

// DismissEvent is published when the user interacts outside any search
// container.
type DismissEvent struct {
	events.BaseEvent
}

// EventName implements events.Event.
func (e DismissEvent) EventName() string {
	return DismissEventName
}

// NewDismissEvent creates a dismiss event.
func NewDismissEvent() DismissEvent {
	return DismissEvent{BaseEvent: events.NewBaseEvent()}
}

// Package notify defines the transient notification events that the
// orchestrators publish and interactive channels forward to clients.
// Notices are the gateway's rendition of the frontend's toasts: every
// handled failure surfaces here instead of propagating upward.
package notify

import (
	"context"

	"safenav_gateway/platform/events"
)

// Notice levels.
const (
	LevelSuccess = "success"
	LevelError   = "error"
)

// NoticeEventName identifies notice events on the bus.
const NoticeEventName = "notify.notice"

// NoticeEvent is a transient user-facing message.
type NoticeEvent struct {
	events.BaseEvent
	Level   string `json:"level"`
	Message string `json:"message"`
}

// EventName implements events.Event.
func (e NoticeEvent) EventName() string {
	return NoticeEventName
}

// Success creates a success notice.
func Success(message string) NoticeEvent {
	return NoticeEvent{BaseEvent: events.NewBaseEvent(), Level: LevelSuccess, Message: message}
}

// Error creates a failure notice.
func Error(message string) NoticeEvent {
	return NoticeEvent{BaseEvent: events.NewBaseEvent(), Level: LevelError, Message: message}
}

// Publish is a convenience for modules holding only a bus reference.
func Publish(ctx context.Context, bus events.Bus, notice NoticeEvent) {
	if bus == nil {
		return
	}
	bus.Publish(ctx, notice)
}

// Package telemetry provides field statistics, performance timing and CSV output.
package telemetry

import "log/slog"

// EventType identifies discrete field events worth recording on their own row.
type EventType string

const (
	EventGridLayout EventType = "grid_layout"
	EventControl    EventType = "control"
	EventFeedError  EventType = "feed_error"
)

// Event is a single recorded field event.
type Event struct {
	Type   EventType `csv:"type"`
	Tick   int32     `csv:"tick"`
	Source string    `csv:"source"` // "gesture", "panel", "feed" or "key"
	Detail string    `csv:"detail"`
}

// NewGridLayoutEvent records a grid reset and what triggered it.
func NewGridLayoutEvent(tick int32, source string) Event {
	return Event{Type: EventGridLayout, Tick: tick, Source: source}
}

// NewControlEvent records an accepted setting change.
func NewControlEvent(tick int32, source, key, display string) Event {
	return Event{Type: EventControl, Tick: tick, Source: source, Detail: key + "=" + display}
}

// NewFeedErrorEvent records a rejected feed message.
func NewFeedErrorEvent(tick int32, err error) Event {
	return Event{Type: EventFeedError, Tick: tick, Source: "feed", Detail: err.Error()}
}

// LogEvent logs the event using slog.
func (e Event) LogEvent() {
	slog.Info("event",
		"type", string(e.Type),
		"tick", e.Tick,
		"source", e.Source,
		"detail", e.Detail,
	)
}

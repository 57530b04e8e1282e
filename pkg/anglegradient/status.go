package anglegradient

import "time"

// Status is a snapshot of a Renderer.
type Status struct {
	// Watching reports whether the document is being watched.
	Watching bool
	// RenderCount is the number of successful renders.
	RenderCount uint64
	// LastRenderDuration is how long the last render took.
	LastRenderDuration time.Duration
	// AverageRenderDuration is the mean render time.
	AverageRenderDuration time.Duration
	// LastError is the most recent error encountered (nil if none).
	LastError error
	// ConfigSource describes where the document came from.
	ConfigSource string
	// OutputPath is where Render writes.
	OutputPath string
}

// ErrorHandler is a callback for runtime errors.
// It is called asynchronously; do not block in the handler.
type ErrorHandler func(err error)

// EventHandler is a callback for lifecycle events.
// It is called asynchronously; do not block in the handler.
type EventHandler func(event Event)

// Event represents a lifecycle event.
type Event struct {
	Type      EventType
	Timestamp time.Time
	Message   string
}

// EventType enumerates lifecycle event types.
type EventType int

const (
	// EventRendered is emitted after an image is written.
	EventRendered EventType = iota
	// EventConfigReloaded is emitted when the document is reloaded.
	EventConfigReloaded
	// EventWatchStarted is emitted when watching begins.
	EventWatchStarted
	// EventWatchStopped is emitted when watching ends.
	EventWatchStopped
	// EventError is emitted when a recoverable error occurs.
	EventError
)

// String returns a human-readable representation of the event type.
func (e EventType) String() string {
	switch e {
	case EventRendered:
		return "rendered"
	case EventConfigReloaded:
		return "config_reloaded"
	case EventWatchStarted:
		return "watch_started"
	case EventWatchStopped:
		return "watch_stopped"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

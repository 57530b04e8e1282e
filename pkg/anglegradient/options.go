package anglegradient

import "time"

// Options configures a Renderer.
type Options struct {
	// OutputPath overrides the document's output path.
	// Empty string means use the document's value.
	OutputPath string

	// Angle overrides the document's angle and direction when non-nil.
	Angle *float64

	// Script is an optional Lua script run after the document's gradient
	// is painted. The angle_gradient_* functions paint into the same
	// image, and the globals canvas_width and canvas_height hold its size.
	Script string

	// LuaCPULimit overrides the script's CPU instruction limit.
	// Zero means use the default (10 million instructions).
	LuaCPULimit uint64

	// LuaMemoryLimit overrides the script's memory limit in bytes.
	// Zero means use the default (50 MB).
	LuaMemoryLimit uint64

	// Logger sets a custom logger for debug/info messages.
	// If nil, no logging is performed.
	Logger Logger

	// WatchDebounce sets the debounce interval for file change events.
	// Multiple rapid file modifications within this window trigger only
	// a single reload. Zero means use DefaultWatchDebounce.
	WatchDebounce time.Duration
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Logger:        NopLogger(),
		WatchDebounce: DefaultWatchDebounce,
	}
}

// Logger interface for custom logging.
// It follows the slog-style signature for compatibility with Go's structured logging.
type Logger interface {
	// Debug logs a debug-level message with optional key-value pairs.
	Debug(msg string, args ...any)
	// Info logs an info-level message with optional key-value pairs.
	Info(msg string, args ...any)
	// Warn logs a warning-level message with optional key-value pairs.
	Warn(msg string, args ...any)
	// Error logs an error-level message with optional key-value pairs.
	Error(msg string, args ...any)
}

package anglegradient

import "errors"

var (
	// ErrNotWatchable is returned by Watch when the document did not come
	// from a file on disk.
	ErrNotWatchable = errors.New("document source cannot be watched")

	// ErrEmptyImage is returned when the document's bounds produce an
	// image without pixels.
	ErrEmptyImage = errors.New("gradient bounds produce an empty image")

	// ErrNoOutput is returned by Render when no output path is known.
	ErrNoOutput = errors.New("no output path")

	// ErrWindowUnavailable is returned by RunWindow in builds without a
	// windowing backend.
	ErrWindowUnavailable = errors.New("preview window not available in this build")
)

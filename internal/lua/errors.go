// This file defines common error types used throughout the package.
package lua

import "errors"

var (
	// ErrNilRuntime is returned when a nil runtime is passed to a function that requires one.
	ErrNilRuntime = errors.New("runtime cannot be nil")

	// ErrInvalidGradient is returned when an argument is not a gradient userdata.
	ErrInvalidGradient = errors.New("expected gradient userdata")

	// ErrResourceLimit is returned when a script exceeds its CPU or memory limit.
	ErrResourceLimit = errors.New("Lua resource limit exceeded")
)

package config

import "errors"

var (
	// ErrNoGradient is returned when a document does not define a gradient.
	ErrNoGradient = errors.New("no gradient defined")

	// ErrUnknownFormat is returned when the configuration format cannot be determined.
	ErrUnknownFormat = errors.New("unknown configuration format")
)

package config

// Default values for gradient documents.
const (
	// DefaultWidth is the default gradient width in pixels.
	DefaultWidth = 256
	// DefaultHeight is the default gradient height in pixels.
	DefaultHeight = 128
	// DefaultAngle runs the gradient from the top edge to the bottom edge.
	DefaultAngle = 90.0
	// DefaultOutput is the default PNG path.
	DefaultOutput = "gradient.png"
)

// DefaultDocument returns a Document with sensible default values.
// Without stops it resolves to a faint black-to-clear vertical fade.
func DefaultDocument() Document {
	return Document{
		Angle:         DefaultAngle,
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		Interpolation: "rgb",
		Extend:        "pad",
		Output:        DefaultOutput,
	}
}

// Package render provides the paint targets for angle gradients.
// This file implements color parsing and the interpolation color spaces
// used when blending between gradient stops.
package render

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// NamedColors maps CSS color names to their RGBA values.
var NamedColors = map[string]color.RGBA{
	"black":       {R: 0, G: 0, B: 0, A: 255},
	"white":       {R: 255, G: 255, B: 255, A: 255},
	"red":         {R: 255, G: 0, B: 0, A: 255},
	"green":       {R: 0, G: 128, B: 0, A: 255},
	"blue":        {R: 0, G: 0, B: 255, A: 255},
	"yellow":      {R: 255, G: 255, B: 0, A: 255},
	"cyan":        {R: 0, G: 255, B: 255, A: 255},
	"magenta":     {R: 255, G: 0, B: 255, A: 255},
	"gray":        {R: 128, G: 128, B: 128, A: 255},
	"grey":        {R: 128, G: 128, B: 128, A: 255},
	"silver":      {R: 192, G: 192, B: 192, A: 255},
	"maroon":      {R: 128, G: 0, B: 0, A: 255},
	"olive":       {R: 128, G: 128, B: 0, A: 255},
	"lime":        {R: 0, G: 255, B: 0, A: 255},
	"aqua":        {R: 0, G: 255, B: 255, A: 255},
	"teal":        {R: 0, G: 128, B: 128, A: 255},
	"navy":        {R: 0, G: 0, B: 128, A: 255},
	"fuchsia":     {R: 255, G: 0, B: 255, A: 255},
	"purple":      {R: 128, G: 0, B: 128, A: 255},
	"orange":      {R: 255, G: 165, B: 0, A: 255},
	"pink":        {R: 255, G: 192, B: 203, A: 255},
	"gold":        {R: 255, G: 215, B: 0, A: 255},
	"indigo":      {R: 75, G: 0, B: 130, A: 255},
	"violet":      {R: 238, G: 130, B: 238, A: 255},
	"coral":       {R: 255, G: 127, B: 80, A: 255},
	"salmon":      {R: 250, G: 128, B: 114, A: 255},
	"turquoise":   {R: 64, G: 224, B: 208, A: 255},
	"transparent": {R: 0, G: 0, B: 0, A: 0},
	"clear":       {R: 0, G: 0, B: 0, A: 0},
}

// ParseColor parses a color string and returns a straight-alpha RGBA color.
// Supported formats:
//   - Named colors: "red", "blue", "transparent", ...
//   - Hex: "#RGB", "#RGBA", "#RRGGBB", "#RRGGBBAA", with or without "#"
//   - Functional: "rgb(255, 0, 0)", "rgba(255, 0, 0, 0.5)", "rgba(255, 0, 0, 128)"
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.RGBA{}, fmt.Errorf("empty color string")
	}

	if clr, ok := NamedColors[strings.ToLower(s)]; ok {
		return clr, nil
	}

	if strings.HasPrefix(s, "#") || isHexString(s) {
		return parseHexColor(strings.TrimPrefix(s, "#"))
	}

	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "rgba(") && strings.HasSuffix(lower, ")"):
		return parseFunctional(s[5:len(s)-1], 4)
	case strings.HasPrefix(lower, "rgb(") && strings.HasSuffix(lower, ")"):
		return parseFunctional(s[4:len(s)-1], 3)
	}

	return color.RGBA{}, fmt.Errorf("unrecognized color format: %q", s)
}

// MustParseColor parses a color string and panics if parsing fails.
// Use this only for known-good color values in initialization code.
func MustParseColor(s string) color.RGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func isHexString(s string) bool {
	switch len(s) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	for _, c := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return false
		}
	}
	return true
}

// parseHexColor parses hex digits without the leading '#'.
// Short forms repeat each digit ("f80" is "ff8800").
func parseHexColor(s string) (color.RGBA, error) {
	var digits string
	switch len(s) {
	case 3, 4:
		var b strings.Builder
		for _, c := range s {
			b.WriteRune(c)
			b.WriteRune(c)
		}
		digits = b.String()
	case 6, 8:
		digits = s
	default:
		return color.RGBA{}, fmt.Errorf("invalid hex color length: %d", len(s))
	}
	if len(digits) == 6 {
		digits += "ff"
	}

	var ch [4]uint8
	names := [4]string{"red", "green", "blue", "alpha"}
	for i := range ch {
		v, err := strconv.ParseUint(digits[2*i:2*i+2], 16, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid %s component: %w", names[i], err)
		}
		ch[i] = uint8(v)
	}
	return color.RGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}

// parseFunctional parses the argument list of rgb() or rgba().
// Channels are 0-255 integers; alpha is either 0-255 or a 0.0-1.0 float.
func parseFunctional(args string, want int) (color.RGBA, error) {
	parts := strings.Split(args, ",")
	if len(parts) != want {
		return color.RGBA{}, fmt.Errorf("expected %d color values, got %d", want, len(parts))
	}

	var ch [3]uint8
	names := [3]string{"red", "green", "blue"}
	for i := range ch {
		v, err := strconv.ParseUint(strings.TrimSpace(parts[i]), 10, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid %s value: %w", names[i], err)
		}
		ch[i] = uint8(v)
	}

	alpha := uint8(255)
	if want == 4 {
		a, err := parseAlphaComponent(strings.TrimSpace(parts[3]))
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid alpha value: %w", err)
		}
		alpha = a
	}
	return color.RGBA{R: ch[0], G: ch[1], B: ch[2], A: alpha}, nil
}

// parseAlphaComponent accepts both 0-255 integers and 0.0-1.0 floats.
func parseAlphaComponent(s string) (uint8, error) {
	if strings.Contains(s, ".") {
		val, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, err
		}
		return ClampToByte(val), nil
	}
	val, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, err
	}
	return uint8(val), nil
}

// Straight reinterprets c, whose channels are straight alpha as returned by
// ParseColor, as a color.NRGBA so the image/draw and ebiten paths do not
// read it as premultiplied.
func Straight(c color.RGBA) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// ToHex formats c as #RRGGBB, or #RRGGBBAA when it is not opaque.
func ToHex(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// ClampToByte maps a 0.0-1.0 channel value to 0-255, truncating.
func ClampToByte(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v * 255)
}

// Interpolation selects the color space in which stops are blended.
type Interpolation int

const (
	// InterpolateRGB blends gamma-encoded sRGB channels, like most
	// platform gradient layers.
	InterpolateRGB Interpolation = iota
	// InterpolateLinearRGB blends in linear light.
	InterpolateLinearRGB
	// InterpolateLab blends in CIE L*a*b*.
	InterpolateLab
	// InterpolateHCL blends in CIE LCh(ab), taking the shortest hue path.
	InterpolateHCL
)

// String returns the configuration name of the interpolation.
func (i Interpolation) String() string {
	switch i {
	case InterpolateRGB:
		return "rgb"
	case InterpolateLinearRGB:
		return "linear"
	case InterpolateLab:
		return "lab"
	case InterpolateHCL:
		return "hcl"
	default:
		return fmt.Sprintf("Interpolation(%d)", int(i))
	}
}

// IsLinearInRGB reports whether blends in this space are linear in sRGB
// channel values, i.e. whether GPU vertex-color interpolation is exact.
func (i Interpolation) IsLinearInRGB() bool {
	return i == InterpolateRGB
}

// ParseInterpolation parses "rgb", "linear", "lab" or "hcl".
func ParseInterpolation(s string) (Interpolation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "rgb", "srgb":
		return InterpolateRGB, nil
	case "linear", "linear-rgb", "linearrgb":
		return InterpolateLinearRGB, nil
	case "lab":
		return InterpolateLab, nil
	case "hcl", "lch":
		return InterpolateHCL, nil
	default:
		return InterpolateRGB, fmt.Errorf("unknown interpolation %q (expected rgb, linear, lab or hcl)", s)
	}
}

// Blend mixes c1 and c2 at ratio (0 gives c1, 1 gives c2) in the given
// space. Alpha is always blended linearly.
func Blend(c1, c2 color.RGBA, ratio float64, space Interpolation) color.RGBA {
	if ratio <= 0 {
		return c1
	}
	if ratio >= 1 {
		return c2
	}

	a := toColorful(c1)
	b := toColorful(c2)
	var mixed colorful.Color
	switch space {
	case InterpolateLinearRGB:
		mixed = a.BlendLinearRgb(b, ratio)
	case InterpolateLab:
		mixed = a.BlendLab(b, ratio)
	case InterpolateHCL:
		mixed = a.BlendHcl(b, ratio)
	default:
		mixed = a.BlendRgb(b, ratio)
	}

	r, g, bl := mixed.Clamped().RGB255()
	return color.RGBA{
		R: r,
		G: g,
		B: bl,
		A: uint8(math.Round(float64(c1.A) + ratio*(float64(c2.A)-float64(c1.A)))),
	}
}

// toColorful converts straight-alpha channels, ignoring alpha.
func toColorful(c color.RGBA) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

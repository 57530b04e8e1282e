package render

import (
	"image/color"
	"math"
	"testing"

	"github.com/opd-ai/go-anglegradient/internal/gradient"
)

var (
	red   = color.RGBA{R: 255, A: 255}
	green = color.RGBA{G: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
)

// horizontal returns a 0° gradient across a 100x10 rectangle.
func horizontal(stops ...gradient.ColorStop) gradient.LinearGradient {
	return gradient.LinearGradient{
		Bounds: gradient.NewRect(0, 0, 100, 10),
		Start:  gradient.Point{X: 0, Y: 5},
		End:    gradient.Point{X: 100, Y: 5},
		Stops:  stops,
	}
}

func TestLinearPatternOffset(t *testing.T) {
	p := NewLinearPattern(horizontal(gradient.ColorStop{Offset: 0, Color: red}), PatternOptions{})
	tests := []struct {
		x, y float64
		want float64
	}{
		{0, 5, 0},
		{100, 5, 1},
		{25, 0, 0.25},
		{-50, 9, -0.5},
		{150, 2, 1.5},
	}
	for _, tt := range tests {
		if got := p.Offset(tt.x, tt.y); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Offset(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}

	degenerate := NewLinearPattern(gradient.LinearGradient{Stops: []gradient.ColorStop{{Offset: 0, Color: red}}}, PatternOptions{})
	if got := degenerate.Offset(3, 4); got != 0 {
		t.Errorf("Offset on zero-length line = %v, want 0", got)
	}
}

func TestLinearPatternExtend(t *testing.T) {
	g := horizontal(gradient.ColorStop{Offset: 0, Color: red}, gradient.ColorStop{Offset: 1, Color: blue})

	tests := []struct {
		name   string
		extend PatternExtend
		t      float64
		same   float64
		clear  bool
	}{
		{"pad before", PatternExtendPad, -1, 0, false},
		{"pad after", PatternExtendPad, 2, 1, false},
		{"none before", PatternExtendNone, -0.1, 0, true},
		{"none after", PatternExtendNone, 1.1, 0, true},
		{"none inside", PatternExtendNone, 0.4, 0.4, false},
		{"repeat", PatternExtendRepeat, 1.25, 0.25, false},
		{"repeat negative", PatternExtendRepeat, -0.25, 0.75, false},
		{"reflect", PatternExtendReflect, 1.25, 0.75, false},
		{"reflect negative", PatternExtendReflect, -0.25, 0.25, false},
		{"reflect second period", PatternExtendReflect, 2.25, 0.25, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewLinearPattern(g, PatternOptions{Extend: tt.extend})
			got := p.ColorAt(tt.t)
			if tt.clear {
				if got != (color.RGBA{}) {
					t.Errorf("ColorAt(%v) = %v, want transparent", tt.t, got)
				}
				return
			}
			padded := NewLinearPattern(g, PatternOptions{})
			if want := padded.ColorAt(tt.same); got != want {
				t.Errorf("ColorAt(%v) = %v, want %v", tt.t, got, want)
			}
		})
	}
}

func TestLinearPatternHardEdge(t *testing.T) {
	p := NewLinearPattern(horizontal(
		gradient.ColorStop{Offset: 0, Color: red},
		gradient.ColorStop{Offset: 0.5, Color: red},
		gradient.ColorStop{Offset: 0.5, Color: blue},
		gradient.ColorStop{Offset: 1, Color: blue},
	), PatternOptions{})

	if got := p.ColorAt(0.49); got != red {
		t.Errorf("ColorAt(0.49) = %v, want red", got)
	}
	if got := p.ColorAt(0.5); got != blue {
		t.Errorf("ColorAt(0.5) = %v, want blue", got)
	}
}

func TestLinearPatternSortsStops(t *testing.T) {
	p := NewLinearPattern(horizontal(
		gradient.ColorStop{Offset: 1, Color: blue},
		gradient.ColorStop{Offset: 0, Color: red},
		gradient.ColorStop{Offset: 0.5, Color: green},
	), PatternOptions{})

	stops := p.Stops()
	for i := 1; i < len(stops); i++ {
		if stops[i].Offset < stops[i-1].Offset {
			t.Fatalf("stops not sorted: %+v", stops)
		}
	}
	if got := p.ColorAt(0.5); got != green {
		t.Errorf("ColorAt(0.5) = %v, want green", got)
	}
	if got := p.ColorAtPoint(0, 5); got != red {
		t.Errorf("ColorAtPoint at start = %v, want red", got)
	}
}

func TestLinearPatternEmptyAndSolid(t *testing.T) {
	if got := NewLinearPattern(horizontal(), PatternOptions{}).ColorAt(0.5); got != (color.RGBA{}) {
		t.Errorf("empty pattern ColorAt = %v, want transparent", got)
	}
	solid := NewLinearPattern(horizontal(gradient.ColorStop{Offset: 0.3, Color: green}), PatternOptions{})
	for _, tt := range []float64{-1, 0, 0.3, 0.9, 5} {
		if got := solid.ColorAt(tt); got != green {
			t.Errorf("solid ColorAt(%v) = %v, want green", tt, got)
		}
	}
}

func TestParseExtend(t *testing.T) {
	tests := []struct {
		input   string
		want    PatternExtend
		wantErr bool
	}{
		{"", PatternExtendPad, false},
		{"pad", PatternExtendPad, false},
		{"None", PatternExtendNone, false},
		{"repeat", PatternExtendRepeat, false},
		{" REFLECT ", PatternExtendReflect, false},
		{"mirror", PatternExtendPad, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseExtend(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseExtend(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseExtend(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if !tt.wantErr {
				if back, _ := ParseExtend(got.String()); back != got {
					t.Errorf("String() round trip = %v, want %v", back, got)
				}
			}
		})
	}
}

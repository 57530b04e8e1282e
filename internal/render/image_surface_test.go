package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/opd-ai/go-anglegradient/internal/gradient"
)

func closeTo(a, b color.RGBA, tol int) bool {
	d := func(x, y uint8) bool {
		diff := int(x) - int(y)
		return diff <= tol && diff >= -tol
	}
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B) && d(a.A, b.A)
}

func TestImageSurfaceEdges(t *testing.T) {
	tests := []struct {
		angle      float64
		start, end image.Point
	}{
		{0, image.Pt(0, 50), image.Pt(99, 50)},
		{90, image.Pt(50, 0), image.Pt(50, 99)},
		{180, image.Pt(99, 50), image.Pt(0, 50)},
		{270, image.Pt(50, 99), image.Pt(50, 0)},
		{45, image.Pt(0, 0), image.Pt(99, 99)},
	}

	for _, tt := range tests {
		surface := NewImageSurface(100, 100, SurfaceOptions{})
		spec := gradient.NewSpec(tt.angle, gradient.NewRect(0, 0, 100, 100),
			gradient.ColorStop{Offset: 0, Color: red}, gradient.ColorStop{Offset: 1, Color: blue})
		if !gradient.Paint(spec, surface) {
			t.Fatalf("angle %v: Paint() = false", tt.angle)
		}

		img := surface.Image()
		if got := img.RGBAAt(tt.start.X, tt.start.Y); !closeTo(got, red, 8) {
			t.Errorf("angle %v: start pixel %v = %v, want ~red", tt.angle, tt.start, got)
		}
		if got := img.RGBAAt(tt.end.X, tt.end.Y); !closeTo(got, blue, 8) {
			t.Errorf("angle %v: end pixel %v = %v, want ~blue", tt.angle, tt.end, got)
		}
	}
}

func TestImageSurfaceLeavesOutsideUntouched(t *testing.T) {
	surface := NewImageSurface(100, 40, SurfaceOptions{})
	background := color.RGBA{R: 10, G: 20, B: 30, A: 255}
	surface.Clear(background)

	spec := gradient.NewSpec(0, gradient.NewRect(20, 10, 50, 20),
		gradient.ColorStop{Offset: 0, Color: red}, gradient.ColorStop{Offset: 1, Color: blue})
	gradient.Paint(spec, surface)

	img := surface.Image()
	for _, p := range []image.Point{{5, 5}, {19, 15}, {70, 15}, {40, 9}, {40, 30}, {99, 39}} {
		if got := img.RGBAAt(p.X, p.Y); got != background {
			t.Errorf("pixel %v = %v, want background %v", p, got, background)
		}
	}
	if got := img.RGBAAt(20, 20); !closeTo(got, red, 10) {
		t.Errorf("left edge of bounds = %v, want ~red", got)
	}
	if got := img.RGBAAt(69, 20); !closeTo(got, blue, 10) {
		t.Errorf("right edge of bounds = %v, want ~blue", got)
	}
}

func TestImageSurfaceClearTranslucent(t *testing.T) {
	surface := NewImageSurface(4, 4, SurfaceOptions{})
	bg := MustParseColor("rgba(255, 0, 0, 0.5)")
	surface.Clear(bg)

	var buf bytes.Buffer
	if err := surface.WritePNG(&buf); err != nil {
		t.Fatalf("WritePNG failed: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	got := color.NRGBAModel.Convert(img.At(2, 2)).(color.NRGBA)
	if got.R < 250 || got.G != 0 || got.B != 0 || got.A != bg.A {
		t.Errorf("translucent background = %v, want red at alpha %d", got, bg.A)
	}
}

func TestImageSurfaceCompositesOver(t *testing.T) {
	surface := NewImageSurface(10, 10, SurfaceOptions{})
	surface.Clear(color.RGBA{R: 255, G: 255, B: 255, A: 255})

	gradient.Paint(gradient.DefaultSpec(gradient.NewRect(0, 0, 10, 10)), surface)

	// The top row is 20% black over white, the bottom row almost white.
	top := surface.Image().RGBAAt(5, 0)
	if top.R < 195 || top.R > 210 || top.A != 255 {
		t.Errorf("top pixel = %v, want ~204 gray", top)
	}
	bottom := surface.Image().RGBAAt(5, 9)
	if bottom.R < 250 {
		t.Errorf("bottom pixel = %v, want near white", bottom)
	}
}

func TestImageSurfaceRoundedCorners(t *testing.T) {
	surface := NewImageSurface(40, 40, SurfaceOptions{CornerRadius: 12})
	spec := gradient.NewSpec(0, gradient.NewRect(0, 0, 40, 40), gradient.ColorStop{Offset: 0, Color: green})
	gradient.Paint(spec, surface)

	img := surface.Image()
	if got := img.RGBAAt(0, 0); got.A != 0 {
		t.Errorf("corner pixel alpha = %d, want 0", got.A)
	}
	if got := img.RGBAAt(20, 20); got != green {
		t.Errorf("center pixel = %v, want green", got)
	}
	if got := img.RGBAAt(20, 0); got.A < 250 {
		t.Errorf("top edge midpoint alpha = %d, want opaque", got.A)
	}
}

func TestImageSurfaceExtendNone(t *testing.T) {
	surface := NewImageSurface(100, 10, SurfaceOptions{Extend: PatternExtendNone})
	surface.DrawLinearGradient(gradient.LinearGradient{
		Bounds: gradient.NewRect(0, 0, 100, 10),
		Start:  gradient.Point{X: 25, Y: 5},
		End:    gradient.Point{X: 75, Y: 5},
		Stops:  []gradient.ColorStop{{Offset: 0, Color: red}, {Offset: 1, Color: blue}},
	})

	img := surface.Image()
	if got := img.RGBAAt(10, 5); got.A != 0 {
		t.Errorf("pixel before the line = %v, want transparent", got)
	}
	if got := img.RGBAAt(50, 5); got.A != 255 {
		t.Errorf("pixel on the line = %v, want opaque", got)
	}
}

func TestImageSurfaceSavePNG(t *testing.T) {
	surface := NewImageSurface(16, 8, SurfaceOptions{})
	gradient.Paint(gradient.NewSpec(90, gradient.NewRect(0, 0, 16, 8),
		gradient.ColorStop{Offset: 0, Color: red}, gradient.ColorStop{Offset: 1, Color: blue}), surface)

	path := filepath.Join(t.TempDir(), "out.png")
	if err := surface.SavePNG(path); err != nil {
		t.Fatalf("SavePNG() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if decoded.Bounds() != image.Rect(0, 0, 16, 8) {
		t.Errorf("decoded bounds = %v", decoded.Bounds())
	}

	if err := surface.SavePNG(filepath.Join(t.TempDir(), "missing", "out.png")); err == nil {
		t.Error("SavePNG() into a missing directory succeeded")
	}
}

func TestSurfaceOptionsValidate(t *testing.T) {
	if err := (SurfaceOptions{CornerRadius: -1}).Validate(); err == nil {
		t.Error("negative corner radius accepted")
	}
	if err := (SurfaceOptions{CornerRadius: 4}).Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
	cfg.Width = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero width accepted")
	}
}

package render

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/example/retouch/internal/filters"
	"github.com/example/retouch/internal/geom"
	"github.com/example/retouch/internal/transform"
)

var (
	red   = color.RGBA{255, 0, 0, 255}
	green = color.RGBA{0, 255, 0, 255}
	blue  = color.RGBA{0, 0, 255, 255}
	white = color.RGBA{255, 255, 255, 255}
)

// quadrants returns a w x h image with red, green, blue and white quarters
// in reading order.
func quadrants(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var c color.RGBA
			switch {
			case x < w/2 && y < h/2:
				c = red
			case y < h/2:
				c = green
			case x < w/2:
				c = blue
			default:
				c = white
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func nearRGBA(a, b color.RGBA) bool {
	d := func(x, y uint8) bool { return math.Abs(float64(x)-float64(y)) <= 3 }
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B) && d(a.A, b.A)
}

func expectAt(t *testing.T, img *image.RGBA, x, y int, want color.RGBA) {
	t.Helper()
	if got := img.RGBAAt(x, y); !nearRGBA(got, want) {
		t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, want)
	}
}

func TestCanvasSaveRestore(t *testing.T) {
	c := NewCanvas(10, 10)
	c.SetTransform(transform.Translate(1, 2))
	c.Save()
	c.SetTransform(transform.Scale(3, 3))
	c.SetFilter(filters.Encode(filters.Defaults()))
	c.Restore()
	if got := c.Transform(); got != transform.Translate(1, 2) {
		t.Errorf("transform after Restore = %+v", got)
	}
	if c.Filter() != nil {
		t.Errorf("filter leaked past Restore: %v", c.Filter())
	}
	c.Restore()
	if c.Depth() != 0 {
		t.Errorf("Depth = %d after unbalanced Restore", c.Depth())
	}
}

func TestRenderNilSourceClears(t *testing.T) {
	c := NewCanvas(4, 4)
	c.Image().SetRGBA(1, 1, red)
	Render(c, nil, transform.Params{}, filters.Defaults())
	if got := c.Image().RGBAAt(1, 1); got != (color.RGBA{}) {
		t.Errorf("canvas not cleared: %v", got)
	}
}

func TestRenderIdentity(t *testing.T) {
	c := RenderAt(40, 40, quadrants(40, 40), transform.Params{}, filters.Defaults())
	img := c.Image()
	expectAt(t, img, 10, 10, red)
	expectAt(t, img, 30, 10, green)
	expectAt(t, img, 10, 30, blue)
	expectAt(t, img, 30, 30, white)
	if c.Depth() != 0 || !c.Transform().IsIdentity() || c.Filter() != nil {
		t.Error("Render left drawing state behind")
	}
}

func TestRenderScalesToSurface(t *testing.T) {
	img := RenderAt(20, 10, quadrants(80, 40), transform.Params{}, filters.Defaults()).Image()
	expectAt(t, img, 5, 2, red)
	expectAt(t, img, 15, 7, white)
}

func TestRenderRotateRight(t *testing.T) {
	img := RenderAt(40, 40, quadrants(40, 40), transform.Params{RotationDeg: 90}, filters.Defaults()).Image()
	expectAt(t, img, 30, 10, red)
	expectAt(t, img, 30, 30, green)
	expectAt(t, img, 10, 10, blue)
	expectAt(t, img, 10, 30, white)
}

func TestRenderFlipH(t *testing.T) {
	img := RenderAt(40, 40, quadrants(40, 40), transform.Params{FlipH: true}, filters.Defaults()).Image()
	expectAt(t, img, 30, 10, red)
	expectAt(t, img, 10, 10, green)
}

func TestRenderAppliesFilter(t *testing.T) {
	f := filters.Defaults()
	f.Invert = 100
	img := RenderAt(40, 40, quadrants(40, 40), transform.Params{}, f).Image()
	expectAt(t, img, 10, 10, color.RGBA{0, 255, 255, 255})
	expectAt(t, img, 30, 30, color.RGBA{0, 0, 0, 255})
}

func TestRenderResolutionIndependent(t *testing.T) {
	src := quadrants(120, 60)
	tp := transform.Params{RotationDeg: 180, FlipV: true}
	f := filters.Defaults()
	f.Sepia = 60
	f.Hue = 30
	big := RenderAt(120, 60, src, tp, f).Image()
	small := RenderAt(60, 30, src, tp, f).Image()
	for _, p := range []image.Point{{15, 7}, {45, 7}, {15, 22}, {45, 22}} {
		s := small.RGBAAt(p.X, p.Y)
		b := big.RGBAAt(p.X*2, p.Y*2)
		if !nearRGBA(s, b) {
			t.Errorf("small %v = %v, big %v = %v", p, s, p.Mul(2), b)
		}
	}
}

func TestFitScale(t *testing.T) {
	limit := geom.Size{W: 1200, H: 800}
	tests := []struct {
		w, h   int
		scale  float64
		fw, fh int
	}{
		{400, 300, 1, 400, 300},
		{2400, 800, 0.5, 1200, 400},
		{1000, 1600, 0.5, 500, 800},
	}
	for _, tt := range tests {
		s := FitScale(tt.w, tt.h, limit)
		if s != tt.scale {
			t.Errorf("FitScale(%d, %d) = %v, want %v", tt.w, tt.h, s, tt.scale)
		}
		fw, fh := FitSize(tt.w, tt.h, s)
		if fw != tt.fw || fh != tt.fh {
			t.Errorf("FitSize(%d, %d) = %dx%d, want %dx%d", tt.w, tt.h, fw, fh, tt.fw, tt.fh)
		}
	}
}

func TestDrawCropOverlay(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	st := DefaultOverlayStyle()
	DrawCropOverlay(img, geom.R(20, 20, 60, 60, geom.Size{W: 100, H: 100}), st)

	if got := img.RGBAAt(5, 5); got.R > 140 {
		t.Errorf("outside not dimmed: %v", got)
	}
	if got := img.RGBAAt(50, 50); got != white {
		t.Errorf("inside changed: %v", got)
	}
	if got := img.RGBAAt(20, 20); got != st.HandleBorder && got != st.HandleFill {
		t.Errorf("corner handle missing: %v", got)
	}
}

func TestHandleRectsOrder(t *testing.T) {
	hs := HandleRects(image.Rect(10, 20, 50, 80), 8)
	centres := []image.Point{{10, 20}, {50, 20}, {10, 80}, {50, 80}}
	for i, h := range hs {
		c := image.Pt((h.Min.X+h.Max.X)/2, (h.Min.Y+h.Max.Y)/2)
		if c != centres[i] {
			t.Errorf("handle %d centred at %v, want %v", i, c, centres[i])
		}
	}
}

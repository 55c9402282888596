package render

import (
	"image"
	"math"

	"github.com/example/retouch/internal/filters"
	"github.com/example/retouch/internal/geom"
	"github.com/example/retouch/internal/transform"
)

// Render clears c and draws src filling the whole canvas, transformed by t
// at the canvas's own size and filtered by f. A nil src leaves the canvas
// blank. The canvas's transform and filter are restored before returning.
func Render(c *Canvas, src image.Image, t transform.Params, f filters.Params) {
	c.Clear()
	if src == nil {
		return
	}
	c.Save()
	defer c.Restore()
	c.SetTransform(t.Affine(c.Width(), c.Height()))
	c.SetFilter(filters.Encode(f))
	c.DrawImage(src, float64(c.Width()), float64(c.Height()))
}

// RenderAt allocates a w x h canvas and renders into it.
func RenderAt(w, h int, src image.Image, t transform.Params, f filters.Params) *Canvas {
	c := NewCanvas(w, h)
	Render(c, src, t, f)
	return c
}

// FitScale returns the display scale of an nw x nh image inside limit,
// never enlarging: min(limit.W/nw, limit.H/nh, 1).
func FitScale(nw, nh int, limit geom.Size) float64 {
	if nw <= 0 || nh <= 0 || limit.Empty() {
		return 1
	}
	return math.Min(math.Min(limit.W/float64(nw), limit.H/float64(nh)), 1)
}

// FitSize applies scale to the natural size, rounding to whole pixels with a
// one pixel floor.
func FitSize(nw, nh int, scale float64) (int, int) {
	w := int(math.Round(float64(nw) * scale))
	h := int(math.Round(float64(nh) * scale))
	return max(w, 1), max(h, 1)
}

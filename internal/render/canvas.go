// Package render draws the document onto pixel surfaces. The same pipeline
// serves the on-screen preview, the crop bake buffer and the export buffer.
package render

import (
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/example/retouch/internal/filters"
	"github.com/example/retouch/internal/geom"
	"github.com/example/retouch/internal/transform"
)

// drawState is the part of a canvas saved and restored around a draw.
type drawState struct {
	transform transform.Affine
	filter    filters.Chain
}

// Canvas is an RGBA surface with a current transform and filter chain,
// mirroring the save/restore model of a 2D drawing context.
type Canvas struct {
	img   *image.RGBA
	cur   drawState
	stack []drawState

	// Interpolator resamples the source in DrawImage. Defaults to
	// ApproxBiLinear.
	Interpolator xdraw.Interpolator
}

// NewCanvas allocates a transparent w x h canvas. Sizes below one pixel are
// raised to one.
func NewCanvas(w, h int) *Canvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return &Canvas{
		img:          image.NewRGBA(image.Rect(0, 0, w, h)),
		cur:          drawState{transform: transform.Identity()},
		Interpolator: xdraw.ApproxBiLinear,
	}
}

// Width returns the width in pixels.
func (c *Canvas) Width() int { return c.img.Bounds().Dx() }

// Height returns the height in pixels.
func (c *Canvas) Height() int { return c.img.Bounds().Dy() }

// Size returns the canvas resolution.
func (c *Canvas) Size() geom.Size { return geom.Sz(c.Width(), c.Height()) }

// Image exposes the backing pixels.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Clear resets every pixel to transparent. The drawing state is untouched.
func (c *Canvas) Clear() {
	clear(c.img.Pix)
}

// Save pushes the current transform and filter.
func (c *Canvas) Save() {
	c.stack = append(c.stack, c.cur)
}

// Restore pops the state pushed by the matching Save. Unbalanced calls are
// ignored.
func (c *Canvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.cur = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

// Depth returns the number of saved states.
func (c *Canvas) Depth() int { return len(c.stack) }

// SetTransform replaces the current transform.
func (c *Canvas) SetTransform(m transform.Affine) { c.cur.transform = m }

// Transform returns the current transform.
func (c *Canvas) Transform() transform.Affine { return c.cur.transform }

// SetFilter replaces the current filter chain. A nil chain disables
// filtering.
func (c *Canvas) SetFilter(ch filters.Chain) { c.cur.filter = ch }

// Filter returns the current filter chain.
func (c *Canvas) Filter() filters.Chain { return c.cur.filter }

// DrawImage scales src to dw x dh at the origin, maps it through the current
// transform and composites it over the canvas. When a filter chain is set,
// the transformed image is drawn on a transparent layer which is filtered
// before compositing.
func (c *Canvas) DrawImage(src image.Image, dw, dh float64) {
	if src == nil {
		return
	}
	sb := src.Bounds()
	if sb.Empty() || dw <= 0 || dh <= 0 {
		return
	}
	m := c.cur.transform.
		Multiply(transform.Scale(dw/float64(sb.Dx()), dh/float64(sb.Dy()))).
		Multiply(transform.Translate(-float64(sb.Min.X), -float64(sb.Min.Y)))

	interp := c.Interpolator
	if interp == nil {
		interp = xdraw.ApproxBiLinear
	}
	if len(c.cur.filter) == 0 {
		interp.Transform(c.img, m.Aff3(), src, sb, xdraw.Over, nil)
		return
	}

	layer := image.NewRGBA(c.img.Bounds())
	interp.Transform(layer, m.Aff3(), src, sb, xdraw.Src, nil)
	g := c.cur.filter.Filter()
	out := image.NewRGBA(g.Bounds(layer.Bounds()))
	g.Draw(out, layer)
	draw.Draw(c.img, c.img.Bounds(), out, out.Bounds().Min, draw.Over)
}

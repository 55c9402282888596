// Package geom holds the small amount of planar math shared by the crop
// session, the crop baker and the render pipeline.
package geom

import (
	"fmt"
	"image"
	"math"
)

// Clamp limits v to [lo, hi]. When lo > hi the upper bound wins.
func Clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

// DegToRad converts degrees to radians.
func DegToRad(d float64) float64 { return d * math.Pi / 180 }

// Size is the pixel resolution of a surface.
type Size struct {
	W, H float64
}

// Sz is shorthand for Size{w, h}.
func Sz(w, h int) Size { return Size{W: float64(w), H: float64(h)} }

// Empty reports whether either dimension is zero or negative.
func (s Size) Empty() bool { return s.W <= 0 || s.H <= 0 }

func (s Size) String() string { return fmt.Sprintf("%gx%g", s.W, s.H) }

// Rect is a rectangle in the coordinate space of the surface it was defined
// against. Space records that surface's resolution so the rectangle can be
// replayed at another resolution with Rescale.
type Rect struct {
	X, Y, W, H float64
	Space      Size
}

// R builds a rectangle tagged with the given space.
func R(x, y, w, h float64, space Size) Rect {
	return Rect{X: x, Y: y, W: w, H: h, Space: space}
}

func (r Rect) String() string {
	return fmt.Sprintf("{%g,%g,%g,%g}@%s", r.X, r.Y, r.W, r.H, r.Space)
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Contains reports whether (px, py) lies within r, edges included.
func (r Rect) Contains(px, py float64) bool {
	return px >= r.X && px <= r.X+r.W && py >= r.Y && py <= r.Y+r.H
}

// Normalize flips negative extents so that W and H are non-negative while
// the rectangle keeps covering the same area.
func (r Rect) Normalize() Rect {
	if r.W < 0 {
		r.X += r.W
		r.W = -r.W
	}
	if r.H < 0 {
		r.Y += r.H
		r.H = -r.H
	}
	return r
}

// Translate moves r by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Rescale maps r from its own space into to. A rectangle without a space, or
// one already in to, is only re-tagged.
func (r Rect) Rescale(to Size) Rect {
	if r.Space.Empty() || r.Space == to {
		r.Space = to
		return r
	}
	sx := to.W / r.Space.W
	sy := to.H / r.Space.H
	return Rect{X: r.X * sx, Y: r.Y * sy, W: r.W * sx, H: r.H * sy, Space: to}
}

// Contain normalizes r and clamps it inside its space: extents are capped at
// the surface size, then the origin is clamped so the far edges stay inside.
func (r Rect) Contain() Rect {
	r = r.Normalize()
	s := r.Space
	if s.Empty() {
		return r
	}
	r.W = math.Min(r.W, s.W)
	r.H = math.Min(r.H, s.H)
	r.X = Clamp(r.X, 0, s.W-r.W)
	r.Y = Clamp(r.Y, 0, s.H-r.H)
	return r
}

// Within reports whether r lies completely inside its space, allowing for
// floating point error on the far edges.
func (r Rect) Within() bool {
	const eps = 1e-9
	return r.X >= 0 && r.Y >= 0 && r.W >= 0 && r.H >= 0 &&
		r.X+r.W <= r.Space.W+eps && r.Y+r.H <= r.Space.H+eps
}

// Round snaps every coordinate to the nearest integer.
func (r Rect) Round() Rect {
	return Rect{X: math.Round(r.X), Y: math.Round(r.Y), W: math.Round(r.W), H: math.Round(r.H), Space: r.Space}
}

// Image returns the integer rectangle covering r after rounding.
func (r Rect) Image() image.Rectangle {
	n := r.Normalize().Round()
	return image.Rect(int(n.X), int(n.Y), int(n.X+n.W), int(n.Y+n.H))
}

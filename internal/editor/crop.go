package editor

import (
	"math"

	"github.com/example/retouch/internal/geom"
)

// Handle names a corner of the crop rectangle.
type Handle int

const (
	HandleNone Handle = iota
	HandleTopLeft
	HandleTopRight
	HandleBottomLeft
	HandleBottomRight
)

// handleOrder is the hit test order. The first corner within tolerance wins,
// even when a later one is closer.
var handleOrder = [...]Handle{HandleTopLeft, HandleTopRight, HandleBottomLeft, HandleBottomRight}

func (h Handle) String() string {
	switch h {
	case HandleTopLeft:
		return "top-left"
	case HandleTopRight:
		return "top-right"
	case HandleBottomLeft:
		return "bottom-left"
	case HandleBottomRight:
		return "bottom-right"
	}
	return "none"
}

// Gesture is the pointer interaction in progress.
type Gesture int

const (
	GestureNone Gesture = iota
	GestureDrag
	GestureResize
)

func (g Gesture) String() string {
	switch g {
	case GestureDrag:
		return "dragging-body"
	case GestureResize:
		return "resizing"
	}
	return "none"
}

// PointerKind distinguishes the three pointer events a crop session consumes.
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
)

func (k PointerKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	}
	return "unknown"
}

// PointerEvent is a pointer position in surface-local pixels.
type PointerEvent struct {
	Kind PointerKind
	X, Y float64
}

// CropGeometry are the fixed distances used by the session.
type CropGeometry struct {
	Margin    float64 // inset of the initial rectangle
	Tolerance float64 // per-axis handle hit window
	Inset     float64 // offset of a new rectangle from the pointer
}

// DefaultCropGeometry returns a 20 unit margin, a 12 unit hit window and a
// 2 unit new-rectangle inset.
func DefaultCropGeometry() CropGeometry {
	return CropGeometry{Margin: 20, Tolerance: 12, Inset: 2}
}

// CropSession is an active crop selection on a surface. It exists only
// between BeginCrop and either CancelCrop or ApplyCrop.
type CropSession struct {
	Rect   geom.Rect
	Aspect geom.Aspect
	Handle Handle

	geo     CropGeometry
	gesture Gesture
	start   geom.Rect
	startX  float64
	startY  float64
}

// NewCropSession starts a selection inset by the margin on every side of
// surface, with aspect applied.
func NewCropSession(surface geom.Size, aspect geom.Aspect, geo CropGeometry) *CropSession {
	m := geo.Margin
	r := geom.R(m, m, surface.W-2*m, surface.H-2*m, surface)
	return &CropSession{
		Rect:   geom.EnforceAspect(r, aspect),
		Aspect: aspect,
		geo:    geo,
	}
}

// Gesture returns the interaction in progress.
func (c *CropSession) Gesture() Gesture { return c.gesture }

// Surface returns the space the rectangle is defined in.
func (c *CropSession) Surface() geom.Size { return c.Rect.Space }

// SetAspect replaces the constraint and re-applies it to the rectangle.
func (c *CropSession) SetAspect(a geom.Aspect) {
	c.Aspect = a
	c.Rect = geom.EnforceAspect(c.Rect, a)
}

// HitTest returns the first corner whose tolerance window holds (px, py).
func (c *CropSession) HitTest(px, py float64) Handle {
	tol := c.geo.Tolerance
	for _, h := range handleOrder {
		hx, hy := c.corner(h)
		if math.Abs(px-hx) <= tol && math.Abs(py-hy) <= tol {
			return h
		}
	}
	return HandleNone
}

func (c *CropSession) corner(h Handle) (float64, float64) {
	r := c.Rect
	switch h {
	case HandleTopRight:
		return r.Right(), r.Y
	case HandleBottomLeft:
		return r.X, r.Bottom()
	case HandleBottomRight:
		return r.Right(), r.Bottom()
	}
	return r.X, r.Y
}

// Apply feeds one pointer event to the session and reports whether the
// rectangle or gesture changed.
func (c *CropSession) Apply(ev PointerEvent) bool {
	if !finite(ev.X) || !finite(ev.Y) {
		return false
	}
	switch ev.Kind {
	case PointerDown:
		c.down(ev.X, ev.Y)
		return true
	case PointerMove:
		return c.move(ev.X, ev.Y)
	case PointerUp:
		changed := c.gesture != GestureNone
		c.gesture = GestureNone
		c.Handle = HandleNone
		return changed
	}
	return false
}

func (c *CropSession) down(px, py float64) {
	c.startX, c.startY = px, py
	if h := c.HitTest(px, py); h != HandleNone {
		c.gesture = GestureResize
		c.Handle = h
		c.start = c.Rect
		return
	}
	if c.Rect.Contains(px, py) {
		c.gesture = GestureDrag
		c.Handle = HandleNone
		c.start = c.Rect
		return
	}
	s := c.Surface()
	in := c.geo.Inset
	c.Rect = geom.R(geom.Clamp(px-in, 0, s.W-in), geom.Clamp(py-in, 0, s.H-in), 0, 0, s)
	c.gesture = GestureResize
	c.Handle = HandleBottomRight
	c.start = c.Rect
}

func (c *CropSession) move(px, py float64) bool {
	dx, dy := px-c.startX, py-c.startY
	s := c.Surface()
	switch c.gesture {
	case GestureDrag:
		r := c.start
		r.X = geom.Clamp(r.X+dx, 0, s.W-r.W)
		r.Y = geom.Clamp(r.Y+dy, 0, s.H-r.H)
		c.Rect = r
		return true
	case GestureResize:
		r := c.start
		switch c.Handle {
		case HandleBottomRight:
			r.W += dx
			r.H += dy
		case HandleTopRight:
			r.W += dx
			r.Y += dy
			r.H -= dy
		case HandleBottomLeft:
			r.X += dx
			r.W -= dx
			r.H += dy
		case HandleTopLeft:
			r.X += dx
			r.Y += dy
			r.W -= dx
			r.H -= dy
		}
		c.Rect = geom.EnforceAspect(r.Normalize().Contain(), c.Aspect)
		return true
	}
	return false
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

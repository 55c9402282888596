// Package transform composes the rotation and mirroring settings into the
// affine transform applied before the source image is drawn.
package transform

import (
	"math"

	"github.com/example/retouch/internal/geom"
	"golang.org/x/image/math/f64"
)

// Affine is a 2D affine transformation in row-major order:
//
//	| A  B  C |
//	| D  E  F |
//
// mapping (x, y) to (A*x + B*y + C, D*x + E*y + F).
type Affine struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transform.
func Identity() Affine {
	return Affine{A: 1, E: 1}
}

// Translate returns a translation.
func Translate(x, y float64) Affine {
	return Affine{A: 1, C: x, E: 1, F: y}
}

// Scale returns a scaling about the origin.
func Scale(x, y float64) Affine {
	return Affine{A: x, E: y}
}

// Rotate returns a rotation by rad radians. With y pointing down, positive
// angles turn clockwise on screen.
func Rotate(rad float64) Affine {
	cos := math.Cos(rad)
	sin := math.Sin(rad)
	return Affine{A: cos, B: -sin, D: sin, E: cos}
}

// Multiply returns m * o, the transform that applies o first and m second.
func (m Affine) Multiply(o Affine) Affine {
	return Affine{
		A: m.A*o.A + m.B*o.D,
		B: m.A*o.B + m.B*o.E,
		C: m.A*o.C + m.B*o.F + m.C,
		D: m.D*o.A + m.E*o.D,
		E: m.D*o.B + m.E*o.E,
		F: m.D*o.C + m.E*o.F + m.F,
	}
}

// Apply maps a point.
func (m Affine) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.B*y + m.C, m.D*x + m.E*y + m.F
}

// Invert returns the inverse transform, or the identity when m is singular.
func (m Affine) Invert() Affine {
	det := m.A*m.E - m.B*m.D
	if math.Abs(det) < 1e-12 {
		return Identity()
	}
	inv := 1 / det
	return Affine{
		A: m.E * inv,
		B: -m.B * inv,
		C: (m.B*m.F - m.C*m.E) * inv,
		D: -m.D * inv,
		E: m.A * inv,
		F: (m.C*m.D - m.A*m.F) * inv,
	}
}

// IsIdentity reports whether m is the identity.
func (m Affine) IsIdentity() bool { return m == Identity() }

// Aff3 converts m to the matrix type used by golang.org/x/image/draw.
func (m Affine) Aff3() f64.Aff3 {
	return f64.Aff3{m.A, m.B, m.C, m.D, m.E, m.F}
}

// Compute builds the transform for a target surface of targetW x targetH:
// translate the centre to the origin, rotate by rotationDeg, mirror, and
// translate back. The surface's own size is the only input besides the
// settings, so preview, crop bake and export all get the same composition
// at their own resolution.
func Compute(targetW, targetH int, rotationDeg float64, flipH, flipV bool) Affine {
	cx := float64(targetW) / 2
	cy := float64(targetH) / 2
	sx, sy := 1.0, 1.0
	if flipH {
		sx = -1
	}
	if flipV {
		sy = -1
	}
	return Translate(cx, cy).
		Multiply(Rotate(geom.DegToRad(rotationDeg))).
		Multiply(Scale(sx, sy)).
		Multiply(Translate(-cx, -cy))
}

package transform

// Params is the rotation and mirroring state of the document.
//
// RotationDeg is kept as entered: the quarter-turn helpers wrap with a
// truncating modulo, so repeated left turns stay negative (-90, -180, -270,
// 0) rather than being folded into [0, 360).
type Params struct {
	RotationDeg int
	FlipH       bool
	FlipV       bool
}

// Affine returns Compute for a target of w x h.
func (p Params) Affine(w, h int) Affine {
	return Compute(w, h, float64(p.RotationDeg), p.FlipH, p.FlipV)
}

// IsIdentity reports whether p leaves the image unchanged.
func (p Params) IsIdentity() bool { return p == Params{} }

// RotateRight turns a quarter clockwise.
func (p *Params) RotateRight() { p.RotationDeg = (p.RotationDeg + 90) % 360 }

// RotateLeft turns a quarter counter-clockwise.
func (p *Params) RotateLeft() { p.RotationDeg = (p.RotationDeg - 90) % 360 }

// SetRotation stores deg unchanged.
func (p *Params) SetRotation(deg int) { p.RotationDeg = deg }

// ToggleFlipH mirrors horizontally.
func (p *Params) ToggleFlipH() { p.FlipH = !p.FlipH }

// ToggleFlipV mirrors vertically.
func (p *Params) ToggleFlipV() { p.FlipV = !p.FlipV }

// Reset restores the identity.
func (p *Params) Reset() { *p = Params{} }

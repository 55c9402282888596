package transform

import (
	"math"
	"testing"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func checkPoint(t *testing.T, m Affine, x, y, wx, wy float64) {
	t.Helper()
	gx, gy := m.Apply(x, y)
	if !approx(gx, wx) || !approx(gy, wy) {
		t.Errorf("Apply(%v, %v) = (%v, %v), want (%v, %v)", x, y, gx, gy, wx, wy)
	}
}

func TestComputeIdentity(t *testing.T) {
	m := Compute(400, 300, 0, false, false)
	for _, p := range [][2]float64{{0, 0}, {400, 300}, {123, 45}} {
		checkPoint(t, m, p[0], p[1], p[0], p[1])
	}
}

func TestComputeQuarterTurnClockwise(t *testing.T) {
	m := Compute(100, 100, 90, false, false)
	checkPoint(t, m, 0, 0, 100, 0)
	checkPoint(t, m, 100, 0, 100, 100)
	checkPoint(t, m, 50, 50, 50, 50)
}

func TestComputeFlips(t *testing.T) {
	checkPoint(t, Compute(200, 100, 0, true, false), 10, 20, 190, 20)
	checkPoint(t, Compute(200, 100, 0, false, true), 10, 20, 10, 80)
	checkPoint(t, Compute(200, 100, 0, true, true), 10, 20, 190, 80)
}

func TestComputeOrderMatters(t *testing.T) {
	cx, cy := 50.0, 50.0
	got := Compute(100, 100, 90, true, false)
	flipped := Translate(cx, cy).
		Multiply(Scale(-1, 1)).
		Multiply(Rotate(math.Pi / 2)).
		Multiply(Translate(-cx, -cy))

	checkPoint(t, got, 0, 0, 100, 100)
	checkPoint(t, flipped, 0, 0, 0, 0)
}

func TestInvert(t *testing.T) {
	m := Compute(640, 480, 37, true, false).Multiply(Scale(2, 3))
	inv := m.Invert()
	x, y := m.Apply(12, 34)
	checkPoint(t, inv, x, y, 12, 34)
	if got := Scale(0, 1).Invert(); !got.IsIdentity() {
		t.Errorf("singular Invert = %+v, want identity", got)
	}
}

func TestAff3(t *testing.T) {
	m := Affine{A: 1, B: 2, C: 3, D: 4, E: 5, F: 6}
	a := m.Aff3()
	for i, want := range []float64{1, 2, 3, 4, 5, 6} {
		if a[i] != want {
			t.Errorf("Aff3[%d] = %v, want %v", i, a[i], want)
		}
	}
}

func TestParamsRotation(t *testing.T) {
	var p Params
	p.RotateLeft()
	p.RotateLeft()
	if p.RotationDeg != -180 {
		t.Errorf("two left turns = %d, want -180", p.RotationDeg)
	}
	p.RotateLeft()
	p.RotateLeft()
	if p.RotationDeg != 0 {
		t.Errorf("four left turns = %d, want 0", p.RotationDeg)
	}
	p.SetRotation(45)
	p.RotateRight()
	if p.RotationDeg != 135 {
		t.Errorf("45 + right = %d, want 135", p.RotationDeg)
	}
	p.SetRotation(300)
	p.RotateRight()
	if p.RotationDeg != 30 {
		t.Errorf("300 + right = %d, want 30", p.RotationDeg)
	}
}

func TestParamsReset(t *testing.T) {
	p := Params{RotationDeg: 90}
	p.ToggleFlipH()
	p.ToggleFlipV()
	if !p.FlipH || !p.FlipV || p.IsIdentity() {
		t.Fatalf("unexpected params %+v", p)
	}
	p.Reset()
	if !p.IsIdentity() {
		t.Errorf("Reset left %+v", p)
	}
}

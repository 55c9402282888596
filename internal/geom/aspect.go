package geom

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Aspect is a width/height ratio constraint. The zero value is "free".
type Aspect struct {
	Num, Den float64
}

// Free is the unconstrained aspect.
var Free = Aspect{}

// Ratio builds an a:b aspect.
func Ratio(a, b float64) Aspect { return Aspect{Num: a, Den: b} }

// Set reports whether a constrains the rectangle.
func (a Aspect) Set() bool { return a.Num > 0 && a.Den > 0 }

// Value returns width/height, or 0 when the aspect is free.
func (a Aspect) Value() float64 {
	if !a.Set() {
		return 0
	}
	return a.Num / a.Den
}

func (a Aspect) String() string {
	if !a.Set() {
		return "free"
	}
	return strconv.FormatFloat(a.Num, 'g', -1, 64) + ":" + strconv.FormatFloat(a.Den, 'g', -1, 64)
}

// ParseAspect accepts "free" (or an empty string) and "a:b" with positive
// numbers.
func ParseAspect(s string) (Aspect, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" || v == "free" {
		return Free, nil
	}
	parts := strings.SplitN(v, ":", 2)
	if len(parts) != 2 {
		return Free, fmt.Errorf("aspect %q: want free or a:b", s)
	}
	a, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Free, fmt.Errorf("aspect %q: %w", s, err)
	}
	b, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Free, fmt.Errorf("aspect %q: %w", s, err)
	}
	if math.IsNaN(a) || math.IsInf(a, 0) || math.IsNaN(b) || math.IsInf(b, 0) {
		return Free, fmt.Errorf("aspect %q: terms must be finite", s)
	}
	if a <= 0 || b <= 0 {
		return Free, fmt.Errorf("aspect %q: terms must be positive", s)
	}
	return Ratio(a, b), nil
}

// EnforceAspect shrinks r along its too-long axis so that W/H equals the
// aspect, re-centering by half the lost extent, then contains the result in
// r.Space. A free aspect only contains. Rectangles that already conform
// within rounding are left alone so repeated application is stable.
func EnforceAspect(r Rect, a Aspect) Rect {
	r = r.Normalize()
	if !a.Set() {
		return r.Contain()
	}
	if Conforms(r, a) {
		return r.Contain()
	}
	ratio := a.Value()
	switch {
	case r.W/r.H > ratio:
		newW := math.Round(r.H * ratio)
		r.X += math.Floor((r.W - newW) / 2)
		r.W = newW
	case r.W/r.H < ratio:
		newH := math.Round(r.W / ratio)
		r.Y += math.Floor((r.H - newH) / 2)
		r.H = newH
	}
	return r.Contain()
}

// Conforms reports whether r already satisfies a within rounding.
func Conforms(r Rect, a Aspect) bool {
	if !a.Set() {
		return true
	}
	ratio := a.Value()
	return math.Abs(r.W-math.Round(r.H*ratio)) < 0.5 || math.Abs(r.H-math.Round(r.W/ratio)) < 0.5
}

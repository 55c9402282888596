package filters

import (
	"fmt"
	"math"
	"strings"

	"github.com/disintegration/gift"
)

// Kind identifies a stage of the chain.
type Kind int

const (
	KindBrightness Kind = iota
	KindContrast
	KindSaturate
	KindHueRotate
	KindSepia
	KindGrayscale
	KindBlur
	KindInvert
)

var kindNames = [...]string{"brightness", "contrast", "saturate", "hue-rotate", "sepia", "grayscale", "blur", "invert"}
var kindUnits = [...]string{"%", "%", "%", "deg", "%", "%", "px", "%"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Stage is one adjustment with its parameter in the control's own unit.
type Stage struct {
	Kind   Kind
	Amount float64
}

func (s Stage) String() string {
	return fmt.Sprintf("%s(%g%s)", s.Kind, s.Amount, kindUnits[s.Kind])
}

// Chain is the ordered list of stages. Encode always yields all eight.
type Chain []Stage

// Encode maps p to the chain brightness, contrast, saturate, hue-rotate,
// sepia, grayscale, blur, invert. Identity stages are kept so the output
// does not depend on which controls were touched.
func Encode(p Params) Chain {
	return Chain{
		{KindBrightness, p.Brightness},
		{KindContrast, p.Contrast},
		{KindSaturate, p.Saturation},
		{KindHueRotate, p.Hue},
		{KindSepia, p.Sepia},
		{KindGrayscale, p.Grayscale},
		{KindBlur, p.Blur},
		{KindInvert, p.Invert},
	}
}

// String renders the chain in CSS filter syntax.
func (c Chain) String() string {
	parts := make([]string, len(c))
	for i, s := range c {
		parts[i] = s.String()
	}
	return strings.Join(parts, " ")
}

// Filter builds the gift filter list executing the chain in order.
func (c Chain) Filter() *gift.GIFT {
	g := gift.New()
	for _, s := range c {
		g.Add(s.filter())
	}
	return g
}

func (s Stage) filter() gift.Filter {
	if s.Kind == KindBlur {
		return gift.GaussianBlur(float32(math.Max(0, s.Amount)))
	}
	m := s.matrix()
	return gift.ColorFunc(func(r0, g0, b0, a0 float32) (r, g, b, a float32) {
		r, g, b = m.apply(r0, g0, b0)
		return r, g, b, a0
	})
}

// colorMatrix is a 3x3 RGB matrix plus a constant offset per channel.
type colorMatrix struct {
	m   [9]float64
	off [3]float64
}

func (cm colorMatrix) apply(r, g, b float32) (float32, float32, float32) {
	fr, fg, fb := float64(r), float64(g), float64(b)
	m := cm.m
	nr := m[0]*fr + m[1]*fg + m[2]*fb + cm.off[0]
	ng := m[3]*fr + m[4]*fg + m[5]*fb + cm.off[1]
	nb := m[6]*fr + m[7]*fg + m[8]*fb + cm.off[2]
	return unit(nr), unit(ng), unit(nb)
}

func unit(v float64) float32 {
	return float32(math.Min(1, math.Max(0, v)))
}

func clamp01(v float64) float64 { return math.Min(1, math.Max(0, v)) }

func scaleMatrix(k, offset float64) colorMatrix {
	return colorMatrix{
		m:   [9]float64{k, 0, 0, 0, k, 0, 0, 0, k},
		off: [3]float64{offset, offset, offset},
	}
}

// matrix returns the Filter Effects matrix of a colour stage.
func (s Stage) matrix() colorMatrix {
	switch s.Kind {
	case KindBrightness:
		return scaleMatrix(math.Max(0, s.Amount/100), 0)
	case KindContrast:
		k := math.Max(0, s.Amount/100)
		return scaleMatrix(k, 0.5-0.5*k)
	case KindSaturate:
		v := math.Max(0, s.Amount/100)
		return colorMatrix{m: [9]float64{
			0.213 + 0.787*v, 0.715 - 0.715*v, 0.072 - 0.072*v,
			0.213 - 0.213*v, 0.715 + 0.285*v, 0.072 - 0.072*v,
			0.213 - 0.213*v, 0.715 - 0.715*v, 0.072 + 0.928*v,
		}}
	case KindHueRotate:
		rad := s.Amount * math.Pi / 180
		c, sn := math.Cos(rad), math.Sin(rad)
		return colorMatrix{m: [9]float64{
			0.213 + c*0.787 - sn*0.213, 0.715 - c*0.715 - sn*0.715, 0.072 - c*0.072 + sn*0.928,
			0.213 - c*0.213 + sn*0.143, 0.715 + c*0.285 + sn*0.140, 0.072 - c*0.072 - sn*0.283,
			0.213 - c*0.213 - sn*0.787, 0.715 - c*0.715 + sn*0.715, 0.072 + c*0.928 + sn*0.072,
		}}
	case KindSepia:
		g := 1 - clamp01(s.Amount/100)
		return colorMatrix{m: [9]float64{
			0.393 + 0.607*g, 0.769 - 0.769*g, 0.189 - 0.189*g,
			0.349 - 0.349*g, 0.686 + 0.314*g, 0.168 - 0.168*g,
			0.272 - 0.272*g, 0.534 - 0.534*g, 0.131 + 0.869*g,
		}}
	case KindGrayscale:
		g := 1 - clamp01(s.Amount/100)
		return colorMatrix{m: [9]float64{
			0.2126 + 0.7874*g, 0.7152 - 0.7152*g, 0.0722 - 0.0722*g,
			0.2126 - 0.2126*g, 0.7152 + 0.2848*g, 0.0722 - 0.0722*g,
			0.2126 - 0.2126*g, 0.7152 - 0.7152*g, 0.0722 + 0.9278*g,
		}}
	case KindInvert:
		a := clamp01(s.Amount / 100)
		return scaleMatrix(1-2*a, a)
	}
	return scaleMatrix(1, 0)
}

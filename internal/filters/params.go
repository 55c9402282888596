// Package filters turns the editor's filter settings into the fixed,
// ordered adjustment chain applied on every render.
package filters

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Params holds the eight independent filter controls. Brightness, contrast
// and saturation are percentages around 100, hue is in degrees, sepia,
// grayscale and invert are percentages in [0, 100] and blur is a radius in
// pixels.
type Params struct {
	Brightness float64
	Contrast   float64
	Saturation float64
	Hue        float64
	Sepia      float64
	Grayscale  float64
	Blur       float64
	Invert     float64
}

// Defaults returns the identity settings.
func Defaults() Params {
	return Params{Brightness: 100, Contrast: 100, Saturation: 100}
}

// IsIdentity reports whether p leaves pixels untouched.
func (p Params) IsIdentity() bool { return p == Defaults() }

// Range is the declared min/max/step of a control.
type Range struct {
	Min, Max, Step float64
	Unit           string
}

// Clamp limits v to the range.
func (r Range) Clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Ranges lists the declared range of every control by name.
var Ranges = map[string]Range{
	"brightness": {Min: 0, Max: 200, Step: 1, Unit: "%"},
	"contrast":   {Min: 0, Max: 200, Step: 1, Unit: "%"},
	"saturation": {Min: 0, Max: 200, Step: 1, Unit: "%"},
	"hue":        {Min: -180, Max: 180, Step: 1, Unit: "°"},
	"sepia":      {Min: 0, Max: 100, Step: 1, Unit: "%"},
	"grayscale":  {Min: 0, Max: 100, Step: 1, Unit: "%"},
	"blur":       {Min: 0, Max: 20, Step: 0.5, Unit: "px"},
	"invert":     {Min: 0, Max: 100, Step: 1, Unit: "%"},
}

// Names returns the control names in sorted order.
func Names() []string {
	out := make([]string, 0, len(Ranges))
	for name := range Ranges {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (p *Params) field(name string) (*float64, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "brightness":
		return &p.Brightness, nil
	case "contrast":
		return &p.Contrast, nil
	case "saturation", "saturate":
		return &p.Saturation, nil
	case "hue", "hue-rotate":
		return &p.Hue, nil
	case "sepia":
		return &p.Sepia, nil
	case "grayscale", "greyscale":
		return &p.Grayscale, nil
	case "blur":
		return &p.Blur, nil
	case "invert":
		return &p.Invert, nil
	}
	return nil, fmt.Errorf("unknown filter %q", name)
}

func canonical(name string) string {
	switch n := strings.ToLower(strings.TrimSpace(name)); n {
	case "saturate":
		return "saturation"
	case "hue-rotate":
		return "hue"
	case "greyscale":
		return "grayscale"
	default:
		return n
	}
}

// Set stores v in the named control, clamped to its declared range. It
// returns the stored value.
func (p *Params) Set(name string, v float64) (float64, error) {
	f, err := p.field(name)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return *f, fmt.Errorf("%s: value must be finite", name)
	}
	v = Ranges[canonical(name)].Clamp(v)
	*f = v
	return v, nil
}

// Get returns the value of the named control.
func (p Params) Get(name string) (float64, error) {
	f, err := p.field(name)
	if err != nil {
		return 0, err
	}
	return *f, nil
}

// Label formats the named control's value with its unit.
func (p Params) Label(name string) string {
	v, err := p.Get(name)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%g%s", v, Ranges[canonical(name)].Unit)
}

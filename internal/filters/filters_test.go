package filters

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func TestEncodeOrder(t *testing.T) {
	got := Encode(Defaults()).String()
	want := "brightness(100%) contrast(100%) saturate(100%) hue-rotate(0deg) sepia(0%) grayscale(0%) blur(0px) invert(0%)"
	if got != want {
		t.Errorf("Encode(Defaults()) = %q\nwant %q", got, want)
	}
	p := Params{Brightness: 120, Contrast: 80, Saturation: 0, Hue: -45, Sepia: 10, Grayscale: 20, Blur: 1.5, Invert: 100}
	got = Encode(p).String()
	want = "brightness(120%) contrast(80%) saturate(0%) hue-rotate(-45deg) sepia(10%) grayscale(20%) blur(1.5px) invert(100%)"
	if got != want {
		t.Errorf("Encode = %q\nwant %q", got, want)
	}
}

func TestSetClamps(t *testing.T) {
	var p Params
	tests := []struct {
		name string
		v    float64
		want float64
	}{
		{"brightness", 500, 200},
		{"hue", -400, -180},
		{"saturate", 50, 50},
		{"blur", -1, 0},
		{"Invert", 120, 100},
	}
	for _, tt := range tests {
		got, err := p.Set(tt.name, tt.v)
		if err != nil {
			t.Fatalf("Set(%q): %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("Set(%q, %v) = %v, want %v", tt.name, tt.v, got, tt.want)
		}
	}
	if p.Saturation != 50 {
		t.Errorf("alias saturate did not set Saturation: %+v", p)
	}
	if _, err := p.Set("sharpen", 1); err == nil {
		t.Error("expected error for unknown filter")
	}
}

func TestSetRejectsNonFinite(t *testing.T) {
	p := Defaults()
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := p.Set("blur", v); err == nil {
			t.Errorf("Set(blur, %v) should fail", v)
		}
	}
	if p.Blur != 0 {
		t.Errorf("Blur = %v after rejected values", p.Blur)
	}
}

func TestLabel(t *testing.T) {
	p := Defaults()
	p.Hue = 30
	p.Blur = 2.5
	if got := p.Label("hue"); got != "30°" {
		t.Errorf("Label(hue) = %q", got)
	}
	if got := p.Label("blur"); got != "2.5px" {
		t.Errorf("Label(blur) = %q", got)
	}
}

func solid(c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func apply(p Params, c color.NRGBA) color.NRGBA {
	src := solid(c)
	g := Encode(p).Filter()
	dst := image.NewNRGBA(g.Bounds(src.Bounds()))
	g.Draw(dst, src)
	return dst.NRGBAAt(1, 1)
}

func near(a, b uint8) bool { return math.Abs(float64(a)-float64(b)) <= 2 }

func TestFilterIdentity(t *testing.T) {
	in := color.NRGBA{R: 200, G: 100, B: 50, A: 255}
	got := apply(Defaults(), in)
	if !near(got.R, in.R) || !near(got.G, in.G) || !near(got.B, in.B) || got.A != in.A {
		t.Errorf("identity chain changed pixel: %v -> %v", in, got)
	}
}

func TestFilterStages(t *testing.T) {
	in := color.NRGBA{R: 200, G: 100, B: 50, A: 255}
	tests := []struct {
		name string
		set  func(*Params)
		want color.NRGBA
	}{
		{"invert", func(p *Params) { p.Invert = 100 }, color.NRGBA{55, 155, 205, 255}},
		{"brightness zero", func(p *Params) { p.Brightness = 0 }, color.NRGBA{0, 0, 0, 255}},
		{"brightness double", func(p *Params) { p.Brightness = 200 }, color.NRGBA{255, 200, 100, 255}},
		{"contrast zero", func(p *Params) { p.Contrast = 0 }, color.NRGBA{128, 128, 128, 255}},
		{"grayscale", func(p *Params) { p.Grayscale = 100 }, color.NRGBA{118, 118, 118, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Defaults()
			tt.set(&p)
			got := apply(p, in)
			if !near(got.R, tt.want.R) || !near(got.G, tt.want.G) || !near(got.B, tt.want.B) || got.A != tt.want.A {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterKeepsAlpha(t *testing.T) {
	p := Defaults()
	p.Sepia = 100
	got := apply(p, color.NRGBA{R: 10, G: 20, B: 30, A: 128})
	if got.A != 128 {
		t.Errorf("alpha = %d, want 128", got.A)
	}
}

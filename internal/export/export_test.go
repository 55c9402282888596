package export

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/example/retouch/internal/filters"
	"github.com/example/retouch/internal/transform"
)

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 90, A: 255})
		}
	}
	return img
}

func TestParseEncoding(t *testing.T) {
	tests := []struct {
		in   string
		want Encoding
	}{
		{"png", PNG},
		{"", PNG},
		{"JPEG", JPEG},
		{"jpg", JPEG},
		{".jpg", JPEG},
		{"image/webp", WebP},
	}
	for _, tt := range tests {
		got, err := ParseEncoding(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseEncoding(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseEncoding("gif"); !errors.Is(err, ErrUnknownEncoding) {
		t.Errorf("ParseEncoding(gif) err = %v", err)
	}
}

func TestEncodingProperties(t *testing.T) {
	tests := []struct {
		e     Encoding
		mime  string
		ext   string
		lossy bool
	}{
		{PNG, "image/png", "png", false},
		{JPEG, "image/jpeg", "jpg", true},
		{WebP, "image/webp", "webp", true},
	}
	if got := Encodings(); len(got) != len(tests) {
		t.Fatalf("Encodings() = %v", got)
	}
	for i, tt := range tests {
		if e := Encodings()[i]; e != tt.e {
			t.Errorf("Encodings()[%d] = %v, want %v", i, e, tt.e)
		}
		if got := tt.e.MIME(); got != tt.mime {
			t.Errorf("%v.MIME() = %q, want %q", tt.e, got, tt.mime)
		}
		if got := tt.e.Ext(); got != tt.ext {
			t.Errorf("%v.Ext() = %q, want %q", tt.e, got, tt.ext)
		}
		if got := tt.e.Lossy(); got != tt.lossy {
			t.Errorf("%v.Lossy() = %v, want %v", tt.e, got, tt.lossy)
		}
		if got, err := ParseEncoding(tt.mime); err != nil || got != tt.e {
			t.Errorf("ParseEncoding(%q) = %v, %v", tt.mime, got, err)
		}
	}
}

func TestClampQuality(t *testing.T) {
	for in, want := range map[float64]float64{0: 0.1, 0.05: 0.1, 0.5: 0.5, 1: 1, 3: 1} {
		if got := ClampQuality(in); got != want {
			t.Errorf("ClampQuality(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestFileName(t *testing.T) {
	if got := FileName("edit", JPEG); got != "edit.jpg" {
		t.Errorf("FileName jpeg = %q", got)
	}
	if got := FileName("", WebP); got != "edit.webp" {
		t.Errorf("FileName webp = %q", got)
	}
}

func TestExportNilSource(t *testing.T) {
	b, err := Export(nil, transform.Params{}, filters.Defaults(), PNG, 0.9)
	if b != nil || err != nil {
		t.Errorf("Export(nil) = %d bytes, %v", len(b), err)
	}
}

func TestExportPNGLossless(t *testing.T) {
	src := gradient(64, 32)
	b, err := Export(src, transform.Params{}, filters.Defaults(), PNG, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Size() != image.Pt(64, 32) {
		t.Fatalf("size = %v", img.Bounds().Size())
	}
	r, _, _, _ := img.At(32, 16).RGBA()
	want, _, _, _ := src.At(32, 16).RGBA()
	if d := int(r>>8) - int(want>>8); d < -1 || d > 1 {
		t.Errorf("red = %d, want %d", r>>8, want>>8)
	}
}

func TestExportJPEGQuality(t *testing.T) {
	src := gradient(128, 128)
	low, err := Export(src, transform.Params{}, filters.Defaults(), JPEG, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	high, err := Export(src, transform.Params{}, filters.Defaults(), JPEG, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(low) >= len(high) {
		t.Errorf("quality 0.1 gave %d bytes, quality 1 gave %d", len(low), len(high))
	}
	if _, err := jpeg.Decode(bytes.NewReader(high)); err != nil {
		t.Errorf("jpeg decode: %v", err)
	}
}

func TestExportWebP(t *testing.T) {
	b, err := Export(gradient(32, 32), transform.Params{RotationDeg: 90}, filters.Defaults(), WebP, 0.8)
	if err != nil {
		t.Fatal(err)
	}
	if len(b) < 12 || string(b[0:4]) != "RIFF" || string(b[8:12]) != "WEBP" {
		t.Errorf("not a webp stream: % x", b[:min(len(b), 12)])
	}
}

func TestEncodeUnknown(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, gradient(2, 2), Encoding("gif"), 1)
	if !errors.Is(err, ErrUnknownEncoding) {
		t.Errorf("err = %v", err)
	}
}

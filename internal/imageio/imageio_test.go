package imageio

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestDecodeBytes(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 7, 3))); err != nil {
		t.Fatal(err)
	}
	img, err := DecodeBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeBytes: %v", err)
	}
	if img.Bounds().Size() != image.Pt(7, 3) {
		t.Errorf("size = %v", img.Bounds().Size())
	}
}

func TestDecodeGarbage(t *testing.T) {
	_, err := DecodeBytes([]byte("hello"))
	if !errors.Is(err, ErrNotImage) {
		t.Errorf("err = %v, want ErrNotImage", err)
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 5, 5))); err != nil {
		t.Fatal(err)
	}
	f.Close()
	if _, err := Open(path); err != nil {
		t.Errorf("Open: %v", err)
	}
	if _, err := Open(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("Open missing file succeeded")
	}
}

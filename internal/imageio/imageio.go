// Package imageio decodes source images for the editor.
package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrNotImage is returned when the input is not in a registered format.
var ErrNotImage = errors.New("not a supported image")

// Decode reads an image from r, applying any EXIF orientation.
func Decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("decode: %w", ErrNotImage)
		}
		return nil, fmt.Errorf("decode: %w", err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("decode: empty image: %w", ErrNotImage)
	}
	return img, nil
}

// DecodeBytes decodes an in-memory image.
func DecodeBytes(b []byte) (image.Image, error) {
	return Decode(bytes.NewReader(b))
}

// Open decodes the image stored at path.
func Open(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("open %s: %w", path, ErrNotImage)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return img, nil
}

// Package export renders the document at its natural resolution and
// serializes it.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"math"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	"github.com/example/retouch/internal/filters"
	"github.com/example/retouch/internal/geom"
	"github.com/example/retouch/internal/render"
	"github.com/example/retouch/internal/transform"
)

// Encoding is an output raster format.
type Encoding string

const (
	PNG  Encoding = "png"
	JPEG Encoding = "jpeg"
	WebP Encoding = "webp"
)

// DefaultQuality is used when no quality is configured.
const DefaultQuality = 0.92

// ErrUnknownEncoding reports an encoding name that is not supported.
var ErrUnknownEncoding = errors.New("unknown encoding")

// Encodings lists the supported formats.
func Encodings() []Encoding { return []Encoding{PNG, JPEG, WebP} }

// ParseEncoding accepts a format name, a file extension or a MIME type.
func ParseEncoding(s string) (Encoding, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		return PNG, nil
	}
	name := strings.TrimPrefix(v, ".")
	for _, e := range Encodings() {
		if v == e.MIME() || name == string(e) || name == e.Ext() {
			return e, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEncoding, s)
}

// Ext returns the file extension without the dot.
func (e Encoding) Ext() string {
	if e == JPEG {
		return "jpg"
	}
	return string(e)
}

// MIME returns the media type.
func (e Encoding) MIME() string { return "image/" + string(e) }

// Lossy reports whether quality affects the encoding.
func (e Encoding) Lossy() bool { return e != PNG }

// ClampQuality limits a quality fraction to [0.1, 1.0].
func ClampQuality(q float64) float64 { return geom.Clamp(q, 0.1, 1) }

// FileName returns base with the extension of e.
func FileName(base string, e Encoding) string {
	if base == "" {
		base = "edit"
	}
	return base + "." + e.Ext()
}

// Render draws src at its own size with the given edits applied.
func Render(src image.Image, t transform.Params, f filters.Params) *image.RGBA {
	b := src.Bounds()
	return render.RenderAt(b.Dx(), b.Dy(), src, t, f).Image()
}

// Encode writes img to w. Quality is a fraction honoured by the lossy
// encodings and ignored for PNG.
func Encode(w io.Writer, img image.Image, e Encoding, quality float64) error {
	q := DefaultQuality
	if e.Lossy() {
		q = ClampQuality(quality)
	}
	var err error
	switch e {
	case PNG:
		err = imaging.Encode(w, img, imaging.PNG)
	case JPEG:
		err = imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(int(math.Round(q*100))))
	case WebP:
		err = webp.Encode(w, img, &webp.Options{Lossless: false, Quality: float32(q * 100)})
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEncoding, string(e))
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", e, err)
	}
	return nil
}

// Export renders src at natural resolution and encodes it. A nil src yields
// no bytes and no error.
func Export(src image.Image, t transform.Params, f filters.Params, e Encoding, quality float64) ([]byte, error) {
	if src == nil || src.Bounds().Empty() {
		return nil, nil
	}
	var buf bytes.Buffer
	if err := Encode(&buf, Render(src, t, f), e, quality); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

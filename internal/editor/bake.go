package editor

import (
	"image"
	"log/slog"
	"math"

	"github.com/disintegration/imaging"

	"github.com/example/retouch/internal/render"
)

// ApplyCrop renders the current edits at preview resolution, cuts out the
// crop rectangle and makes it the new source. Rotation and flips are reset
// because they are baked into the pixels; filters are kept.
func (s *EditState) ApplyCrop() bool {
	if !s.HasImage() || s.Crop == nil {
		return false
	}
	buf := render.RenderAt(s.Canvas.Width(), s.Canvas.Height(), s.Source, s.Transform, s.Filters)
	r := s.Crop.Rect.Rescale(buf.Size())
	out := cropBuffer(buf.Image(), r.X, r.Y, r.W, r.H)
	s.Transform.Reset()
	s.Crop = nil
	s.replaceSource(out)
	Logger().Info("crop applied", slog.String("rect", r.String()), slog.Int("width", s.NaturalWidth), slog.Int("height", s.NaturalHeight))
	return true
}

// cropBuffer copies the given region of src into a new image of at least
// 1x1 pixels.
func cropBuffer(src *image.RGBA, x, y, w, h float64) image.Image {
	dw := max(1, int(math.Round(w)))
	dh := max(1, int(math.Round(h)))
	x0 := int(math.Round(x))
	y0 := int(math.Round(y))
	rect := image.Rect(x0, y0, x0+dw, y0+dh)
	in := rect.Intersect(src.Bounds())
	if in.Empty() {
		return image.NewNRGBA(image.Rect(0, 0, dw, dh))
	}
	out := imaging.Crop(src, rect)
	if in == rect {
		return out
	}
	return imaging.Paste(image.NewNRGBA(image.Rect(0, 0, dw, dh)), out, in.Min.Sub(rect.Min))
}

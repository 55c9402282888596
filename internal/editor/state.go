// Package editor holds the document being edited and the command handlers
// that mutate it. Commands report whether the preview needs redrawing;
// callers serialize them and call Preview after any command that returns
// true.
package editor

import (
	"image"
	"io"
	"log/slog"
	"strings"

	"github.com/example/retouch/internal/export"
	"github.com/example/retouch/internal/filters"
	"github.com/example/retouch/internal/geom"
	"github.com/example/retouch/internal/imageio"
	"github.com/example/retouch/internal/render"
	"github.com/example/retouch/internal/transform"
)

// Options configure an EditState.
type Options struct {
	// MaxPreview bounds the preview canvas. Images are never enlarged.
	MaxPreview geom.Size
	Crop       CropGeometry
	Overlay    render.OverlayStyle
}

// DefaultOptions caps the preview at 1200x800.
func DefaultOptions() Options {
	return Options{
		MaxPreview: geom.Size{W: 1200, H: 800},
		Crop:       DefaultCropGeometry(),
		Overlay:    render.DefaultOverlayStyle(),
	}
}

// EditState is the document: the current base image plus every
// non-destructive edit applied on top of it.
type EditState struct {
	Source        image.Image
	NaturalWidth  int
	NaturalHeight int
	ScaleToFit    float64
	Canvas        *render.Canvas

	Filters   filters.Params
	Transform transform.Params
	Crop      *CropSession

	// Aspect is the selected crop constraint. It outlives crop sessions.
	Aspect geom.Aspect

	opts Options
}

// New returns an empty document.
func New(opts Options) *EditState {
	if opts.MaxPreview.Empty() {
		opts.MaxPreview = DefaultOptions().MaxPreview
	}
	return &EditState{
		ScaleToFit: 1,
		Filters:    filters.Defaults(),
		opts:       opts,
	}
}

// Options returns the configuration the state was created with.
func (s *EditState) Options() Options { return s.opts }

// HasImage reports whether a source image is loaded.
func (s *EditState) HasImage() bool { return s.Source != nil }

// Load decodes r and replaces the document. On failure the state is left
// untouched.
func (s *EditState) Load(r io.Reader) (bool, error) {
	img, err := imageio.Decode(r)
	if err != nil {
		return false, err
	}
	return s.SetImage(img), nil
}

// Open decodes the file at path and replaces the document.
func (s *EditState) Open(path string) (bool, error) {
	img, err := imageio.Open(path)
	if err != nil {
		return false, err
	}
	return s.SetImage(img), nil
}

// SetImage replaces the source, refits the preview and resets every edit.
func (s *EditState) SetImage(img image.Image) bool {
	if img == nil || img.Bounds().Empty() {
		return false
	}
	s.replaceSource(img)
	s.ResetAll()
	Logger().Info("image loaded", slog.Int("width", s.NaturalWidth), slog.Int("height", s.NaturalHeight), slog.Float64("scale", s.ScaleToFit))
	return true
}

func (s *EditState) replaceSource(img image.Image) {
	b := img.Bounds()
	s.Source = img
	s.NaturalWidth = b.Dx()
	s.NaturalHeight = b.Dy()
	s.fit()
}

// fit sizes the preview canvas to the natural size scaled into MaxPreview.
func (s *EditState) fit() {
	s.ScaleToFit = render.FitScale(s.NaturalWidth, s.NaturalHeight, s.opts.MaxPreview)
	w, h := render.FitSize(s.NaturalWidth, s.NaturalHeight, s.ScaleToFit)
	s.Canvas = render.NewCanvas(w, h)
}

// PreviewSize returns the preview surface size, or an empty size without an
// image.
func (s *EditState) PreviewSize() geom.Size {
	if s.Canvas == nil {
		return geom.Size{}
	}
	return s.Canvas.Size()
}

// Preview renders the document into the preview canvas, draws the crop
// overlay when a session is active and returns the canvas pixels. It returns
// nil without an image.
func (s *EditState) Preview() *image.RGBA {
	if !s.HasImage() || s.Canvas == nil {
		return nil
	}
	render.Render(s.Canvas, s.Source, s.Transform, s.Filters)
	if s.Crop != nil {
		render.DrawCropOverlay(s.Canvas.Image(), s.Crop.Rect, s.opts.Overlay)
	}
	return s.Canvas.Image()
}

// SetFilter stores one filter control, clamped to its declared range.
func (s *EditState) SetFilter(name string, v float64) (bool, error) {
	if _, err := s.Filters.Set(name, v); err != nil {
		return false, err
	}
	return s.HasImage(), nil
}

// SetFilters replaces all filter controls.
func (s *EditState) SetFilters(p filters.Params) bool {
	s.Filters = p
	return s.HasImage()
}

// SetRotation stores the rotation in degrees.
func (s *EditState) SetRotation(deg int) bool {
	s.Transform.SetRotation(deg)
	return s.HasImage()
}

// RotateLeft turns a quarter counter-clockwise.
func (s *EditState) RotateLeft() bool {
	s.Transform.RotateLeft()
	return s.HasImage()
}

// RotateRight turns a quarter clockwise.
func (s *EditState) RotateRight() bool {
	s.Transform.RotateRight()
	return s.HasImage()
}

// ToggleFlipH mirrors horizontally.
func (s *EditState) ToggleFlipH() bool {
	s.Transform.ToggleFlipH()
	return s.HasImage()
}

// ToggleFlipV mirrors vertically.
func (s *EditState) ToggleFlipV() bool {
	s.Transform.ToggleFlipV()
	return s.HasImage()
}

// ResetAll restores default filters, clears rotation and flips and cancels
// any crop session.
func (s *EditState) ResetAll() bool {
	s.Filters = filters.Defaults()
	s.Transform.Reset()
	s.Crop = nil
	return s.HasImage()
}

// BeginCrop starts a crop session on the preview surface.
func (s *EditState) BeginCrop() bool {
	if !s.HasImage() {
		return false
	}
	s.Crop = NewCropSession(s.Canvas.Size(), s.Aspect, s.opts.Crop)
	Logger().Debug("crop begun", slog.String("rect", s.Crop.Rect.String()))
	return true
}

// CancelCrop discards the crop session.
func (s *EditState) CancelCrop() bool {
	if s.Crop == nil {
		return false
	}
	s.Crop = nil
	return true
}

// SetAspect selects the crop constraint and applies it to an active session.
func (s *EditState) SetAspect(a geom.Aspect) bool {
	s.Aspect = a
	if s.Crop == nil {
		return false
	}
	s.Crop.SetAspect(a)
	return true
}

// ApplyPointerEvent forwards a pointer event to the crop session.
func (s *EditState) ApplyPointerEvent(ev PointerEvent) bool {
	if s.Crop == nil {
		return false
	}
	changed := s.Crop.Apply(ev)
	if changed {
		Logger().Debug("crop pointer", slog.String("kind", ev.Kind.String()), slog.String("gesture", s.Crop.Gesture().String()), slog.String("rect", s.Crop.Rect.String()))
	}
	return changed
}

// Export renders the document at natural resolution and encodes it. It
// returns nil without an image or when encoding fails; failures are logged.
func (s *EditState) Export(e export.Encoding, quality float64) []byte {
	if !s.HasImage() {
		return nil
	}
	b, err := export.Export(s.Source, s.Transform, s.Filters, e, quality)
	if err != nil {
		Logger().Warn("export failed", slog.String("encoding", string(e)), slog.Any("err", err))
		return nil
	}
	Logger().Info("exported", slog.String("encoding", string(e)), slog.Int("bytes", len(b)))
	return b
}

// HandleKey applies a keyboard shortcut: r rotates right, h and v flip and
// Escape cancels the crop session. Letters are case-insensitive.
func (s *EditState) HandleKey(key string) bool {
	if key == "Escape" {
		return s.CancelCrop()
	}
	switch strings.ToLower(key) {
	case "r":
		return s.RotateRight()
	case "h":
		return s.ToggleFlipH()
	case "v":
		return s.ToggleFlipV()
	}
	return false
}

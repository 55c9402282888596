package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/example/retouch/internal/capture"
	"github.com/example/retouch/internal/clipboard"
	"github.com/example/retouch/internal/editor"
	"github.com/example/retouch/internal/export"
	"github.com/example/retouch/internal/filters"
	"github.com/example/retouch/internal/geom"
)

// Swapped in tests.
var (
	captureFn        = capture.Capture
	clipboardReadFn  = clipboard.ReadImage
	clipboardWriteFn = clipboard.WriteImage
)

var (
	errNoImage = errors.New("no image loaded")
	errExit    = errors.New("exit")
)

// session drives one EditState from text commands. Both the edit and
// interactive commands go through it.
type session struct {
	r     *root
	state *editor.EditState
	out   io.Writer
}

func newSession(r *root, out io.Writer) *session {
	if r.state == nil {
		r.state = r.newState()
	}
	return &session{r: r, state: r.state, out: out}
}

func (s *session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *session) load(path string) error {
	ok, err := s.state.Open(path)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	if !ok {
		return fmt.Errorf("failed to load %s", path)
	}
	return nil
}

func (s *session) capture(mode string) error {
	m, err := capture.ParseMode(mode)
	if err != nil {
		return err
	}
	img, err := captureFn(context.Background(), capture.Options{Mode: m})
	if err != nil {
		return fmt.Errorf("failed to capture %s: %w", m, err)
	}
	if !s.state.SetImage(img) {
		return fmt.Errorf("capture %s returned an empty image: %w", m, errNoImage)
	}
	s.r.notifyCapture(string(m), img)
	return nil
}

func (s *session) paste() error {
	img, err := clipboardReadFn()
	if err != nil {
		return fmt.Errorf("failed to read clipboard: %w", err)
	}
	if !s.state.SetImage(img) {
		return fmt.Errorf("clipboard image is empty: %w", errNoImage)
	}
	return nil
}

func (s *session) setFilter(name, value string) error {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("invalid %s value %q", name, value)
	}
	if _, err := s.state.SetFilter(name, v); err != nil {
		return err
	}
	return nil
}

func (s *session) rotate(arg string) error {
	switch strings.ToLower(arg) {
	case "left", "l":
		s.state.RotateLeft()
	case "right", "r":
		s.state.RotateRight()
	default:
		deg, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("invalid rotation %q", arg)
		}
		s.state.SetRotation(deg)
	}
	return nil
}

func (s *session) flip(axis string) error {
	switch strings.ToLower(axis) {
	case "h", "horizontal":
		s.state.ToggleFlipH()
	case "v", "vertical":
		s.state.ToggleFlipV()
	default:
		return fmt.Errorf("invalid flip axis %q", axis)
	}
	return nil
}

// cropRect sets the crop rectangle directly, in preview coordinates,
// starting a session if needed.
func (s *session) cropRect(arg string) error {
	parts := strings.Split(arg, ",")
	if len(parts) != 4 {
		return fmt.Errorf("invalid crop %q: want x,y,w,h", arg)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return fmt.Errorf("invalid crop %q: %w", arg, err)
		}
		v[i] = f
	}
	if s.state.Crop == nil && !s.state.BeginCrop() {
		return errNoImage
	}
	r := geom.R(v[0], v[1], v[2], v[3], s.state.PreviewSize()).Normalize().Contain()
	s.state.Crop.Rect = geom.EnforceAspect(r, s.state.Aspect)
	return nil
}

func (s *session) pointer(kind editor.PointerKind, xs, ys string) error {
	x, err := strconv.ParseFloat(xs, 64)
	if err != nil {
		return fmt.Errorf("invalid x %q", xs)
	}
	y, err := strconv.ParseFloat(ys, 64)
	if err != nil {
		return fmt.Errorf("invalid y %q", ys)
	}
	if s.state.Crop == nil {
		return errors.New("no crop session")
	}
	s.state.ApplyPointerEvent(editor.PointerEvent{Kind: kind, X: x, Y: y})
	return nil
}

func (s *session) crop(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: crop begin|cancel|apply|show|aspect <ratio>|rect x,y,w,h|down|move|up <x> <y>")
	}
	switch args[0] {
	case "begin":
		if !s.state.BeginCrop() {
			return errNoImage
		}
	case "cancel":
		s.state.CancelCrop()
	case "apply":
		if !s.state.ApplyCrop() {
			return errors.New("no crop session")
		}
	case "show":
		if s.state.Crop == nil {
			s.printf("no crop session\n")
			return nil
		}
		s.printf("%s aspect=%s gesture=%s\n", s.state.Crop.Rect.Round(), s.state.Crop.Aspect, s.state.Crop.Gesture())
	case "aspect":
		if len(args) < 2 {
			return errors.New("usage: crop aspect <ratio>")
		}
		a, err := geom.ParseAspect(args[1])
		if err != nil {
			return err
		}
		s.state.SetAspect(a)
	case "rect":
		if len(args) < 2 {
			return errors.New("usage: crop rect x,y,w,h")
		}
		return s.cropRect(args[1])
	case "down", "move", "up":
		if len(args) < 3 {
			return fmt.Errorf("usage: crop %s <x> <y>", args[0])
		}
		kind := map[string]editor.PointerKind{"down": editor.PointerDown, "move": editor.PointerMove, "up": editor.PointerUp}[args[0]]
		return s.pointer(kind, args[1], args[2])
	default:
		return fmt.Errorf("unknown crop command %q", args[0])
	}
	return nil
}

// outputPath resolves where an export goes. An explicit path wins; otherwise
// the configured name is placed in the save directory.
func (s *session) outputPath(path string, e export.Encoding) string {
	if path != "" {
		return path
	}
	cfg := s.r.config
	name := export.FileName(cfg.Export.Name, e)
	if cfg.SaveDir != "" {
		return filepath.Join(cfg.SaveDir, name)
	}
	return name
}

// encodingFor picks the encoding from an explicit format, the output
// extension or the configured default, in that order.
func (s *session) encodingFor(format, path string) (export.Encoding, error) {
	if format != "" {
		return export.ParseEncoding(format)
	}
	if ext := filepath.Ext(path); ext != "" {
		if e, err := export.ParseEncoding(ext); err == nil {
			return e, nil
		}
	}
	return s.r.config.Encoding(), nil
}

func (s *session) export(path, format string, quality float64) (string, error) {
	if !s.state.HasImage() {
		return "", errNoImage
	}
	e, err := s.encodingFor(format, path)
	if err != nil {
		return "", err
	}
	data, err := export.Export(s.state.Source, s.state.Transform, s.state.Filters, e, quality)
	if err != nil {
		return "", fmt.Errorf("failed to export: %w", err)
	}
	path = s.outputPath(path, e)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	s.r.notifyExport(path)
	return path, nil
}

func (s *session) copy() error {
	if !s.state.HasImage() {
		return errNoImage
	}
	img := export.Render(s.state.Source, s.state.Transform, s.state.Filters)
	if err := clipboardWriteFn(img); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	b := img.Bounds()
	s.r.notifyCopy(fmt.Sprintf("%dx%d image", b.Dx(), b.Dy()))
	return nil
}

func (s *session) writePreview(path string) error {
	img := s.state.Preview()
	if img == nil {
		return errNoImage
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to write preview %s: %w", path, err)
	}
	return nil
}

func (s *session) printState() {
	st := s.state
	if !st.HasImage() {
		s.printf("no image\n")
		return
	}
	s.printf("image %dx%d preview %s scale %.4g\n", st.NaturalWidth, st.NaturalHeight, st.PreviewSize(), st.ScaleToFit)
	s.printf("rotation %d flipH %t flipV %t aspect %s\n", st.Transform.RotationDeg, st.Transform.FlipH, st.Transform.FlipV, st.Aspect)
	s.printf("filter %s\n", filters.Encode(st.Filters))
	if st.Crop != nil {
		s.printf("crop %s %s\n", st.Crop.Rect.Round(), st.Crop.Gesture())
	}
}

func (s *session) printFilters() {
	for _, name := range filters.Names() {
		s.printf("%s\n", s.state.Filters.Label(name))
	}
}

// exec runs one command line. It returns errExit for exit and quit.
func (s *session) exec(args []string) error {
	if len(args) == 0 {
		return nil
	}
	cmd, rest := strings.ToLower(args[0]), args[1:]
	need := func(n int, usage string) error {
		if len(rest) < n {
			return fmt.Errorf("usage: %s", usage)
		}
		return nil
	}
	switch cmd {
	case "exit", "quit":
		return errExit
	case "load", "open":
		if err := need(1, "load <file>"); err != nil {
			return err
		}
		return s.load(rest[0])
	case "capture":
		mode := ""
		if len(rest) > 0 {
			mode = rest[0]
		}
		return s.capture(mode)
	case "paste":
		return s.paste()
	case "filter":
		if err := need(2, "filter <name> <value>"); err != nil {
			return err
		}
		return s.setFilter(rest[0], rest[1])
	case "filters":
		s.printFilters()
	case "rotate":
		if err := need(1, "rotate left|right|<degrees>"); err != nil {
			return err
		}
		return s.rotate(rest[0])
	case "flip":
		if err := need(1, "flip h|v"); err != nil {
			return err
		}
		return s.flip(rest[0])
	case "reset":
		s.state.ResetAll()
	case "crop":
		return s.crop(rest)
	case "key":
		if err := need(1, "key <name>"); err != nil {
			return err
		}
		s.state.HandleKey(rest[0])
	case "preview":
		if err := need(1, "preview <file>"); err != nil {
			return err
		}
		return s.writePreview(rest[0])
	case "export", "save":
		var path, format string
		quality := s.r.config.Export.Quality
		if len(rest) > 0 {
			path = rest[0]
		}
		if len(rest) > 1 {
			format = rest[1]
		}
		if len(rest) > 2 {
			q, err := strconv.ParseFloat(rest[2], 64)
			if err != nil {
				return fmt.Errorf("invalid quality %q", rest[2])
			}
			quality = q
		}
		out, err := s.export(path, format, quality)
		if err != nil {
			return err
		}
		s.printf("exported %s\n", out)
	case "copy":
		return s.copy()
	case "state":
		s.printState()
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

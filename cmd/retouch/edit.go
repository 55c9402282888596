package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/retouch/internal/export"
	"github.com/example/retouch/internal/filters"
	"github.com/example/retouch/internal/geom"
)

type editCmd struct {
	*root
	fs *flag.FlagSet

	file          string
	fromClipboard bool
	captureMode   string
	filterValues  map[string]*float64
	rotate        int
	flipH         bool
	flipV         bool
	crop          string
	aspect        string
	format        string
	quality       float64
	output        string
	toClipboard   bool
	previewOut    string

	out io.Writer
}

func (e *editCmd) FlagSet() *flag.FlagSet {
	return e.fs
}

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	cmd := &editCmd{root: r.subcommand("edit"), fs: fs, filterValues: map[string]*float64{}, out: os.Stdout}
	fs.Usage = usageFunc(cmd)
	fs.StringVar(&cmd.file, "file", "", "image file to edit")
	fs.BoolVar(&cmd.fromClipboard, "from-clipboard", false, "load the input image from the clipboard")
	fs.StringVar(&cmd.captureMode, "capture", "", "load a screen capture instead of a file (screen or region)")

	defaults := filters.Defaults()
	for _, name := range filters.Names() {
		def, _ := defaults.Get(name)
		rng := filters.Ranges[name]
		v := new(float64)
		cmd.filterValues[name] = v
		fs.Float64Var(v, name, def, fmt.Sprintf("%s filter (%g to %g%s)", name, rng.Min, rng.Max, rng.Unit))
	}

	fs.IntVar(&cmd.rotate, "rotate", 0, "rotation in degrees")
	fs.BoolVar(&cmd.flipH, "flip-h", false, "flip horizontally")
	fs.BoolVar(&cmd.flipV, "flip-v", false, "flip vertically")
	fs.StringVar(&cmd.crop, "crop", "", "crop rectangle x,y,w,h in preview coordinates")
	fs.StringVar(&cmd.aspect, "aspect", r.config.Crop.Aspect, "crop aspect ratio (free, 1:1, 4:3, 16:9, 3:2 or W:H)")
	var names []string
	for _, enc := range export.Encodings() {
		names = append(names, string(enc))
	}
	fs.StringVar(&cmd.format, "format", "", "export format ("+strings.Join(names, ", ")+"); defaults to the output extension or the config")
	fs.Float64Var(&cmd.quality, "quality", r.config.Export.Quality, "quality for lossy formats, 0.1 to 1.0")
	fs.StringVar(&cmd.output, "output", "", "output file; defaults to the configured name in the save directory")
	fs.BoolVar(&cmd.toClipboard, "to-clipboard", false, "copy the result to the clipboard instead of writing a file")
	fs.StringVar(&cmd.previewOut, "preview", "", "also write the preview with the crop overlay as PNG")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	sources := 0
	for _, set := range []bool{cmd.file != "", cmd.fromClipboard, cmd.captureMode != ""} {
		if set {
			sources++
		}
	}
	if sources == 0 {
		return nil, &UsageError{of: cmd}
	}
	if sources > 1 {
		return nil, errors.New("use only one of -file, -from-clipboard and -capture")
	}
	if _, err := geom.ParseAspect(cmd.aspect); err != nil {
		return nil, err
	}
	return cmd, nil
}

func (e *editCmd) Run() error {
	s := newSession(e.root, e.out)

	var err error
	switch {
	case e.fromClipboard:
		err = s.paste()
	case e.captureMode != "":
		err = s.capture(e.captureMode)
	default:
		err = s.load(e.file)
	}
	if err != nil {
		return err
	}

	for _, name := range filters.Names() {
		if _, err := s.state.SetFilter(name, *e.filterValues[name]); err != nil {
			return err
		}
	}
	if e.rotate != 0 {
		s.state.SetRotation(e.rotate)
	}
	if e.flipH {
		s.state.ToggleFlipH()
	}
	if e.flipV {
		s.state.ToggleFlipV()
	}
	a, _ := geom.ParseAspect(e.aspect)
	s.state.SetAspect(a)
	if e.crop != "" {
		if err := s.cropRect(e.crop); err != nil {
			return err
		}
		if e.previewOut != "" {
			if err := s.writePreview(e.previewOut); err != nil {
				return err
			}
		}
		s.state.ApplyCrop()
	} else if e.previewOut != "" {
		if err := s.writePreview(e.previewOut); err != nil {
			return err
		}
	}

	if e.toClipboard {
		return s.copy()
	}
	path, err := s.export(e.output, e.format, e.quality)
	if err != nil {
		return err
	}
	fmt.Fprintln(e.out, path)
	return nil
}

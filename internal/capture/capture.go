// Package capture grabs the desktop so it can be loaded as a source image.
package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"strings"
	"time"
)

// ErrUnsupported is returned when no capture backend exists for the
// platform.
var ErrUnsupported = errors.New("screen capture is not supported on this platform")

// Mode selects what is captured.
type Mode string

const (
	// ModeScreen captures the whole desktop without user interaction.
	ModeScreen Mode = "screen"
	// ModeRegion lets the user pick a region through the desktop portal.
	ModeRegion Mode = "region"
)

// ParseMode accepts "screen" or "region".
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeScreen, ModeRegion:
		return m, nil
	case "":
		return ModeScreen, nil
	}
	return "", fmt.Errorf("unknown capture mode %q", s)
}

// Options configure a capture.
type Options struct {
	Mode          Mode
	IncludeCursor bool
	// Rect, when not empty, crops a screen capture to global coordinates.
	Rect image.Rectangle
	// Timeout bounds the wait for the portal response. Zero means 30s.
	Timeout time.Duration
}

// Swapped in tests.
var (
	portalFn = portalScreenshot
	x11Fn    = x11Screenshot
)

// Capture grabs the screen. Screen captures try the desktop portal first and
// fall back to reading the X11 root window; region captures need the portal.
func Capture(ctx context.Context, opts Options) (*image.RGBA, error) {
	if opts.Mode == "" {
		opts.Mode = ModeScreen
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	if opts.Mode == ModeRegion {
		img, err := portalFn(ctx, true, opts)
		if err != nil {
			return nil, fmt.Errorf("capture region: %w", err)
		}
		return img, nil
	}

	img, perr := portalFn(ctx, false, opts)
	if perr != nil {
		var xerr error
		img, xerr = x11Fn()
		if xerr != nil {
			return nil, fmt.Errorf("capture screen: %w", errors.Join(perr, xerr))
		}
	}
	if opts.Rect.Empty() {
		return img, nil
	}
	return cropToRect(img, opts.Rect)
}

func cropToRect(src *image.RGBA, rect image.Rectangle) (*image.RGBA, error) {
	rect = rect.Intersect(src.Bounds())
	if rect.Empty() {
		return nil, fmt.Errorf("requested region outside captured image")
	}
	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), src, rect.Min, draw.Src)
	return dst, nil
}

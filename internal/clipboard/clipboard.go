// Package clipboard moves images between the editor and the system
// clipboard as PNG data.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
	"runtime"
	"sync"

	"github.com/disintegration/imaging"

	"github.com/example/retouch/internal/imageio"
)

var (
	errNoDisplay   = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")
	errUnsupported = errors.New("clipboard image operations are not supported in this build")
	errEmpty       = errors.New("clipboard does not contain image data")
)

var (
	initOnce sync.Once
	initErr  error
)

func ensureInit() error {
	initOnce.Do(func() {
		if needsDisplay() && !hasDisplay() {
			initErr = errNoDisplay
			return
		}
		initErr = backendInit()
	})
	return initErr
}

func needsDisplay() bool {
	switch runtime.GOOS {
	case "darwin", "windows":
		return false
	}
	return true
}

func hasDisplay() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

// WriteImage encodes img as PNG and publishes it to the clipboard.
func WriteImage(img image.Image) error {
	if err := ensureInit(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	return writePNG(buf.Bytes())
}

// ReadImage decodes the image currently on the clipboard.
func ReadImage() (image.Image, error) {
	if err := ensureInit(); err != nil {
		return nil, err
	}
	data, err := readPNG()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errEmpty
	}
	return imageio.DecodeBytes(data)
}

//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package capture

import (
	"context"
	"image"
)

func portalScreenshot(context.Context, bool, Options) (*image.RGBA, error) {
	return nil, ErrUnsupported
}

func x11Screenshot() (*image.RGBA, error) {
	return nil, ErrUnsupported
}

//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"fmt"
	"image"
	"os"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// x11Screenshot reads the root window of the default screen.
func x11Screenshot() (*image.RGBA, error) {
	if os.Getenv("DISPLAY") == "" {
		return nil, fmt.Errorf("x11 capture: DISPLAY not set")
	}
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("x11 connect: %w", err)
	}
	defer conn.Close()

	setup := xproto.Setup(conn)
	if setup == nil || len(setup.Roots) == 0 {
		return nil, fmt.Errorf("xproto setup unavailable")
	}
	screen := setup.DefaultScreen(conn)
	w, h := screen.WidthInPixels, screen.HeightInPixels
	reply, err := xproto.GetImage(conn, xproto.ImageFormatZPixmap, xproto.Drawable(screen.Root), 0, 0, w, h, ^uint32(0)).Reply()
	if err != nil {
		return nil, fmt.Errorf("root window pixels: %w", err)
	}
	return xImageToRGBA(setup.PixmapFormats, reply.Depth, reply.Data, int(w), int(h))
}

// xImageToRGBA converts a ZPixmap in BGR(A) byte order to RGBA. Pixels
// without an alpha byte, or depths of 24 and below, are opaque.
func xImageToRGBA(formats []xproto.Format, depth byte, data []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("screen has empty geometry")
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("screen pixels: empty image data")
	}
	bitsPerPixel := 0
	for _, f := range formats {
		if f.Depth == depth {
			bitsPerPixel = int(f.BitsPerPixel)
			break
		}
	}
	bytesPerPixel := bitsPerPixel / 8
	if bytesPerPixel < 3 {
		return nil, fmt.Errorf("unsupported screen depth %d (%d bpp)", depth, bitsPerPixel)
	}
	stride := len(data) / height
	if stride*height != len(data) || stride < width*bytesPerPixel {
		return nil, fmt.Errorf("screen pixels: unexpected stride")
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		row := data[y*stride : (y+1)*stride]
		for x := 0; x < width; x++ {
			off := x * bytesPerPixel
			a := byte(0xFF)
			if bytesPerPixel >= 4 && depth > 24 {
				a = row[off+3]
			}
			p := img.PixOffset(x, y)
			img.Pix[p+0] = row[off+2]
			img.Pix[p+1] = row[off+1]
			img.Pix[p+2] = row[off]
			img.Pix[p+3] = a
		}
	}
	return img, nil
}

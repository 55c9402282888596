package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/example/retouch/internal/geom"
)

// OverlayStyle holds the colours and metrics of the crop overlay.
type OverlayStyle struct {
	Mask         color.RGBA
	BorderLight  color.RGBA
	BorderDark   color.RGBA
	HandleFill   color.RGBA
	HandleBorder color.RGBA
	HandleSize   int
	Dash         int
}

// DefaultOverlayStyle dims the outside to half black and draws a black and
// white dashed border with white handles.
func DefaultOverlayStyle() OverlayStyle {
	return OverlayStyle{
		Mask:         color.RGBA{0, 0, 0, 128},
		BorderLight:  color.RGBA{255, 255, 255, 255},
		BorderDark:   color.RGBA{0, 0, 0, 255},
		HandleFill:   color.RGBA{255, 255, 255, 255},
		HandleBorder: color.RGBA{0, 0, 0, 255},
		HandleSize:   8,
		Dash:         4,
	}
}

// DrawCropOverlay dims everything outside r, then outlines r with a dashed
// border and marks its four corners with square handles.
func DrawCropOverlay(dst *image.RGBA, r geom.Rect, st OverlayStyle) {
	b := dst.Bounds()
	sel := r.Image().Add(b.Min)
	mask := image.NewUniform(st.Mask)
	for _, part := range outside(b, sel) {
		draw.Draw(dst, part, mask, image.Point{}, draw.Over)
	}
	if sel.Empty() {
		return
	}
	dash := st.Dash
	if dash <= 0 {
		dash = 4
	}
	drawDashedRect(dst, sel, dash, st.BorderLight, st.BorderDark)
	for _, h := range HandleRects(sel, st.HandleSize) {
		draw.Draw(dst, h, image.NewUniform(st.HandleFill), image.Point{}, draw.Src)
		drawRect(dst, h, st.HandleBorder)
	}
}

// HandleRects returns the corner handle squares of rect in the order top-left,
// top-right, bottom-left, bottom-right.
func HandleRects(rect image.Rectangle, size int) []image.Rectangle {
	if size <= 0 {
		size = 8
	}
	hs := size / 2
	return []image.Rectangle{
		image.Rect(rect.Min.X-hs, rect.Min.Y-hs, rect.Min.X+hs, rect.Min.Y+hs),
		image.Rect(rect.Max.X-hs, rect.Min.Y-hs, rect.Max.X+hs, rect.Min.Y+hs),
		image.Rect(rect.Min.X-hs, rect.Max.Y-hs, rect.Min.X+hs, rect.Max.Y+hs),
		image.Rect(rect.Max.X-hs, rect.Max.Y-hs, rect.Max.X+hs, rect.Max.Y+hs),
	}
}

// DrawCheckerboard fills rect of dst with squares of the given size so
// transparent pixels stay visible on screen.
func DrawCheckerboard(dst *image.RGBA, rect image.Rectangle, size int, light, dark color.Color) {
	if size <= 0 {
		size = 8
	}
	rect = rect.Intersect(dst.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if ((x/size)+(y/size))%2 == 0 {
				dst.Set(x, y, light)
			} else {
				dst.Set(x, y, dark)
			}
		}
	}
}

// outside splits b minus sel into at most four bands.
func outside(b, sel image.Rectangle) []image.Rectangle {
	sel = sel.Intersect(b)
	if sel.Empty() {
		return []image.Rectangle{b}
	}
	parts := []image.Rectangle{
		image.Rect(b.Min.X, b.Min.Y, b.Max.X, sel.Min.Y),
		image.Rect(b.Min.X, sel.Max.Y, b.Max.X, b.Max.Y),
		image.Rect(b.Min.X, sel.Min.Y, sel.Min.X, sel.Max.Y),
		image.Rect(sel.Max.X, sel.Min.Y, b.Max.X, sel.Max.Y),
	}
	out := parts[:0]
	for _, p := range parts {
		if !p.Empty() {
			out = append(out, p)
		}
	}
	return out
}

func drawDashedLine(img *image.RGBA, x0, y0, x1, y1, dash int, c1, c2 color.Color) {
	horiz := y0 == y1
	length := x1 - x0
	if !horiz {
		length = y1 - y0
	}
	step := 1
	if length < 0 {
		length = -length
		step = -1
	}
	for i := 0; i <= length; i++ {
		col := c1
		if (i/dash)%2 == 1 {
			col = c2
		}
		if horiz {
			img.Set(x0+i*step, y0, col)
		} else {
			img.Set(x0, y0+i*step, col)
		}
	}
}

func drawDashedRect(img *image.RGBA, rect image.Rectangle, dash int, c1, c2 color.Color) {
	r := rect.Max.X - 1
	bt := rect.Max.Y - 1
	drawDashedLine(img, rect.Min.X, rect.Min.Y, r, rect.Min.Y, dash, c1, c2)
	drawDashedLine(img, r, rect.Min.Y, r, bt, dash, c1, c2)
	drawDashedLine(img, r, bt, rect.Min.X, bt, dash, c1, c2)
	drawDashedLine(img, rect.Min.X, bt, rect.Min.X, rect.Min.Y, dash, c1, c2)
}

func drawRect(img *image.RGBA, rect image.Rectangle, col color.Color) {
	for x := rect.Min.X; x < rect.Max.X; x++ {
		img.Set(x, rect.Min.Y, col)
		img.Set(x, rect.Max.Y-1, col)
	}
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		img.Set(rect.Min.X, y, col)
		img.Set(rect.Max.X-1, y, col)
	}
}

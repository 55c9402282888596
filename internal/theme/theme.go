// Package theme holds the colours used to draw the crop overlay, the preview
// backdrop and the window status bar.
package theme

import (
	"image/color"

	"github.com/example/retouch/internal/render"
)

// Theme defines the colour palette of the editor surfaces.
type Theme struct {
	Name string

	// Crop overlay
	MaskColor    color.RGBA // dims the area outside the selection
	BorderLight  color.RGBA
	BorderDark   color.RGBA
	HandleFill   color.RGBA
	HandleBorder color.RGBA

	// Preview backdrop behind transparent pixels
	CheckerLight color.RGBA
	CheckerDark  color.RGBA

	// Window status bar
	StatusBackground color.RGBA
	StatusText       color.RGBA
}

// Default returns the built-in light theme.
func Default() *Theme {
	return &Theme{
		Name:             "Default",
		MaskColor:        color.RGBA{0, 0, 0, 128},
		BorderLight:      color.RGBA{255, 255, 255, 255},
		BorderDark:       color.RGBA{0, 0, 0, 255},
		HandleFill:       color.RGBA{255, 255, 255, 255},
		HandleBorder:     color.RGBA{0, 0, 0, 255},
		CheckerLight:     color.RGBA{220, 220, 220, 255},
		CheckerDark:      color.RGBA{192, 192, 192, 255},
		StatusBackground: color.RGBA{220, 220, 220, 255},
		StatusText:       color.RGBA{0, 0, 0, 255},
	}
}

// Overlay returns the crop overlay style for t.
func (t *Theme) Overlay() render.OverlayStyle {
	st := render.DefaultOverlayStyle()
	st.Mask = t.MaskColor
	st.BorderLight = t.BorderLight
	st.BorderDark = t.BorderDark
	st.HandleFill = t.HandleFill
	st.HandleBorder = t.HandleBorder
	return st
}

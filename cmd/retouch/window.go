package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/retouch/internal/editor"
	"github.com/example/retouch/internal/render"
	"github.com/example/retouch/internal/theme"
)

const (
	statusHeight  = 20
	checkerSize   = 8
	messageLength = 3 * time.Second
)

var (
	messageFaceOnce sync.Once
	messageFace     font.Face
)

// toastFace returns the face used for transient messages, falling back to
// the bitmap face if the TTF cannot be parsed.
func toastFace() font.Face {
	messageFaceOnce.Do(func() {
		messageFace = basicfont.Face7x13
		f, err := opentype.Parse(goregular.TTF)
		if err != nil {
			log.Printf("parse font: %v", err)
			return
		}
		face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: 24, DPI: 72, Hinting: font.HintingFull})
		if err != nil {
			log.Printf("font face: %v", err)
			return
		}
		messageFace = face
	})
	return messageFace
}

type windowCmd struct {
	*root
	fs            *flag.FlagSet
	file          string
	fromClipboard bool
}

func (w *windowCmd) FlagSet() *flag.FlagSet {
	return w.fs
}

func parseWindowCmd(args []string, r *root) (*windowCmd, error) {
	fs := flag.NewFlagSet("window", flag.ExitOnError)
	cmd := &windowCmd{root: r.subcommand("window"), fs: fs}
	fs.Usage = usageFunc(cmd)
	fs.StringVar(&cmd.file, "file", "", "image file to open")
	fs.BoolVar(&cmd.fromClipboard, "from-clipboard", false, "open the clipboard image")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cmd.file == "" && fs.NArg() > 0 {
		cmd.file = fs.Arg(0)
	}
	return cmd, nil
}

func (w *windowCmd) Run() error {
	app := newWindowApp(newSession(w.root, io.Discard), w.activeTheme)
	switch {
	case w.fromClipboard:
		if err := app.s.paste(); err != nil {
			return err
		}
	case w.file != "":
		if err := app.s.load(w.file); err != nil {
			return err
		}
	}
	driver.Main(app.Main)
	return nil
}

// windowApp is the shiny front end. Event handling and frame composition
// are kept apart from the screen so they can run headless.
type windowApp struct {
	s      *session
	theme  *theme.Theme
	width  int
	height int
	// origin is where the preview's top-left lands in the window and zoom
	// shrinks it when the window is smaller than the preview.
	origin image.Point
	zoom   float64

	message      string
	messageUntil time.Time
	now          func() time.Time
}

func newWindowApp(s *session, t *theme.Theme) *windowApp {
	if t == nil {
		t = theme.Default()
	}
	limit := s.state.Options().MaxPreview
	return &windowApp{
		s:      s,
		theme:  t,
		width:  int(limit.W),
		height: int(limit.H) + statusHeight,
		zoom:   1,
		now:    time.Now,
	}
}

func (a *windowApp) say(format string, args ...any) {
	a.message = fmt.Sprintf(format, args...)
	a.messageUntil = a.now().Add(messageLength)
}

// keyName maps a key event to the names HandleKey and handleKey use.
func keyName(e key.Event) string {
	switch e.Code {
	case key.CodeEscape:
		return "Escape"
	case key.CodeReturnEnter, key.CodeKeypadEnter:
		return "Enter"
	}
	if e.Rune > 0 {
		return strings.ToLower(string(e.Rune))
	}
	return ""
}

// handleKey applies a shortcut. It reports whether a redraw is needed and
// whether the window should close.
func (a *windowApp) handleKey(name string) (changed, quit bool) {
	st := a.s.state
	switch name {
	case "":
		return false, false
	case "q":
		return false, true
	case "c":
		return st.BeginCrop(), false
	case "Enter":
		return st.ApplyCrop(), false
	case "l":
		return st.RotateLeft(), false
	case "0":
		return st.ResetAll(), false
	case "p":
		if err := a.s.paste(); err != nil {
			a.say("%v", err)
		}
		return true, false
	case "s":
		path, err := a.s.export("", "", a.s.r.config.Export.Quality)
		if err != nil {
			a.say("%v", err)
		} else {
			a.say("exported %s", path)
		}
		return true, false
	case "y":
		if err := a.s.copy(); err != nil {
			a.say("%v", err)
		} else {
			a.say("copied to clipboard")
		}
		return true, false
	}
	return st.HandleKey(name), false
}

// handleMouse forwards left-button gestures to the crop session in preview
// coordinates.
func (a *windowApp) handleMouse(e mouse.Event) bool {
	x := (float64(e.X) - float64(a.origin.X)) / a.zoom
	y := (float64(e.Y) - float64(a.origin.Y)) / a.zoom
	var kind editor.PointerKind
	switch {
	case e.Direction == mouse.DirPress && e.Button == mouse.ButtonLeft:
		kind = editor.PointerDown
	case e.Direction == mouse.DirRelease && e.Button == mouse.ButtonLeft:
		kind = editor.PointerUp
	case e.Direction == mouse.DirNone:
		kind = editor.PointerMove
	default:
		return false
	}
	return a.s.state.ApplyPointerEvent(editor.PointerEvent{Kind: kind, X: x, Y: y})
}

// activeMessage returns the message set by say until it expires.
func (a *windowApp) activeMessage() string {
	if a.message != "" && a.now().Before(a.messageUntil) {
		return a.message
	}
	return ""
}

func (a *windowApp) statusText() string {
	st := a.s.state
	if !st.HasImage() {
		return "no image (p pastes from the clipboard, q quits)"
	}
	parts := []string{
		fmt.Sprintf("%dx%d", st.NaturalWidth, st.NaturalHeight),
		fmt.Sprintf("rot %d", st.Transform.RotationDeg),
	}
	if st.Transform.FlipH {
		parts = append(parts, "flip-h")
	}
	if st.Transform.FlipV {
		parts = append(parts, "flip-v")
	}
	if st.Crop != nil {
		parts = append(parts, fmt.Sprintf("crop %s %s", st.Crop.Rect.Round(), st.Aspect))
	} else {
		parts = append(parts, "c crops")
	}
	return strings.Join(parts, " | ")
}

// frame composes the whole window into dst.
func (a *windowApp) frame(dst *image.RGBA) {
	b := dst.Bounds()
	area := image.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Max.Y-statusHeight)
	render.DrawCheckerboard(dst, area, checkerSize, a.theme.CheckerLight, a.theme.CheckerDark)

	if img := a.s.state.Preview(); img != nil {
		pb := img.Bounds()
		a.zoom = 1
		if area.Dx() > 0 && area.Dy() > 0 {
			a.zoom = min(1, float64(area.Dx())/float64(pb.Dx()), float64(area.Dy())/float64(pb.Dy()))
		}
		w := int(float64(pb.Dx()) * a.zoom)
		h := int(float64(pb.Dy()) * a.zoom)
		a.origin = image.Pt(area.Min.X+(area.Dx()-w)/2, area.Min.Y+(area.Dy()-h)/2)
		view := image.Rect(a.origin.X, a.origin.Y, a.origin.X+w, a.origin.Y+h)
		if a.zoom == 1 {
			draw.Draw(dst, view, img, pb.Min, draw.Over)
		} else {
			xdraw.NearestNeighbor.Scale(dst, view, img, pb, draw.Over, nil)
		}
	}

	bar := image.Rect(b.Min.X, b.Max.Y-statusHeight, b.Max.X, b.Max.Y)
	draw.Draw(dst, bar, image.NewUniform(a.theme.StatusBackground), image.Point{}, draw.Src)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(a.theme.StatusText), Face: basicfont.Face7x13,
		Dot: fixed.P(bar.Min.X+4, bar.Min.Y+14)}
	d.DrawString(a.statusText())

	if msg := a.activeMessage(); msg != "" {
		drawToast(dst, area, msg)
	}
}

func drawToast(dst *image.RGBA, area image.Rectangle, msg string) {
	face := toastFace()
	d := &font.Drawer{Dst: dst, Src: image.Black, Face: face}
	wmsg := d.MeasureString(msg).Ceil()
	ascent := face.Metrics().Ascent.Ceil()
	descent := face.Metrics().Descent.Ceil()
	px := area.Min.X + (area.Dx()-wmsg)/2
	py := area.Min.Y + (area.Dy()-ascent-descent)/2 + ascent
	box := image.Rect(px-8, py-ascent-8, px+wmsg+8, py+descent+8)
	draw.Draw(dst, box, image.NewUniform(color.RGBA{255, 255, 255, 230}), image.Point{}, draw.Over)
	d.Dot = fixed.P(px, py)
	d.DrawString(msg)
}

func (a *windowApp) drawFrame(s screen.Screen, w screen.Window) {
	b, err := s.NewBuffer(image.Point{a.width, a.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()
	a.frame(b.RGBA())
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

func (a *windowApp) Main(s screen.Screen) {
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: a.width, Height: a.height, Title: "retouch"})
	if err != nil {
		log.Printf("new window: %v", err)
		return
	}
	defer w.Release()

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			a.width = e.WidthPx
			a.height = e.HeightPx
			w.Send(paint.Event{})
		case paint.Event:
			if a.width > 0 && a.height > 0 {
				a.drawFrame(s, w)
			}
		case mouse.Event:
			if a.handleMouse(e) {
				w.Send(paint.Event{})
			}
		case key.Event:
			if e.Direction != key.DirPress {
				continue
			}
			changed, quit := a.handleKey(keyName(e))
			if quit {
				return
			}
			if changed {
				w.Send(paint.Event{})
			}
		case error:
			log.Print(e)
		}
	}
}

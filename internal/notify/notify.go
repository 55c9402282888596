// Package notify sends desktop notifications for editor events.
package notify

import (
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/example/retouch/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventExport fires when an edited image is written to disk.
	EventExport Event = "export"
	// EventCopy fires when an export is placed on the clipboard.
	EventCopy Event = "copy"
	// EventCapture fires when a screen capture is loaded as the source.
	EventCapture Event = "capture"
)

// EventPreference describes formatting for a notification event.
type EventPreference struct {
	Template string
}

// Preferences describes notification behaviour.
type Preferences struct {
	Title  string
	Events map[Event]EventPreference
}

// DefaultPreferences returns the default notification settings.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: "retouch",
		Events: map[Event]EventPreference{
			EventExport:  {Template: "Exported %s"},
			EventCopy:    {Template: "Copied %s to clipboard"},
			EventCapture: {Template: "Captured %s"},
		},
	}
}

// LoadPreferences applies RETOUCH_NOTIFY_* environment overrides to the
// defaults.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("RETOUCH_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	for event := range prefs.Events {
		key := "RETOUCH_NOTIFY_" + strings.ToUpper(string(event)) + "_TEXT"
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			prefs.Events[event] = EventPreference{Template: v}
		}
	}
	return prefs
}

// Notifier sends OS-level notifications for enabled events.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
}

// notifyFn is replaced in tests.
var notifyFn = platform.Notify

// New creates a Notifier with every event disabled.
func New(prefs Preferences) *Notifier {
	cloned := Preferences{Title: prefs.Title, Events: make(map[Event]EventPreference, len(prefs.Events))}
	for k, v := range prefs.Events {
		cloned.Events[k] = v
	}
	return &Notifier{prefs: cloned, enabled: make(map[Event]bool)}
}

// Enable toggles the notifier for the provided event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	n.enabled[event] = enabled
}

// Export announces a written file, using it as the notification icon.
func (n *Notifier) Export(path string) {
	if !n.enabledFor(EventExport) {
		return
	}
	detail := strings.TrimSpace(path)
	opts := platform.Options{}
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if _, statErr := os.Stat(abs); statErr == nil {
			opts.IconPath = abs
		}
	}
	n.dispatch(EventExport, detail, opts)
}

// Copy announces a clipboard export.
func (n *Notifier) Copy(detail string) {
	if strings.TrimSpace(detail) == "" {
		detail = "image"
	}
	n.dispatch(EventCopy, detail, platform.Options{})
}

// Capture announces a capture with a thumbnail of img when available.
func (n *Notifier) Capture(detail string, img image.Image) {
	if !n.enabledFor(EventCapture) {
		return
	}
	opts := platform.Options{}
	if img != nil {
		if path, cleanup, err := createPreview(img); err != nil {
			log.Printf("notification preview: %v", err)
		} else {
			defer cleanup()
			opts.IconPath = path
		}
	}
	n.dispatch(EventCapture, detail, opts)
}

func (n *Notifier) enabledFor(event Event) bool {
	return n != nil && n.enabled[event]
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	if !n.enabledFor(event) {
		return
	}
	template := strings.TrimSpace(n.prefs.Events[event].Template)
	if template == "" {
		return
	}
	body := strings.TrimSpace(fmt.Sprintf(template, strings.TrimSpace(detail)))
	if body == "" {
		return
	}
	if err := notifyFn(n.prefs.Title, body, opts); err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}

// createPreview writes a small PNG thumbnail of img for use as an icon.
func createPreview(img image.Image) (string, func(), error) {
	f, err := os.CreateTemp("", "retouch-preview-*.png")
	if err != nil {
		return "", nil, err
	}
	path := f.Name()
	thumb := imaging.Fit(img, 256, 256, imaging.Box)
	if err := imaging.Encode(f, thumb, imaging.PNG); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", nil, err
	}
	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("remove preview: %v", err)
		}
	}
	return path, cleanup, nil
}

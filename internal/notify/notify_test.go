package notify

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/example/retouch/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
}

func stubNotify(t *testing.T) *[]sent {
	t.Helper()
	var got []sent
	orig := notifyFn
	notifyFn = func(title, body string, opts platform.Options) error {
		if opts.IconPath != "" {
			if _, err := os.Stat(opts.IconPath); err != nil {
				t.Errorf("icon %s missing during notify: %v", opts.IconPath, err)
			}
		}
		got = append(got, sent{title, body, opts})
		return nil
	}
	t.Cleanup(func() { notifyFn = orig })
	return &got
}

func TestDisabledEventsAreSilent(t *testing.T) {
	got := stubNotify(t)
	n := New(DefaultPreferences())
	n.Copy("out.png")
	n.Export("out.png")
	n.Capture("screen", nil)
	if len(*got) != 0 {
		t.Errorf("sent %d notifications while disabled", len(*got))
	}
	var nilNotifier *Notifier
	nilNotifier.Enable(EventCopy, true)
	nilNotifier.Copy("x")
}

func TestExportUsesAbsolutePathAndIcon(t *testing.T) {
	got := stubNotify(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "edit.png")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	n := New(DefaultPreferences())
	n.Enable(EventExport, true)
	n.Export(path)
	if len(*got) != 1 {
		t.Fatalf("sent %d notifications", len(*got))
	}
	if (*got)[0].body != "Exported "+path || (*got)[0].opts.IconPath != path {
		t.Errorf("unexpected notification %+v", (*got)[0])
	}
}

func TestCaptureAttachesThumbnail(t *testing.T) {
	got := stubNotify(t)
	n := New(DefaultPreferences())
	n.Enable(EventCapture, true)
	n.Capture("screen", image.NewRGBA(image.Rect(0, 0, 640, 480)))
	if len(*got) != 1 || (*got)[0].opts.IconPath == "" {
		t.Fatalf("unexpected notifications %+v", *got)
	}
	if _, err := os.Stat((*got)[0].opts.IconPath); !os.IsNotExist(err) {
		t.Errorf("thumbnail not cleaned up: %v", err)
	}
}

func TestLoadPreferencesEnv(t *testing.T) {
	t.Setenv("RETOUCH_NOTIFY_TITLE", "Edits")
	t.Setenv("RETOUCH_NOTIFY_COPY_TEXT", "Clipboard has %s")
	got := stubNotify(t)
	n := New(LoadPreferences())
	n.Enable(EventCopy, true)
	n.Copy("")
	if len(*got) != 1 || (*got)[0].title != "Edits" || (*got)[0].body != "Clipboard has image" {
		t.Errorf("unexpected notifications %+v", *got)
	}
}

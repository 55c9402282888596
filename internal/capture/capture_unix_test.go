//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"image/color"
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/jezek/xgb/xproto"
)

func TestXImageToRGBA(t *testing.T) {
	formats := []xproto.Format{{Depth: 24, BitsPerPixel: 32}}
	data := []byte{
		0x10, 0x20, 0x30, 0x00, 0x40, 0x50, 0x60, 0x00,
		0x70, 0x80, 0x90, 0x00, 0xA0, 0xB0, 0xC0, 0x00,
	}
	img, err := xImageToRGBA(formats, 24, data, 2, 2)
	if err != nil {
		t.Fatalf("xImageToRGBA: %v", err)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{0x30, 0x20, 0x10, 0xFF}) {
		t.Errorf("pixel (0,0) = %v", got)
	}
	if got := img.RGBAAt(1, 1); got != (color.RGBA{0xC0, 0xB0, 0xA0, 0xFF}) {
		t.Errorf("pixel (1,1) = %v", got)
	}
	if _, err := xImageToRGBA(formats, 16, data, 2, 2); err == nil {
		t.Error("expected error for unknown depth")
	}
}

func TestPortalOptions(t *testing.T) {
	prev := portalHandleToken
	portalHandleToken = func() string { return "tok" }
	t.Cleanup(func() { portalHandleToken = prev })

	opts := portalOptions(true, Options{IncludeCursor: true})
	if v := opts["cursor_mode"].Value().(string); v != "embedded" {
		t.Errorf("cursor_mode = %q", v)
	}
	if v := opts["interactive"].Value().(bool); !v {
		t.Error("interactive not set")
	}
	if v := opts["handle_token"].Value().(string); v != "tok" {
		t.Errorf("handle_token = %q", v)
	}
}

func TestResponseFile(t *testing.T) {
	ok := map[string]dbus.Variant{"uri": dbus.MakeVariant("file:///tmp/shot%20one.png")}
	path, err := responseFile([]interface{}{uint32(0), ok})
	if err != nil || path != "/tmp/shot one.png" {
		t.Errorf("responseFile = %q, %v", path, err)
	}
	if _, err := responseFile([]interface{}{uint32(1), ok}); err == nil {
		t.Error("expected error for cancelled request")
	}
	if _, err := responseFile([]interface{}{uint32(0), map[string]dbus.Variant{}}); err == nil {
		t.Error("expected error for missing uri")
	}
}

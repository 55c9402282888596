//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"net/url"
	"os"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/example/retouch/internal/imageio"
)

var portalHandleToken = func() string {
	return fmt.Sprintf("retouch%d", time.Now().UnixNano())
}

// portalScreenshot asks org.freedesktop.portal.Screenshot for an image and
// waits for the Response signal carrying its file URI.
func portalScreenshot(ctx context.Context, interactive bool, opts Options) (*image.RGBA, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("dbus connect: %w", err)
	}
	defer conn.Close()

	obj := conn.Object("org.freedesktop.portal.Desktop", "/org/freedesktop/portal/desktop")
	var handle dbus.ObjectPath
	call := obj.CallWithContext(ctx, "org.freedesktop.portal.Screenshot.Screenshot", 0, "", portalOptions(interactive, opts))
	if call.Err != nil {
		return nil, fmt.Errorf("portal screenshot call: %w", call.Err)
	}
	if err := call.Store(&handle); err != nil {
		return nil, fmt.Errorf("portal screenshot response: %w", err)
	}

	sigc := make(chan *dbus.Signal, 1)
	conn.Signal(sigc)
	rule := fmt.Sprintf("type='signal',interface='org.freedesktop.portal.Request',member='Response',path='%s'", handle)
	if err := conn.BusObject().Call("org.freedesktop.DBus.AddMatch", 0, rule).Err; err != nil {
		return nil, fmt.Errorf("portal screenshot subscribe: %w", err)
	}
	defer conn.BusObject().Call("org.freedesktop.DBus.RemoveMatch", 0, rule)

	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("portal screenshot: %w", ctx.Err())
		case sig, ok := <-sigc:
			if !ok {
				return nil, errors.New("portal screenshot: connection closed")
			}
			if sig.Path != handle || sig.Name != "org.freedesktop.portal.Request.Response" {
				continue
			}
			path, err := responseFile(sig.Body)
			if err != nil {
				return nil, err
			}
			return loadCapture(path)
		}
	}
}

func portalOptions(interactive bool, opts Options) map[string]dbus.Variant {
	cursorMode := "hidden"
	if opts.IncludeCursor {
		cursorMode = "embedded"
	}
	return map[string]dbus.Variant{
		"interactive":  dbus.MakeVariant(interactive),
		"handle_token": dbus.MakeVariant(portalHandleToken()),
		"modal":        dbus.MakeVariant(interactive),
		"cursor_mode":  dbus.MakeVariant(cursorMode),
	}
}

// responseFile extracts the local path from a Response(u, a{sv}) body.
func responseFile(body []interface{}) (string, error) {
	if len(body) < 2 {
		return "", errors.New("portal screenshot: malformed response")
	}
	if code, ok := body[0].(uint32); ok && code != 0 {
		return "", fmt.Errorf("portal screenshot: request ended with code %d", code)
	}
	res, ok := body[1].(map[string]dbus.Variant)
	if !ok {
		return "", errors.New("portal screenshot: malformed results")
	}
	v, ok := res["uri"]
	if !ok {
		return "", errors.New("portal screenshot: response missing image data")
	}
	uri, _ := v.Value().(string)
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "file" {
		return "", fmt.Errorf("portal screenshot: unexpected uri %q", uri)
	}
	return u.Path, nil
}

// loadCapture decodes the portal's file and removes it.
func loadCapture(path string) (*image.RGBA, error) {
	defer func() {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "remove %s: %v\n", path, err)
		}
	}()
	img, err := imageio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("portal screenshot image: %w", err)
	}
	rgba := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return rgba, nil
}

//go:build linux

package platform

import (
	"github.com/godbus/dbus/v5"
)

// Notify sends a notification over the session bus following the
// freedesktop.org notification interface.
func Notify(title, body string, opts Options) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return err
	}
	defer conn.Close()

	obj := conn.Object("org.freedesktop.Notifications", "/org/freedesktop/Notifications")
	call := obj.Call("org.freedesktop.Notifications.Notify", 0,
		AppName, uint32(0), opts.IconPath, title, body, []string{}, map[string]dbus.Variant{},
		int32(opts.timeout().Milliseconds()))
	return call.Err
}

// Package platform delivers desktop notifications through the host's
// notification service.
package platform

import "time"

// AppName identifies the sender to the notification service.
const AppName = "retouch"

// Options configures how a notification is displayed.
type Options struct {
	// IconPath, when non-empty, points to an image shown with the
	// notification where the platform supports it.
	IconPath string
	// Timeout is how long the notification stays visible. Zero selects
	// DefaultTimeout.
	Timeout time.Duration
}

// DefaultTimeout is used when Options.Timeout is zero.
const DefaultTimeout = 5 * time.Second

func (o Options) timeout() time.Duration {
	if o.Timeout <= 0 {
		return DefaultTimeout
	}
	return o.Timeout
}

// Package platform delivers desktop notifications through the native
// notification service of each operating system.
package platform

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath, when non-empty, points to an image file the notification center
	// should display with the notification if supported by the platform.
	IconPath string
	// Timeout is how long the notification stays visible, in milliseconds.
	// Zero uses DefaultTimeout.
	Timeout int32
}

// DefaultTimeout applies when Options.Timeout is zero.
const DefaultTimeout int32 = 5000

func (o Options) timeout() int32 {
	if o.Timeout > 0 {
		return o.Timeout
	}
	return DefaultTimeout
}

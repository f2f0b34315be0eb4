package platform

import "time"

// DefaultAppName is reported to the notification service when Options
// leaves AppName empty.
const DefaultAppName = "VectorEdit"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	AppName string
	// IconPath, when non-empty, points to an image file the notification
	// center should show next to the message if supported.
	IconPath string
	// Timeout is how long the notification stays up. Zero uses five seconds.
	Timeout time.Duration
}

func (o Options) appName() string {
	if o.AppName == "" {
		return DefaultAppName
	}
	return o.AppName
}

func (o Options) timeout() time.Duration {
	if o.Timeout <= 0 {
		return 5 * time.Second
	}
	return o.Timeout
}

// Package notify sends desktop notifications about the listening session.
package notify

// AppName is the application name reported to the notification server.
const AppName = "genwaves"

// Urgency is the freedesktop urgency level.
type Urgency byte

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

// Freedesktop category hints.
const (
	CategoryTrack = "x-genwaves.track"
	CategoryError = "x-genwaves.error"
)

// Notification is one desktop bubble.
type Notification struct {
	Summary    string
	Body       string
	Icon       string // icon name or image path
	Category   string
	Timeout    int32  // ms; -1 leaves it to the server, 0 never expires
	ReplacesID uint32 // 0 opens a new bubble
	Urgency    Urgency
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify shows n and returns its server ID. A notifier without a
	// server returns 0 and no error.
	Notify(n Notification) (uint32, error)
	Close(id uint32) error
}

// nopNotifier drops every notification.
type nopNotifier struct{}

func (nopNotifier) Notify(Notification) (uint32, error) { return 0, nil }

func (nopNotifier) Close(uint32) error { return nil }

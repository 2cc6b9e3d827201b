package notify

import (
	"fmt"
	"sync"

	"github.com/llehouerou/genwaves/internal/errmsg"
	"github.com/llehouerou/genwaves/internal/playlist"
)

const (
	trackTimeout   = 4000
	failureTimeout = 8000
)

// Announcer turns player events into desktop notifications. Each kind
// replaces its previous bubble instead of stacking.
type Announcer struct {
	notifier Notifier
	enabled  bool

	mu        sync.Mutex
	trackID   uint32
	failureID uint32
}

// NewAnnouncer wraps n. A disabled announcer sends nothing.
func NewAnnouncer(n Notifier, enabled bool) *Announcer {
	return &Announcer{notifier: n, enabled: enabled && n != nil}
}

// TrackStarted announces the track now playing. A nil track is ignored.
func (a *Announcer) TrackStarted(t *playlist.Track, index, total int) error {
	if !a.enabled || t == nil {
		return nil
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	id, err := a.notifier.Notify(Notification{
		Summary:    t.Title(),
		Body:       fmt.Sprintf("Track %d of %d · %s", index+1, total, formatLength(t)),
		Icon:       "audio-x-generic",
		Category:   CategoryTrack,
		Timeout:    trackTimeout,
		ReplacesID: a.trackID,
		Urgency:    UrgencyLow,
	})
	if err != nil {
		return err
	}
	a.trackID = id
	return nil
}

// Failed announces a failed operation.
func (a *Announcer) Failed(op errmsg.Op, err error) error {
	if !a.enabled || err == nil {
		return nil
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	id, nerr := a.notifier.Notify(Notification{
		Summary:    AppName,
		Body:       errmsg.Format(op, err),
		Icon:       "dialog-error",
		Category:   CategoryError,
		Timeout:    failureTimeout,
		ReplacesID: a.failureID,
		Urgency:    UrgencyNormal,
	})
	if nerr != nil {
		return nerr
	}
	a.failureID = id
	return nil
}

func formatLength(t *playlist.Track) string {
	secs := int(t.Length.Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

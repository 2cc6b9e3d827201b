package playback

import (
	"sync/atomic"
	"time"
)

const eventBufferSize = 16

// Subscription provides event channels for a subscriber.
type Subscription struct {
	StateChanged    <-chan StateChange
	TrackChanged    <-chan TrackChange
	PositionChanged <-chan PositionChange
	PlaylistChanged <-chan PlaylistChange
	LoadingChanged  <-chan LoadingChange
	ModeChanged     <-chan ModeChange
	Error           <-chan ErrorEvent
	Done            <-chan struct{}

	// Internal write channels
	stateCh    chan StateChange
	trackCh    chan TrackChange
	positionCh chan PositionChange
	playlistCh chan PlaylistChange
	loadingCh  chan LoadingChange
	modeCh     chan ModeChange
	errorCh    chan ErrorEvent
	doneCh     chan struct{}

	dropped atomic.Uint64
}

// newSubscription creates a new subscription with buffered channels.
func newSubscription() *Subscription {
	s := &Subscription{
		stateCh:    make(chan StateChange, eventBufferSize),
		trackCh:    make(chan TrackChange, eventBufferSize),
		positionCh: make(chan PositionChange, eventBufferSize),
		playlistCh: make(chan PlaylistChange, eventBufferSize),
		loadingCh:  make(chan LoadingChange, eventBufferSize),
		modeCh:     make(chan ModeChange, eventBufferSize),
		errorCh:    make(chan ErrorEvent, eventBufferSize),
		doneCh:     make(chan struct{}),
	}
	s.StateChanged = s.stateCh
	s.TrackChanged = s.trackCh
	s.PositionChanged = s.positionCh
	s.PlaylistChanged = s.playlistCh
	s.LoadingChanged = s.loadingCh
	s.ModeChanged = s.modeCh
	s.Error = s.errorCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
}

// offer delivers v unless ch is full. A slow subscriber loses events
// rather than stalling the service; the loss is counted.
func offer[T any](s *Subscription, ch chan T, v T) {
	select {
	case ch <- v:
	default:
		s.dropped.Add(1)
	}
}

// Dropped returns how many events were discarded because a channel was full.
func (s *Subscription) Dropped() uint64 {
	return s.dropped.Load()
}

func (s *Subscription) sendState(e StateChange) { offer(s, s.stateCh, e) }

func (s *Subscription) sendTrack(e TrackChange) { offer(s, s.trackCh, e) }

func (s *Subscription) sendPosition(pos time.Duration) {
	offer(s, s.positionCh, PositionChange{Position: pos})
}

func (s *Subscription) sendPlaylist(e PlaylistChange) { offer(s, s.playlistCh, e) }

func (s *Subscription) sendLoading(e LoadingChange) { offer(s, s.loadingCh, e) }

func (s *Subscription) sendMode(e ModeChange) { offer(s, s.modeCh, e) }

func (s *Subscription) sendError(e ErrorEvent) { offer(s, s.errorCh, e) }

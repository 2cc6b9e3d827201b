package playback

import (
	"fmt"
	"sync"
	"time"

	"github.com/llehouerou/genwaves/internal/params"
	"github.com/llehouerou/genwaves/internal/player"
	"github.com/llehouerou/genwaves/internal/playlist"
)

// Verify serviceImpl implements Service at compile time.
var _ Service = (*serviceImpl)(nil)

type serviceImpl struct {
	mu sync.RWMutex

	player    player.Interface
	queue     *playlist.PlayingQueue
	persister Persister

	loading   bool
	lastTitle string // title of the last started track

	subs   []*Subscription
	subsMu sync.RWMutex

	done   chan struct{}
	closed bool
}

// New creates a playback service and starts watching p for finished tracks.
// persister may be nil.
func New(p player.Interface, q *playlist.PlayingQueue, persister Persister) Service {
	s := &serviceImpl{
		player:    p,
		queue:     q,
		persister: persister,
		done:      make(chan struct{}),
	}
	go s.watchFinished()
	return s
}

func (s *serviceImpl) watchFinished() {
	finished := s.player.FinishedChan()
	for {
		select {
		case <-s.done:
			return
		case <-finished:
			s.handleTrackFinished()
		}
	}
}

func (s *serviceImpl) handleTrackFinished() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	// Stale signal after Unload.
	if s.queue.Current() == nil {
		return
	}

	prevIndex := s.queue.CurrentIndex()
	if s.queue.Advance() == nil {
		// End of playlist: keep the last track current so Play restarts it.
		prev := s.stateLocked()
		s.player.Stop()
		s.notifyStateLocked(prev)
		return
	}
	_ = s.startLocked(prevIndex)
}

// --- playback control ---

func (s *serviceImpl) Play() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.queue.IsEmpty() {
		return nil
	}
	switch s.stateLocked() {
	case StatePlaying:
		return nil
	case StatePaused:
		s.player.Resume()
		s.notifyStateLocked(StatePaused)
		return nil
	case StateStopped:
	}

	prevIndex := s.queue.CurrentIndex()
	if s.queue.Current() == nil {
		s.queue.JumpTo(0)
	}
	return s.startLocked(prevIndex)
}

func (s *serviceImpl) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.queue.IsEmpty() || s.stateLocked() != StatePlaying {
		return nil
	}
	s.player.Pause()
	s.notifyStateLocked(StatePlaying)
	return nil
}

func (s *serviceImpl) Toggle() error {
	s.mu.Lock()
	if s.queue.IsEmpty() {
		s.mu.Unlock()
		return nil
	}
	playing := s.stateLocked() == StatePlaying
	s.mu.Unlock()

	if playing {
		return s.Pause()
	}
	return s.Play()
}

func (s *serviceImpl) PlayTrack(title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.queue.IndexOf(title)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrTrackNotFound, title)
	}
	prevIndex := s.queue.CurrentIndex()
	s.queue.JumpTo(idx)
	return s.startLocked(prevIndex)
}

func (s *serviceImpl) PlayNext() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prevIndex := s.queue.CurrentIndex()
	if s.queue.Next() == nil {
		return nil
	}
	return s.startLocked(prevIndex)
}

func (s *serviceImpl) PlayPrevious() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prevIndex := s.queue.CurrentIndex()
	if s.queue.Previous() == nil {
		return nil
	}
	return s.startLocked(prevIndex)
}

// startLocked plays the queue's current track from the beginning.
func (s *serviceImpl) startLocked(prevIndex int) error {
	track := s.queue.Current()
	if track == nil {
		return nil
	}
	prevState := s.stateLocked()
	prevTrack := s.trackAtLocked(prevIndex)

	if err := s.player.Play(track.Audio); err != nil {
		err = fmt.Errorf("play %q: %w", track.Title(), err)
		s.notifyErrorLocked(ErrorEvent{Operation: "play", Title: track.Title(), Err: err})
		s.notifyStateLocked(prevState)
		return err
	}

	s.notifyStateLocked(prevState)
	if track.Title() != s.lastTitle {
		s.lastTitle = track.Title()
		cur := *track
		s.notifyTrackLocked(TrackChange{
			Previous:      prevTrack,
			Current:       &cur,
			PreviousIndex: prevIndex,
			Index:         s.queue.CurrentIndex(),
		})
	}
	return nil
}

func (s *serviceImpl) SeekTo(position time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seekLocked(position)
	return nil
}

func (s *serviceImpl) SeekRelative(delta time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seekLocked(s.player.Position() + delta)
	return nil
}

func (s *serviceImpl) seekLocked(position time.Duration) {
	if s.queue.Current() == nil {
		return
	}
	position = max(0, min(position, s.player.Duration()))
	s.player.SeekTo(position)
	s.notifyPositionLocked(position)
}

func (s *serviceImpl) Unload() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unloadLocked()
	return nil
}

// unloadLocked stops audio and clears the current track.
func (s *serviceImpl) unloadLocked() {
	prevState := s.stateLocked()
	prevIndex := s.queue.CurrentIndex()
	prevTrack := s.trackAtLocked(prevIndex)

	s.player.Stop()
	s.queue.ClearCurrent()
	s.lastTitle = ""

	s.notifyStateLocked(prevState)
	if prevTrack != nil {
		s.notifyTrackLocked(TrackChange{
			Previous:      prevTrack,
			PreviousIndex: prevIndex,
			Index:         -1,
		})
	}
}

// --- output control ---

func (s *serviceImpl) SetVolume(level float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.player.SetVolume(max(0, min(level, 1)))
	s.notifyModeLocked()
}

func (s *serviceImpl) Volume() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.player.Volume()
}

func (s *serviceImpl) SetMuted(muted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.player.Muted() == muted {
		return
	}
	s.player.SetMuted(muted)
	s.notifyModeLocked()
}

func (s *serviceImpl) ToggleMute() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.player.SetMuted(!s.player.Muted())
	s.notifyModeLocked()
	return s.player.Muted()
}

func (s *serviceImpl) Muted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.player.Muted()
}

// --- playlist mutations ---

func (s *serviceImpl) AddTrack(track playlist.Track) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue.Add(track)
	s.playlistChangedLocked()
}

func (s *serviceImpl) DeleteTrack(title string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.queue.IndexOf(title)
	if idx < 0 {
		return false
	}
	if idx == s.queue.CurrentIndex() {
		s.unloadLocked()
	}
	s.queue.RemoveAt(idx)
	s.playlistChangedLocked()
	return true
}

func (s *serviceImpl) MoveTrack(from, to int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.queue.Move(from, to) {
		return false
	}
	s.playlistChangedLocked()
	return true
}

func (s *serviceImpl) ReplacePlaylist(tracks []playlist.Track) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.queue.Current() != nil {
		s.unloadLocked()
	}
	s.queue.Replace(tracks...)
	s.playlistChangedLocked()
}

// playlistChangedLocked persists the playlist and notifies subscribers.
func (s *serviceImpl) playlistChangedLocked() {
	if s.persister != nil {
		s.persister.Persist(s.queue.Params())
	}
	e := PlaylistChange{Tracks: s.queue.Tracks(), Index: s.queue.CurrentIndex()}
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendPlaylist(e)
	}
}

func (s *serviceImpl) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading == loading {
		return
	}
	s.loading = loading
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendLoading(LoadingChange{Loading: loading})
	}
}

func (s *serviceImpl) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// --- queries ---

// State returns the current playback state.
func (s *serviceImpl) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stateLocked()
}

func (s *serviceImpl) stateLocked() State {
	return stateOf(s.player.State())
}

func (s *serviceImpl) IsPlaying() bool {
	return s.State() == StatePlaying
}

// Position returns the current playback position.
func (s *serviceImpl) Position() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.player.Position()
}

// Duration returns the current track duration.
func (s *serviceImpl) Duration() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.player.Duration()
}

// CurrentTrack returns a copy of the current track, or nil if none.
func (s *serviceImpl) CurrentTrack() *playlist.Track {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.trackAtLocked(s.queue.CurrentIndex())
}

func (s *serviceImpl) trackAtLocked(index int) *playlist.Track {
	if index < 0 || index >= s.queue.Len() {
		return nil
	}
	t := s.queue.Tracks()[index]
	return &t
}

func (s *serviceImpl) CurrentIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.CurrentIndex()
}

func (s *serviceImpl) Player() player.Interface {
	return s.player
}

func (s *serviceImpl) Tracks() []playlist.Track {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.Tracks()
}

func (s *serviceImpl) Params() []params.OutputParams {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.Params()
}

func (s *serviceImpl) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.Len()
}

func (s *serviceImpl) IsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.IsEmpty()
}

// --- modes ---

// RepeatMode returns the current repeat mode.
func (s *serviceImpl) RepeatMode() RepeatMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.RepeatMode()
}

func (s *serviceImpl) SetRepeatMode(mode RepeatMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.queue.RepeatMode() == mode {
		return
	}
	s.queue.SetRepeatMode(mode)
	s.notifyModeLocked()
}

func (s *serviceImpl) CycleRepeatMode() RepeatMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	mode := s.queue.CycleRepeatMode()
	s.notifyModeLocked()
	return mode
}

// --- subscriptions ---

// Subscribe creates a new event subscription.
func (s *serviceImpl) Subscribe() *Subscription {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	sub := newSubscription()
	s.subs = append(s.subs, sub)
	return sub
}

// notifyStateLocked emits a StateChange if the state moved away from prev.
func (s *serviceImpl) notifyStateLocked(prev State) {
	cur := s.stateLocked()
	if cur == prev {
		return
	}
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendState(StateChange{Previous: prev, Current: cur})
	}
}

func (s *serviceImpl) notifyTrackLocked(e TrackChange) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendTrack(e)
	}
}

func (s *serviceImpl) notifyPositionLocked(pos time.Duration) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendPosition(pos)
	}
}

func (s *serviceImpl) notifyModeLocked() {
	e := ModeChange{
		RepeatMode: s.queue.RepeatMode(),
		Volume:     s.player.Volume(),
		Muted:      s.player.Muted(),
	}
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendMode(e)
	}
}

func (s *serviceImpl) notifyErrorLocked(e ErrorEvent) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendError(e)
	}
}

// Close stops audio and shuts down the service.
func (s *serviceImpl) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.done)
	s.player.Stop()
	s.mu.Unlock()

	s.subsMu.Lock()
	for _, sub := range s.subs {
		sub.close()
	}
	s.subs = nil
	s.subsMu.Unlock()

	return nil
}

// Package playback owns the listening session: the playlist, the current
// track, transport state and the observers that render them.
package playback

import (
	"errors"
	"time"

	"github.com/llehouerou/genwaves/internal/params"
	"github.com/llehouerou/genwaves/internal/player"
	"github.com/llehouerou/genwaves/internal/playlist"
)

// ErrTrackNotFound is returned when a title is not in the playlist.
var ErrTrackNotFound = errors.New("track not found")

// Persister receives the full playlist after every playlist mutation.
type Persister interface {
	Persist(list []params.OutputParams)
}

// PersistFunc adapts a function to Persister.
type PersistFunc func(list []params.OutputParams)

// Persist calls f(list).
func (f PersistFunc) Persist(list []params.OutputParams) { f(list) }

// Service defines the playback service contract.
//
// With an empty playlist the transport and seek operations are no-ops.
type Service interface {
	// Playback control
	Play() error
	Pause() error
	Toggle() error
	PlayTrack(title string) error
	PlayNext() error
	PlayPrevious() error
	SeekTo(position time.Duration) error
	SeekRelative(delta time.Duration) error
	Unload() error

	// Output control
	SetVolume(level float64)
	Volume() float64
	SetMuted(muted bool)
	ToggleMute() bool
	Muted() bool

	// Playlist mutations (persisted)
	AddTrack(track playlist.Track)
	DeleteTrack(title string) bool
	MoveTrack(from, to int) bool
	ReplacePlaylist(tracks []playlist.Track)

	// Generation indicator
	SetLoading(loading bool)
	Loading() bool

	// State queries
	State() State
	IsPlaying() bool
	Position() time.Duration
	Duration() time.Duration
	CurrentTrack() *playlist.Track
	CurrentIndex() int
	Player() player.Interface

	// Playlist queries
	Tracks() []playlist.Track
	Params() []params.OutputParams
	Len() int
	IsEmpty() bool

	// Mode control
	RepeatMode() RepeatMode
	SetRepeatMode(mode RepeatMode)
	CycleRepeatMode() RepeatMode

	// Event subscription
	Subscribe() *Subscription

	// Lifecycle
	Close() error
}

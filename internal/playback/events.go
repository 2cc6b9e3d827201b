package playback

import (
	"time"

	"github.com/llehouerou/genwaves/internal/playlist"
)

// StateChange is emitted when playback state changes.
type StateChange struct {
	Previous State
	Current  State
}

// TrackChange is emitted when the current track changes.
//
// Emitted by:
//   - Play/PlayTrack/PlayNext/PlayPrevious: when the started track differs
//     from the last one started
//   - the finish watcher: when a track ends and the queue advances
//   - Unload/DeleteTrack/ReplacePlaylist: with a nil Current when the current
//     track is cleared
//
// RepeatOne replays do not emit.
type TrackChange struct {
	Previous      *playlist.Track
	Current       *playlist.Track
	PreviousIndex int
	Index         int
}

// PlaylistChange is emitted after every playlist mutation.
type PlaylistChange struct {
	Tracks []playlist.Track
	Index  int
}

// LoadingChange is emitted when a track generation starts or ends.
type LoadingChange struct {
	Loading bool
}

// ModeChange is emitted when repeat mode, volume or mute change.
type ModeChange struct {
	RepeatMode RepeatMode
	Volume     float64
	Muted      bool
}

// PositionChange is emitted when a seek occurs.
type PositionChange struct {
	Position time.Duration
}

// ErrorEvent is emitted when an error occurs during playback.
type ErrorEvent struct {
	Operation string // e.g., "play", "seek"
	Title     string // track title if applicable
	Err       error
}

package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/genwaves/internal/errmsg"
	"github.com/llehouerou/genwaves/internal/generate"
	"github.com/llehouerou/genwaves/internal/playback"
	"github.com/llehouerou/genwaves/internal/playlist"
)

// Message category interfaces for type-based routing in Update().

// PlaybackMessage is implemented by messages about the playback service.
type PlaybackMessage interface {
	tea.Msg
	playbackMessage()
}

// GenerationMessage is implemented by messages about the generate pipeline.
type GenerationMessage interface {
	tea.Msg
	generationMessage()
}

// TickMsg is sent periodically while playing to advance the seek bar.
type TickMsg time.Time

func (TickMsg) playbackMessage() {}

// ServiceStateChangedMsg is sent when the playback state changes.
type ServiceStateChangedMsg struct {
	Previous, Current playback.State
}

func (ServiceStateChangedMsg) playbackMessage() {}

// ServiceTrackChangedMsg is sent when the current track changes.
type ServiceTrackChangedMsg struct {
	Current      *playlist.Track
	CurrentIndex int
}

func (ServiceTrackChangedMsg) playbackMessage() {}

// ServicePlaylistChangedMsg carries the playlist after a mutation.
type ServicePlaylistChangedMsg struct {
	Tracks       []playlist.Track
	CurrentIndex int
}

func (ServicePlaylistChangedMsg) playbackMessage() {}

// ServicePositionChangedMsg is sent when a seek operation occurs.
type ServicePositionChangedMsg struct {
	Position time.Duration
}

func (ServicePositionChangedMsg) playbackMessage() {}

// ServiceModeChangedMsg is sent when repeat, volume or mute change.
type ServiceModeChangedMsg struct {
	Repeat playback.RepeatMode
	Volume float64
	Muted  bool
}

func (ServiceModeChangedMsg) playbackMessage() {}

// ServiceErrorMsg is sent when an error occurs in the playback service.
type ServiceErrorMsg struct {
	Operation string
	Title     string
	Err       error
}

func (ServiceErrorMsg) playbackMessage() {}

// ServiceClosedMsg is sent when the playback service is closed.
type ServiceClosedMsg struct{}

func (ServiceClosedMsg) playbackMessage() {}

// ServiceLoadingChangedMsg is sent when a generation starts or ends.
type ServiceLoadingChangedMsg struct {
	Loading bool
}

func (ServiceLoadingChangedMsg) generationMessage() {}

// GenerationDoneMsg delivers the outcome of an asynchronous generation.
type GenerationDoneMsg struct {
	Op     errmsg.Op
	Result generate.Result
}

func (GenerationDoneMsg) generationMessage() {}

// StatusClearMsg clears the status line if it still shows message ID.
type StatusClearMsg struct {
	ID int
}

// StatusDuration is how long status messages are displayed.
const StatusDuration = 4 * time.Second

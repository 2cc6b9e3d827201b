package playlist

import "github.com/llehouerou/genwaves/internal/params"

// RepeatMode defines what happens when the current track finishes.
type RepeatMode int

const (
	RepeatOff RepeatMode = iota
	RepeatAll
	RepeatOne
)

// String returns the repeat mode name.
func (m RepeatMode) String() string {
	switch m {
	case RepeatOff:
		return "Off"
	case RepeatAll:
		return "All"
	case RepeatOne:
		return "One"
	default:
		return "Unknown"
	}
}

// ParseRepeatMode parses "off", "all" or "one". Unknown values yield RepeatOff.
func ParseRepeatMode(s string) RepeatMode {
	switch s {
	case "all", "All":
		return RepeatAll
	case "one", "One":
		return RepeatOne
	default:
		return RepeatOff
	}
}

// PlayingQueue wraps a Playlist with the current-track cursor.
type PlayingQueue struct {
	playlist     *Playlist
	currentIndex int // -1 if no current track
	repeat       RepeatMode
}

// NewQueue creates a new empty playing queue.
func NewQueue() *PlayingQueue {
	return &PlayingQueue{
		playlist:     NewPlaylist(),
		currentIndex: -1,
	}
}

// Current returns the current track, or nil if none.
func (q *PlayingQueue) Current() *Track {
	if q.currentIndex < 0 || q.currentIndex >= q.playlist.Len() {
		return nil
	}
	return q.playlist.Track(q.currentIndex)
}

// CurrentIndex returns the index of the current track (-1 if none).
func (q *PlayingQueue) CurrentIndex() int {
	return q.currentIndex
}

// IndexOf returns the index of the track with the given title, or -1.
func (q *PlayingQueue) IndexOf(title string) int {
	return q.playlist.IndexOf(title)
}

// RepeatMode returns the current repeat mode.
func (q *PlayingQueue) RepeatMode() RepeatMode {
	return q.repeat
}

// SetRepeatMode sets the repeat mode.
func (q *PlayingQueue) SetRepeatMode(mode RepeatMode) {
	q.repeat = mode
}

// CycleRepeatMode advances Off -> All -> One -> Off and returns the new mode.
func (q *PlayingQueue) CycleRepeatMode() RepeatMode {
	q.repeat = (q.repeat + 1) % 3
	return q.repeat
}

// Next moves to the next track and returns it. With RepeatAll the queue wraps.
// Returns nil if there is no next track.
func (q *PlayingQueue) Next() *Track {
	if q.playlist.Len() == 0 {
		return nil
	}
	if !q.HasNext() {
		if q.repeat != RepeatAll {
			return nil
		}
		q.currentIndex = 0
		return q.Current()
	}
	q.currentIndex++
	return q.Current()
}

// Previous moves to the previous track and returns it. With RepeatAll the
// queue wraps. Returns nil if there is no previous track.
func (q *PlayingQueue) Previous() *Track {
	if q.playlist.Len() == 0 {
		return nil
	}
	if !q.HasPrevious() {
		if q.repeat != RepeatAll {
			return nil
		}
		q.currentIndex = q.playlist.Len() - 1
		return q.Current()
	}
	q.currentIndex--
	return q.Current()
}

// Advance picks the track to play after the current one finished naturally.
// RepeatOne keeps the current track.
func (q *PlayingQueue) Advance() *Track {
	if q.repeat == RepeatOne {
		return q.Current()
	}
	return q.Next()
}

// HasNext returns true if there's a track after the current one.
func (q *PlayingQueue) HasNext() bool {
	return q.currentIndex < q.playlist.Len()-1
}

// HasPrevious returns true if there's a track before the current one.
func (q *PlayingQueue) HasPrevious() bool {
	return q.currentIndex > 0
}

// JumpTo sets the current index to the specified position.
// Returns the track at that position, or nil if invalid.
func (q *PlayingQueue) JumpTo(index int) *Track {
	if index < 0 || index >= q.playlist.Len() {
		return nil
	}
	q.currentIndex = index
	return q.Current()
}

// ClearCurrent unsets the current track without touching the playlist.
func (q *PlayingQueue) ClearCurrent() {
	q.currentIndex = -1
}

// Add appends tracks without changing the current track.
// Replacing an existing title keeps the cursor on the same track.
func (q *PlayingQueue) Add(tracks ...Track) {
	for _, t := range tracks {
		current := q.Current()
		var currentTitle string
		if current != nil {
			currentTitle = current.Title()
		}
		q.playlist.Add(t)
		if current != nil {
			q.currentIndex = q.playlist.IndexOf(currentTitle)
		}
	}
}

// Replace clears the queue and adds tracks. No track becomes current.
func (q *PlayingQueue) Replace(tracks ...Track) {
	q.playlist.Clear()
	q.currentIndex = -1
	q.playlist.Add(tracks...)
}

// RemoveAt removes the track at the given index.
// Removing the current track leaves no current track.
func (q *PlayingQueue) RemoveAt(index int) bool {
	if !q.playlist.Remove(index) {
		return false
	}

	switch {
	case q.currentIndex > index:
		q.currentIndex--
	case q.currentIndex == index:
		q.currentIndex = -1
	}

	return true
}

// Move moves a track; the current index follows the current track.
func (q *PlayingQueue) Move(fromIndex, toIndex int) bool {
	current := q.currentIndex
	if !q.playlist.Move(fromIndex, toIndex) {
		return false
	}
	switch {
	case current == fromIndex:
		q.currentIndex = toIndex
	case fromIndex < current && toIndex >= current:
		q.currentIndex--
	case fromIndex > current && toIndex <= current:
		q.currentIndex++
	}
	return true
}

// Clear removes all tracks and resets the cursor.
func (q *PlayingQueue) Clear() {
	q.playlist.Clear()
	q.currentIndex = -1
}

// Tracks returns all tracks in the queue.
func (q *PlayingQueue) Tracks() []Track {
	return q.playlist.Tracks()
}

// Params returns the OutputParams of all tracks in order.
func (q *PlayingQueue) Params() []params.OutputParams {
	return q.playlist.Params()
}

// Len returns the number of tracks in the queue.
func (q *PlayingQueue) Len() int {
	return q.playlist.Len()
}

// IsEmpty returns true if the queue has no tracks.
func (q *PlayingQueue) IsEmpty() bool {
	return q.playlist.Len() == 0
}

// Package tracklist renders the playlist as a scrollable column of tiles and
// tracks the cursor over it.
package tracklist

import (
	"github.com/llehouerou/genwaves/internal/playlist"
)

// TileHeight is the number of rows a track tile occupies.
const TileHeight = 3

// Model represents the track list state.
type Model struct {
	tracks  []playlist.Track
	current int
	cursor  int
	offset  int
	width   int
	height  int
	pending string
}

// New creates an empty track list.
func New() Model {
	return Model{current: -1}
}

// SetTracks replaces the displayed tracks. The cursor is clamped to the new
// length.
func (m *Model) SetTracks(tracks []playlist.Track, current int) {
	m.tracks = tracks
	m.current = current
	m.clamp()
}

// SetCurrent marks the playing track.
func (m *Model) SetCurrent(current int) {
	m.current = current
}

// SetPending shows an extra placeholder tile with the given text after the
// last track. An empty string hides it.
func (m *Model) SetPending(text string) {
	m.pending = text
}

// SetSize sets the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.ensureVisible()
}

// Len returns the number of tracks.
func (m Model) Len() int {
	return len(m.tracks)
}

// Cursor returns the cursor index.
func (m Model) Cursor() int {
	return m.cursor
}

// Offset returns the index of the first visible tile.
func (m Model) Offset() int {
	return m.offset
}

// Selected returns the track under the cursor, or nil when empty.
func (m Model) Selected() *playlist.Track {
	if m.cursor < 0 || m.cursor >= len(m.tracks) {
		return nil
	}
	t := m.tracks[m.cursor]
	return &t
}

// MoveCursor moves the cursor by delta, clamped to the list.
func (m *Model) MoveCursor(delta int) {
	m.JumpTo(m.cursor + delta)
}

// JumpTo moves the cursor to index, clamped to the list.
func (m *Model) JumpTo(index int) {
	m.cursor = index
	m.clamp()
}

// TileAt returns the track index rendered at the given row of the list,
// or false when the row is past the last track.
func (m Model) TileAt(row int) (int, bool) {
	if row < 0 || row >= m.height {
		return 0, false
	}
	idx := m.offset + row/TileHeight
	if idx >= len(m.tracks) {
		return 0, false
	}
	return idx, true
}

func (m Model) visibleTiles() int {
	return max(m.height/TileHeight, 1)
}

func (m *Model) clamp() {
	m.cursor = min(max(m.cursor, 0), max(len(m.tracks)-1, 0))
	m.ensureVisible()
}

func (m *Model) ensureVisible() {
	visible := m.visibleTiles()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
	// the pending tile counts as one more row of content
	total := len(m.tracks)
	if m.pending != "" {
		total++
	}
	m.offset = min(max(m.offset, 0), max(total-visible, 0))
}

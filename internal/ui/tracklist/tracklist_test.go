package tracklist

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/genwaves/internal/params"
	"github.com/llehouerou/genwaves/internal/playlist"
)

func tracks(titles ...string) []playlist.Track {
	out := make([]playlist.Track, len(titles))
	for i, title := range titles {
		out[i] = playlist.Track{
			Params:   params.OutputParams{Title: title},
			Gradient: [2]colorful.Color{{R: 1}, {B: 1}},
			Length:   90 * time.Second,
		}
	}
	return out
}

func TestModel_CursorClamps(t *testing.T) {
	m := New()
	m.SetSize(40, 3*TileHeight)
	m.SetTracks(tracks("a", "b", "c"), -1)

	m.MoveCursor(-1)
	assert.Equal(t, 0, m.Cursor())

	m.MoveCursor(10)
	assert.Equal(t, 2, m.Cursor())
	require.NotNil(t, m.Selected())
	assert.Equal(t, "c", m.Selected().Title())

	m.SetTracks(tracks("a"), 0)
	assert.Equal(t, 0, m.Cursor())
}

func TestModel_EmptySelected(t *testing.T) {
	m := New()
	assert.Nil(t, m.Selected())
	m.MoveCursor(1)
	assert.Equal(t, 0, m.Cursor())
}

func TestModel_ScrollsToCursor(t *testing.T) {
	m := New()
	m.SetSize(40, 2*TileHeight)
	m.SetTracks(tracks("a", "b", "c", "d", "e"), -1)

	m.JumpTo(4)
	assert.Equal(t, 3, m.Offset())

	m.JumpTo(1)
	assert.Equal(t, 1, m.Offset())
}

func TestModel_TileAt(t *testing.T) {
	m := New()
	m.SetSize(40, 3*TileHeight)
	m.SetTracks(tracks("a", "b"), -1)

	idx, ok := m.TileAt(0)
	assert.True(t, ok)
	assert.Equal(t, 0, idx)

	idx, ok = m.TileAt(TileHeight + 1)
	assert.True(t, ok)
	assert.Equal(t, 1, idx)

	_, ok = m.TileAt(2 * TileHeight)
	assert.False(t, ok)
	_, ok = m.TileAt(-1)
	assert.False(t, ok)
}

func TestView_Dimensions(t *testing.T) {
	m := New()
	m.SetSize(50, 10)
	m.SetTracks(tracks("#d7c3a1", "#5ea0f2"), 1)

	lines := strings.Split(m.View(), "\n")
	require.Len(t, lines, 10)
	for _, l := range lines {
		assert.LessOrEqual(t, lipgloss.Width(l), 50)
	}
	assert.Contains(t, lines[0], "#d7c3a1")
	assert.Contains(t, lines[0], "1:30")
	assert.Contains(t, lines[TileHeight], playingSymbol)
}

func TestView_EmptyAndPending(t *testing.T) {
	m := New()
	m.SetSize(60, 6)
	assert.Contains(t, m.View(), "Playlist is empty")

	m.SetPending("Generating")
	out := m.View()
	assert.NotContains(t, out, "Playlist is empty")
	assert.Contains(t, out, "Generating")
}

func TestView_ZeroSize(t *testing.T) {
	m := New()
	assert.Empty(t, m.View())
}

package tracklist

import (
	"fmt"
	"strings"
	"time"

	"github.com/llehouerou/genwaves/internal/playlist"
	"github.com/llehouerou/genwaves/internal/ui/render"
	"github.com/llehouerou/genwaves/internal/ui/styles"
)

const (
	playingSymbol = "▶"
	emptyHint     = "Playlist is empty. Press g to generate a track."
)

// View renders the visible tiles, padded to the list height.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	lines := make([]string, 0, m.height)
	if len(m.tracks) == 0 && m.pending == "" {
		lines = append(lines, styles.T().S().Subtle.Render(render.TruncateAndPad(emptyHint, m.width)))
	}

	for idx := m.offset; idx < len(m.tracks) && len(lines) < m.height; idx++ {
		lines = append(lines, m.renderTile(idx)...)
	}
	if m.pending != "" && len(lines) < m.height {
		lines = append(lines, m.renderPending()...)
	}

	for len(lines) < m.height {
		lines = append(lines, render.EmptyLine(m.width))
	}
	return strings.Join(lines[:m.height], "\n")
}

// renderTile returns TileHeight lines:
//
//	▶ #5ea0f2                      1:52
//	  ████████████████████████████████
//	  (blank)
func (m Model) renderTile(idx int) []string {
	t := m.tracks[idx]
	s := styles.T().S()
	blend := styles.Linear(t.Gradient[0], t.Gradient[1])

	prefix := "  "
	if idx == m.current {
		prefix = s.Playing.Render(playingSymbol) + " "
	}
	length := s.Muted.Render(formatLength(t.Length))
	titleWidth := max(m.width-2-len(formatLength(t.Length))-1, 0)
	title := styles.ApplyBoldGradient(render.Truncate(t.Title(), titleWidth), blend)

	header := render.Row(prefix+title, length, m.width)
	if idx == m.cursor {
		header = s.Cursor.Render(header)
	}
	return []string{
		header,
		"  " + styles.Strip(max(m.width-2, 0), blend),
		render.EmptyLine(m.width),
	}
}

func (m Model) renderPending() []string {
	s := styles.T().S()
	return []string{
		"  " + s.Muted.Render(render.Truncate(m.pending, max(m.width-2, 0))),
		render.EmptyLine(m.width),
		render.EmptyLine(m.width),
	}
}

func formatLength(d time.Duration) string {
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

// Tracks returns the displayed tracks.
func (m Model) Tracks() []playlist.Track {
	return m.tracks
}

// Package playerbar renders the transport bar: current title, position,
// seek bar, volume and repeat indicators.
package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/genwaves/internal/playlist"
	"github.com/llehouerou/genwaves/internal/ui/render"
	"github.com/llehouerou/genwaves/internal/ui/styles"
)

const (
	// Height is the rendered height: two content rows plus the border.
	Height = 4

	// SeekRow is the row of the seek bar relative to the top of the player bar.
	SeekRow = 2

	// MinBarWidth is the narrowest seek bar worth drawing.
	MinBarWidth = 5

	// horizontal overhead: border plus one cell of padding on each side
	leftInset  = 2
	hOverhead  = 4
	partGap    = "  "
	noTrackMsg = "No track loaded"
)

// State holds everything needed to render the player bar.
type State struct {
	Title    string
	Gradient styles.BlendFunc // nil renders the title in the base colour
	Index    int              // 0-based position in the playlist, -1 when none
	Total    int

	Playing  bool
	Paused   bool
	Position time.Duration
	Duration time.Duration
	Fill     float64 // seek bar fill, 0..100
	Dragging bool

	Volume float64
	Muted  bool
	Repeat playlist.RepeatMode
}

// Render returns the player bar for the given total width.
func Render(s State, width int) string {
	inner := max(width-hOverhead, 0)
	content := renderInfo(s, inner) + "\n" + renderProgress(s, inner)
	return styles.T().S().Panel.
		Padding(0, 1).
		Width(max(width-2, 0)).
		Render(content)
}

// SeekRegion returns the column where the seek bar starts, relative to the
// left edge of the player bar, and its width. Width 0 means no bar is drawn.
func SeekRegion(s State, width int) (x, w int) {
	prefix, _, barWidth := progressParts(s, max(width-hOverhead, 0))
	return leftInset + lipgloss.Width(prefix), barWidth
}

// FractionAt maps a column of the player bar to a 0..1 position on the seek
// bar. ok is false when the column is outside the bar.
func FractionAt(s State, width, col int) (frac float64, ok bool) {
	x, w := SeekRegion(s, width)
	if w == 0 || col < x || col >= x+w {
		return 0, false
	}
	return Fraction(s, width, col), true
}

// Fraction maps any column to a 0..1 seek bar position, clamping columns
// outside the bar. Used while dragging past the ends.
func Fraction(s State, width, col int) float64 {
	x, w := SeekRegion(s, width)
	if w <= 1 {
		return 0
	}
	return min(max(float64(col-x)/float64(w-1), 0), 1)
}

func renderInfo(s State, inner int) string {
	t := styles.T().S()
	if s.Title == "" {
		return t.Subtle.Render(render.TruncateAndPad(noTrackMsg, inner))
	}

	var right string
	if s.Index >= 0 && s.Total > 0 {
		right = t.Muted.Render(fmt.Sprintf("%d/%d", s.Index+1, s.Total))
	}
	title := render.Truncate(s.Title, max(inner-lipgloss.Width(right)-1, 0))
	if s.Gradient != nil {
		title = styles.ApplyBoldGradient(title, s.Gradient)
	} else {
		title = t.Title.Render(title)
	}
	return render.Row(title, right, inner)
}

func renderProgress(s State, inner int) string {
	prefix, suffix, barWidth := progressParts(s, inner)
	if barWidth == 0 {
		return prefix + suffix
	}
	return prefix + renderBar(s, barWidth) + suffix
}

// progressParts lays out "▶  1:23  [bar]  4:56  vol 80% [R]".
func progressParts(s State, inner int) (prefix, suffix string, barWidth int) {
	prefix = statusSymbol(s) + partGap + formatDuration(s.Position) + partGap
	suffix = partGap + formatDuration(s.Duration) + partGap + indicators(s)
	barWidth = inner - lipgloss.Width(prefix) - lipgloss.Width(suffix)
	if barWidth < MinBarWidth {
		barWidth = 0
	}
	return prefix, suffix, barWidth
}

func renderBar(s State, width int) string {
	filled := min(int(float64(width)*s.Fill/100+0.5), width)
	style := filledStyle
	if s.Dragging {
		style = draggingStyle
	}
	return style.Render(strings.Repeat(filledBlock, filled)) +
		emptyStyle.Render(strings.Repeat(emptyBlock, width-filled))
}

func statusSymbol(s State) string {
	switch {
	case s.Playing:
		return playSymbol
	case s.Paused:
		return pauseSymbol
	default:
		return stopSymbol
	}
}

func formatDuration(d time.Duration) string {
	d = max(d, 0)
	m := int(d.Minutes())
	sec := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", m, sec)
}

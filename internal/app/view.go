package app

import (
	"fmt"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/llehouerou/genwaves/internal/generate"
	"github.com/llehouerou/genwaves/internal/seek"
	"github.com/llehouerou/genwaves/internal/ui/playerbar"
	"github.com/llehouerou/genwaves/internal/ui/render"
	"github.com/llehouerou/genwaves/internal/ui/styles"
)

const appName = "genwaves"

var brandGradient = styles.Linear(
	colorful.Color{R: 0.654, G: 0.545, B: 0.980},
	colorful.Color{R: 0.369, G: 0.627, B: 0.949},
)

// View renders the application UI.
func (m Model) View() string {
	if m.Width == 0 || m.Height == 0 {
		return ""
	}
	view := m.renderHeader()
	if h := m.listHeight(); h > 0 {
		view += "\n" + m.list.View()
	}
	view += "\n" + playerbar.Render(m.playerState(), m.Width)
	view += "\n" + m.renderStatus()
	view += "\n" + m.help.View(m.helpMap)
	return view
}

func (m Model) renderHeader() string {
	s := styles.T().S()
	left := styles.ApplyBoldGradient(appName, brandGradient)
	if n := m.service.Len(); n > 0 {
		left += s.Subtle.Render(fmt.Sprintf("  %d tracks", n))
	}
	return render.Row(left, m.renderButton(), m.Width)
}

// renderButton renders the generate control with its current label.
func (m Model) renderButton() string {
	s := styles.T().S()
	if m.pipeline == nil {
		return ""
	}
	switch m.pipeline.Control() {
	case generate.Busy:
		return s.Busy.Render(m.spinner.View() + " " + m.pipeline.Label())
	case generate.Failed:
		return s.Busy.Foreground(styles.T().Error).Render(m.pipeline.Label())
	default:
		return s.Button.Render(m.pipeline.Label())
	}
}

func (m Model) renderStatus() string {
	s := styles.T().S()
	if m.status == "" {
		return render.EmptyLine(m.Width)
	}
	text := render.TruncateAndPad(m.status, m.Width)
	if m.statusErr {
		return s.Error.Render(text)
	}
	return s.Success.Render(text)
}

// playerState collects the player bar state from the service and seek bar.
func (m Model) playerState() playerbar.State {
	state := playerbar.State{
		Index:    m.service.CurrentIndex(),
		Total:    m.service.Len(),
		Playing:  m.service.IsPlaying(),
		Paused:   m.service.State().IsActive() && !m.service.IsPlaying(),
		Position: seconds(m.seek.Value()),
		Duration: seconds(m.seek.Max()),
		Fill:     m.seek.Fill(),
		Dragging: m.seek.State() == seek.Dragging,
		Volume:   m.service.Volume(),
		Muted:    m.service.Muted(),
		Repeat:   m.service.RepeatMode(),
	}
	if t := m.service.CurrentTrack(); t != nil {
		state.Title = t.Title()
		state.Gradient = styles.Linear(t.Gradient[0], t.Gradient[1])
	}
	return state
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

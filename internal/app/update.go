package app

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/genwaves/internal/errmsg"
	"github.com/llehouerou/genwaves/internal/seek"
	"github.com/llehouerou/genwaves/internal/ui/playerbar"
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case PlaybackMessage:
		return m.handlePlaybackMsg(msg)

	case GenerationMessage:
		return m.handleGenerationMsg(msg)

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.ResizeComponents()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.syncPending()
		return m, cmd

	case StatusClearMsg:
		if msg.ID == m.statusID {
			m.status = ""
			m.statusErr = false
		}
		return m, nil
	}

	return m, nil
}

// handleMouseMsg drives the seek bar, the generate button and tile clicks.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.seek.State() == seek.Dragging {
		return m.handleDragMsg(msg)
	}
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}

	switch msg.Button { //nolint:exhaustive // only wheel and left button are used
	case tea.MouseButtonWheelUp:
		m.list.MoveCursor(-1)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.list.MoveCursor(1)
		return m, nil
	case tea.MouseButtonLeft:
	default:
		return m, nil
	}

	switch {
	case msg.Y == m.playerTop()+playerbar.SeekRow:
		state := m.playerState()
		frac, ok := playerbar.FractionAt(state, m.Width, msg.X)
		if !ok {
			return m, nil
		}
		m.seek.DragStart()
		if m.seek.State() == seek.Dragging {
			m.seek.Input(m.seek.FractionToValue(frac))
		}
		return m, nil

	case msg.Y == 0:
		if x, w := m.buttonRegion(); msg.X >= x && msg.X < x+w {
			return m, m.startGeneration(false)
		}
		return m, nil

	case msg.Y >= listTop && msg.Y < m.playerTop():
		idx, ok := m.list.TileAt(msg.Y - listTop)
		if !ok {
			return m, nil
		}
		if idx == m.list.Cursor() {
			return m, m.playSelected()
		}
		m.list.JumpTo(idx)
	}
	return m, nil
}

// handleDragMsg follows the pointer while the seek thumb is held.
func (m Model) handleDragMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	state := m.playerState()
	switch msg.Action { //nolint:exhaustive // press is ignored during a drag
	case tea.MouseActionMotion:
		m.seek.Input(m.seek.FractionToValue(playerbar.Fraction(state, m.Width, msg.X)))
	case tea.MouseActionRelease:
		m.seek.Input(m.seek.FractionToValue(playerbar.Fraction(state, m.Width, msg.X)))
		if err := m.seek.DragEnd(); err != nil {
			return m, m.setError(errmsg.OpPlaybackSeek, "", err)
		}
		m.syncClock()
	}
	return m, nil
}

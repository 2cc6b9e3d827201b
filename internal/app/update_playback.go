package app

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/genwaves/internal/errmsg"
	"github.com/llehouerou/genwaves/internal/generate"
)

// handlePlaybackMsg routes playback-related messages.
func (m Model) handlePlaybackMsg(msg PlaybackMessage) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		m.syncClock()
		if m.service.IsPlaying() {
			return m, TickCmd()
		}
		m.ticking = false
		return m, nil
	case ServiceStateChangedMsg:
		m.syncClock()
		return m, tea.Batch(m.WatchServiceEvents(), m.startTicking())
	case ServiceTrackChangedMsg:
		return m.handleServiceTrackChanged(msg)
	case ServicePlaylistChangedMsg:
		m.list.SetTracks(msg.Tracks, msg.CurrentIndex)
		return m, m.WatchServiceEvents()
	case ServicePositionChangedMsg, ServiceModeChangedMsg:
		m.syncClock()
		return m, m.WatchServiceEvents()
	case ServiceErrorMsg:
		op := errmsg.OpPlaybackStart
		if msg.Operation == "seek" {
			op = errmsg.OpPlaybackSeek
		}
		return m, tea.Batch(m.WatchServiceEvents(), m.setError(op, msg.Title, msg.Err))
	case ServiceClosedMsg:
		return m, nil
	}
	return m, nil
}

// handleServiceTrackChanged updates the tiles and seek bar and announces the
// new track.
func (m Model) handleServiceTrackChanged(msg ServiceTrackChangedMsg) (tea.Model, tea.Cmd) {
	m.list.SetCurrent(msg.CurrentIndex)
	if msg.Current == nil {
		m.seek.TrackCleared()
		return m, m.WatchServiceEvents()
	}

	m.syncClock()
	if err := m.announcer.TrackStarted(msg.Current, msg.CurrentIndex, m.service.Len()); err != nil {
		m.logger.Debug("track notification failed", "err", err)
	}
	return m, tea.Batch(m.WatchServiceEvents(), m.startTicking())
}

// startTicking starts the clock tick unless one is already scheduled.
func (m *Model) startTicking() tea.Cmd {
	if m.ticking || !m.service.IsPlaying() {
		return nil
	}
	m.ticking = true
	return TickCmd()
}

// handleGenerationMsg routes generate pipeline messages.
func (m Model) handleGenerationMsg(msg GenerationMessage) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ServiceLoadingChangedMsg:
		wasLoading := m.loading
		m.loading = msg.Loading
		m.syncPending()
		cmds := []tea.Cmd{m.WatchServiceEvents()}
		if m.loading && !wasLoading {
			cmds = append(cmds, m.spinner.Tick)
		}
		return m, tea.Batch(cmds...)

	case GenerationDoneMsg:
		err := msg.Result.Err
		switch {
		case err == nil:
			return m, m.setStatus("Added " + msg.Result.Track.Title())
		case errors.Is(err, generate.ErrBusy), errors.Is(err, context.Canceled):
			return m, nil
		default:
			if nerr := m.announcer.Failed(msg.Op, err); nerr != nil {
				m.logger.Debug("failure notification failed", "err", nerr)
			}
			return m, m.setError(msg.Op, "", err)
		}
	}
	return m, nil
}

// setStatus shows an informational message and schedules its removal.
func (m *Model) setStatus(text string) tea.Cmd {
	m.statusID++
	m.status = text
	m.statusErr = false
	return StatusClearCmd(m.statusID)
}

// setError shows a formatted error on the status line.
func (m *Model) setError(op errmsg.Op, subject string, err error) tea.Cmd {
	m.statusID++
	m.status = errmsg.FormatWith(op, subject, err)
	m.statusErr = true
	return StatusClearCmd(m.statusID)
}

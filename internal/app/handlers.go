package app

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/genwaves/internal/errmsg"
	"github.com/llehouerou/genwaves/internal/keymap"
	"github.com/llehouerou/genwaves/internal/playback"
	"github.com/llehouerou/genwaves/internal/playlistsync"
)

// keyResult represents the outcome of a key handler.
type keyResult struct {
	handled bool
	cmd     tea.Cmd
}

var notHandled = keyResult{}

func handled(cmd tea.Cmd) keyResult {
	return keyResult{handled: true, cmd: cmd}
}

// handleKeyMsg resolves the key and runs the first handler that accepts it.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Resolve(msg.String())
	if action == "" {
		return m, nil
	}
	for _, h := range []func(keymap.Action) keyResult{
		m.handleGlobalKeys,
		m.handlePlaybackKeys,
		m.handlePlaylistKeys,
	} {
		if r := h(action); r.handled {
			return m, r.cmd
		}
	}
	return m, nil
}

func (m *Model) handleGlobalKeys(action keymap.Action) keyResult {
	switch action { //nolint:exhaustive // only handling global actions
	case keymap.ActionQuit:
		m.cancel()
		return handled(tea.Quit)
	case keymap.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
		m.ResizeComponents()
		return handled(nil)
	case keymap.ActionGenerate:
		return handled(m.startGeneration(false))
	case keymap.ActionVariant:
		return handled(m.startGeneration(true))
	case keymap.ActionShare:
		return handled(m.copyShareLink())
	}
	return notHandled
}

func (m *Model) handlePlaybackKeys(action keymap.Action) keyResult {
	switch action { //nolint:exhaustive // only handling playback actions
	case keymap.ActionPlayPause:
		if m.service.CurrentTrack() == nil && m.list.Selected() != nil {
			return handled(m.playSelected())
		}
		return handled(m.check(errmsg.OpPlaybackStart, m.service.Toggle()))
	case keymap.ActionNextTrack:
		return handled(m.check(errmsg.OpPlaybackStart, m.service.PlayNext()))
	case keymap.ActionPrevTrack:
		return handled(m.check(errmsg.OpPlaybackStart, m.service.PlayPrevious()))
	case keymap.ActionSeekForward:
		return handled(m.seekBy(m.seekStep))
	case keymap.ActionSeekBack:
		return handled(m.seekBy(-m.seekStep))
	case keymap.ActionCycleRepeat:
		mode := m.service.CycleRepeatMode()
		return handled(m.setStatus("Repeat: " + mode.String()))
	case keymap.ActionVolumeUp:
		m.service.SetVolume(m.service.Volume() + volumeStep)
		return handled(nil)
	case keymap.ActionVolumeDown:
		m.service.SetVolume(m.service.Volume() - volumeStep)
		return handled(nil)
	case keymap.ActionToggleMute:
		m.service.ToggleMute()
		return handled(nil)
	}
	return notHandled
}

func (m *Model) handlePlaylistKeys(action keymap.Action) keyResult {
	switch action { //nolint:exhaustive // only handling playlist actions
	case keymap.ActionMoveUp:
		m.list.MoveCursor(-1)
		return handled(nil)
	case keymap.ActionMoveDown:
		m.list.MoveCursor(1)
		return handled(nil)
	case keymap.ActionSelect:
		return handled(m.playSelected())
	case keymap.ActionDelete:
		sel := m.list.Selected()
		if sel == nil {
			return handled(nil)
		}
		if !m.service.DeleteTrack(sel.Title()) {
			return handled(m.setError(errmsg.OpPlaylistDelete, sel.Title(), playback.ErrTrackNotFound))
		}
		return handled(nil)
	case keymap.ActionMoveItemUp:
		return handled(m.moveSelected(-1))
	case keymap.ActionMoveItemDown:
		return handled(m.moveSelected(1))
	}
	return notHandled
}

// playSelected starts the track under the cursor.
func (m *Model) playSelected() tea.Cmd {
	sel := m.list.Selected()
	if sel == nil {
		return nil
	}
	return m.check(errmsg.OpPlaybackStart, m.service.PlayTrack(sel.Title()))
}

// moveSelected moves the track under the cursor by delta and keeps the
// cursor on it.
func (m *Model) moveSelected(delta int) tea.Cmd {
	from := m.list.Cursor()
	to := from + delta
	sel := m.list.Selected()
	if sel == nil || to < 0 || to >= m.list.Len() {
		return nil
	}
	if !m.service.MoveTrack(from, to) {
		return m.setError(errmsg.OpPlaylistMove, sel.Title(), playback.ErrTrackNotFound)
	}
	m.list.JumpTo(to)
	return nil
}

func (m *Model) seekBy(delta time.Duration) tea.Cmd {
	err := m.service.SeekRelative(delta)
	m.syncClock()
	return m.check(errmsg.OpPlaybackSeek, err)
}

// startGeneration launches the pipeline when the control is enabled. A
// variant derives from the playing track, or the one under the cursor.
func (m *Model) startGeneration(variant bool) tea.Cmd {
	if m.pipeline == nil || !m.pipeline.Control().Enabled() {
		return nil
	}
	if !variant {
		return waitForGeneration(errmsg.OpGenerate, m.pipeline.Start(m.ctx, nil))
	}

	base := m.service.CurrentTrack()
	if base == nil {
		base = m.list.Selected()
	}
	if base == nil || len(base.Params.InputList) == 0 {
		return m.setStatus("Nothing to vary yet")
	}
	return waitForGeneration(errmsg.OpVariant, m.pipeline.StartVariant(m.ctx, *base))
}

// copyShareLink puts the share URL of the current playlist on the clipboard.
func (m *Model) copyShareLink() tea.Cmd {
	if m.service.IsEmpty() {
		return m.setStatus("Nothing to share yet")
	}
	url, err := playlistsync.ShareURL(m.shareBase, m.service.Params())
	if err != nil {
		return m.setError(errmsg.OpShareLinkCopy, "", err)
	}
	if err := m.copyFn(url); err != nil {
		m.logger.Warn("clipboard unavailable", "err", err)
		return m.setError(errmsg.OpShareLinkCopy, "", err)
	}
	m.logger.Info("share link copied", "tracks", m.service.Len(), "bytes", len(url))
	return m.setStatus(fmt.Sprintf("Share link copied (%d tracks, %s)",
		m.service.Len(), humanize.Bytes(uint64(len(url)))))
}

// check reports err on the status line, if any.
func (m *Model) check(op errmsg.Op, err error) tea.Cmd {
	if err == nil {
		return nil
	}
	return m.setError(op, "", err)
}

package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/genwaves/internal/errmsg"
	"github.com/llehouerou/genwaves/internal/generate"
)

const tickInterval = 500 * time.Millisecond

// TickCmd returns a command that sends TickMsg after tickInterval.
func TickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// StatusClearCmd returns a command that clears status id after a delay.
func StatusClearCmd(id int) tea.Cmd {
	return tea.Tick(StatusDuration, func(time.Time) tea.Msg {
		return StatusClearMsg{ID: id}
	})
}

// WatchServiceEvents returns a command that waits for playback service events.
// It listens on all subscription channels and converts events to tea.Msg.
func (m Model) WatchServiceEvents() tea.Cmd {
	sub := m.sub
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case e := <-sub.StateChanged:
			return ServiceStateChangedMsg{Previous: e.Previous, Current: e.Current}
		case e := <-sub.TrackChanged:
			return ServiceTrackChangedMsg{Current: e.Current, CurrentIndex: e.Index}
		case e := <-sub.PlaylistChanged:
			return ServicePlaylistChangedMsg{Tracks: e.Tracks, CurrentIndex: e.Index}
		case e := <-sub.PositionChanged:
			return ServicePositionChangedMsg{Position: e.Position}
		case e := <-sub.ModeChanged:
			return ServiceModeChangedMsg{Repeat: e.RepeatMode, Volume: e.Volume, Muted: e.Muted}
		case e := <-sub.LoadingChanged:
			return ServiceLoadingChangedMsg{Loading: e.Loading}
		case e := <-sub.Error:
			return ServiceErrorMsg{Operation: e.Operation, Title: e.Title, Err: e.Err}
		case <-sub.Done:
			return ServiceClosedMsg{}
		}
	}
}

// waitForChannel creates a command that waits for a value from a channel and converts it to a message.
// onResult receives the value and a boolean indicating if the channel is still open.
func waitForChannel[T any](ch <-chan T, onResult func(T, bool) tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		result, ok := <-ch
		return onResult(result, ok)
	}
}

// waitForGeneration turns a pipeline result channel into a GenerationDoneMsg.
func waitForGeneration(op errmsg.Op, ch <-chan generate.Result) tea.Cmd {
	return waitForChannel(ch, func(r generate.Result, ok bool) tea.Msg {
		if !ok {
			return nil
		}
		return GenerationDoneMsg{Op: op, Result: r}
	})
}

package seek

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/genwaves/internal/params"
	"github.com/llehouerou/genwaves/internal/playback"
	"github.com/llehouerou/genwaves/internal/player"
	"github.com/llehouerou/genwaves/internal/playlist"
)

func newPlaying(t *testing.T) (playback.Service, *player.Mock) {
	t.Helper()
	p := player.NewMock()
	q := playlist.NewQueue()
	q.Add(playlist.Track{Params: params.OutputParams{Title: "a"}})
	svc := playback.New(p, q, nil)
	t.Cleanup(func() { _ = svc.Close() })
	require.NoError(t, svc.Play())
	p.SetDuration(60 * time.Second)
	return svc, p
}

func TestBar_DragWhilePlaying(t *testing.T) {
	svc, p := newPlaying(t)
	sub := svc.Subscribe()
	b := New(svc)
	b.UpdateFromClock(10*time.Second, 60*time.Second, true)

	b.DragStart()
	assert.Equal(t, Dragging, b.State())
	assert.Equal(t, playback.StatePaused, svc.State())
	e := <-sub.StateChanged
	assert.Equal(t, playback.StatePaused, e.Current)

	b.Input(30)
	b.UpdateFromClock(11*time.Second, 60*time.Second, true) // suppressed
	assert.InDelta(t, 30, b.Value(), 1e-9)

	require.NoError(t, b.DragEnd())
	assert.Equal(t, Idle, b.State())
	assert.Equal(t, []time.Duration{30 * time.Second}, p.SeekCalls())
	assert.Equal(t, playback.StatePlaying, svc.State())
}

func TestBar_DragWhilePaused_StaysPaused(t *testing.T) {
	svc, p := newPlaying(t)
	require.NoError(t, svc.Pause())
	b := New(svc)
	b.UpdateFromClock(0, 60*time.Second, true)

	b.DragStart()
	b.Input(45)
	require.NoError(t, b.DragEnd())

	assert.Equal(t, playback.StatePaused, svc.State())
	assert.Equal(t, 45*time.Second, p.Position())
}

func TestBar_DragStart_EmptyPlaylistInert(t *testing.T) {
	svc := playback.New(player.NewMock(), playlist.NewQueue(), nil)
	defer svc.Close()
	b := New(svc)

	b.DragStart()

	assert.Equal(t, Idle, b.State())
	assert.NoError(t, b.DragEnd())
}

func TestBar_Input_Clamps(t *testing.T) {
	svc, _ := newPlaying(t)
	b := New(svc)
	b.UpdateFromClock(0, 60*time.Second, true)

	b.Input(-5)
	assert.InDelta(t, 0, b.Value(), 0)

	b.Input(500)
	assert.InDelta(t, 60, b.Value(), 0)
}

func TestBar_Fill(t *testing.T) {
	svc, _ := newPlaying(t)
	b := New(svc)

	assert.InDelta(t, 0, b.Fill(), 0, "empty range")

	b.UpdateFromClock(15*time.Second, 60*time.Second, true)
	assert.InDelta(t, 25, b.Fill(), 1e-9)

	b.UpdateFromClock(60*time.Second, 60*time.Second, true)
	assert.InDelta(t, 100, b.Fill(), 1e-9)
}

func TestBar_UpdateFromClock_NoTrackResets(t *testing.T) {
	svc, _ := newPlaying(t)
	b := New(svc)
	b.UpdateFromClock(15*time.Second, 60*time.Second, true)

	b.UpdateFromClock(15*time.Second, 60*time.Second, false)

	assert.InDelta(t, 0, b.Max(), 0)
	assert.InDelta(t, 0, b.Value(), 0)
	assert.InDelta(t, 0, b.Fill(), 0)
}

func TestBar_TrackCleared_DuringDrag(t *testing.T) {
	svc, _ := newPlaying(t)
	b := New(svc)
	b.UpdateFromClock(15*time.Second, 60*time.Second, true)
	b.DragStart()

	b.TrackCleared()

	assert.Equal(t, Dragging, b.State(), "drag is not resolved")
	assert.InDelta(t, 0, b.Max(), 0)
	assert.InDelta(t, 0, b.Fill(), 0)
}

func TestBar_DoubleDragStartKeepsFirstCapture(t *testing.T) {
	svc, _ := newPlaying(t)
	b := New(svc)
	b.UpdateFromClock(0, 60*time.Second, true)

	b.DragStart() // playing -> paused
	b.DragStart() // would see paused; must be ignored
	require.NoError(t, b.DragEnd())

	assert.Equal(t, playback.StatePlaying, svc.State())
}

func TestBar_FractionToValue(t *testing.T) {
	svc, _ := newPlaying(t)
	b := New(svc)
	b.UpdateFromClock(0, 40*time.Second, true)

	assert.InDelta(t, 10, b.FractionToValue(0.25), 1e-9)
	assert.InDelta(t, 40, b.FractionToValue(2), 1e-9)
	assert.InDelta(t, 0, b.FractionToValue(-1), 1e-9)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "Idle", Idle.String())
	assert.Equal(t, "Dragging", Dragging.String())
}

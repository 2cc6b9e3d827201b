package playback

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/genwaves/internal/player"
	"github.com/llehouerou/genwaves/internal/playlist"
)

func TestStateOf(t *testing.T) {
	tests := []struct {
		in     player.State
		want   State
		active bool
	}{
		{player.Stopped, StateStopped, false},
		{player.Playing, StatePlaying, true},
		{player.Paused, StatePaused, true},
		{player.State(42), StateStopped, false},
	}
	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			got := stateOf(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.active, got.IsActive())
		})
	}
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "Stopped", StateStopped.String())
	assert.Equal(t, "Playing", StatePlaying.String())
	assert.Equal(t, "Paused", StatePaused.String())
	assert.Equal(t, "Unknown", State(99).String())
}

func TestRepeatMode_CyclesThroughAllModes(t *testing.T) {
	svc := New(player.NewMock(), playlist.NewQueue(), nil)
	t.Cleanup(func() { _ = svc.Close() })

	assert.Equal(t, RepeatOff, svc.RepeatMode())
	assert.Equal(t, RepeatAll, svc.CycleRepeatMode())
	assert.Equal(t, RepeatOne, svc.CycleRepeatMode())
	assert.Equal(t, RepeatOff, svc.CycleRepeatMode())
}

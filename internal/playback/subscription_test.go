package playback

import (
	"errors"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/genwaves/internal/params"
	"github.com/llehouerou/genwaves/internal/playlist"
)

func TestSubscription_EveryChannelDelivers(t *testing.T) {
	sub := newSubscription()
	boom := errors.New("boom")

	sub.sendState(StateChange{Previous: StateStopped, Current: StatePlaying})
	sub.sendTrack(TrackChange{Index: 1})
	sub.sendPosition(30 * time.Second)
	sub.sendPlaylist(PlaylistChange{Index: 2, Tracks: []playlist.Track{
		{Params: params.OutputParams{Title: "#a1"}},
	}})
	sub.sendLoading(LoadingChange{Loading: true})
	sub.sendMode(ModeChange{RepeatMode: RepeatAll, Muted: true})
	sub.sendError(ErrorEvent{Operation: "play", Err: boom})

	assert.Equal(t, StatePlaying, (<-sub.StateChanged).Current)
	assert.Equal(t, 1, (<-sub.TrackChanged).Index)
	assert.Equal(t, 30*time.Second, (<-sub.PositionChanged).Position)

	pl := <-sub.PlaylistChanged
	assert.Equal(t, 2, pl.Index)
	if assert.Len(t, pl.Tracks, 1) {
		assert.Equal(t, "#a1", pl.Tracks[0].Title())
	}

	assert.True(t, (<-sub.LoadingChanged).Loading)

	m := <-sub.ModeChanged
	assert.Equal(t, RepeatAll, m.RepeatMode)
	assert.True(t, m.Muted)

	assert.ErrorIs(t, (<-sub.Error).Err, boom)
	assert.Zero(t, sub.Dropped())
}

func TestSubscription_CloseSignalsDone(t *testing.T) {
	synctest.Test(t, func(_ *testing.T) {
		sub := newSubscription()
		go sub.close()
		<-sub.Done
	})
}

func TestSubscription_FullChannelDropsAndCounts(t *testing.T) {
	sub := newSubscription()

	for range eventBufferSize + 5 {
		sub.sendPosition(time.Second)
	}

	assert.Len(t, sub.PositionChanged, eventBufferSize)
	assert.Equal(t, uint64(5), sub.Dropped())
}

package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/genwaves/internal/generate"
	"github.com/llehouerou/genwaves/internal/params"
	"github.com/llehouerou/genwaves/internal/playback"
	"github.com/llehouerou/genwaves/internal/player"
	"github.com/llehouerou/genwaves/internal/playlist"
	"github.com/llehouerou/genwaves/internal/producer"
	"github.com/llehouerou/genwaves/internal/seek"
	"github.com/llehouerou/genwaves/internal/ui/playerbar"
)

const shareBase = "https://genwaves.example/"

type testEnv struct {
	svc     playback.Service
	player  *player.Mock
	decode  generate.DecoderFunc
	copied  string
	copyErr error
}

func testTrack(title string) playlist.Track {
	return playlist.Track{
		Params:   params.OutputParams{Title: title, InputList: []float64{0.1, -0.2}},
		Gradient: [2]colorful.Color{{R: 1}, {B: 1}},
		Length:   2 * time.Minute,
	}
}

func newTestModel(t *testing.T, titles ...string) (Model, *testEnv) {
	t.Helper()
	env := &testEnv{player: player.NewMock()}
	q := playlist.NewQueue()
	for _, title := range titles {
		q.Add(testTrack(title))
	}
	env.svc = playback.New(env.player, q, nil)
	t.Cleanup(func() { _ = env.svc.Close() })

	env.decode = func(_ context.Context, seed []float64) (params.OutputParams, error) {
		return params.OutputParams{Title: "#generated", InputList: seed}, nil
	}
	dec := generate.DecoderFunc(func(ctx context.Context, seed []float64) (params.OutputParams, error) {
		return env.decode(ctx, seed)
	})
	prod := producer.Func(func(p params.OutputParams) (playlist.Track, error) {
		return playlist.Track{Params: p, Length: time.Minute}, nil
	})

	m := New(Deps{
		Service:      env.svc,
		Pipeline:     generate.New(dec, prod, env.svc, nil),
		ShareBaseURL: shareBase,
		CopyToClipboard: func(s string) error {
			env.copied = s
			return env.copyErr
		},
	})
	t.Cleanup(m.Close)
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})
	return m, env
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	result, ok := next.(Model)
	require.True(t, ok, "Update should return Model")
	return result
}

func updateCmd(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	result, ok := next.(Model)
	require.True(t, ok, "Update should return Model")
	return result, cmd
}

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestUpdate_WindowSizeMsg(t *testing.T) {
	m, _ := newTestModel(t, "a")

	assert.Equal(t, 80, m.Width)
	assert.Equal(t, 30, m.Height)
	assert.Equal(t, 30-headerHeight-playerbar.Height-statusHeight-1, m.listHeight())
}

func TestView_Layout(t *testing.T) {
	m, _ := newTestModel(t, "#d7c3a1", "#5ea0f2")

	lines := strings.Split(m.View(), "\n")
	require.Len(t, lines, 30)
	assert.Contains(t, lines[0], appName)
	assert.Contains(t, lines[0], "Generate")
	assert.Contains(t, lines[listTop], "#d7c3a1")
	assert.Contains(t, lines[m.playerTop()+1], "No track loaded")
}

func TestGenerate_AppendsTrack(t *testing.T) {
	m, env := newTestModel(t)

	m, cmd := updateCmd(t, m, key("g"))
	require.NotNil(t, cmd)
	msg := cmd()
	done, ok := msg.(GenerationDoneMsg)
	require.True(t, ok, "expected GenerationDoneMsg, got %T", msg)
	require.NoError(t, done.Result.Err)

	m = update(t, m, done)
	assert.Equal(t, 1, env.svc.Len())
	assert.Equal(t, "Added #generated", m.Status())
	assert.Equal(t, generate.Ready, m.pipeline.Control())
}

func TestGenerate_FailureDisablesControl(t *testing.T) {
	m, env := newTestModel(t)
	env.decode = func(context.Context, []float64) (params.OutputParams, error) {
		return params.OutputParams{}, errors.New("model offline")
	}

	m, cmd := updateCmd(t, m, key("g"))
	require.NotNil(t, cmd)
	m = update(t, m, cmd())

	assert.Contains(t, m.Status(), "Failed to generate track")
	assert.Contains(t, m.Status(), "model offline")
	assert.Equal(t, generate.Failed, m.pipeline.Control())
	assert.True(t, env.svc.IsEmpty())
	assert.Contains(t, strings.Split(m.View(), "\n")[0], "Error!")

	_, cmd = updateCmd(t, m, key("g"))
	assert.Nil(t, cmd, "control stays disabled after a failure")
}

func TestVariant_UsesSelectedTrack(t *testing.T) {
	m, env := newTestModel(t, "base")
	var got []float64
	env.decode = func(_ context.Context, seed []float64) (params.OutputParams, error) {
		got = seed
		return params.OutputParams{Title: "#variant", InputList: seed}, nil
	}

	m, cmd := updateCmd(t, m, key("v"))
	require.NotNil(t, cmd)
	m = update(t, m, cmd())

	require.Len(t, got, 2)
	assert.Equal(t, []string{"base", "#variant"}, params.Titles(env.svc.Params()))
	assert.Equal(t, "Added #variant", m.Status())
}

func TestVariant_NothingToVary(t *testing.T) {
	m, _ := newTestModel(t)

	m = update(t, m, key("v"))
	assert.Equal(t, "Nothing to vary yet", m.Status())
}

func TestPlayPause_StartsSelectedTrack(t *testing.T) {
	m, env := newTestModel(t, "a", "b")

	m = update(t, m, key("j"))
	m = update(t, m, key(" "))
	require.NotNil(t, env.svc.CurrentTrack())
	assert.Equal(t, "b", env.svc.CurrentTrack().Title())
	assert.True(t, env.svc.IsPlaying())

	update(t, m, key(" "))
	assert.Equal(t, playback.StatePaused, env.svc.State())
}

func TestDelete_RemovesTrackUnderCursor(t *testing.T) {
	m, env := newTestModel(t, "a", "b", "c")

	m = update(t, m, key("j"))
	update(t, m, key("d"))
	assert.Equal(t, []string{"a", "c"}, params.Titles(env.svc.Params()))
}

func TestMoveItem_FollowsCursor(t *testing.T) {
	m, env := newTestModel(t, "a", "b", "c")

	m = update(t, m, key("J"))
	assert.Equal(t, []string{"b", "a", "c"}, params.Titles(env.svc.Params()))
	assert.Equal(t, 1, m.list.Cursor())

	m = update(t, m, key("K"))
	assert.Equal(t, []string{"a", "b", "c"}, params.Titles(env.svc.Params()))
	assert.Equal(t, 0, m.list.Cursor())

	update(t, m, key("K"))
	assert.Equal(t, []string{"a", "b", "c"}, params.Titles(env.svc.Params()))
}

func TestMoveItem_StaleListReportsFailure(t *testing.T) {
	m, env := newTestModel(t, "a", "b", "c")
	env.svc.ReplacePlaylist([]playlist.Track{testTrack("a")})

	m = update(t, m, key("J"))
	assert.Contains(t, m.Status(), "Failed to move track 'a'")
	assert.Equal(t, []string{"a"}, params.Titles(env.svc.Params()))
}

func TestShare_CopiesLink(t *testing.T) {
	m, env := newTestModel(t, "a", "b")

	m = update(t, m, key("s"))
	assert.True(t, strings.HasPrefix(env.copied, shareBase+"?"), env.copied)
	assert.Contains(t, m.Status(), "Share link copied (2 tracks")
}

func TestShare_Empty(t *testing.T) {
	m, env := newTestModel(t)

	m = update(t, m, key("s"))
	assert.Empty(t, env.copied)
	assert.Equal(t, "Nothing to share yet", m.Status())
}

func TestShare_ClipboardFailure(t *testing.T) {
	m, env := newTestModel(t, "a")
	env.copyErr = errors.New("no clipboard")

	m = update(t, m, key("s"))
	assert.Contains(t, m.Status(), "Failed to copy share link")
}

func TestOutputKeys(t *testing.T) {
	m, env := newTestModel(t, "a")

	m = update(t, m, key("-"))
	assert.InDelta(t, 1-volumeStep, env.svc.Volume(), 1e-9)

	m = update(t, m, key("m"))
	assert.True(t, env.svc.Muted())

	m = update(t, m, key("R"))
	assert.Equal(t, playback.RepeatAll, env.svc.RepeatMode())
	assert.Equal(t, "Repeat: All", m.Status())
}

func TestSeekKeys(t *testing.T) {
	m, env := newTestModel(t, "a")
	m = update(t, m, key("enter"))
	env.player.SetDuration(2 * time.Minute)

	update(t, m, key("l"))
	calls := env.player.SeekCalls()
	require.NotEmpty(t, calls)
	assert.Equal(t, defaultSeekStep, calls[len(calls)-1])
}

func TestMouseDrag_SeeksAndResumes(t *testing.T) {
	m, env := newTestModel(t, "a")
	m = update(t, m, key("enter"))
	env.player.SetDuration(2 * time.Minute)
	m = update(t, m, TickMsg(time.Now()))
	require.InDelta(t, 120, m.seek.Max(), 1e-9)

	x, w := playerbar.SeekRegion(m.playerState(), m.Width)
	require.Positive(t, w)
	row := m.playerTop() + playerbar.SeekRow

	m = update(t, m, tea.MouseMsg{X: x + w/2, Y: row, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, seek.Dragging, m.seek.State())
	assert.Equal(t, playback.StatePaused, env.svc.State())

	m = update(t, m, tea.MouseMsg{X: x + w + 20, Y: row + 3, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	assert.InDelta(t, 120, m.seek.Value(), 1e-9)

	m = update(t, m, tea.MouseMsg{X: x + w + 20, Y: row, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	assert.Equal(t, seek.Idle, m.seek.State())
	calls := env.player.SeekCalls()
	require.NotEmpty(t, calls)
	assert.Equal(t, 2*time.Minute, calls[len(calls)-1])
	assert.True(t, env.svc.IsPlaying())
}

func TestMouseDrag_EmptyPlaylistIsInert(t *testing.T) {
	m, _ := newTestModel(t)

	x, w := playerbar.SeekRegion(m.playerState(), m.Width)
	require.Positive(t, w)
	m = update(t, m, tea.MouseMsg{X: x, Y: m.playerTop() + playerbar.SeekRow, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, seek.Idle, m.seek.State())
}

func TestMouseClick_GenerateButton(t *testing.T) {
	m, env := newTestModel(t)

	x, w := m.buttonRegion()
	require.Positive(t, w)
	m, cmd := updateCmd(t, m, tea.MouseMsg{X: x + w/2, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	require.NotNil(t, cmd)
	update(t, m, cmd())
	assert.Equal(t, 1, env.svc.Len())
}

func TestMouseClick_TileSelectsThenPlays(t *testing.T) {
	m, env := newTestModel(t, "a", "b")
	row := listTop + 3 + 1 // second tile

	m = update(t, m, tea.MouseMsg{X: 5, Y: row, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, 1, m.list.Cursor())
	assert.Nil(t, env.svc.CurrentTrack())

	update(t, m, tea.MouseMsg{X: 5, Y: row, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	require.NotNil(t, env.svc.CurrentTrack())
	assert.Equal(t, "b", env.svc.CurrentTrack().Title())
}

func TestWatchServiceEvents_LoadingShowsPlaceholder(t *testing.T) {
	m, env := newTestModel(t, "a")

	env.svc.SetLoading(true)
	msg := m.WatchServiceEvents()()
	loading, ok := msg.(ServiceLoadingChangedMsg)
	require.True(t, ok, "expected ServiceLoadingChangedMsg, got %T", msg)
	assert.True(t, loading.Loading)

	m, cmd := updateCmd(t, m, loading)
	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Generating")
}

func TestWatchServiceEvents_Closed(t *testing.T) {
	m, env := newTestModel(t)

	require.NoError(t, env.svc.Close())
	assert.IsType(t, ServiceClosedMsg{}, m.WatchServiceEvents()())
}

func TestTrackCleared_ResetsSeekRange(t *testing.T) {
	m, env := newTestModel(t, "a")
	m = update(t, m, key("enter"))
	env.player.SetDuration(time.Minute)
	m = update(t, m, TickMsg(time.Now()))
	require.InDelta(t, 60, m.seek.Max(), 1e-9)

	m = update(t, m, ServiceTrackChangedMsg{Current: nil, CurrentIndex: -1})
	assert.Zero(t, m.seek.Max())
}

func TestServiceError_ShowsStatus(t *testing.T) {
	m, _ := newTestModel(t)

	m = update(t, m, ServiceErrorMsg{Operation: "play", Title: "#x", Err: errors.New("device busy")})
	assert.Equal(t, "Failed to start playback '#x': device busy", m.Status())
}

func TestStatusClear_OnlyMatchingID(t *testing.T) {
	m, _ := newTestModel(t)

	m = update(t, m, key("v"))
	id := m.statusID
	m = update(t, m, StatusClearMsg{ID: id - 1})
	assert.NotEmpty(t, m.Status())
	m = update(t, m, StatusClearMsg{ID: id})
	assert.Empty(t, m.Status())
}

func TestQuit_CancelsGeneration(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := updateCmd(t, m, key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.ErrorIs(t, m.ctx.Err(), context.Canceled)
}

func TestHelp_ToggleShrinksList(t *testing.T) {
	m, _ := newTestModel(t, "a")
	before := m.listHeight()

	m = update(t, m, key("?"))
	assert.True(t, m.help.ShowAll)
	assert.Less(t, m.listHeight(), before)
}

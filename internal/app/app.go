// Package app is the Bubble Tea front end: track tiles, the transport bar
// with its draggable seek bar, the generate control and the status line.
package app

import (
	"context"
	"io"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/llehouerou/genwaves/internal/generate"
	"github.com/llehouerou/genwaves/internal/keymap"
	"github.com/llehouerou/genwaves/internal/notify"
	"github.com/llehouerou/genwaves/internal/playback"
	"github.com/llehouerou/genwaves/internal/seek"
	"github.com/llehouerou/genwaves/internal/ui/styles"
	"github.com/llehouerou/genwaves/internal/ui/tracklist"
)

const (
	volumeStep      = 0.05
	defaultSeekStep = 5 * time.Second
)

// Deps are the collaborators the TUI drives. Service and Pipeline are
// required; the rest fall back to inert defaults.
type Deps struct {
	Service   playback.Service
	Pipeline  *generate.Pipeline
	Announcer *notify.Announcer
	Logger    *log.Logger

	ShareBaseURL string
	SeekStep     time.Duration

	// CopyToClipboard defaults to the system clipboard.
	CopyToClipboard func(string) error
}

// Model is the root application model.
type Model struct {
	service   playback.Service
	pipeline  *generate.Pipeline
	announcer *notify.Announcer
	logger    *log.Logger
	sub       *playback.Subscription

	ctx    context.Context
	cancel context.CancelFunc

	keys      *keymap.Resolver
	helpMap   keymap.HelpMap
	help      help.Model
	spinner   spinner.Model
	seek      *seek.Bar
	list      tracklist.Model
	loading   bool
	ticking   bool
	copyFn    func(string) error
	shareBase string
	seekStep  time.Duration

	status    string
	statusErr bool
	statusID  int

	Width  int
	Height int
}

// New creates the root model and subscribes to the playback service.
func New(deps Deps) Model {
	logger := deps.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	announcer := deps.Announcer
	if announcer == nil {
		announcer = notify.NewAnnouncer(nil, false)
	}
	copyFn := deps.CopyToClipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}
	seekStep := deps.SeekStep
	if seekStep <= 0 {
		seekStep = defaultSeekStep
	}

	s := styles.T().S()
	h := help.New()
	h.ShortSeparator = "  "
	h.Styles.ShortKey = s.Muted
	h.Styles.ShortDesc = s.Subtle
	h.Styles.FullKey = s.Muted
	h.Styles.FullDesc = s.Subtle

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = s.Playing

	list := tracklist.New()
	list.SetTracks(deps.Service.Tracks(), deps.Service.CurrentIndex())

	ctx, cancel := context.WithCancel(context.Background())
	m := Model{
		service:   deps.Service,
		pipeline:  deps.Pipeline,
		announcer: announcer,
		logger:    logger,
		sub:       deps.Service.Subscribe(),
		ctx:       ctx,
		cancel:    cancel,
		keys:      keymap.NewResolver(keymap.Bindings),
		helpMap: keymap.NewHelpMap(keymap.Bindings,
			keymap.ActionPlayPause, keymap.ActionGenerate, keymap.ActionVariant,
			keymap.ActionShare, keymap.ActionHelp, keymap.ActionQuit),
		help:      h,
		spinner:   sp,
		seek:      seek.New(deps.Service),
		list:      list,
		loading:   deps.Service.Loading(),
		copyFn:    copyFn,
		shareBase: deps.ShareBaseURL,
		seekStep:  seekStep,
	}
	m.syncClock()
	m.syncPending()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.WatchServiceEvents()}
	if m.loading {
		cmds = append(cmds, m.spinner.Tick)
	}
	if m.service.IsPlaying() {
		cmds = append(cmds, TickCmd())
	}
	return tea.Batch(cmds...)
}

// Close cancels any running generation. The playback service is owned by
// the caller.
func (m Model) Close() {
	m.cancel()
}

// Seek exposes the seek bar state machine.
func (m Model) Seek() *seek.Bar {
	return m.seek
}

// Status returns the status line text.
func (m Model) Status() string {
	return m.status
}

// syncClock mirrors the playback clock into the seek bar.
func (m *Model) syncClock() {
	m.seek.UpdateFromClock(m.service.Position(), m.service.Duration(), m.service.CurrentTrack() != nil)
}

// syncPending shows the placeholder tile while a generation runs.
func (m *Model) syncPending() {
	if m.loading {
		m.list.SetPending(m.spinner.View() + " Generating")
		return
	}
	m.list.SetPending("")
}

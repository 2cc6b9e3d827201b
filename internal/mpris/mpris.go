//go:build linux

// Package mpris exposes the player on the session bus as an MPRIS media
// player, so desktop media keys and widgets can drive it.
package mpris

import (
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/genwaves/internal/playback"
	"github.com/llehouerou/genwaves/internal/transport"
)

const busName = "genwaves"

// Verify Surface implements transport.Surface at compile time.
var _ transport.Surface = (*Surface)(nil)

// Surface is a transport.Surface backed by MPRIS over D-Bus.
// MPRIS methods dispatch to the registered handlers; properties are read
// from the playback service.
type Surface struct {
	service playback.Service
	server  *server.Server

	mu       sync.RWMutex
	handlers map[transport.Action]transport.Handler
}

// New creates a surface. Call Start to claim the bus name.
func New(service playback.Service) *Surface {
	s := newSurface(service)
	s.server = server.NewServer(busName, &rootAdapter{}, &playerAdapter{surface: s})
	return s
}

func newSurface(service playback.Service) *Surface {
	return &Surface{
		service:  service,
		handlers: make(map[transport.Action]transport.Handler),
	}
}

// SetActionHandler implements transport.Surface.
func (s *Surface) SetActionHandler(action transport.Action, h transport.Handler) error {
	if !known(action) {
		return fmt.Errorf("%w: %s", transport.ErrUnsupported, action)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[action] = h
	return nil
}

// Start serves the MPRIS interfaces in the background.
func (s *Surface) Start(logger *log.Logger) {
	go func() {
		if err := s.server.Listen(); err != nil {
			logger.Warn("mpris unavailable", "err", err)
		}
	}()
}

// Close releases the bus name.
func (s *Surface) Close() error {
	if s.server == nil {
		return nil
	}
	return s.server.Stop()
}

func (s *Surface) has(action transport.Action) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.handlers[action] != nil
}

func (s *Surface) dispatch(action transport.Action, d transport.Details) error {
	s.mu.RLock()
	h := s.handlers[action]
	s.mu.RUnlock()
	if h == nil {
		return fmt.Errorf("%w: %s", transport.ErrUnsupported, action)
	}
	return h(d)
}

func known(action transport.Action) bool {
	for _, a := range transport.Actions {
		if a == action {
			return true
		}
	}
	return false
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error { return nil }

func (r *rootAdapter) Quit() error { return nil }

func (r *rootAdapter) CanQuit() (bool, error) { return false, nil }

func (r *rootAdapter) CanRaise() (bool, error) { return false, nil }

func (r *rootAdapter) HasTrackList() (bool, error) { return false, nil }

func (r *rootAdapter) Identity() (string, error) { return "genwaves", nil }

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) { return []string{}, nil }

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) { return []string{}, nil }

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter and LoopStatus.
type playerAdapter struct {
	surface *Surface
}

func (p *playerAdapter) svc() playback.Service { return p.surface.service }

func (p *playerAdapter) Next() error {
	return p.surface.dispatch(transport.NextTrack, transport.Details{})
}

func (p *playerAdapter) Previous() error {
	return p.surface.dispatch(transport.PreviousTrack, transport.Details{})
}

func (p *playerAdapter) Pause() error {
	return p.surface.dispatch(transport.Pause, transport.Details{})
}

func (p *playerAdapter) PlayPause() error {
	if p.svc().IsPlaying() {
		return p.Pause()
	}
	return p.Play()
}

func (p *playerAdapter) Stop() error {
	return p.surface.dispatch(transport.Stop, transport.Details{})
}

func (p *playerAdapter) Play() error {
	return p.surface.dispatch(transport.Play, transport.Details{})
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	d := time.Duration(offset) * time.Microsecond
	switch {
	case d < 0:
		return p.surface.dispatch(transport.SeekBackward, transport.Details{SeekOffset: -d})
	case d > 0:
		return p.surface.dispatch(transport.SeekForward, transport.Details{SeekOffset: d})
	default:
		return nil
	}
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	return p.surface.dispatch(transport.SeekTo, transport.Details{
		SeekTime: time.Duration(position) * time.Microsecond,
	})
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return transport.ErrUnsupported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	switch p.svc().State() {
	case playback.StatePlaying:
		return types.PlaybackStatusPlaying, nil
	case playback.StatePaused:
		return types.PlaybackStatusPaused, nil
	case playback.StateStopped:
		return types.PlaybackStatusStopped, nil
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Rate() (float64, error) { return 1.0, nil }

func (p *playerAdapter) SetRate(_ float64) error { return nil }

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	track := p.svc().CurrentTrack()
	if track == nil {
		return types.Metadata{}, nil
	}
	return types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(track.Title())),
		Length:  types.Microseconds(track.Length.Microseconds()),
		Title:   track.Title(),
		Artist:  []string{"genwaves"},
	}, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	if p.svc().Muted() {
		return 0, nil
	}
	return p.svc().Volume(), nil
}

func (p *playerAdapter) SetVolume(v float64) error {
	p.svc().SetVolume(v)
	return nil
}

func (p *playerAdapter) Position() (int64, error) {
	return p.svc().Position().Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) { return 1.0, nil }

func (p *playerAdapter) MaximumRate() (float64, error) { return 1.0, nil }

func (p *playerAdapter) CanGoNext() (bool, error) {
	return p.surface.has(transport.NextTrack) && !p.svc().IsEmpty(), nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return p.surface.has(transport.PreviousTrack) && !p.svc().IsEmpty(), nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.surface.has(transport.Play) && !p.svc().IsEmpty(), nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return p.surface.has(transport.Pause), nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return p.surface.has(transport.SeekTo) || p.surface.has(transport.SeekForward), nil
}

func (p *playerAdapter) CanControl() (bool, error) { return true, nil }

// LoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) LoopStatus() (types.LoopStatus, error) {
	switch p.svc().RepeatMode() {
	case playback.RepeatOne:
		return types.LoopStatusTrack, nil
	case playback.RepeatAll:
		return types.LoopStatusPlaylist, nil
	case playback.RepeatOff:
		return types.LoopStatusNone, nil
	}
	return types.LoopStatusNone, nil
}

// SetLoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) SetLoopStatus(status types.LoopStatus) error {
	switch status {
	case types.LoopStatusNone:
		p.svc().SetRepeatMode(playback.RepeatOff)
	case types.LoopStatusTrack:
		p.svc().SetRepeatMode(playback.RepeatOne)
	case types.LoopStatusPlaylist:
		p.svc().SetRepeatMode(playback.RepeatAll)
	}
	return nil
}

func formatTrackID(title string) string {
	h := fnv.New64a()
	h.Write([]byte(title))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}

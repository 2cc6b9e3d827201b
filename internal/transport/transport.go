// Package transport maps OS media-control actions onto the playback service.
package transport

import (
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/llehouerou/genwaves/internal/errmsg"
)

// DefaultSeekStep is the jump used by seekbackward and seekforward.
const DefaultSeekStep = 5 * time.Second

// ErrUnsupported is returned by a Surface that cannot handle an action.
var ErrUnsupported = errors.New("transport: action not supported")

// Action names a media-control action.
type Action string

const (
	Play          Action = "play"
	Pause         Action = "pause"
	PreviousTrack Action = "previoustrack"
	NextTrack     Action = "nexttrack"
	SeekBackward  Action = "seekbackward"
	SeekForward   Action = "seekforward"
	SeekTo        Action = "seekto"
	Stop          Action = "stop"
)

// Actions lists every action in registration order.
var Actions = []Action{Play, Pause, PreviousTrack, NextTrack, SeekBackward, SeekForward, SeekTo, Stop}

// Details carries action arguments.
type Details struct {
	SeekTime   time.Duration // absolute position for SeekTo
	SeekOffset time.Duration // overrides the seek step when positive
}

// Handler performs one action.
type Handler func(Details) error

// Surface is an OS media-control endpoint.
type Surface interface {
	SetActionHandler(action Action, h Handler) error
}

// Controls is the part of the playback service reachable from the OS.
type Controls interface {
	Play() error
	Pause() error
	PlayPrevious() error
	PlayNext() error
	SeekRelative(delta time.Duration) error
	SeekTo(position time.Duration) error
	Unload() error
}

// Option configures Register.
type Option func(*options)

type options struct {
	seekStep time.Duration
}

// WithSeekStep sets the relative seek jump.
func WithSeekStep(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.seekStep = d
		}
	}
}

// Handlers returns the handler for every action.
func Handlers(c Controls, opts ...Option) map[Action]Handler {
	o := options{seekStep: DefaultSeekStep}
	for _, opt := range opts {
		opt(&o)
	}
	step := func(d Details) time.Duration {
		if d.SeekOffset > 0 {
			return d.SeekOffset
		}
		return o.seekStep
	}

	return map[Action]Handler{
		Play:          func(Details) error { return c.Play() },
		Pause:         func(Details) error { return c.Pause() },
		PreviousTrack: func(Details) error { return c.PlayPrevious() },
		NextTrack:     func(Details) error { return c.PlayNext() },
		SeekBackward:  func(d Details) error { return c.SeekRelative(-step(d)) },
		SeekForward:   func(d Details) error { return c.SeekRelative(step(d)) },
		SeekTo:        func(d Details) error { return c.SeekTo(d.SeekTime) },
		Stop:          func(Details) error { return c.Unload() },
	}
}

// Register installs every action on surface. An action the surface rejects
// is logged and skipped; the others are still registered. Returns the
// actions that were accepted.
func Register(surface Surface, c Controls, logger *log.Logger, opts ...Option) []Action {
	handlers := Handlers(c, opts...)
	registered := make([]Action, 0, len(Actions))
	for _, a := range Actions {
		if err := surface.SetActionHandler(a, handlers[a]); err != nil {
			logger.Warn(errmsg.FormatWith(errmsg.OpMediaKeys, string(a), err))
			continue
		}
		registered = append(registered, a)
	}
	return registered
}

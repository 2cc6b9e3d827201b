// Package player renders generated audio buffers to the sound card.
package player

import (
	"errors"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
)

// ErrEmptyBuffer is returned when asked to play a missing or empty buffer.
var ErrEmptyBuffer = errors.New("player: empty audio buffer")

var (
	speakerInitialized bool
	speakerSampleRate  beep.SampleRate
)

// Player plays one in-memory buffer at a time.
type Player struct {
	state       State
	ctrl        *beep.Ctrl
	volume      *effects.Volume
	streamer    beep.StreamSeeker
	format      beep.Format
	volumeLevel float64
	muted       bool
	finishedCh  chan struct{}
}

// New creates a stopped player at full volume.
func New() *Player {
	return &Player{
		state:       Stopped,
		volumeLevel: 1.0,
		finishedCh:  make(chan struct{}, 1),
	}
}

// Play starts playback of buf from the beginning, replacing any current audio.
func (p *Player) Play(buf *beep.Buffer) error {
	p.Stop()

	// Drain any stale finish signal from the previous buffer
	select {
	case <-p.finishedCh:
	default:
	}

	if buf == nil || buf.Len() == 0 {
		return ErrEmptyBuffer
	}
	format := buf.Format()

	if !speakerInitialized {
		speakerSampleRate = format.SampleRate
		if err := speaker.Init(speakerSampleRate, speakerSampleRate.N(time.Second/10)); err != nil {
			return err
		}
		speakerInitialized = true
	}

	streamer := buf.Streamer(0, buf.Len())
	p.streamer = streamer
	p.format = format

	var playStreamer beep.Streamer = streamer
	if format.SampleRate != speakerSampleRate {
		playStreamer = beep.Resample(4, format.SampleRate, speakerSampleRate, streamer)
	}
	p.ctrl = &beep.Ctrl{Streamer: playStreamer, Paused: false}
	p.volume = &effects.Volume{
		Streamer: p.ctrl,
		Base:     2,
		Volume:   levelToVolume(p.volumeLevel),
		Silent:   p.muted,
	}

	p.state = Playing

	finished := p.finishedCh
	speaker.Play(beep.Seq(p.volume, beep.Callback(func() {
		select {
		case finished <- struct{}{}:
		default:
		}
	})))

	return nil
}

// State returns the playback state.
func (p *Player) State() State { return p.state }

// Duration returns the length of the loaded buffer.
func (p *Player) Duration() time.Duration {
	if p.streamer == nil {
		return 0
	}
	return p.format.SampleRate.D(p.streamer.Len())
}

// FinishedChan signals when the loaded buffer played to its end.
func (p *Player) FinishedChan() <-chan struct{} {
	return p.finishedCh
}

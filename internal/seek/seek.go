// Package seek coordinates a draggable position bar with live playback.
//
// While the user drags, clock updates are ignored so the thumb follows the
// pointer. Releasing seeks once and restores the playing state captured when
// the drag began.
package seek

import (
	"sync"
	"time"
)

// State is the interaction state of the bar.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "Dragging"
	}
	return "Idle"
}

// Target is the part of the playback service the bar drives.
type Target interface {
	IsEmpty() bool
	IsPlaying() bool
	Play() error
	Pause() error
	SeekTo(position time.Duration) error
}

// Bar holds the seek range and value in seconds.
type Bar struct {
	mu        sync.Mutex
	target    Target
	state     State
	min       float64
	max       float64
	value     float64
	wasPaused bool
}

// New returns an idle bar with an empty range.
func New(target Target) *Bar {
	return &Bar{target: target}
}

// DragStart begins a drag, pausing playback if it was running.
// Inert when the playlist is empty or a drag is already in progress.
func (b *Bar) DragStart() {
	if b.target.IsEmpty() {
		return
	}

	b.mu.Lock()
	if b.state == Dragging {
		b.mu.Unlock()
		return
	}
	b.state = Dragging
	b.wasPaused = !b.target.IsPlaying()
	wasPaused := b.wasPaused
	b.mu.Unlock()

	if !wasPaused {
		_ = b.target.Pause()
	}
}

// Input moves the thumb to value, clamped to the current range.
func (b *Bar) Input(value float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.value = max(b.min, min(value, b.max))
}

// DragEnd finishes a drag: seeks to the thumb and resumes playback if it was
// playing when the drag began.
func (b *Bar) DragEnd() error {
	b.mu.Lock()
	if b.state != Dragging {
		b.mu.Unlock()
		return nil
	}
	b.state = Idle
	pos := secondsToDuration(b.value)
	resume := !b.wasPaused
	b.mu.Unlock()

	if err := b.target.SeekTo(pos); err != nil {
		return err
	}
	if resume {
		return b.target.Play()
	}
	return nil
}

// UpdateFromClock mirrors the playback clock. Ignored while dragging. With no
// current track the range collapses to zero.
func (b *Bar) UpdateFromClock(position, length time.Duration, hasTrack bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == Dragging {
		return
	}
	if !hasTrack {
		b.resetLocked()
		return
	}
	b.min = 0
	b.max = length.Seconds()
	b.value = max(0, min(position.Seconds(), b.max))
}

// TrackCleared collapses the range when the current track goes away. It
// applies during a drag too, without ending the drag.
func (b *Bar) TrackCleared() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.resetLocked()
}

func (b *Bar) resetLocked() {
	b.min, b.max, b.value = 0, 0, 0
}

// Fill returns the filled percentage of the bar, 0..100.
func (b *Bar) Fill() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	span := b.max - b.min
	if span <= 0 {
		return 0
	}
	return (b.value - b.min) / span * 100
}

// State returns the interaction state.
func (b *Bar) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Value returns the thumb position in seconds.
func (b *Bar) Value() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.value
}

// Max returns the upper bound in seconds.
func (b *Bar) Max() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.max
}

// FractionToValue maps a 0..1 fraction of the bar onto its range.
func (b *Bar) FractionToValue(frac float64) float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	frac = max(0, min(frac, 1))
	return b.min + frac*(b.max-b.min)
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

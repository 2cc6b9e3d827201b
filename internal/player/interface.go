// internal/player/interface.go
package player

import (
	"time"

	"github.com/gopxl/beep/v2"
)

// Interface defines the player contract for dependency injection and testing.
type Interface interface {
	Play(buf *beep.Buffer) error
	Stop()
	Pause()
	Resume()
	Toggle()
	State() State
	Position() time.Duration
	Duration() time.Duration
	SeekTo(pos time.Duration)
	SetVolume(level float64)
	Volume() float64
	SetMuted(muted bool)
	Muted() bool
	FinishedChan() <-chan struct{}
}

// Verify Player implements Interface at compile time.
var _ Interface = (*Player)(nil)

// internal/player/state.go
package player

// State is the audio output state.
//
//	Stopped --Play--> Playing --Pause--> Paused
//	   ^                 |  ^              |
//	   |                 |  +----Resume----+
//	   +------Stop-------+-----------------+
//
// Pause on a non-playing player and Resume on a non-paused player are no-ops.
// Play always stops the current buffer first.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a buffer is loaded (Playing or Paused).
func (s State) IsActive() bool {
	return s == Playing || s == Paused
}

// CanPause returns true if the state allows pausing.
func (s State) CanPause() bool {
	return s == Playing
}

// CanResume returns true if the state allows resuming.
func (s State) CanResume() bool {
	return s == Paused
}

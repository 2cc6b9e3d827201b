package generate

// ControlState is the state of the generate control.
type ControlState int

const (
	Ready ControlState = iota
	Busy
	Failed
)

func (s ControlState) String() string {
	switch s {
	case Ready:
		return "Ready"
	case Busy:
		return "Busy"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Label is the text shown on the generate control.
func (s ControlState) Label() string {
	switch s {
	case Busy:
		return "Generating"
	case Failed:
		return "Error!"
	default:
		return "Generate"
	}
}

// Enabled reports whether the control accepts a new request.
func (s ControlState) Enabled() bool {
	return s == Ready
}

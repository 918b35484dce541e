package app

// State is the top-level UI state.
type State int

const (
	StateIdle State = iota // prompt ready, nothing in flight
	StateBusy              // at least one request awaiting its response
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateBusy:
		return "busy"
	default:
		return "unknown"
	}
}

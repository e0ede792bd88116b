package app

// State represents the current application state.
type State int

const (
	StateLoading State = iota // Waiting for the first dataset
	StateReady                // Table is showing data
	StateFailed               // First load failed; reload retries
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

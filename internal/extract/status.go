package extract

// State describes where an extraction run is in its lifecycle.
type State string

const (
	StateNotStarted State = "not_started"
	StateInProgress State = "in_progress"
	StateComplete   State = "complete"
	StateError      State = "error"
)

// Status is a point-in-time snapshot of the current run. Progress is
// monotonically non-decreasing within one run.
type Status struct {
	State       State
	Progress    float64
	CurrentFile string
	Error       string
}

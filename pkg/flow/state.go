package flow

// State identifies where a session is in its lifecycle.
type State string

const (
	// StateEditing is the resting state: the user can change values. A
	// session returns here when validation fails or after a reset.
	StateEditing State = "editing"

	// StateValidating is the transient state while a submission runs the
	// pipeline. Sessions hold their lock for the duration, so callers only
	// observe it from inside the pipeline itself.
	StateValidating State = "validating"

	// StateSubmitted means the last submission passed and the confirmation
	// view is showing.
	StateSubmitted State = "submitted"
)

// String implements fmt.Stringer.
func (s State) String() string { return string(s) }

package flow

import (
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/goliatone/go-formflow/pkg/fare"
)

// Session tracks one user's progress through a flow: entered values,
// validation errors, and the editing/submitted lifecycle. Sessions are safe
// for concurrent use.
type Session struct {
	mu   sync.Mutex
	flow *Flow

	state     State
	values    map[string]any
	errors    map[string][]string
	last      *Result
	resetAt   time.Time
	prefilled map[string]any
}

// NewSession starts a pristine editing session for the flow.
func (f *Flow) NewSession() *Session {
	return &Session{
		flow:   f,
		state:  StateEditing,
		values: make(map[string]any),
	}
}

// Flow returns the flow this session runs.
func (s *Session) Flow() *Flow {
	return s.flow
}

// Prefill seeds values from URL query parameters. Prefilled values survive a
// reset, so a link that selects a service keeps it selected after the form
// clears.
func (s *Session) Prefill(query url.Values) {
	seeded := s.flow.PrefillValues(query)
	if len(seeded) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.prefilled == nil {
		s.prefilled = make(map[string]any, len(seeded))
	}
	for name, value := range seeded {
		s.prefilled[name] = value
		s.values[name] = value
	}
}

// Set records a single field edit. Editing returns the session to its
// editing state and clears the field's previous error, mirroring a user
// correcting a flagged control.
func (s *Session) Set(name string, value any) error {
	if s.flow.form.FieldByName(name) == nil {
		return fmt.Errorf("flow: unknown field %q", name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.beginEditingLocked()
	s.values[name] = value
	delete(s.errors, name)
	return nil
}

// SetAll records a batch of edits, ignoring unknown fields. HTTP handlers
// use it to apply a whole POST body in one call.
func (s *Session) SetAll(values map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.beginEditingLocked()
	for name, value := range values {
		if s.flow.form.FieldByName(name) == nil {
			continue
		}
		s.values[name] = value
		delete(s.errors, name)
	}
}

// Submit runs the pipeline against the session's current values.
func (s *Session) Submit() Result {
	return s.SubmitAt(s.flow.clock())
}

// SubmitAt is Submit with an explicit instant, used for calendar validation
// and reset scheduling.
func (s *Session) SubmitAt(now time.Time) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateValidating
	result := s.flow.RunAt(s.values, now)

	if result.OK() {
		s.state = StateSubmitted
		s.values = copyValues(result.Values)
		s.errors = nil
		s.last = &result
		if delay := s.flow.resetDelay; delay > 0 {
			s.resetAt = now.Add(delay)
		}
		return result
	}

	s.state = StateEditing
	s.errors = result.Errors
	s.last = nil
	return result
}

// Tick advances the session clock. When a submitted session's reset delay
// has elapsed the form returns to a pristine state and Tick reports true.
func (s *Session) Tick(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateSubmitted || s.resetAt.IsZero() || now.Before(s.resetAt) {
		return false
	}
	s.resetLocked()
	return true
}

// Reset returns the session to a pristine editing state immediately,
// keeping only prefilled values.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

// State reports the session's lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Values returns a copy of the session's current values.
func (s *Session) Values() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyValues(s.values)
}

// Errors returns a copy of the current validation errors.
func (s *Session) Errors() map[string][]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.errors) == 0 {
		return nil
	}
	out := make(map[string][]string, len(s.errors))
	for name, messages := range s.errors {
		out[name] = append([]string(nil), messages...)
	}
	return out
}

// Result returns the last accepted submission, if the session is showing a
// confirmation.
func (s *Session) Result() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.last == nil {
		return Result{}, false
	}
	return *s.last, true
}

// Quote returns a live fare estimate for the currently selected service,
// letting the form preview the price before submission.
func (s *Session) Quote() (fare.Quote, bool) {
	s.mu.Lock()
	service := s.values[s.flow.serviceField]
	s.mu.Unlock()

	return s.flow.Estimate(service)
}

// ResetDue reports when the session will auto-reset, with ok false when no
// reset is armed.
func (s *Session) ResetDue() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.resetAt.IsZero() {
		return time.Time{}, false
	}
	return s.resetAt, true
}

func (s *Session) beginEditingLocked() {
	if s.state == StateSubmitted {
		s.last = nil
		s.resetAt = time.Time{}
	}
	s.state = StateEditing
}

func (s *Session) resetLocked() {
	s.values = copyValues(s.prefilled)
	if s.values == nil {
		s.values = make(map[string]any)
	}
	s.errors = nil
	s.last = nil
	s.state = StateEditing
	s.resetAt = time.Time{}
}

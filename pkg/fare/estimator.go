package fare

import (
	"errors"
	"fmt"
)

// ErrNoEstimate reports that a service key has no quotable fare, either
// because the key is unknown or because its base price is not positive.
var ErrNoEstimate = errors.New("fare: no estimate for service")

// Estimator answers "what would this service cost" from an immutable table.
// It is safe for concurrent use once constructed.
type Estimator struct {
	table Table
}

// Option configures the Estimator before construction.
type Option func(*Estimator)

// WithTable replaces the built-in pricing table.
func WithTable(table Table) Option {
	return func(e *Estimator) {
		e.table = table
	}
}

// New constructs an Estimator, validating whichever table ends up in use.
func New(options ...Option) (*Estimator, error) {
	est := &Estimator{table: DefaultTable()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(est)
	}
	if err := est.table.Validate(); err != nil {
		return nil, fmt.Errorf("fare: invalid table: %w", err)
	}
	return est, nil
}

// MustNew panics when construction fails. Useful for wiring defaults.
func MustNew(options ...Option) *Estimator {
	est, err := New(options...)
	if err != nil {
		panic(err)
	}
	return est
}

// Estimate looks up a service key and returns its quote. The second return
// is false when no estimate exists: unknown keys and zero-priced entries
// both stay quoteless so callers hide the price panel instead of showing a
// misleading zero.
func (e *Estimator) Estimate(key string) (Quote, bool) {
	entry, ok := e.table.Lookup(key)
	if !ok || entry.Base <= 0 {
		return Quote{}, false
	}
	return Quote{
		Service:   normalizeKey(string(entry.Key)),
		Label:     e.table.Label(string(entry.Key)),
		Base:      entry.Base,
		Surcharge: e.table.Surcharge,
		Total:     entry.Base + e.table.Surcharge,
		Currency:  e.currency(),
	}, true
}

// QuoteFor is Estimate with an error return for callers that branch on
// sentinel errors rather than booleans, such as HTTP handlers mapping
// ErrNoEstimate onto a not-found response.
func (e *Estimator) QuoteFor(key string) (Quote, error) {
	quote, ok := e.Estimate(key)
	if !ok {
		return Quote{}, fmt.Errorf("%w: %q", ErrNoEstimate, key)
	}
	return quote, nil
}

// Table returns the pricing table in use.
func (e *Estimator) Table() Table {
	return e.table
}

// Services returns the offered service keys in table order.
func (e *Estimator) Services() []Service {
	return e.table.Keys()
}

// Label resolves the display label for a service key.
func (e *Estimator) Label(key string) string {
	return e.table.Label(key)
}

func (e *Estimator) currency() string {
	if e.table.Currency != "" {
		return e.table.Currency
	}
	return DefaultCurrency
}

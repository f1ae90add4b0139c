package flow

import (
	"fmt"
	"time"

	"github.com/goliatone/go-formflow/pkg/fare"
	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/validate"
)

// Option customises a Flow before construction.
type Option func(*Flow)

// WithEstimator attaches a fare estimator keyed off the named service field.
// Submissions and live previews quote the selected service through it.
func WithEstimator(estimator *fare.Estimator, serviceField string) Option {
	return func(f *Flow) {
		f.estimator = estimator
		f.serviceField = serviceField
	}
}

// WithCrossFieldRules registers rules that relate several fields. A rule only
// runs once every field it names has passed its own checks, so users never
// see a relationship error on a field that is itself invalid.
func WithCrossFieldRules(rules ...CrossFieldRule) Option {
	return func(f *Flow) {
		for _, rule := range rules {
			if rule == nil {
				continue
			}
			f.crossRules = append(f.crossRules, rule)
		}
	}
}

// WithReference installs the confirmation code generator used on successful
// submissions. Flows without one (contact forms) issue no reference.
func WithReference(generate func() string) Option {
	return func(f *Flow) {
		f.reference = generate
	}
}

// WithResetDelay arms the post-submission reset: sessions return to a
// pristine editing state once the delay elapses.
func WithResetDelay(delay time.Duration) Option {
	return func(f *Flow) {
		f.resetDelay = delay
	}
}

// WithClock overrides the time source used for calendar validation and reset
// scheduling. Tests inject a fixed instant here.
func WithClock(now func() time.Time) Option {
	return func(f *Flow) {
		if now != nil {
			f.clock = now
		}
	}
}

// WithQueryAliases maps URL query parameter names onto form field names for
// prefilling, e.g. "service" onto "serviceType".
func WithQueryAliases(aliases map[string]string) Option {
	return func(f *Flow) {
		if len(aliases) == 0 {
			return
		}
		if f.aliases == nil {
			f.aliases = make(map[string]string, len(aliases))
		}
		for param, field := range aliases {
			f.aliases[param] = field
		}
	}
}

// WithSummaryFields restricts the confirmation summary to the named fields,
// in the given order. Without it every non-boolean field with a value is
// listed.
func WithSummaryFields(names ...string) Option {
	return func(f *Flow) {
		f.summaryFields = append([]string(nil), names...)
	}
}

// WithSummarizer replaces the built-in confirmation summary builder.
func WithSummarizer(s Summarizer) Option {
	return func(f *Flow) {
		if s != nil {
			f.summarizer = s
		}
	}
}

// Flow owns the validation pipeline for one form operation. It is immutable
// after construction and safe to share across sessions.
type Flow struct {
	form  model.FormModel
	rules map[string]*validate.Rules

	estimator    *fare.Estimator
	serviceField string

	crossRules    []CrossFieldRule
	reference     func() string
	resetDelay    time.Duration
	clock         func() time.Time
	aliases       map[string]string
	summaryFields []string
	summarizer    Summarizer
}

// New compiles the rule sets for every field of the form and applies options.
func New(form model.FormModel, options ...Option) (*Flow, error) {
	f := &Flow{
		form:  form.Clone(),
		rules: make(map[string]*validate.Rules, len(form.Fields)),
		clock: time.Now,
	}

	for _, field := range f.form.Fields {
		compiled, err := validate.Compile(field)
		if err != nil {
			return nil, fmt.Errorf("flow: field %q: %w", field.Name, err)
		}
		f.rules[field.Name] = compiled
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}

	if f.serviceField != "" {
		if f.form.FieldByName(f.serviceField) == nil {
			return nil, fmt.Errorf("flow: service field %q not in form %q", f.serviceField, f.form.OperationID)
		}
	}
	for _, rule := range f.crossRules {
		for _, name := range rule.Fields() {
			if f.form.FieldByName(name) == nil {
				return nil, fmt.Errorf("flow: cross-field rule references unknown field %q", name)
			}
		}
	}
	if f.summarizer == nil {
		f.summarizer = defaultSummarizer{}
	}

	return f, nil
}

// MustNew is New that panics on error, for wiring static flows.
func MustNew(form model.FormModel, options ...Option) *Flow {
	f, err := New(form, options...)
	if err != nil {
		panic(err)
	}
	return f
}

// Form returns a deep copy of the flow's form model for rendering.
func (f *Flow) Form() model.FormModel {
	return f.form.Clone()
}

// OperationID names the OpenAPI operation this flow submits.
func (f *Flow) OperationID() string {
	return f.form.OperationID
}

// ResetDelay reports the configured post-submission reset delay, zero when
// the confirmation view stays up indefinitely.
func (f *Flow) ResetDelay() time.Duration {
	return f.resetDelay
}

// Estimate quotes the supplied service value through the attached estimator.
// The second return is false when no estimator is attached, the service is
// unknown, or its base price is not positive.
func (f *Flow) Estimate(service any) (fare.Quote, bool) {
	if f.estimator == nil {
		return fare.Quote{}, false
	}
	text, ok := service.(string)
	if !ok {
		return fare.Quote{}, false
	}
	return f.estimator.Estimate(text)
}

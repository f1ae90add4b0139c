package flow

import (
	"time"

	"github.com/goliatone/go-formflow/pkg/fare"
)

// Result is the outcome of running a submission through the pipeline.
type Result struct {
	// State is StateSubmitted when every check passed, StateEditing when the
	// user needs to correct values.
	State State

	// Values echoes the submission. On success they are the normalized typed
	// values; on failure the raw input comes back so renderers can refill
	// controls.
	Values map[string]any

	// Errors holds validation messages keyed by field name. Every failing
	// field is present, each with its first failing check, so the user sees
	// the full picture in one pass.
	Errors map[string][]string

	// Reference is the generated confirmation code, empty when the flow does
	// not issue one or validation failed.
	Reference string

	// Quote is the fare estimate for the accepted service selection, nil
	// when the flow has no estimator or the service has no price.
	Quote *fare.Quote

	// Summary lists the accepted values as label/value lines for the
	// confirmation view.
	Summary []SummaryItem
}

// OK reports whether the submission was accepted.
func (r Result) OK() bool {
	return r.State == StateSubmitted
}

// FieldError returns the first error message recorded for a field.
func (r Result) FieldError(name string) string {
	messages := r.Errors[name]
	if len(messages) == 0 {
		return ""
	}
	return messages[0]
}

// Run validates the supplied values using the flow's clock.
func (f *Flow) Run(values map[string]any) Result {
	return f.RunAt(values, f.clock())
}

// RunAt is Run with an explicit reference instant for calendar checks.
//
// Every field is validated independently before cross-field rules run, so a
// failure in one field never hides problems in another.
func (f *Flow) RunAt(values map[string]any, now time.Time) Result {
	normalized := make(map[string]any, len(f.form.Fields))
	errs := make(map[string][]string)

	for _, field := range f.form.Fields {
		rules := f.rules[field.Name]
		if rules == nil {
			continue
		}
		value, messages := rules.NormalizeAt(values[field.Name], now)
		if len(messages) > 0 {
			errs[field.Name] = messages
			continue
		}
		if value != nil {
			normalized[field.Name] = value
		}
	}

	for _, rule := range f.crossRules {
		if !fieldsClean(rule.Fields(), errs) {
			continue
		}
		if violation := rule.Check(normalized); violation != nil {
			errs[violation.Field] = append(errs[violation.Field], violation.Message)
		}
	}

	if len(errs) > 0 {
		return Result{
			State:  StateEditing,
			Values: copyValues(values),
			Errors: errs,
		}
	}

	result := Result{
		State:  StateSubmitted,
		Values: normalized,
	}
	if f.serviceField != "" {
		if quote, ok := f.Estimate(normalized[f.serviceField]); ok {
			result.Quote = &quote
		}
	}
	if f.reference != nil {
		result.Reference = f.reference()
	}
	result.Summary = f.summarizer.Summarize(f.form, normalized, f.summaryFields, result.Quote)

	return result
}

func fieldsClean(names []string, errs map[string][]string) bool {
	for _, name := range names {
		if len(errs[name]) > 0 {
			return false
		}
	}
	return true
}

func copyValues(values map[string]any) map[string]any {
	if values == nil {
		return nil
	}
	out := make(map[string]any, len(values))
	for key, value := range values {
		out[key] = value
	}
	return out
}

package render

import (
	"time"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formflow/pkg/fare"
)

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the form model pipeline.
type RenderOptions struct {
	// Method overrides the HTTP method declared by the form model. Renderers
	// are responsible for translating unsupported verbs into browser-friendly
	// POST submissions when needed.
	Method string

	// Values pre-populates rendered controls keyed by field name, echoing the
	// user's previous input back after a failed submission.
	Values map[string]any

	// Errors surfaces validation feedback keyed by field name. Renderers map
	// these into inline messages anchored to the field's error element id.
	Errors map[string][]string

	// Quote carries the current fare estimate, if any. Renderers show an
	// estimate panel alongside the form while the user is still editing.
	Quote *fare.Quote

	// Feedback, when present, switches the renderer into its confirmation
	// view instead of the editable form.
	Feedback *Feedback

	// Theme carries resolved theme configuration (tokens, CSS variables,
	// asset URLs) that renderers can consume.
	Theme *theme.RendererConfig
}

// Feedback is the confirmation payload shown after a successful submission.
type Feedback struct {
	// Title and Body hold the confirmation copy, usually sourced from the
	// form's overlay metadata.
	Title string
	Body  string

	// Reference is the generated confirmation code, empty for flows that do
	// not issue one.
	Reference string

	// Quote is the fare estimate the submission was accepted with.
	Quote *fare.Quote

	// Summary lists the accepted values as label/value pairs in display
	// order.
	Summary []SummaryItem

	// ResetAfter, when positive, tells the renderer the form will return to
	// its pristine state after this delay.
	ResetAfter time.Duration
}

// SummaryItem is a single label/value line in the confirmation summary.
type SummaryItem struct {
	Label string
	Value string
}

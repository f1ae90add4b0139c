package formflow

import (
	"context"
	"time"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formflow/pkg/fare"
	"github.com/goliatone/go-formflow/pkg/flow"
	"github.com/goliatone/go-formflow/pkg/orchestrator"
	pkgopenapi "github.com/goliatone/go-formflow/pkg/openapi"
	"github.com/goliatone/go-formflow/pkg/render"
)

// Operation ids of the embedded flow definitions.
const (
	// FlowBooking collects a ride or delivery booking.
	FlowBooking = "createBooking"

	// FlowContact collects a support message.
	FlowContact = "sendMessage"
)

// ServiceField names the booking field the fare estimator quotes from.
const ServiceField = "serviceType"

// ReferencePrefix starts every generated booking confirmation code.
const ReferencePrefix = "BK-"

// DefaultResetDelay is how long the contact confirmation stays up before the
// session reverts to a pristine form.
const DefaultResetDelay = 5 * time.Second

// RenderOptions describes per-request overrides that renderers can use to
// prefill values, surface validation errors, or show a fare quote.
type RenderOptions = render.RenderOptions

// Feedback is the confirmation payload shown after a successful submission.
type Feedback = render.Feedback

// SummaryItem is a single label/value line in the confirmation summary.
type SummaryItem = render.SummaryItem

// Quote is a computed fare estimate.
type Quote = fare.Quote

// Result is the outcome of running a submission through a flow.
type Result = flow.Result

// Session tracks one user's editing state for a flow.
type Session = flow.Session

// Request selects an operation, renderer, and theme for a render call.
type Request = orchestrator.Request

// New builds an orchestrator wired with the embedded booking and contact
// flows: the OpenAPI document, the UI copy overlays, the default fare table,
// the pickup/drop-off distinctness rule, booking reference generation, and
// the contact auto-reset. Options append to the built-in configuration and
// can override any part of it.
func New(options ...orchestrator.Option) *orchestrator.Orchestrator {
	base := []orchestrator.Option{
		orchestrator.WithDocument(BuiltinDocument()),
		orchestrator.WithUISchemaFS(BuiltinUISchemas()),
		orchestrator.WithEstimator(fare.MustNew(), ServiceField),
		orchestrator.WithFlowOptions(FlowBooking,
			flow.WithCrossFieldRules(flow.DistinctFields("pickup", "dropoff", "Pickup and drop-off locations must be different.")),
			flow.WithReference(flow.ReferenceGenerator(ReferencePrefix, 6)),
			flow.WithSummaryFields(ServiceField, "pickup", "dropoff", "date", "time", "passengers"),
			flow.WithQueryAliases(map[string]string{"service": ServiceField}),
		),
		orchestrator.WithFlowOptions(FlowContact,
			flow.WithResetDelay(DefaultResetDelay),
		),
	}
	return orchestrator.New(append(base, options...)...)
}

// NewOrchestrator exposes the bare orchestrator constructor for callers that
// bring their own OpenAPI document instead of the embedded flows.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML loads the OpenAPI source, builds a form model for the
// requested operation, and renders it using the named renderer. It is the
// simplest entry point for callers that just want HTML output.
func GenerateHTML(ctx context.Context, source pkgopenapi.Source, operationID, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Source:      source,
		OperationID: operationID,
		Renderer:    rendererName,
	})
}

// GenerateHTMLFromDocument renders a form using a pre-loaded document,
// bypassing the loader stage while still delegating to the orchestrator.
func GenerateHTMLFromDocument(ctx context.Context, doc pkgopenapi.Document, operationID, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Document:    &doc,
		OperationID: operationID,
		Renderer:    rendererName,
	})
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme/variant choices can be resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithThemeProvider registers a go-theme provider with the orchestrator so
// renderers receive resolved partials, tokens, and assets for the default
// theme and variant.
func WithThemeProvider(provider theme.ThemeProvider, defaultTheme, defaultVariant string) orchestrator.Option {
	return orchestrator.WithThemeProvider(provider, defaultTheme, defaultVariant)
}

// WithThemeFallbacks forwards fallback partials used when deriving renderer
// configuration from a theme selection.
func WithThemeFallbacks(fallbacks map[string]string) orchestrator.Option {
	return orchestrator.WithThemeFallbacks(fallbacks)
}

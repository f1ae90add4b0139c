package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"sync"

	theme "github.com/goliatone/go-theme"

	internalLoader "github.com/goliatone/go-formflow/internal/openapi/loader"
	internalParser "github.com/goliatone/go-formflow/internal/openapi/parser"
	"github.com/goliatone/go-formflow/pkg/fare"
	"github.com/goliatone/go-formflow/pkg/flow"
	"github.com/goliatone/go-formflow/pkg/model"
	pkgopenapi "github.com/goliatone/go-formflow/pkg/openapi"
	"github.com/goliatone/go-formflow/pkg/render"
	"github.com/goliatone/go-formflow/pkg/renderers/html"
	"github.com/goliatone/go-formflow/pkg/uischema"
)

const defaultRendererName = "html"

// ErrUnknownOperation reports that the configured document does not declare
// the requested operation. HTTP surfaces branch on it to return not-found
// responses instead of server errors.
var ErrUnknownOperation = errors.New("unknown operation")

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom OpenAPI loader.
func WithLoader(loader pkgopenapi.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithParser injects a custom OpenAPI parser.
func WithParser(parser pkgopenapi.Parser) Option {
	return func(o *Orchestrator) {
		o.parser = parser
	}
}

// WithModelBuilder injects a custom form model builder.
func WithModelBuilder(builder model.Builder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithSource sets the OpenAPI document the orchestrator builds forms from.
// Requests can still override it per call.
func WithSource(src pkgopenapi.Source) Option {
	return func(o *Orchestrator) {
		o.source = src
	}
}

// WithDocument supplies an already loaded OpenAPI document, bypassing the
// loader entirely.
func WithDocument(doc pkgopenapi.Document) Option {
	return func(o *Orchestrator) {
		o.document = &doc
	}
}

// WithUIDecorators registers decorators that should run against the generated
// form model before rendering.
func WithUIDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		if len(decorators) == 0 {
			return
		}
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithUISchemaFS supplies an fs.FS holding UI schema overlay documents.
func WithUISchemaFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.uiSchemaFS = fsys
	}
}

// WithEstimator attaches a fare estimator keyed off the named service field.
// Flows built by the orchestrator quote through it, and the field's options
// are populated from the estimator's pricing table.
func WithEstimator(estimator *fare.Estimator, serviceField string) Option {
	return func(o *Orchestrator) {
		o.estimator = estimator
		o.serviceField = serviceField
	}
}

// WithFlowOptions registers flow options applied when the named operation's
// flow is built: cross-field rules, reference generators, reset delays.
func WithFlowOptions(operationID string, options ...flow.Option) Option {
	return func(o *Orchestrator) {
		if operationID == "" || len(options) == 0 {
			return
		}
		if o.flowOptions == nil {
			o.flowOptions = make(map[string][]flow.Option)
		}
		o.flowOptions[operationID] = append(o.flowOptions[operationID], options...)
	}
}

// Orchestrator wires the form pipeline together. Built forms and flows are
// cached per operation, so repeated requests do not re-parse the document.
type Orchestrator struct {
	loader          pkgopenapi.Loader
	parser          pkgopenapi.Parser
	builder         model.Builder
	registry        *render.Registry
	defaultRenderer string
	initialiseErr   error
	defaultsApplied bool

	source   pkgopenapi.Source
	document *pkgopenapi.Document

	decorators            []model.Decorator
	uiSchemaFS            fs.FS
	uiDecoratorConfigured bool

	estimator    *fare.Estimator
	serviceField string
	flowOptions  map[string][]flow.Option

	themeSelector  theme.ThemeSelector
	themeName      string
	themeVariant   string
	themeFallbacks map[string]string

	mu         sync.Mutex
	operations map[string]pkgopenapi.Operation
	forms      map[string]model.FormModel
	flows      map[string]*flow.Flow
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers
// can start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to render a form operation.
type Request struct {
	// Source identifies where the OpenAPI document lives. Optional when the
	// orchestrator already has one, or when Document is supplied.
	Source pkgopenapi.Source

	// Document allows callers to bypass the loader when they already have a
	// parsed payload.
	Document *pkgopenapi.Document

	// OperationID selects which OpenAPI operation to render into a form.
	OperationID string

	// Renderer names the renderer to use. If empty, the orchestrator falls
	// back to the configured default renderer.
	Renderer string

	// ThemeName and ThemeVariant select a theme for this render. When empty,
	// the orchestrator's configured defaults apply.
	ThemeName    string
	ThemeVariant string

	// RenderOptions carries per-request state: prefilled values, validation
	// errors, fare quotes, or submission feedback.
	RenderOptions render.RenderOptions
}

// Generate executes the loader, parser, model builder, and renderer sequence
// and returns the rendered bytes.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if req.OperationID == "" {
		return nil, errors.New("orchestrator: operation id is required")
	}

	form, err := o.formForRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	if err := o.resolveTheme(&req); err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, form, req.RenderOptions)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Form builds the decorated form model for an operation, using the
// orchestrator's configured document source. Results are cached.
func (o *Orchestrator) Form(ctx context.Context, operationID string) (model.FormModel, error) {
	if ctx == nil {
		return model.FormModel{}, errors.New("orchestrator: context is required")
	}
	if err := o.initialiseErr; err != nil {
		return model.FormModel{}, err
	}
	if operationID == "" {
		return model.FormModel{}, errors.New("orchestrator: operation id is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	return o.formLocked(ctx, operationID)
}

// Flow returns the validation flow for an operation, building and caching it
// on first use.
func (o *Orchestrator) Flow(ctx context.Context, operationID string) (*flow.Flow, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if f, ok := o.flows[operationID]; ok {
		return f, nil
	}

	form, err := o.formLocked(ctx, operationID)
	if err != nil {
		return nil, err
	}

	options := o.flowOptionsFor(form)
	f, err := flow.New(form, options...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: build flow %q: %w", operationID, err)
	}

	if o.flows == nil {
		o.flows = make(map[string]*flow.Flow)
	}
	o.flows[operationID] = f
	return f, nil
}

// Session starts a fresh editing session for an operation's flow.
func (o *Orchestrator) Session(ctx context.Context, operationID string) (*flow.Session, error) {
	f, err := o.Flow(ctx, operationID)
	if err != nil {
		return nil, err
	}
	return f.NewSession(), nil
}

// Operations lists the operation ids available in the configured document.
func (o *Orchestrator) Operations(ctx context.Context) ([]string, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	operations, err := o.operationsLocked(ctx, Request{})
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(operations))
	for id := range operations {
		names = append(names, id)
	}
	sort.Strings(names)
	return names, nil
}

func (o *Orchestrator) formForRequest(ctx context.Context, req Request) (model.FormModel, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	// Per-request documents bypass the cache; they may describe different
	// operations than the configured source.
	if req.Document != nil || req.Source != nil {
		operations, err := o.parseDocument(ctx, req)
		if err != nil {
			return model.FormModel{}, err
		}
		op, ok := operations[req.OperationID]
		if !ok {
			return model.FormModel{}, fmt.Errorf("orchestrator: operation %q: %w", req.OperationID, ErrUnknownOperation)
		}
		return o.buildForm(op)
	}

	return o.formLocked(ctx, req.OperationID)
}

func (o *Orchestrator) formLocked(ctx context.Context, operationID string) (model.FormModel, error) {
	if form, ok := o.forms[operationID]; ok {
		return form.Clone(), nil
	}

	operations, err := o.operationsLocked(ctx, Request{})
	if err != nil {
		return model.FormModel{}, err
	}

	op, ok := operations[operationID]
	if !ok {
		return model.FormModel{}, fmt.Errorf("orchestrator: operation %q: %w", operationID, ErrUnknownOperation)
	}

	form, err := o.buildForm(op)
	if err != nil {
		return model.FormModel{}, err
	}

	if o.forms == nil {
		o.forms = make(map[string]model.FormModel)
	}
	o.forms[operationID] = form.Clone()
	return form, nil
}

func (o *Orchestrator) operationsLocked(ctx context.Context, req Request) (map[string]pkgopenapi.Operation, error) {
	if o.operations != nil {
		return o.operations, nil
	}

	operations, err := o.parseDocument(ctx, req)
	if err != nil {
		return nil, err
	}
	o.operations = operations
	return operations, nil
}

func (o *Orchestrator) parseDocument(ctx context.Context, req Request) (map[string]pkgopenapi.Operation, error) {
	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return nil, err
	}

	operations, err := o.parser.Operations(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: parse operations: %w", err)
	}
	return operations, nil
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (pkgopenapi.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if o.document != nil && req.Source == nil {
		return *o.document, nil
	}

	src := req.Source
	if src == nil {
		src = o.source
	}
	if src == nil {
		return pkgopenapi.Document{}, errors.New("orchestrator: source or document is required")
	}

	doc, err := o.loader.Load(ctx, src)
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) buildForm(op pkgopenapi.Operation) (model.FormModel, error) {
	form, err := o.builder.Build(op)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("orchestrator: build form model: %w", err)
	}

	if err := o.applyDecorators(&form); err != nil {
		return model.FormModel{}, err
	}
	return form, nil
}

func (o *Orchestrator) flowOptionsFor(form model.FormModel) []flow.Option {
	var options []flow.Option
	if o.estimator != nil && o.serviceField != "" && form.FieldByName(o.serviceField) != nil {
		options = append(options, flow.WithEstimator(o.estimator, o.serviceField))
	}
	options = append(options, o.flowOptions[form.OperationID]...)
	return options
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDecorators(form *model.FormModel) error {
	if len(o.decorators) == 0 || form == nil {
		return nil
	}
	for _, decorator := range o.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(form); err != nil {
			return fmt.Errorf("orchestrator: decorate form: %w", err)
		}
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.loader == nil {
		o.loader = internalLoader.New(pkgopenapi.NewLoaderOptions())
	}
	if o.parser == nil {
		o.parser = internalParser.New(pkgopenapi.NewParserOptions())
	}
	if o.builder == nil {
		o.builder = model.NewBuilder()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := html.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}

	o.ensureServiceDecorator()
	o.ensureUIDecorator()

	o.defaultsApplied = true
}

func (o *Orchestrator) ensureServiceDecorator() {
	if o.estimator == nil || o.serviceField == "" {
		return
	}
	o.decorators = append(o.decorators, NewServiceOptionsDecorator(o.estimator, o.serviceField))
}

// ensureUIDecorator appends the overlay decorator last so overlay copy wins
// over generated defaults and service option labels.
func (o *Orchestrator) ensureUIDecorator() {
	if o.uiDecoratorConfigured {
		return
	}
	o.uiDecoratorConfigured = true

	if o.uiSchemaFS == nil {
		return
	}

	store, err := uischema.LoadFS(o.uiSchemaFS)
	if err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: load ui schema: %w", err)
		return
	}
	if store.Empty() {
		return
	}

	o.decorators = append(o.decorators, uischema.NewDecorator(store))
}

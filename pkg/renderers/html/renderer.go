package html

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/goliatone/go-formflow/pkg/fare"
	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/render"
	rendertemplate "github.com/goliatone/go-formflow/pkg/render/template"
	gotemplate "github.com/goliatone/go-formflow/pkg/render/template/gotemplate"
)

const (
	formTemplate    = "templates/form.tpl"
	successTemplate = "templates/success.tpl"

	formPartial    = "form.page"
	successPartial = "form.success"

	subtitleMetadataKey    = "subtitle"
	submitLabelMetadataKey = "submitLabel"
	pageURLMetadataKey     = "pageURL"

	defaultSubmitLabel = "Submit"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// Renderer produces a full HTML page for a form model. Field controls are
// built in Go; the surrounding page shell comes from the template bundle so
// deployments can reskin without recompiling.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer}, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render emits the editable form page, or the confirmation page when the
// options carry submission feedback.
func (r *Renderer) Render(_ context.Context, form model.FormModel, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}

	name := templateFor(options, formPartial, formTemplate)
	data := map[string]any{
		"form":  formContext(form, options),
		"theme": themeContext(options),
	}
	if options.Feedback != nil {
		name = templateFor(options, successPartial, successTemplate)
		data["feedback"] = feedbackContext(*options.Feedback)
	} else {
		data["fields_html"] = fieldsHTML(form, options)
		data["form_errors"] = formErrors(options.Errors)
		data["estimate"] = quoteContext(options.Quote)
	}

	result, err := r.templates.RenderTemplate(name, data)
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return []byte(result), nil
}

// templateFor resolves the page template through the theme's partial map,
// letting a theme retarget whole pages without a custom renderer.
func templateFor(options render.RenderOptions, partial, fallback string) string {
	if options.Theme != nil {
		if name := strings.TrimSpace(options.Theme.Partials[partial]); name != "" {
			return name
		}
	}
	return fallback
}

func formContext(form model.FormModel, options render.RenderOptions) map[string]any {
	method, override := browserMethod(form, options)
	return map[string]any{
		"id":              form.OperationID,
		"title":           formTitle(form),
		"subtitle":        form.Metadata[subtitleMetadataKey],
		"endpoint":        form.Endpoint,
		"url":             pageURL(form),
		"method":          method,
		"method_override": override,
		"submit_label":    submitLabel(form),
	}
}

// formTitle falls back to the operation summary when no overlay supplied a
// heading.
func formTitle(form model.FormModel) string {
	if title := strings.TrimSpace(form.Title); title != "" {
		return title
	}
	return strings.TrimSpace(form.Summary)
}

// pageURL is where the browser returns for a fresh copy of the form. Server
// routes usually differ from the API endpoint, so overlays can pin the page
// route in form metadata.
func pageURL(form model.FormModel) string {
	if url := strings.TrimSpace(form.Metadata[pageURLMetadataKey]); url != "" {
		return url
	}
	return form.Endpoint
}

// browserMethod maps the declared verb onto what a browser form can actually
// submit. Anything other than GET becomes POST, with the original verb kept
// as a hidden override value.
func browserMethod(form model.FormModel, options render.RenderOptions) (string, string) {
	method := strings.ToUpper(strings.TrimSpace(options.Method))
	if method == "" {
		method = strings.ToUpper(strings.TrimSpace(form.Method))
	}
	switch method {
	case "", "POST":
		return "post", ""
	case "GET":
		return "get", ""
	default:
		return "post", method
	}
}

func submitLabel(form model.FormModel) string {
	if label := strings.TrimSpace(form.Metadata[submitLabelMetadataKey]); label != "" {
		return label
	}
	return defaultSubmitLabel
}

func fieldsHTML(form model.FormModel, options render.RenderOptions) string {
	var b strings.Builder
	for _, field := range form.Fields {
		var value any
		if options.Values != nil {
			value = options.Values[field.Name]
		}
		b.WriteString(buildFieldMarkup(field, value, options.Errors[field.Name]))
	}
	return b.String()
}

func formErrors(errors map[string][]string) []any {
	merged := render.MergeFormErrors(errors[""])
	merged = render.MergeFormErrors(merged, errors["form"]...)
	out := make([]any, 0, len(merged))
	for _, message := range merged {
		out = append(out, message)
	}
	return out
}

func quoteContext(quote *fare.Quote) any {
	if quote == nil {
		return nil
	}
	return map[string]any{
		"label":     quote.Label,
		"base":      quote.FormattedBase(),
		"surcharge": quote.FormattedSurcharge(),
		"total":     quote.FormattedTotal(),
	}
}

func feedbackContext(feedback render.Feedback) map[string]any {
	summary := make([]any, 0, len(feedback.Summary))
	for _, item := range feedback.Summary {
		summary = append(summary, map[string]any{
			"label": item.Label,
			"value": item.Value,
		})
	}

	// Seconds travel as a string: the template engine normalises numbers
	// through JSON and would render them as floats.
	resetSeconds := ""
	if feedback.ResetAfter > 0 {
		seconds := int(feedback.ResetAfter.Seconds())
		if seconds < 1 {
			seconds = 1
		}
		resetSeconds = strconv.Itoa(seconds)
	}

	return map[string]any{
		"title":         feedback.Title,
		"body":          feedback.Body,
		"reference":     feedback.Reference,
		"summary":       summary,
		"estimate":      quoteContext(feedback.Quote),
		"reset_seconds": resetSeconds,
	}
}

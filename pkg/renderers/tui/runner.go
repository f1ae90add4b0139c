package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formflow/pkg/flow"
	"github.com/goliatone/go-formflow/pkg/model"
)

const (
	widgetMetadataKey       = "widget"
	optionsMetadataKey      = "options"
	subtitleMetadataKey     = "subtitle"
	successTitleMetadataKey = "successTitle"
	successBodyMetadataKey  = "successBody"
)

// Runner walks a flow session through terminal prompts.
type Runner struct {
	driver      PromptDriver
	theme       Theme
	maxAttempts int
}

// New constructs a runner with defaults (survey driver, unbounded attempts).
func New(options ...Option) (*Runner, error) {
	driver, err := newSurveyDriver()
	if err != nil {
		return nil, err
	}

	r := &Runner{driver: driver}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}
	return r, nil
}

// Run prompts for every form field, submits, and keeps re-prompting the
// fields that failed until the flow accepts the submission. The accepted
// result is returned after the confirmation has been printed.
func (r *Runner) Run(ctx context.Context, session *flow.Session) (flow.Result, error) {
	if ctx == nil {
		return flow.Result{}, errors.New("tui: context is required")
	}
	if session == nil {
		return flow.Result{}, errors.New("tui: session is required")
	}

	form := session.Flow().Form()
	if err := r.printBanner(ctx, form); err != nil {
		return flow.Result{}, err
	}

	pending := fieldNames(form)
	attempts := 0

	for {
		if err := ctx.Err(); err != nil {
			return flow.Result{}, err
		}

		if err := r.promptFields(ctx, session, form, pending); err != nil {
			return flow.Result{}, err
		}

		if quote, ok := session.Quote(); ok {
			line := fmt.Sprintf("Estimated fare (%s): %s", quote.Label, quote.FormattedTotal())
			if err := r.info(ctx, line); err != nil {
				return flow.Result{}, err
			}
		}

		result := session.Submit()
		if result.OK() {
			if err := r.printConfirmation(ctx, form, result); err != nil {
				return result, err
			}
			return result, nil
		}

		attempts++
		if r.maxAttempts > 0 && attempts >= r.maxAttempts {
			return result, ErrTooManyAttempts
		}

		if err := r.printErrors(ctx, form, result); err != nil {
			return flow.Result{}, err
		}
		pending = failingFields(form, result)
	}
}

func (r *Runner) promptFields(ctx context.Context, session *flow.Session, form model.FormModel, names []string) error {
	values := session.Values()

	for _, name := range names {
		field := form.FieldByName(name)
		if field == nil {
			continue
		}

		value, err := r.promptField(ctx, *field, values[name])
		if err != nil {
			return err
		}
		if err := session.Set(name, value); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) promptField(ctx context.Context, field model.Field, current any) (any, error) {
	label := r.theme.PromptPrefix + labelFor(field)

	switch {
	case field.Type == model.FieldTypeBoolean:
		return r.driver.Confirm(ctx, ConfirmConfig{
			Message: label,
			Default: isTruthy(current),
			Help:    field.Help,
		})

	case len(field.Enum) > 0:
		return r.promptEnum(ctx, field, label, current)

	case isTextarea(field):
		return r.driver.TextArea(ctx, TextAreaConfig{
			Message: label,
			Default: valueString(current),
			Help:    field.Help,
		})

	default:
		return r.driver.Input(ctx, InputConfig{
			Message: label,
			Default: valueString(current),
			Help:    field.Help,
		})
	}
}

func (r *Runner) promptEnum(ctx context.Context, field model.Field, label string, current any) (any, error) {
	labels := optionLabels(field)
	options := make([]string, len(field.Enum))
	for i, value := range field.Enum {
		options[i] = optionLabel(labels, value)
	}

	defaultIdx := indexOf(field.Enum, valueString(current))

	for {
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      options,
			DefaultIndex: defaultIdx,
			Help:         field.Help,
		})
		if err != nil {
			return nil, err
		}
		if idx >= 0 && idx < len(field.Enum) {
			return field.Enum[idx], nil
		}
		if err := r.info(ctx, fmt.Sprintf("Invalid %s selection", field.Name)); err != nil {
			return nil, err
		}
	}
}

func (r *Runner) printBanner(ctx context.Context, form model.FormModel) error {
	if form.Title != "" {
		if err := r.info(ctx, form.Title); err != nil {
			return err
		}
	}
	if subtitle := form.Metadata[subtitleMetadataKey]; subtitle != "" {
		if err := r.info(ctx, subtitle); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) printErrors(ctx context.Context, form model.FormModel, result flow.Result) error {
	if err := r.info(ctx, "Please correct the following:"); err != nil {
		return err
	}
	for _, field := range form.Fields {
		message := result.FieldError(field.Name)
		if message == "" {
			continue
		}
		line := fmt.Sprintf("%s%s: %s", r.theme.ErrorPrefix, labelFor(field), message)
		if err := r.driver.Info(ctx, line); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) printConfirmation(ctx context.Context, form model.FormModel, result flow.Result) error {
	title := form.Metadata[successTitleMetadataKey]
	if title == "" {
		title = "Submission accepted"
	}
	if err := r.info(ctx, title); err != nil {
		return err
	}

	if result.Reference != "" {
		if err := r.info(ctx, "Reference: "+result.Reference); err != nil {
			return err
		}
	}
	for _, item := range result.Summary {
		if err := r.info(ctx, fmt.Sprintf("  %s: %s", item.Label, item.Value)); err != nil {
			return err
		}
	}
	if body := form.Metadata[successBodyMetadataKey]; body != "" {
		if err := r.info(ctx, body); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.InfoPrefix+msg)
}

func fieldNames(form model.FormModel) []string {
	names := make([]string, 0, len(form.Fields))
	for _, field := range form.Fields {
		names = append(names, field.Name)
	}
	return names
}

func failingFields(form model.FormModel, result flow.Result) []string {
	names := make([]string, 0, len(result.Errors))
	for _, field := range form.Fields {
		if result.FieldError(field.Name) != "" {
			names = append(names, field.Name)
		}
	}
	return names
}

func labelFor(field model.Field) string {
	if strings.TrimSpace(field.Label) != "" {
		return field.Label
	}
	return field.Name
}

func isTextarea(field model.Field) bool {
	if field.Metadata[widgetMetadataKey] == "textarea" {
		return true
	}
	return field.Format == "textarea"
}

func isTruthy(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "on", "1", "yes":
			return true
		}
	}
	return false
}

func valueString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func optionLabels(field model.Field) map[string]string {
	raw := strings.TrimSpace(field.Metadata[optionsMetadataKey])
	if raw == "" {
		return nil
	}
	var labels map[string]string
	if err := json.Unmarshal([]byte(raw), &labels); err != nil {
		return nil
	}
	return labels
}

func optionLabel(labels map[string]string, option string) string {
	if label := strings.TrimSpace(labels[option]); label != "" {
		return label
	}
	if option == "" {
		return option
	}
	return strings.ToUpper(option[:1]) + option[1:]
}

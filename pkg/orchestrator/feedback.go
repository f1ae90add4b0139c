package orchestrator

import (
	"time"

	"github.com/goliatone/go-formflow/pkg/flow"
	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/render"
)

const (
	successTitleMetadataKey = "successTitle"
	successBodyMetadataKey  = "successBody"

	defaultSuccessTitle = "Submission accepted"
)

// NewFeedback converts an accepted flow result into the confirmation payload
// renderers display. Summary values are sanitized so user input cannot smuggle
// markup onto the confirmation view. Returns nil for rejected results.
func NewFeedback(form model.FormModel, result flow.Result, resetAfter time.Duration) *render.Feedback {
	if !result.OK() {
		return nil
	}

	title := form.Metadata[successTitleMetadataKey]
	if title == "" {
		title = defaultSuccessTitle
	}

	summary := make([]render.SummaryItem, 0, len(result.Summary))
	for _, item := range result.Summary {
		summary = append(summary, render.SummaryItem{
			Label: item.Label,
			Value: render.SanitizeText(item.Value),
		})
	}

	return &render.Feedback{
		Title:      title,
		Body:       form.Metadata[successBodyMetadataKey],
		Reference:  result.Reference,
		Quote:      result.Quote,
		Summary:    summary,
		ResetAfter: resetAfter,
	}
}

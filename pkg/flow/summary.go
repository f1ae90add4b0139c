package flow

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-formflow/pkg/fare"
	"github.com/goliatone/go-formflow/pkg/model"
)

// fareLabelMetadataKey lets the form overlay rename the fare line in the
// confirmation summary.
const fareLabelMetadataKey = "fareLabel"

// SummaryItem is one label/value line in the confirmation summary.
type SummaryItem struct {
	Label string
	Value string
}

// Summarizer turns accepted values into the confirmation summary.
type Summarizer interface {
	Summarize(form model.FormModel, values map[string]any, fields []string, quote *fare.Quote) []SummaryItem
}

type defaultSummarizer struct{}

// Summarize lists the requested fields (or all of them) in display order,
// skipping consents and blanks. A date field followed by a time field folds
// into a single "<date> at <time>" line, and the service selection shows the
// quote's label instead of its key. When a quote is present a final fare line
// carries the formatted total.
func (defaultSummarizer) Summarize(form model.FormModel, values map[string]any, fields []string, quote *fare.Quote) []SummaryItem {
	selected := selectFields(form, fields)

	timeValues := make(map[string]string)
	for _, field := range selected {
		if field.Format == "time" {
			if text, ok := values[field.Name].(string); ok {
				timeValues[field.Name] = text
			}
		}
	}

	items := make([]SummaryItem, 0, len(selected)+1)
	for _, field := range selected {
		if field.Type == model.FieldTypeBoolean {
			continue
		}
		if field.Format == "time" && len(timeValues) > 0 && hasDateField(selected, values) {
			continue
		}

		value, ok := displayValue(field, values[field.Name], quote)
		if !ok {
			continue
		}
		if field.Format == "date" {
			if at := firstValue(timeValues); at != "" {
				value = value + " at " + at
			}
		}

		items = append(items, SummaryItem{Label: fieldLabel(field), Value: value})
	}

	if quote != nil {
		label := strings.TrimSpace(form.Metadata[fareLabelMetadataKey])
		if label == "" {
			label = "Estimated fare"
		}
		items = append(items, SummaryItem{Label: label, Value: quote.FormattedTotal()})
	}

	return items
}

func selectFields(form model.FormModel, names []string) []model.Field {
	if len(names) == 0 {
		return form.Fields
	}
	out := make([]model.Field, 0, len(names))
	for _, name := range names {
		if field := form.FieldByName(name); field != nil {
			out = append(out, *field)
		}
	}
	return out
}

func hasDateField(fields []model.Field, values map[string]any) bool {
	for _, field := range fields {
		if field.Format != "date" {
			continue
		}
		if text, ok := values[field.Name].(string); ok && strings.TrimSpace(text) != "" {
			return true
		}
	}
	return false
}

func firstValue(m map[string]string) string {
	for _, v := range m {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func displayValue(field model.Field, value any, quote *fare.Quote) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		text := strings.TrimSpace(v)
		if text == "" {
			return "", false
		}
		if quote != nil && text == string(quote.Service) {
			return quote.Label, true
		}
		return text, true
	case int:
		return strconv.Itoa(v), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return "", false
	default:
		return "", false
	}
}

func fieldLabel(field model.Field) string {
	if strings.TrimSpace(field.Label) != "" {
		return field.Label
	}
	return field.Name
}

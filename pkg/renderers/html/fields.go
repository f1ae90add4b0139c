package html

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/render"
)

const (
	widgetMetadataKey      = "widget"
	optionsMetadataKey     = "options"
	rowsMetadataKey        = "rows"
	suggestionsMetadataKey = "suggestionsURL"
)

// buildFieldMarkup renders one field: label, control, optional help text, and
// the inline error element. The error element is always present, even when
// empty, so its id is stable for scripts and tests.
func buildFieldMarkup(field model.Field, value any, messages []string) string {
	if field.Type == model.FieldTypeBoolean {
		return buildCheckboxMarkup(field, value, messages)
	}

	var b strings.Builder
	b.Grow(512)

	openFieldContainer(&b, field, "")

	b.WriteString(`    <label for="`)
	b.WriteString(controlID(field.Name))
	b.WriteString(`">`)
	b.WriteString(html.EscapeString(labelText(field)))
	if field.Required {
		b.WriteString(` *`)
	}
	b.WriteString("</label>\n")

	switch {
	case isSelect(field):
		writeSelect(&b, field, value)
	case isTextarea(field):
		writeTextarea(&b, field, value, messages)
	default:
		writeInput(&b, field, value, messages)
	}

	writeHelp(&b, field)
	writeErrorElement(&b, field.Name, messages)

	b.WriteString("</div>\n")
	return b.String()
}

func buildCheckboxMarkup(field model.Field, value any, messages []string) string {
	var b strings.Builder
	b.Grow(320)

	openFieldContainer(&b, field, "formflow-field-checkbox")

	b.WriteString(`    <label for="`)
	b.WriteString(controlID(field.Name))
	b.WriteString(`"><input type="checkbox" id="`)
	b.WriteString(controlID(field.Name))
	b.WriteString(`" name="`)
	b.WriteString(html.EscapeString(field.Name))
	b.WriteString(`" value="true"`)
	if isChecked(value) {
		b.WriteString(` checked`)
	}
	if len(messages) > 0 {
		b.WriteString(` data-invalid="true"`)
	}
	b.WriteString(`> `)
	b.WriteString(html.EscapeString(labelText(field)))
	if field.Required {
		b.WriteString(` *`)
	}
	b.WriteString("</label>\n")

	writeHelp(&b, field)
	writeErrorElement(&b, field.Name, messages)

	b.WriteString("</div>\n")
	return b.String()
}

func openFieldContainer(b *strings.Builder, field model.Field, extraClass string) {
	b.WriteString(`<div class="`)
	b.WriteString(string(ClassField))
	if extraClass != "" {
		b.WriteByte(' ')
		b.WriteString(extraClass)
	}
	b.WriteString(`" data-field="`)
	b.WriteString(html.EscapeString(field.Name))
	b.WriteString("\">\n")
}

func writeInput(b *strings.Builder, field model.Field, value any, messages []string) {
	b.WriteString(`    <input type="`)
	b.WriteString(inputType(field))
	b.WriteString(`" id="`)
	b.WriteString(controlID(field.Name))
	b.WriteString(`" name="`)
	b.WriteString(html.EscapeString(field.Name))
	b.WriteString(`" class="`)
	b.WriteString(string(ClassControl))
	b.WriteString(`"`)

	if text := valueString(value); text != "" {
		b.WriteString(` value="`)
		b.WriteString(html.EscapeString(text))
		b.WriteString(`"`)
	}
	if field.Placeholder != "" {
		b.WriteString(` placeholder="`)
		b.WriteString(html.EscapeString(field.Placeholder))
		b.WriteString(`"`)
	}
	writeConstraintAttrs(b, field)
	if url := strings.TrimSpace(field.Metadata[suggestionsMetadataKey]); url != "" {
		b.WriteString(` data-suggestions="`)
		b.WriteString(html.EscapeString(url))
		b.WriteString(`"`)
	}
	if field.Required {
		b.WriteString(` required`)
	}
	if len(messages) > 0 {
		b.WriteString(` data-invalid="true"`)
	}
	b.WriteString(">\n")
}

func writeTextarea(b *strings.Builder, field model.Field, value any, messages []string) {
	rows := strings.TrimSpace(field.Metadata[rowsMetadataKey])
	if rows == "" {
		rows = "4"
	}

	b.WriteString(`    <textarea id="`)
	b.WriteString(controlID(field.Name))
	b.WriteString(`" name="`)
	b.WriteString(html.EscapeString(field.Name))
	b.WriteString(`" class="`)
	b.WriteString(string(ClassControl))
	b.WriteString(`" rows="`)
	b.WriteString(html.EscapeString(rows))
	b.WriteString(`"`)
	if field.Placeholder != "" {
		b.WriteString(` placeholder="`)
		b.WriteString(html.EscapeString(field.Placeholder))
		b.WriteString(`"`)
	}
	if field.Required {
		b.WriteString(` required`)
	}
	if len(messages) > 0 {
		b.WriteString(` data-invalid="true"`)
	}
	b.WriteString(`>`)
	b.WriteString(html.EscapeString(valueString(value)))
	b.WriteString("</textarea>\n")
}

func writeSelect(b *strings.Builder, field model.Field, value any) {
	current := valueString(value)
	labels := optionLabels(field)

	b.WriteString(`    <select id="`)
	b.WriteString(controlID(field.Name))
	b.WriteString(`" name="`)
	b.WriteString(html.EscapeString(field.Name))
	b.WriteString(`" class="`)
	b.WriteString(string(ClassControl))
	b.WriteString(`"`)
	if field.Required {
		b.WriteString(` required`)
	}
	b.WriteString(">\n")

	b.WriteString(`        <option value="">`)
	b.WriteString(html.EscapeString(selectPrompt(field)))
	b.WriteString("</option>\n")

	for _, option := range field.Enum {
		b.WriteString(`        <option value="`)
		b.WriteString(html.EscapeString(option))
		b.WriteString(`"`)
		if option == current {
			b.WriteString(` selected`)
		}
		b.WriteString(`>`)
		b.WriteString(html.EscapeString(optionLabel(labels, option)))
		b.WriteString("</option>\n")
	}

	b.WriteString("    </select>\n")
}

func writeHelp(b *strings.Builder, field model.Field) {
	help := strings.TrimSpace(field.Help)
	if help == "" {
		return
	}
	b.WriteString(`    <small class="`)
	b.WriteString(string(ClassHelp))
	b.WriteString(`">`)
	b.WriteString(html.EscapeString(help))
	b.WriteString("</small>\n")
}

func writeErrorElement(b *strings.Builder, name string, messages []string) {
	b.WriteString(`    <p id="`)
	b.WriteString(html.EscapeString(render.ErrorElementID(name)))
	b.WriteString(`" class="`)
	b.WriteString(string(ClassError))
	b.WriteString(`">`)
	if len(messages) > 0 {
		b.WriteString(html.EscapeString(messages[0]))
	}
	b.WriteString("</p>\n")
}

func writeConstraintAttrs(b *strings.Builder, field model.Field) {
	switch field.Type {
	case model.FieldTypeInteger:
		b.WriteString(` step="1"`)
		writeBoundAttrs(b, field)
	case model.FieldTypeNumber:
		b.WriteString(` step="any"`)
		writeBoundAttrs(b, field)
	default:
		for _, rule := range field.Validations {
			switch rule.Kind {
			case model.ValidationRuleMinLength:
				b.WriteString(` minlength="`)
				b.WriteString(html.EscapeString(rule.Params["value"]))
				b.WriteString(`"`)
			case model.ValidationRuleMaxLength:
				b.WriteString(` maxlength="`)
				b.WriteString(html.EscapeString(rule.Params["value"]))
				b.WriteString(`"`)
			}
		}
	}
}

func writeBoundAttrs(b *strings.Builder, field model.Field) {
	for _, rule := range field.Validations {
		switch rule.Kind {
		case model.ValidationRuleMin:
			b.WriteString(` min="`)
			b.WriteString(html.EscapeString(rule.Params["value"]))
			b.WriteString(`"`)
		case model.ValidationRuleMax:
			b.WriteString(` max="`)
			b.WriteString(html.EscapeString(rule.Params["value"]))
			b.WriteString(`"`)
		}
	}
}

func controlID(name string) string {
	return "ff-" + strings.TrimSpace(name)
}

func labelText(field model.Field) string {
	if strings.TrimSpace(field.Label) != "" {
		return field.Label
	}
	return field.Name
}

func selectPrompt(field model.Field) string {
	return "Select " + strings.ToLower(labelText(field))
}

func inputType(field model.Field) string {
	switch field.Type {
	case model.FieldTypeInteger, model.FieldTypeNumber:
		return "number"
	}

	switch field.Format {
	case "email":
		return "email"
	case "tel":
		return "tel"
	case "date":
		return "date"
	case "time":
		return "time"
	case "url":
		return "url"
	case "datetime-local":
		return "datetime-local"
	case "password":
		return "password"
	default:
		return "text"
	}
}

func isSelect(field model.Field) bool {
	return len(field.Enum) > 0
}

func isTextarea(field model.Field) bool {
	if field.Metadata[widgetMetadataKey] == "textarea" {
		return true
	}
	return field.Format == "textarea"
}

func isChecked(value any) bool {
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

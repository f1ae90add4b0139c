package validate

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formflow/pkg/model"
)

// Message keys recognised in model.Field.Messages. A "required" override
// replaces the missing-value copy; an "invalid" override replaces every
// format/constraint message for that field, which is how per-field copy from
// the UI schema overlay wins over the generic defaults.
const (
	MessageKeyRequired = "required"
	MessageKeyInvalid  = "invalid"
)

func requiredMessage(field model.Field) string {
	if msg := field.Messages[MessageKeyRequired]; msg != "" {
		return msg
	}
	if field.Type == model.FieldTypeBoolean {
		return fmt.Sprintf("%s must be accepted.", displayLabel(field))
	}
	return fmt.Sprintf("%s is required.", displayLabel(field))
}

func invalidMessage(field model.Field, fallback string) string {
	if msg := field.Messages[MessageKeyInvalid]; msg != "" {
		return msg
	}
	return fallback
}

func formatMessage(field model.Field) string {
	switch field.Format {
	case "email":
		return "Please enter a valid email address."
	case "tel":
		return "Please enter a valid phone number."
	case "name":
		return "Please enter a valid name."
	case "date":
		return "Please pick today or a future date."
	default:
		return fmt.Sprintf("%s has an invalid format.", displayLabel(field))
	}
}

func typeMessage(field model.Field) string {
	switch field.Type {
	case model.FieldTypeInteger:
		return fmt.Sprintf("%s must be a whole number.", displayLabel(field))
	case model.FieldTypeNumber:
		return fmt.Sprintf("%s must be a number.", displayLabel(field))
	default:
		return fmt.Sprintf("%s has an invalid value.", displayLabel(field))
	}
}

func enumMessage(field model.Field) string {
	return fmt.Sprintf("Please choose a valid %s.", strings.ToLower(displayLabel(field)))
}

func rangeMessage(field model.Field, min, max *float64) string {
	label := displayLabel(field)
	switch {
	case min != nil && max != nil:
		return fmt.Sprintf("%s must be between %s and %s.", label, trimNumber(*min), trimNumber(*max))
	case min != nil:
		return fmt.Sprintf("%s must be at least %s.", label, trimNumber(*min))
	default:
		return fmt.Sprintf("%s must be at most %s.", label, trimNumber(*max))
	}
}

func lengthMessage(field model.Field, min, max *int) string {
	label := displayLabel(field)
	switch {
	case min != nil && max != nil:
		return fmt.Sprintf("%s must be between %d and %d characters long.", label, *min, *max)
	case min != nil:
		return fmt.Sprintf("%s must be at least %d characters long.", label, *min)
	default:
		return fmt.Sprintf("%s must be at most %d characters long.", label, *max)
	}
}

func displayLabel(field model.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return field.Name
}

func trimNumber(value float64) string {
	formatted := fmt.Sprintf("%v", value)
	return strings.TrimSuffix(formatted, ".0")
}

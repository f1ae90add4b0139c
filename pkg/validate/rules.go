package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/goliatone/go-formflow/pkg/model"
)

// Rules is the compiled checker for one field. Checks run in a fixed order —
// presence, type coercion, format, enum membership, bounds, length, pattern —
// and stop at the first failure, so every invalid field surfaces exactly one
// message per submission pass. Fields never mask each other; aggregation
// across fields is the flow pipeline's job.
type Rules struct {
	field        model.Field
	min          *float64
	max          *float64
	minExclusive bool
	maxExclusive bool
	minLength    *int
	maxLength    *int
	pattern      *regexp.Regexp
}

// Compile translates a field's declared validations into an executable rule
// set. An unparsable pattern rule is a programming error in the form
// definition and fails compilation.
func Compile(field model.Field) (*Rules, error) {
	rules := &Rules{field: field}

	for _, rule := range field.Validations {
		switch rule.Kind {
		case model.ValidationRuleMin:
			value, err := parseFloatParam(rule)
			if err != nil {
				return nil, fmt.Errorf("validate: field %q: min rule: %w", field.Name, err)
			}
			rules.min = &value
			rules.minExclusive = rule.Params["exclusive"] == "true"
		case model.ValidationRuleMax:
			value, err := parseFloatParam(rule)
			if err != nil {
				return nil, fmt.Errorf("validate: field %q: max rule: %w", field.Name, err)
			}
			rules.max = &value
			rules.maxExclusive = rule.Params["exclusive"] == "true"
		case model.ValidationRuleMinLength:
			value, err := parseIntParam(rule)
			if err != nil {
				return nil, fmt.Errorf("validate: field %q: minLength rule: %w", field.Name, err)
			}
			rules.minLength = &value
		case model.ValidationRuleMaxLength:
			value, err := parseIntParam(rule)
			if err != nil {
				return nil, fmt.Errorf("validate: field %q: maxLength rule: %w", field.Name, err)
			}
			rules.maxLength = &value
		case model.ValidationRulePattern:
			expr := rule.Params["pattern"]
			compiled, err := regexp.Compile(expr)
			if err != nil {
				return nil, fmt.Errorf("validate: field %q: compile pattern %q: %w", field.Name, expr, err)
			}
			rules.pattern = compiled
		default:
			return nil, fmt.Errorf("validate: field %q: unknown rule kind %q", field.Name, rule.Kind)
		}
	}

	return rules, nil
}

// MustCompile panics on compilation failure. Useful for fixtures.
func MustCompile(field model.Field) *Rules {
	rules, err := Compile(field)
	if err != nil {
		panic(err)
	}
	return rules
}

// Field returns the field this rule set was compiled from.
func (r *Rules) Field() model.Field {
	return r.field
}

// Check validates a submitted value against the rule set using the current
// time for calendar checks. Nil means valid.
func (r *Rules) Check(value any) []string {
	return r.CheckAt(value, time.Now())
}

// CheckAt is Check with an explicit reference instant.
func (r *Rules) CheckAt(value any, now time.Time) []string {
	_, messages := r.NormalizeAt(value, now)
	return messages
}

// Normalize validates and coerces a submitted value into its canonical typed
// form (string, int, float64, or bool). Optional fields that arrive empty
// normalize to nil with no messages.
func (r *Rules) Normalize(value any) (any, []string) {
	return r.NormalizeAt(value, time.Now())
}

// NormalizeAt is Normalize with an explicit reference instant.
func (r *Rules) NormalizeAt(value any, now time.Time) (any, []string) {
	field := r.field

	if field.Type == model.FieldTypeBoolean {
		return r.normalizeBool(value)
	}

	if isEmpty(value) {
		if field.Required {
			return nil, []string{requiredMessage(field)}
		}
		return nil, nil
	}

	switch field.Type {
	case model.FieldTypeInteger:
		return r.normalizeInt(value)
	case model.FieldTypeNumber:
		return r.normalizeFloat(value)
	default:
		return r.normalizeString(value, now)
	}
}

func (r *Rules) normalizeBool(value any) (any, []string) {
	field := r.field
	parsed, ok := coerceBool(value)
	if !ok {
		return nil, []string{invalidMessage(field, typeMessage(field))}
	}
	// A required boolean models a consent checkbox: absent or false both
	// fail, since browsers omit unchecked boxes from the submission.
	if field.Required && !parsed {
		return false, []string{requiredMessage(field)}
	}
	return parsed, nil
}

func (r *Rules) normalizeInt(value any) (any, []string) {
	field := r.field
	parsed, ok := coerceInt(value)
	if !ok {
		return nil, []string{invalidMessage(field, typeMessage(field))}
	}
	if msg, failed := r.checkBounds(float64(parsed)); failed {
		return nil, []string{msg}
	}
	return parsed, nil
}

func (r *Rules) normalizeFloat(value any) (any, []string) {
	field := r.field
	parsed, ok := coerceFloat(value)
	if !ok {
		return nil, []string{invalidMessage(field, typeMessage(field))}
	}
	if msg, failed := r.checkBounds(parsed); failed {
		return nil, []string{msg}
	}
	return parsed, nil
}

func (r *Rules) normalizeString(value any, now time.Time) (any, []string) {
	field := r.field
	text := stringValue(value)

	if failed := r.checkFormat(text, now); failed {
		return nil, []string{invalidMessage(field, formatMessage(field))}
	}
	if len(field.Enum) > 0 && !containsString(field.Enum, text) {
		return nil, []string{invalidMessage(field, enumMessage(field))}
	}
	// Length limits measure the trimmed value, so padding spaces cannot
	// satisfy a minimum.
	trimmedLen := utf8.RuneCountInString(strings.TrimSpace(text))
	if r.minLength != nil && trimmedLen < *r.minLength {
		return nil, []string{invalidMessage(field, lengthMessage(field, r.minLength, r.maxLength))}
	}
	if r.maxLength != nil && trimmedLen > *r.maxLength {
		return nil, []string{invalidMessage(field, lengthMessage(field, r.minLength, r.maxLength))}
	}
	if r.pattern != nil && !r.pattern.MatchString(text) {
		return nil, []string{invalidMessage(field, formatMessage(field))}
	}
	return text, nil
}

func (r *Rules) checkFormat(text string, now time.Time) bool {
	switch r.field.Format {
	case "email":
		return !Email(text)
	case "tel":
		return !Phone(text)
	case "name":
		return !FullName(text)
	case "date":
		return !DateAt(text, now)
	default:
		return false
	}
}

func (r *Rules) checkBounds(value float64) (string, bool) {
	field := r.field
	if r.min != nil {
		if value < *r.min || (r.minExclusive && value == *r.min) {
			return invalidMessage(field, rangeMessage(field, r.min, r.max)), true
		}
	}
	if r.max != nil {
		if value > *r.max || (r.maxExclusive && value == *r.max) {
			return invalidMessage(field, rangeMessage(field, r.min, r.max)), true
		}
	}
	return "", false
}

func parseFloatParam(rule model.ValidationRule) (float64, error) {
	raw := rule.Params["value"]
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", raw, err)
	}
	return value, nil
}

func parseIntParam(rule model.ValidationRule) (int, error) {
	raw := rule.Params["value"]
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", raw, err)
	}
	return value, nil
}

func isEmpty(value any) bool {
	if value == nil {
		return true
	}
	if text, ok := value.(string); ok {
		return strings.TrimSpace(text) == ""
	}
	return false
}

func stringValue(value any) string {
	if text, ok := value.(string); ok {
		return text
	}
	return fmt.Sprint(value)
}

func containsString(haystack []string, needle string) bool {
	for _, item := range haystack {
		if item == needle {
			return true
		}
	}
	return false
}

func coerceBool(value any) (bool, bool) {
	switch v := value.(type) {
	case nil:
		return false, true
	case bool:
		return v, true
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "on", "1", "yes":
			return true, true
		case "", "false", "off", "0", "no":
			return false, true
		default:
			return false, false
		}
	default:
		return false, false
	}
}

func coerceInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	case float32:
		return coerceInt(float64(v))
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func coerceFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

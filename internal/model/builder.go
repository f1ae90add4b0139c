package model

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	pkgopenapi "github.com/goliatone/go-formflow/pkg/openapi"
)

// Options configures the behaviour of the Builder. Options are constructed by
// the public adapter in pkg/model and passed into New.
type Options struct {
	Labeler func(string) string
}

func defaultOptions() Options {
	return Options{
		Labeler: DefaultLabeler,
	}
}

// Builder converts OpenAPI operations into flat form models.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	opts := defaultOptions()
	if options.Labeler != nil {
		opts.Labeler = options.Labeler
	}
	return &Builder{opts: opts}
}

var (
	errOperationIDMissing     = errors.New("model builder: operation id is required")
	errOperationPathMissing   = errors.New("model builder: operation path is required")
	errOperationMethodMissing = errors.New("model builder: operation method is required")
)

// Build transforms an OpenAPI operation into a FormModel. The request body
// must be an object whose properties are all primitive; nested objects and
// arrays are rejected because flows validate flat submissions. Properties are
// emitted in sorted name order; display order is a decoration concern and is
// applied by the UI schema overlay.
func (b *Builder) Build(op pkgopenapi.Operation) (FormModel, error) {
	if err := validateOperation(op); err != nil {
		return FormModel{}, err
	}

	form := FormModel{
		OperationID: op.ID,
		Endpoint:    op.Path,
		Method:      strings.ToUpper(op.Method),
		Summary:     op.Summary,
		Description: op.Description,
	}

	fields, err := b.fieldsFromBody(op.RequestBody)
	if err != nil {
		return FormModel{}, err
	}
	form.Fields = fields

	return form, nil
}

func validateOperation(op pkgopenapi.Operation) error {
	if op.ID == "" {
		return errOperationIDMissing
	}
	if op.Path == "" {
		return errOperationPathMissing
	}
	if op.Method == "" {
		return errOperationMethodMissing
	}
	body := op.RequestBody
	if body.Type != "" && body.Type != "object" {
		return fmt.Errorf("model builder: operation %q: request body must be an object, got %q", op.ID, body.Type)
	}
	if len(body.Properties) == 0 {
		return fmt.Errorf("model builder: operation %q: request body declares no properties", op.ID)
	}
	return nil
}

func (b *Builder) fieldsFromBody(body pkgopenapi.Schema) ([]Field, error) {
	requiredSet := make(map[string]struct{}, len(body.Required))
	for _, item := range body.Required {
		requiredSet[item] = struct{}{}
	}

	propNames := make([]string, 0, len(body.Properties))
	for propName := range body.Properties {
		propNames = append(propNames, propName)
	}
	sort.Strings(propNames)

	fields := make([]Field, 0, len(propNames))
	for _, propName := range propNames {
		propSchema := body.Properties[propName]
		if err := rejectContainer(propName, propSchema); err != nil {
			return nil, err
		}
		_, isRequired := requiredSet[propName]
		fields = append(fields, b.fieldFromPrimitive(propName, propSchema, isRequired))
	}

	return fields, nil
}

func rejectContainer(name string, schema pkgopenapi.Schema) error {
	switch schema.Type {
	case "object":
		return fmt.Errorf("model builder: field %q: nested objects are not supported in flat forms", name)
	case "array":
		return fmt.Errorf("model builder: field %q: arrays are not supported in flat forms", name)
	}
	if len(schema.Properties) > 0 {
		return fmt.Errorf("model builder: field %q: nested objects are not supported in flat forms", name)
	}
	return nil
}

func (b *Builder) fieldFromPrimitive(name string, schema pkgopenapi.Schema, required bool) Field {
	field := Field{
		Name:        name,
		Type:        mapType(schema.Type),
		Format:      normalizeFormat(schema.Format),
		Label:       b.opts.Labeler(name),
		Description: schema.Description,
		Required:    required,
		Default:     schema.Default,
	}
	if len(schema.Enum) > 0 {
		field.Enum = stringifyEnum(schema.Enum)
	}
	applyValidations(&field, schema)
	return field
}

func mapType(schemaType string) FieldType {
	switch schemaType {
	case "integer":
		return FieldTypeInteger
	case "number":
		return FieldTypeNumber
	case "boolean":
		return FieldTypeBoolean
	default:
		return FieldTypeString
	}
}

// normalizeFormat canonicalises the schema format into the input hints the
// rule engine and renderers agree on. Unknown formats pass through untouched
// so custom hints (e.g. "name") survive.
func normalizeFormat(format string) string {
	trimmed := strings.TrimSpace(strings.ToLower(format))
	switch trimmed {
	case "phone":
		return "tel"
	case "date-time", "datetime":
		return "datetime-local"
	case "uri", "url":
		return "url"
	default:
		return trimmed
	}
}

func applyValidations(field *Field, schema pkgopenapi.Schema) {
	if field == nil {
		return
	}

	if schema.Minimum != nil {
		params := map[string]string{
			"value": formatFloat(*schema.Minimum),
		}
		if schema.ExclusiveMinimum {
			params["exclusive"] = "true"
		}
		field.Validations = append(field.Validations, ValidationRule{
			Kind:   ValidationRuleMin,
			Params: params,
		})
	}

	if schema.Maximum != nil {
		params := map[string]string{
			"value": formatFloat(*schema.Maximum),
		}
		if schema.ExclusiveMaximum {
			params["exclusive"] = "true"
		}
		field.Validations = append(field.Validations, ValidationRule{
			Kind:   ValidationRuleMax,
			Params: params,
		})
	}

	if schema.MinLength != nil {
		field.Validations = append(field.Validations, ValidationRule{
			Kind: ValidationRuleMinLength,
			Params: map[string]string{
				"value": strconv.Itoa(*schema.MinLength),
			},
		})
	}

	if schema.MaxLength != nil {
		field.Validations = append(field.Validations, ValidationRule{
			Kind: ValidationRuleMaxLength,
			Params: map[string]string{
				"value": strconv.Itoa(*schema.MaxLength),
			},
		})
	}

	if schema.Pattern != "" {
		field.Validations = append(field.Validations, ValidationRule{
			Kind: ValidationRulePattern,
			Params: map[string]string{
				"pattern": schema.Pattern,
			},
		})
	}

	if len(field.Validations) == 0 {
		field.Validations = nil
	}
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func stringifyEnum(values []any) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if value == nil {
			continue
		}
		out = append(out, fmt.Sprint(value))
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

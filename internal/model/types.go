package model

// FieldType enumerates the value kinds a submission field can carry. Flows
// operate on flat forms, so container kinds are intentionally absent; nested
// schemas are rejected by the builder instead of flattened silently.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeInteger FieldType = "integer"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
)

const (
	ValidationRuleMin       = "min"
	ValidationRuleMax       = "max"
	ValidationRuleMinLength = "minLength"
	ValidationRuleMaxLength = "maxLength"
	ValidationRulePattern   = "pattern"
)

// ValidationRule is a single constraint attached to a field. Kind is one of
// the ValidationRule* constants. Numeric bounds and length limits encode
// their threshold in Params["value"]; pattern rules keep the expression in
// Params["pattern"]. Params values stay strings so field models serialise to
// stable JSON snapshots.
type ValidationRule struct {
	Kind   string            `json:"kind"`
	Params map[string]string `json:"params,omitempty"`
}

// Field describes one named input of a flow. Format carries the input hint
// derived from the schema (email, tel, date, time, textarea); Enum holds the
// accepted values for selection fields; Messages holds per-field error copy
// keyed by "required" and "invalid", overriding the built-in defaults.
type Field struct {
	Name        string            `json:"name"`
	Type        FieldType         `json:"type"`
	Format      string            `json:"format,omitempty"`
	Required    bool              `json:"required"`
	Label       string            `json:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty"`
	Help        string            `json:"help,omitempty"`
	Description string            `json:"description,omitempty"`
	Default     any               `json:"default,omitempty"`
	Enum        []string          `json:"enum,omitempty"`
	Validations []ValidationRule  `json:"validations,omitempty"`
	Messages    map[string]string `json:"messages,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// FormModel is the flat form a flow validates and renderers display. Field
// order is the declaration order of the source document and is preserved all
// the way to the rendered output.
type FormModel struct {
	OperationID string            `json:"operationId"`
	Endpoint    string            `json:"endpoint"`
	Method      string            `json:"method"`
	Title       string            `json:"title,omitempty"`
	Summary     string            `json:"summary,omitempty"`
	Description string            `json:"description,omitempty"`
	Fields      []Field           `json:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// FieldByName returns a pointer into the Fields slice for the named field,
// nil when absent. Decorators use it to adjust fields in place.
func (m FormModel) FieldByName(name string) *Field {
	for i := range m.Fields {
		if m.Fields[i].Name == name {
			return &m.Fields[i]
		}
	}
	return nil
}

// Clone deep-copies the form so callers can decorate it without mutating the
// cached original.
func (m FormModel) Clone() FormModel {
	out := m
	out.Metadata = cloneStringMap(m.Metadata)
	if m.Fields != nil {
		out.Fields = make([]Field, len(m.Fields))
		for i, field := range m.Fields {
			out.Fields[i] = field.Clone()
		}
	}
	return out
}

// Clone deep-copies a single field.
func (f Field) Clone() Field {
	out := f
	if f.Enum != nil {
		out.Enum = append([]string(nil), f.Enum...)
	}
	if f.Validations != nil {
		out.Validations = make([]ValidationRule, len(f.Validations))
		for i, rule := range f.Validations {
			out.Validations[i] = ValidationRule{Kind: rule.Kind, Params: cloneStringMap(rule.Params)}
		}
	}
	out.Messages = cloneStringMap(f.Messages)
	out.Metadata = cloneStringMap(f.Metadata)
	return out
}

func cloneStringMap(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

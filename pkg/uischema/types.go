package uischema

// Store keeps the parsed operations from overlay documents. It is safe for
// concurrent readers when treated as immutable after construction.
type Store struct {
	operations map[string]Operation
}

// Operation describes the presentation overrides for a single OpenAPI
// operation.
type Operation struct {
	ID     string
	Source string
	Form   FormConfig
	Fields map[string]FieldConfig
}

// FormConfig carries form-level copy: headings, the submit button label, and
// the confirmation screen shown after a successful submission.
type FormConfig struct {
	Title        string            `json:"title" yaml:"title"`
	Subtitle     string            `json:"subtitle" yaml:"subtitle"`
	SubmitLabel  string            `json:"submitLabel" yaml:"submitLabel"`
	SuccessTitle string            `json:"successTitle" yaml:"successTitle"`
	SuccessBody  string            `json:"successBody" yaml:"successBody"`
	Metadata     map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// FieldConfig customises how a single field is presented. Empty values leave
// whatever the model builder derived from the OpenAPI document untouched.
type FieldConfig struct {
	Order       *int              `json:"order,omitempty" yaml:"order,omitempty"`
	Label       string            `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	HelpText    string            `json:"helpText,omitempty" yaml:"helpText,omitempty"`
	Widget      string            `json:"widget,omitempty" yaml:"widget,omitempty"`
	Messages    map[string]string `json:"messages,omitempty" yaml:"messages,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	OriginalKey string            `json:"-" yaml:"-"`
}

// Operation returns the configuration for the supplied operation id.
func (s *Store) Operation(id string) (Operation, bool) {
	if s == nil {
		return Operation{}, false
	}
	op, ok := s.operations[id]
	return op, ok
}

// Empty reports whether the store holds any operations.
func (s *Store) Empty() bool {
	return s == nil || len(s.operations) == 0
}

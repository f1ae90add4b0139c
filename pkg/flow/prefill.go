package flow

import (
	"net/url"
	"strings"

	"github.com/goliatone/go-formflow/pkg/model"
)

// PrefillValues maps URL query parameters onto form fields, honouring the
// flow's query aliases. Only string fields accept prefills; enum fields
// require a case-insensitive match and store the canonical option. Unknown
// parameters and unmatched options are ignored rather than rejected, since
// inbound links are not under the form's control.
func (f *Flow) PrefillValues(query url.Values) map[string]any {
	if len(query) == 0 {
		return nil
	}

	out := make(map[string]any)
	for param, values := range query {
		if len(values) == 0 {
			continue
		}
		raw := strings.TrimSpace(values[0])
		if raw == "" {
			continue
		}

		name := param
		if alias, ok := f.aliases[param]; ok {
			name = alias
		}
		field := f.form.FieldByName(name)
		if field == nil || field.Type != model.FieldTypeString {
			continue
		}

		if len(field.Enum) > 0 {
			if canonical, ok := matchEnum(field.Enum, raw); ok {
				out[name] = canonical
			}
			continue
		}
		out[name] = raw
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func matchEnum(options []string, candidate string) (string, bool) {
	for _, option := range options {
		if strings.EqualFold(option, candidate) {
			return option, true
		}
	}
	return "", false
}

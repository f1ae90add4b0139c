package flow

import (
	"strings"
)

// Violation reports a failed cross-field rule, anchored to the field whose
// inline message should display it.
type Violation struct {
	Field   string
	Message string
}

// CrossFieldRule checks a relationship between fields that have already
// passed their individual validation.
type CrossFieldRule interface {
	// Fields names the fields involved. The rule is skipped while any of
	// them carries its own error.
	Fields() []string

	// Check inspects the normalized values and returns nil when the rule
	// holds.
	Check(values map[string]any) *Violation
}

// CrossFieldRuleFunc adapts a function into a CrossFieldRule.
type CrossFieldRuleFunc struct {
	On  []string
	Run func(values map[string]any) *Violation
}

// Fields implements CrossFieldRule.
func (r CrossFieldRuleFunc) Fields() []string { return r.On }

// Check implements CrossFieldRule.
func (r CrossFieldRuleFunc) Check(values map[string]any) *Violation {
	if r.Run == nil {
		return nil
	}
	return r.Run(values)
}

// DistinctFields requires two text fields to hold different values, compared
// case-insensitively after trimming. The violation attaches to the second
// field, which is where users correct a duplicated destination.
func DistinctFields(first, second, message string) CrossFieldRule {
	return CrossFieldRuleFunc{
		On: []string{first, second},
		Run: func(values map[string]any) *Violation {
			a, okA := values[first].(string)
			b, okB := values[second].(string)
			if !okA || !okB {
				return nil
			}
			if !strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b)) {
				return nil
			}
			return &Violation{Field: second, Message: message}
		},
	}
}

package validate_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/validate"
)

var checkNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func TestCheckRequiredString(t *testing.T) {
	rules := validate.MustCompile(model.Field{
		Name:     "pickup",
		Type:     model.FieldTypeString,
		Label:    "Pickup Location",
		Required: true,
	})

	if diff := cmp.Diff([]string{"Pickup Location is required."}, rules.CheckAt("", checkNow)); diff != "" {
		t.Fatalf("empty value messages mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Pickup Location is required."}, rules.CheckAt("   ", checkNow)); diff != "" {
		t.Fatalf("blank value messages mismatch (-want +got):\n%s", diff)
	}
	if msgs := rules.CheckAt("Airport", checkNow); msgs != nil {
		t.Fatalf("expected no messages, got %v", msgs)
	}
}

func TestCheckOptionalFieldSkipsFormat(t *testing.T) {
	rules := validate.MustCompile(model.Field{
		Name:   "notes",
		Type:   model.FieldTypeString,
		Label:  "Notes",
		Format: "email",
	})

	if msgs := rules.CheckAt("", checkNow); msgs != nil {
		t.Fatalf("optional empty field should be valid, got %v", msgs)
	}
	if msgs := rules.CheckAt("not-an-email", checkNow); msgs == nil {
		t.Fatal("present value should still hit the format check")
	}
}

func TestCheckFormatMessages(t *testing.T) {
	cases := []struct {
		name  string
		field model.Field
		value any
		want  []string
	}{
		{
			name:  "email default copy",
			field: model.Field{Name: "email", Type: model.FieldTypeString, Label: "Email", Format: "email", Required: true},
			value: "nope",
			want:  []string{"Please enter a valid email address."},
		},
		{
			name:  "phone default copy",
			field: model.Field{Name: "phone", Type: model.FieldTypeString, Label: "Phone", Format: "tel", Required: true},
			value: "123",
			want:  []string{"Please enter a valid phone number."},
		},
		{
			name:  "name default copy",
			field: model.Field{Name: "name", Type: model.FieldTypeString, Label: "Name", Format: "name", Required: true},
			value: "Ann123",
			want:  []string{"Please enter a valid name."},
		},
		{
			name:  "date default copy",
			field: model.Field{Name: "date", Type: model.FieldTypeString, Label: "Travel Date", Format: "date", Required: true},
			value: "2026-03-14",
			want:  []string{"Please pick today or a future date."},
		},
		{
			name: "overlay override wins",
			field: model.Field{
				Name: "email", Type: model.FieldTypeString, Label: "Email", Format: "email", Required: true,
				Messages: map[string]string{validate.MessageKeyInvalid: "That address does not look right."},
			},
			value: "nope",
			want:  []string{"That address does not look right."},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rules := validate.MustCompile(tc.field)
			if diff := cmp.Diff(tc.want, rules.CheckAt(tc.value, checkNow)); diff != "" {
				t.Fatalf("messages mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCheckIntegerBounds(t *testing.T) {
	field := model.Field{
		Name:     "passengers",
		Type:     model.FieldTypeInteger,
		Label:    "Passengers",
		Required: true,
		Validations: []model.ValidationRule{
			{Kind: model.ValidationRuleMin, Params: map[string]string{"value": "1"}},
			{Kind: model.ValidationRuleMax, Params: map[string]string{"value": "8"}},
		},
	}
	rules := validate.MustCompile(field)

	cases := []struct {
		value any
		want  []string
	}{
		{"3", nil},
		{8, nil},
		{float64(2), nil},
		{"0", []string{"Passengers must be between 1 and 8."}},
		{"9", []string{"Passengers must be between 1 and 8."}},
		{"3.5", []string{"Passengers must be a whole number."}},
		{"several", []string{"Passengers must be a whole number."}},
		{nil, []string{"Passengers is required."}},
	}

	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, rules.CheckAt(tc.value, checkNow)); diff != "" {
			t.Errorf("CheckAt(%v) mismatch (-want +got):\n%s", tc.value, diff)
		}
	}
}

func TestCheckConsentBoolean(t *testing.T) {
	field := model.Field{
		Name:     "terms",
		Type:     model.FieldTypeBoolean,
		Label:    "Terms",
		Required: true,
		Messages: map[string]string{validate.MessageKeyRequired: "You must accept the terms and conditions."},
	}
	rules := validate.MustCompile(field)

	want := []string{"You must accept the terms and conditions."}
	for _, value := range []any{nil, false, "false", ""} {
		if diff := cmp.Diff(want, rules.CheckAt(value, checkNow)); diff != "" {
			t.Errorf("CheckAt(%v) mismatch (-want +got):\n%s", value, diff)
		}
	}
	for _, value := range []any{true, "true", "on", "1"} {
		if msgs := rules.CheckAt(value, checkNow); msgs != nil {
			t.Errorf("CheckAt(%v) expected valid, got %v", value, msgs)
		}
	}
}

func TestCheckMinLengthMeasuresTrimmedValue(t *testing.T) {
	field := model.Field{
		Name:     "message",
		Type:     model.FieldTypeString,
		Label:    "Message",
		Required: true,
		Validations: []model.ValidationRule{
			{Kind: model.ValidationRuleMinLength, Params: map[string]string{"value": "10"}},
		},
	}
	rules := validate.MustCompile(field)

	if msgs := rules.CheckAt("hello          ", checkNow); msgs == nil {
		t.Fatal("padded short message should fail the minimum length")
	}
	if msgs := rules.CheckAt("hello there", checkNow); msgs != nil {
		t.Fatalf("expected valid message, got %v", msgs)
	}
}

func TestCheckEnumMembership(t *testing.T) {
	field := model.Field{
		Name:     "serviceType",
		Type:     model.FieldTypeString,
		Label:    "Service Type",
		Required: true,
		Enum:     []string{"economy", "comfort", "xl"},
	}
	rules := validate.MustCompile(field)

	if msgs := rules.CheckAt("economy", checkNow); msgs != nil {
		t.Fatalf("expected member value to pass, got %v", msgs)
	}
	if diff := cmp.Diff([]string{"Please choose a valid service type."}, rules.CheckAt("rocket", checkNow)); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeCoercesValues(t *testing.T) {
	intRules := validate.MustCompile(model.Field{Name: "passengers", Type: model.FieldTypeInteger, Required: true})
	value, msgs := intRules.NormalizeAt("4", checkNow)
	if msgs != nil {
		t.Fatalf("unexpected messages: %v", msgs)
	}
	if got, ok := value.(int); !ok || got != 4 {
		t.Fatalf("expected int 4, got %T %v", value, value)
	}

	boolRules := validate.MustCompile(model.Field{Name: "updates", Type: model.FieldTypeBoolean})
	value, msgs = boolRules.NormalizeAt("on", checkNow)
	if msgs != nil {
		t.Fatalf("unexpected messages: %v", msgs)
	}
	if got, ok := value.(bool); !ok || !got {
		t.Fatalf("expected true, got %T %v", value, value)
	}
}

func TestCompileRejectsBadPattern(t *testing.T) {
	_, err := validate.Compile(model.Field{
		Name: "code",
		Type: model.FieldTypeString,
		Validations: []model.ValidationRule{
			{Kind: model.ValidationRulePattern, Params: map[string]string{"pattern": "("}},
		},
	})
	if err == nil {
		t.Fatal("expected compile error for unbalanced pattern")
	}
}

package model_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	pkgmodel "github.com/goliatone/go-formflow/pkg/model"
	pkgopenapi "github.com/goliatone/go-formflow/pkg/openapi"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func bookingOperation() pkgopenapi.Operation {
	return pkgopenapi.Operation{
		ID:          "createBooking",
		Method:      "post",
		Path:        "/bookings",
		Summary:     "Create a booking",
		Description: "Books a ride or delivery pickup.",
		RequestBody: pkgopenapi.Schema{
			Type:     "object",
			Required: []string{"email", "passengers", "phone", "pickup", "serviceType", "terms"},
			Properties: map[string]pkgopenapi.Schema{
				"email": {Type: "string", Format: "email"},
				"notes": {Type: "string", Format: "textarea", MaxLength: intPtr(500)},
				"passengers": {
					Type:    "integer",
					Default: 2,
					Minimum: floatPtr(1),
					Maximum: floatPtr(8),
				},
				"phone": {Type: "string", Format: "phone", Pattern: `^[+0-9][0-9 ()-]{6,}$`},
				"pickup": {
					Type:        "string",
					Description: "Street address for pickup.",
					MinLength:   intPtr(1),
				},
				"serviceType": {
					Type:    "string",
					Default: "economy",
					Enum:    []any{"economy", "comfort", "xl"},
				},
				"terms": {Type: "boolean"},
				"tip": {
					Type:             "number",
					Minimum:          floatPtr(0),
					ExclusiveMinimum: true,
				},
			},
		},
	}
}

func TestBuilder_CreateBooking(t *testing.T) {
	builder := pkgmodel.NewBuilder()
	form, err := builder.Build(bookingOperation())
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	want := pkgmodel.FormModel{
		OperationID: "createBooking",
		Endpoint:    "/bookings",
		Method:      "POST",
		Summary:     "Create a booking",
		Description: "Books a ride or delivery pickup.",
		Fields: []pkgmodel.Field{
			{Name: "email", Type: pkgmodel.FieldTypeString, Format: "email", Required: true, Label: "Email"},
			{
				Name: "notes", Type: pkgmodel.FieldTypeString, Format: "textarea", Label: "Notes",
				Validations: []pkgmodel.ValidationRule{
					{Kind: pkgmodel.ValidationRuleMaxLength, Params: map[string]string{"value": "500"}},
				},
			},
			{
				Name: "passengers", Type: pkgmodel.FieldTypeInteger, Required: true, Label: "Passengers", Default: 2,
				Validations: []pkgmodel.ValidationRule{
					{Kind: pkgmodel.ValidationRuleMin, Params: map[string]string{"value": "1"}},
					{Kind: pkgmodel.ValidationRuleMax, Params: map[string]string{"value": "8"}},
				},
			},
			{
				Name: "phone", Type: pkgmodel.FieldTypeString, Format: "tel", Required: true, Label: "Phone",
				Validations: []pkgmodel.ValidationRule{
					{Kind: pkgmodel.ValidationRulePattern, Params: map[string]string{"pattern": `^[+0-9][0-9 ()-]{6,}$`}},
				},
			},
			{
				Name: "pickup", Type: pkgmodel.FieldTypeString, Required: true, Label: "Pickup",
				Description: "Street address for pickup.",
				Validations: []pkgmodel.ValidationRule{
					{Kind: pkgmodel.ValidationRuleMinLength, Params: map[string]string{"value": "1"}},
				},
			},
			{
				Name: "serviceType", Type: pkgmodel.FieldTypeString, Required: true, Label: "Service Type",
				Default: "economy", Enum: []string{"economy", "comfort", "xl"},
			},
			{Name: "terms", Type: pkgmodel.FieldTypeBoolean, Required: true, Label: "Terms"},
			{
				Name: "tip", Type: pkgmodel.FieldTypeNumber, Label: "Tip",
				Validations: []pkgmodel.ValidationRule{
					{Kind: pkgmodel.ValidationRuleMin, Params: map[string]string{"value": "0", "exclusive": "true"}},
				},
			},
		},
	}

	if diff := cmp.Diff(want, form); diff != "" {
		t.Fatalf("form model mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilder_NormalizesFormats(t *testing.T) {
	cases := map[string]string{
		"phone":     "tel",
		"date-time": "datetime-local",
		"datetime":  "datetime-local",
		"uri":       "url",
		"url":       "url",
		"Date":      "date",
		"textarea":  "textarea",
	}

	for input, want := range cases {
		op := pkgopenapi.Operation{
			ID:     "probe",
			Method: "post",
			Path:   "/probe",
			RequestBody: pkgopenapi.Schema{
				Type: "object",
				Properties: map[string]pkgopenapi.Schema{
					"value": {Type: "string", Format: input},
				},
			},
		}

		form, err := pkgmodel.NewBuilder().Build(op)
		if err != nil {
			t.Fatalf("build with format %q: %v", input, err)
		}
		if got := form.Fields[0].Format; got != want {
			t.Fatalf("format %q: want %q, got %q", input, want, got)
		}
	}
}

func TestBuilder_RejectsContainers(t *testing.T) {
	cases := []struct {
		name    string
		body    pkgopenapi.Schema
		wantErr string
	}{
		{
			name: "nested object property",
			body: pkgopenapi.Schema{
				Type: "object",
				Properties: map[string]pkgopenapi.Schema{
					"address": {Type: "object", Properties: map[string]pkgopenapi.Schema{"street": {Type: "string"}}},
				},
			},
			wantErr: "nested objects are not supported",
		},
		{
			name: "array property",
			body: pkgopenapi.Schema{
				Type: "object",
				Properties: map[string]pkgopenapi.Schema{
					"stops": {Type: "array"},
				},
			},
			wantErr: "arrays are not supported",
		},
		{
			name:    "non-object body",
			body:    pkgopenapi.Schema{Type: "array"},
			wantErr: "request body must be an object",
		},
		{
			name:    "empty body",
			body:    pkgopenapi.Schema{Type: "object"},
			wantErr: "declares no properties",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			op := pkgopenapi.Operation{ID: "createBooking", Method: "post", Path: "/bookings", RequestBody: tc.body}
			if _, err := pkgmodel.NewBuilder().Build(op); err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestBuilder_RequiresOperationIdentity(t *testing.T) {
	body := pkgopenapi.Schema{
		Type:       "object",
		Properties: map[string]pkgopenapi.Schema{"name": {Type: "string"}},
	}

	cases := []struct {
		name    string
		op      pkgopenapi.Operation
		wantErr string
	}{
		{"missing id", pkgopenapi.Operation{Method: "post", Path: "/x", RequestBody: body}, "operation id is required"},
		{"missing path", pkgopenapi.Operation{ID: "x", Method: "post", RequestBody: body}, "operation path is required"},
		{"missing method", pkgopenapi.Operation{ID: "x", Path: "/x", RequestBody: body}, "operation method is required"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := pkgmodel.NewBuilder().Build(tc.op); err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestBuilder_CustomLabeler(t *testing.T) {
	builder := pkgmodel.NewBuilder(pkgmodel.WithLabeler(strings.ToUpper))
	form, err := builder.Build(pkgopenapi.Operation{
		ID:     "probe",
		Method: "post",
		Path:   "/probe",
		RequestBody: pkgopenapi.Schema{
			Type: "object",
			Properties: map[string]pkgopenapi.Schema{
				"dropoff": {Type: "string"},
			},
		},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got := form.Fields[0].Label; got != "DROPOFF" {
		t.Fatalf("expected custom labeler output, got %q", got)
	}
}

package orchestrator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/goliatone/go-formflow/pkg/fare"
	"github.com/goliatone/go-formflow/pkg/flow"
	pkgmodel "github.com/goliatone/go-formflow/pkg/model"
	pkgopenapi "github.com/goliatone/go-formflow/pkg/openapi"
	"github.com/goliatone/go-formflow/pkg/render"
)

func bookingFormModel() pkgmodel.FormModel {
	return pkgmodel.FormModel{
		OperationID: "createBooking",
		Endpoint:    "/bookings",
		Method:      "POST",
		Title:       "Book a Ride",
		Fields: []pkgmodel.Field{
			{Name: "pickup", Type: pkgmodel.FieldTypeString, Required: true, Label: "Pickup Location"},
			{Name: "dropoff", Type: pkgmodel.FieldTypeString, Required: true, Label: "Drop-off Location"},
			{Name: "serviceType", Type: pkgmodel.FieldTypeString, Required: true, Label: "Service Type"},
		},
	}
}

func contactFormModel() pkgmodel.FormModel {
	return pkgmodel.FormModel{
		OperationID: "sendMessage",
		Endpoint:    "/messages",
		Method:      "POST",
		Title:       "Contact Us",
		Fields: []pkgmodel.Field{
			{Name: "name", Type: pkgmodel.FieldTypeString, Format: "name", Required: true, Label: "Full Name"},
			{Name: "message", Type: pkgmodel.FieldTypeString, Required: true, Label: "Message"},
		},
	}
}

func stubDocument() *pkgopenapi.Document {
	doc := pkgopenapi.MustNewDocument(stubSource{}, []byte("{}"))
	return &doc
}

func TestGenerate_RendersThroughRegisteredRenderer(t *testing.T) {
	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	orch := New(
		WithParser(stubParser{operations: map[string]pkgopenapi.Operation{
			"createBooking": pkgopenapi.MustNewOperation("createBooking", "POST", "/bookings", pkgopenapi.Schema{}),
		}}),
		WithModelBuilder(stubBuilder{form: bookingFormModel()}),
		WithRegistry(registry),
		WithDefaultRenderer(renderer.Name()),
	)

	output, err := orch.Generate(context.Background(), Request{
		Document:    stubDocument(),
		OperationID: "createBooking",
		RenderOptions: render.RenderOptions{
			Values: map[string]any{"pickup": "12 North Ave"},
		},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(output) != "createBooking" {
		t.Fatalf("unexpected renderer output: %s", output)
	}
	if got := renderer.options.Values["pickup"]; got != "12 North Ave" {
		t.Fatalf("render options not forwarded, got %v", got)
	}
	if renderer.form.OperationID != "createBooking" {
		t.Fatalf("unexpected form passed to renderer: %s", renderer.form.OperationID)
	}
}

func TestGenerate_UnknownOperation(t *testing.T) {
	orch := New(
		WithParser(stubParser{operations: map[string]pkgopenapi.Operation{}}),
		WithModelBuilder(stubBuilder{form: bookingFormModel()}),
	)

	_, err := orch.Generate(context.Background(), Request{
		Document:    stubDocument(),
		OperationID: "missing",
	})
	if err == nil {
		t.Fatalf("expected error for unknown operation")
	}
	if !errors.Is(err, ErrUnknownOperation) {
		t.Fatalf("expected ErrUnknownOperation, got %v", err)
	}
	if !strings.Contains(err.Error(), `operation "missing"`) {
		t.Fatalf("error should name the operation: %v", err)
	}
}

func TestGenerate_RequiresOperationID(t *testing.T) {
	orch := New(
		WithParser(stubParser{}),
		WithModelBuilder(stubBuilder{}),
	)

	if _, err := orch.Generate(context.Background(), Request{Document: stubDocument()}); err == nil {
		t.Fatalf("expected error when operation id missing")
	}
}

func TestGenerate_FallsBackToOnlyRegisteredRenderer(t *testing.T) {
	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	// The default renderer name points at "html", which this registry does
	// not carry. Requests without an explicit renderer should still succeed
	// through the sole registered one.
	orch := New(
		WithParser(stubParser{operations: map[string]pkgopenapi.Operation{
			"createBooking": pkgopenapi.MustNewOperation("createBooking", "POST", "/bookings", pkgopenapi.Schema{}),
		}}),
		WithModelBuilder(stubBuilder{form: bookingFormModel()}),
		WithRegistry(registry),
	)

	output, err := orch.Generate(context.Background(), Request{
		Document:    stubDocument(),
		OperationID: "createBooking",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(output) != "createBooking" {
		t.Fatalf("fallback renderer not used, got %s", output)
	}

	// An explicit renderer name that is not registered stays an error.
	if _, err := orch.Generate(context.Background(), Request{
		Document:    stubDocument(),
		OperationID: "createBooking",
		Renderer:    "preact",
	}); err == nil {
		t.Fatalf("expected error for explicitly named unknown renderer")
	}
}

func TestGenerate_PerRequestDocumentBypassesCache(t *testing.T) {
	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	parser := &captureParser{operations: map[string]pkgopenapi.Operation{
		"createBooking": pkgopenapi.MustNewOperation("createBooking", "POST", "/bookings", pkgopenapi.Schema{}),
	}}

	orch := New(
		WithParser(parser),
		WithModelBuilder(stubBuilder{form: bookingFormModel()}),
		WithRegistry(registry),
		WithDefaultRenderer(renderer.Name()),
		WithDocument(pkgopenapi.MustNewDocument(stubSource{}, []byte("{}"))),
	)

	requestDoc := pkgopenapi.MustNewDocument(stubSource{location: "request-doc"}, []byte("{}"))
	if _, err := orch.Generate(context.Background(), Request{
		Document:    &requestDoc,
		OperationID: "createBooking",
	}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := orch.Operations(context.Background()); err != nil {
		t.Fatalf("operations: %v", err)
	}

	if len(parser.docs) != 2 {
		t.Fatalf("expected two parses, got %d (%v)", len(parser.docs), parser.docs)
	}
	if parser.docs[0] != "request-doc" {
		t.Fatalf("per-request document not parsed, saw %s", parser.docs[0])
	}
	if parser.docs[1] != "stub" {
		t.Fatalf("configured document not parsed for operations, saw %s", parser.docs[1])
	}
}

func TestForm_CachesBuiltModels(t *testing.T) {
	builds := 0
	builder := countingBuilder{form: bookingFormModel(), builds: &builds}

	orch := New(
		WithParser(stubParser{operations: map[string]pkgopenapi.Operation{
			"createBooking": pkgopenapi.MustNewOperation("createBooking", "POST", "/bookings", pkgopenapi.Schema{}),
		}}),
		WithModelBuilder(builder),
		WithDocument(pkgopenapi.MustNewDocument(stubSource{}, []byte("{}"))),
	)

	first, err := orch.Form(context.Background(), "createBooking")
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	first.Fields[0].Label = "mutated"

	second, err := orch.Form(context.Background(), "createBooking")
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	if builds != 1 {
		t.Fatalf("expected a single build, got %d", builds)
	}
	if second.Fields[0].Label != "Pickup Location" {
		t.Fatalf("cached form leaked a mutation: %s", second.Fields[0].Label)
	}
}

func TestForm_ServiceOptionsFromEstimator(t *testing.T) {
	orch := New(
		WithParser(stubParser{operations: map[string]pkgopenapi.Operation{
			"createBooking": pkgopenapi.MustNewOperation("createBooking", "POST", "/bookings", pkgopenapi.Schema{}),
		}}),
		WithModelBuilder(stubBuilder{form: bookingFormModel()}),
		WithDocument(pkgopenapi.MustNewDocument(stubSource{}, []byte("{}"))),
		WithEstimator(fare.MustNew(), "serviceType"),
	)

	form, err := orch.Form(context.Background(), "createBooking")
	if err != nil {
		t.Fatalf("form: %v", err)
	}

	field := form.FieldByName("serviceType")
	if field == nil {
		t.Fatalf("service field missing")
	}

	wantEnum := []string{"economy", "comfort", "xl", "premium", "delivery"}
	if len(field.Enum) != len(wantEnum) {
		t.Fatalf("unexpected enum length: %v", field.Enum)
	}
	for i, key := range wantEnum {
		if field.Enum[i] != key {
			t.Fatalf("enum[%d]: want %s, got %s", i, key, field.Enum[i])
		}
	}

	options := field.Metadata["options"]
	if !strings.Contains(options, `"economy":"Economy"`) {
		t.Fatalf("options metadata missing economy label: %s", options)
	}
	if !strings.Contains(options, `"delivery":"Delivery"`) {
		t.Fatalf("options metadata missing delivery label: %s", options)
	}
}

func TestForm_OverlayWinsOverGeneratedCopy(t *testing.T) {
	overlay := fstest.MapFS{
		"booking.yaml": &fstest.MapFile{Data: []byte(`
operations:
  createBooking:
    form:
      title: Book Your Ride
      subtitle: Fast pickups across the city
      submitLabel: Book Ride
    fields:
      serviceType:
        label: Ride Type
`)},
	}

	orch := New(
		WithParser(stubParser{operations: map[string]pkgopenapi.Operation{
			"createBooking": pkgopenapi.MustNewOperation("createBooking", "POST", "/bookings", pkgopenapi.Schema{}),
		}}),
		WithModelBuilder(stubBuilder{form: bookingFormModel()}),
		WithDocument(pkgopenapi.MustNewDocument(stubSource{}, []byte("{}"))),
		WithEstimator(fare.MustNew(), "serviceType"),
		WithUISchemaFS(overlay),
	)

	form, err := orch.Form(context.Background(), "createBooking")
	if err != nil {
		t.Fatalf("form: %v", err)
	}

	if form.Title != "Book Your Ride" {
		t.Fatalf("overlay title not applied: %s", form.Title)
	}
	if form.Metadata["subtitle"] != "Fast pickups across the city" {
		t.Fatalf("overlay subtitle not applied: %v", form.Metadata)
	}
	if form.Metadata["submitLabel"] != "Book Ride" {
		t.Fatalf("overlay submit label not applied: %v", form.Metadata)
	}

	field := form.FieldByName("serviceType")
	if field == nil {
		t.Fatalf("service field missing")
	}
	if field.Label != "Ride Type" {
		t.Fatalf("overlay label should win over generated copy, got %s", field.Label)
	}
	if len(field.Enum) == 0 {
		t.Fatalf("service options lost during overlay decoration")
	}
	if field.Metadata["options"] == "" {
		t.Fatalf("service option labels lost during overlay decoration")
	}
}

func TestNew_SurfacesBrokenOverlay(t *testing.T) {
	overlay := fstest.MapFS{
		"broken.yaml": &fstest.MapFile{Data: []byte("\toperations:\n\t\tbad")},
	}

	orch := New(
		WithParser(stubParser{}),
		WithModelBuilder(stubBuilder{}),
		WithUISchemaFS(overlay),
	)

	_, err := orch.Generate(context.Background(), Request{
		Document:    stubDocument(),
		OperationID: "createBooking",
	})
	if err == nil {
		t.Fatalf("expected initialisation error for broken overlay")
	}
	if !strings.Contains(err.Error(), "load ui schema") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFlow_AttachesEstimatorOnlyWhenServiceFieldPresent(t *testing.T) {
	builder := mapBuilder{forms: map[string]pkgmodel.FormModel{
		"createBooking": bookingFormModel(),
		"sendMessage":   contactFormModel(),
	}}

	orch := New(
		WithParser(stubParser{operations: map[string]pkgopenapi.Operation{
			"createBooking": pkgopenapi.MustNewOperation("createBooking", "POST", "/bookings", pkgopenapi.Schema{}),
			"sendMessage":   pkgopenapi.MustNewOperation("sendMessage", "POST", "/messages", pkgopenapi.Schema{}),
		}}),
		WithModelBuilder(builder),
		WithDocument(pkgopenapi.MustNewDocument(stubSource{}, []byte("{}"))),
		WithEstimator(fare.MustNew(), "serviceType"),
	)

	booking, err := orch.Flow(context.Background(), "createBooking")
	if err != nil {
		t.Fatalf("booking flow: %v", err)
	}
	if quote, ok := booking.Estimate("comfort"); !ok || quote.Total != 24 {
		t.Fatalf("booking flow should quote comfort at 24, got %+v ok=%v", quote, ok)
	}

	contact, err := orch.Flow(context.Background(), "sendMessage")
	if err != nil {
		t.Fatalf("contact flow: %v", err)
	}
	if _, ok := contact.Estimate("comfort"); ok {
		t.Fatalf("contact flow should not quote fares")
	}

	again, err := orch.Flow(context.Background(), "createBooking")
	if err != nil {
		t.Fatalf("booking flow again: %v", err)
	}
	if again != booking {
		t.Fatalf("flows should be cached per operation")
	}
}

func TestFlow_AppliesPerOperationOptions(t *testing.T) {
	orch := New(
		WithParser(stubParser{operations: map[string]pkgopenapi.Operation{
			"createBooking": pkgopenapi.MustNewOperation("createBooking", "POST", "/bookings", pkgopenapi.Schema{}),
		}}),
		WithModelBuilder(stubBuilder{form: bookingFormModel()}),
		WithDocument(pkgopenapi.MustNewDocument(stubSource{}, []byte("{}"))),
		WithEstimator(fare.MustNew(), "serviceType"),
		WithFlowOptions("createBooking",
			flow.WithReference(func() string { return "BK-FIXED1" }),
			flow.WithCrossFieldRules(flow.DistinctFields("pickup", "dropoff", "Pickup and drop-off locations must be different.")),
		),
	)

	session, err := orch.Session(context.Background(), "createBooking")
	if err != nil {
		t.Fatalf("session: %v", err)
	}

	session.SetAll(map[string]any{
		"pickup":      "12 North Ave",
		"dropoff":     "12 north ave",
		"serviceType": "comfort",
	})
	result := session.Submit()
	if result.OK() {
		t.Fatalf("identical locations should be rejected")
	}
	if len(result.Errors["dropoff"]) == 0 {
		t.Fatalf("distinct rule should report on dropoff, got %v", result.Errors)
	}

	if err := session.Set("dropoff", "48 South St"); err != nil {
		t.Fatalf("set dropoff: %v", err)
	}
	result = session.Submit()
	if !result.OK() {
		t.Fatalf("corrected submission rejected: %v", result.Errors)
	}
	if result.Reference != "BK-FIXED1" {
		t.Fatalf("configured reference generator ignored, got %s", result.Reference)
	}
	if result.Quote == nil || result.Quote.Total != 24 {
		t.Fatalf("expected comfort quote on acceptance, got %+v", result.Quote)
	}
}

func TestOperations_ListsSortedIDs(t *testing.T) {
	orch := New(
		WithParser(stubParser{operations: map[string]pkgopenapi.Operation{
			"sendMessage":   pkgopenapi.MustNewOperation("sendMessage", "POST", "/messages", pkgopenapi.Schema{}),
			"createBooking": pkgopenapi.MustNewOperation("createBooking", "POST", "/bookings", pkgopenapi.Schema{}),
		}}),
		WithModelBuilder(stubBuilder{}),
		WithDocument(pkgopenapi.MustNewDocument(stubSource{}, []byte("{}"))),
	)

	names, err := orch.Operations(context.Background())
	if err != nil {
		t.Fatalf("operations: %v", err)
	}
	if len(names) != 2 || names[0] != "createBooking" || names[1] != "sendMessage" {
		t.Fatalf("unexpected operation list: %v", names)
	}
}

func TestNewFeedback_BuildsConfirmationPayload(t *testing.T) {
	form := bookingFormModel()
	form.Metadata = map[string]string{
		"successTitle": "Booking Confirmed!",
		"successBody":  "A driver is on the way.",
	}

	result := flow.Result{
		State:     flow.StateSubmitted,
		Reference: "BK-7GK2QF",
		Summary: []flow.SummaryItem{
			{Label: "Pickup Location", Value: "<b>12 North Ave</b>"},
			{Label: "Passengers", Value: "2"},
		},
	}

	feedback := NewFeedback(form, result, 5*time.Second)
	if feedback == nil {
		t.Fatalf("expected feedback for accepted result")
	}
	if feedback.Title != "Booking Confirmed!" {
		t.Fatalf("unexpected title: %s", feedback.Title)
	}
	if feedback.Body != "A driver is on the way." {
		t.Fatalf("unexpected body: %s", feedback.Body)
	}
	if feedback.Reference != "BK-7GK2QF" {
		t.Fatalf("unexpected reference: %s", feedback.Reference)
	}
	if feedback.ResetAfter != 5*time.Second {
		t.Fatalf("unexpected reset delay: %s", feedback.ResetAfter)
	}
	if len(feedback.Summary) != 2 {
		t.Fatalf("unexpected summary length: %d", len(feedback.Summary))
	}
	if feedback.Summary[0].Value != "12 North Ave" {
		t.Fatalf("summary value not sanitized: %q", feedback.Summary[0].Value)
	}
}

func TestNewFeedback_DefaultTitleAndRejectedResults(t *testing.T) {
	form := contactFormModel()

	feedback := NewFeedback(form, flow.Result{State: flow.StateSubmitted}, 0)
	if feedback == nil {
		t.Fatalf("expected feedback for accepted result")
	}
	if feedback.Title != "Submission accepted" {
		t.Fatalf("default title missing: %s", feedback.Title)
	}

	if NewFeedback(form, flow.Result{State: flow.StateEditing}, 0) != nil {
		t.Fatalf("rejected results should not produce feedback")
	}
}

type stubSource struct {
	location string
}

func (s stubSource) Kind() pkgopenapi.SourceKind { return pkgopenapi.SourceKindFile }

func (s stubSource) Location() string {
	if s.location == "" {
		return "stub"
	}
	return s.location
}

type stubParser struct {
	operations map[string]pkgopenapi.Operation
	err        error
}

func (s stubParser) Operations(_ context.Context, _ pkgopenapi.Document) (map[string]pkgopenapi.Operation, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.operations, nil
}

type captureParser struct {
	operations map[string]pkgopenapi.Operation
	docs       []string
}

func (p *captureParser) Operations(_ context.Context, doc pkgopenapi.Document) (map[string]pkgopenapi.Operation, error) {
	p.docs = append(p.docs, doc.Location())
	return p.operations, nil
}

type stubBuilder struct {
	form pkgmodel.FormModel
	err  error
}

func (s stubBuilder) Build(pkgopenapi.Operation) (pkgmodel.FormModel, error) {
	if s.err != nil {
		return pkgmodel.FormModel{}, s.err
	}
	return s.form.Clone(), nil
}

type countingBuilder struct {
	form   pkgmodel.FormModel
	builds *int
}

func (b countingBuilder) Build(pkgopenapi.Operation) (pkgmodel.FormModel, error) {
	*b.builds++
	return b.form.Clone(), nil
}

type mapBuilder struct {
	forms map[string]pkgmodel.FormModel
}

func (b mapBuilder) Build(op pkgopenapi.Operation) (pkgmodel.FormModel, error) {
	return b.forms[op.ID].Clone(), nil
}

type captureRenderer struct {
	form    pkgmodel.FormModel
	options render.RenderOptions
}

func (r *captureRenderer) Name() string { return "capture" }

func (r *captureRenderer) ContentType() string { return "text/plain" }

func (r *captureRenderer) Render(_ context.Context, form pkgmodel.FormModel, opts render.RenderOptions) ([]byte, error) {
	r.form = form
	r.options = opts
	return []byte(form.OperationID), nil
}

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"testing/fstest"

	formflow "github.com/goliatone/go-formflow"
	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/orchestrator"
	"github.com/goliatone/go-formflow/pkg/render"
	"github.com/goliatone/go-formflow/pkg/uischema"
)

const snapshotRendererName = "form-model-snapshot"

type snapshotRenderer struct {
	path string
}

func (r *snapshotRenderer) Name() string {
	return snapshotRendererName
}

func (r *snapshotRenderer) ContentType() string {
	return "application/json"
}

func (r *snapshotRenderer) Render(_ context.Context, form model.FormModel, _ render.RenderOptions) ([]byte, error) {
	payload, err := json.MarshalIndent(form, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(r.path, payload, 0o644); err != nil {
		return nil, err
	}
	return payload, nil
}

func main() {
	var (
		operationID  = flag.String("operation", formflow.FlowBooking, "operation ID to snapshot")
		uiSchemaPath = flag.String("uischema", "", "optional UI schema overlay applied on top of the embedded ones")
		outputPath   = flag.String("output", "pkg/renderers/html/testdata/form_model.json", "output path for the serialized form model")
	)
	flag.Parse()

	ctx := context.Background()

	registry := render.NewRegistry()
	registry.MustRegister(&snapshotRenderer{path: *outputPath})

	options := []orchestrator.Option{
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(snapshotRendererName),
	}

	if *uiSchemaPath != "" {
		decorator, err := loadUIDecorator(*uiSchemaPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load UI schema: %v\n", err)
			os.Exit(1)
		}
		options = append(options, orchestrator.WithUIDecorators(decorator))
	}

	generator := formflow.New(options...)

	_, err := generator.Generate(ctx, formflow.Request{
		OperationID: *operationID,
		Renderer:    snapshotRendererName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to snapshot form model: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Wrote form model snapshot to %s\n", *outputPath)
}

func loadUIDecorator(path string) (model.Decorator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ui schema: %w", err)
	}
	fs := fstest.MapFS{
		filepath.Base(path): {
			Data: data,
		},
	}
	store, err := uischema.LoadFS(fs)
	if err != nil {
		return nil, fmt.Errorf("load ui schema: %w", err)
	}
	return uischema.NewDecorator(store), nil
}

package gotemplate_test

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-formflow/pkg/render/template/gotemplate"
)

//go:embed testdata/templates/*.tpl
var embeddedTemplates embed.FS

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}

	engine, err := gotemplate.New(gotemplate.WithFS(templatesFS))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestRenderTemplate(t *testing.T) {
	engine := newEngine(t)

	var buf bytes.Buffer
	result, err := engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, &buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	want := "Hello Ada!\n"
	if result != want {
		t.Fatalf("render result = %q, want %q", result, want)
	}
	if buf.String() != want {
		t.Fatalf("writer output = %q, want %q", buf.String(), want)
	}
}

func TestRenderString(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.Render("total: {{ amount }}", map[string]any{"amount": 20})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if result != "total: 20" {
		t.Fatalf("render result = %q", result)
	}
}

func TestGlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, err := engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	if result != "env=staging\n" {
		t.Fatalf("render result = %q", result)
	}
}

func TestRegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		if input == nil {
			return "", nil
		}
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}

	result, err := engine.RenderTemplate("use-filter", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	if result != "ADA!\n" {
		t.Fatalf("render result = %q", result)
	}
}

func TestNewRequiresTemplateSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatal("expected error when no template source configured")
	}
}

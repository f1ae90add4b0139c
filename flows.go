package formflow

import (
	"embed"
	"io/fs"

	pkgopenapi "github.com/goliatone/go-formflow/pkg/openapi"
	"github.com/goliatone/go-formflow/pkg/renderers/html"
)

//go:embed flows/openapi.yaml flows/uischema/*.yaml
var embeddedFlows embed.FS

const builtinDocumentPath = "flows/openapi.yaml"

// BuiltinDocument returns the embedded OpenAPI document describing the
// booking and contact operations.
func BuiltinDocument() pkgopenapi.Document {
	raw, err := embeddedFlows.ReadFile(builtinDocumentPath)
	if err != nil {
		// The document is embedded at build time; a read failure is a
		// packaging bug, not a runtime condition.
		panic(err)
	}
	return pkgopenapi.MustNewDocument(pkgopenapi.SourceFromFS(builtinDocumentPath), raw)
}

// BuiltinUISchemas exposes the embedded UI copy overlays (labels,
// placeholders, error messages, confirmation copy) for the built-in flows.
func BuiltinUISchemas() fs.FS {
	sub, err := fs.Sub(embeddedFlows, "flows/uischema")
	if err != nil {
		panic(err)
	}
	return sub
}

// EmbeddedTemplates exposes the built-in HTML renderer templates so callers
// can extend or retarget them without importing the renderer package
// directly.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}

// StaticAssetsFS exposes the stylesheet bundle the rendered pages link when a
// theme or a server mount provides the asset route.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServer(http.FS(formflow.StaticAssetsFS())),
//	  ),
//	)
func StaticAssetsFS() fs.FS {
	return html.AssetsFS()
}

// Package orchestrator coordinates the pipeline from OpenAPI document to
// interactive form: loading, parsing, model building, overlay decoration,
// flow construction, and rendering. It applies sensible defaults (HTML
// renderer, embedded templates) while remaining open to dependency injection
// for advanced callers.
package orchestrator

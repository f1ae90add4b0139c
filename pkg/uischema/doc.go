// Package uischema loads and applies presentation overlays that enrich
// formflow form models with human copy: labels, placeholders, help text,
// validation messages, and display order. The overlay keeps the OpenAPI
// document focused on structure and constraints while product copy lives in
// small JSON/YAML files that non-engineers can edit.
package uischema

// Package openapi exposes the public contracts for the loader and parser
// stages that turn an OpenAPI document into flow operations. Implementations
// live under internal/openapi to keep kin-openapi hidden from consumers.
package openapi

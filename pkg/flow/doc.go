// Package flow runs submissions through the validation pipeline and tracks
// the lifecycle of a form session. A Flow is built once per operation from a
// decorated form model; it compiles the field rule sets, wires optional
// cross-field rules, fare estimation, and confirmation behaviour. Sessions
// created from a Flow hold per-user state: entered values, validation errors,
// and the editing/submitted lifecycle including delayed resets.
package flow

// Package tui drives a form flow through interactive terminal prompts. The
// runner walks the form field by field, submits the collected values through
// the flow pipeline, and re-prompts only the fields that failed, so the
// terminal session matches the aggregate error behaviour of the HTML form.
package tui

// Package render defines the renderer contract shared by the HTML and
// terminal front ends, plus the per-request options they consume: echoed
// values, field errors, fare quotes, confirmation feedback, and resolved
// theme configuration. Concrete renderers live under pkg/renderers.
package render

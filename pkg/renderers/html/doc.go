// Package html renders form sessions as server-side HTML: the editable form
// with inline validation messages and a live fare estimate, or the
// confirmation view after an accepted submission. Field controls are built in
// Go; the page shell comes from embedded pongo2 templates that deployments
// can override.
package html

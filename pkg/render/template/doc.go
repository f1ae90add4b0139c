// Package template defines the template engine seam used by renderers and the
// gotemplate subpackage that implements it.
package template

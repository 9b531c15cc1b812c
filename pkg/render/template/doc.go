// Package template defines the template-engine seam used by markup renderers.
// The gotemplate subpackage provides the pongo2-backed implementation.
package template

// Package template defines the string template seam used for page name
// formulas. The gotemplate subpackage provides the pongo2-backed engine.
package template

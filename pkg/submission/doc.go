// Package submission decodes the values of a submitted page form, either from
// the form's HTTP input names or from a YAML/JSON document, into per-template
// instances, section texts and free text.
package submission

// Package formdef loads page form definitions from JSON or YAML documents.
// A form lists, in page order, the templates (with their fields), sections
// and free-text block that a submission turns into wiki page content, along
// with the embedding relationships between templates.
package formdef

// Package wikipage assembles the wikitext of a page from the components a
// submitted form produces: template calls, headed sections and a free-text
// block. Components keep their insertion order, templates may be embedded in
// a parameter of another template, and translatable content is wrapped in
// <translate> tags with its unit markers kept on their own lines.
//
// A Page is built and rendered within a single request and is not safe for
// concurrent mutation. Rendering is best effort: calls that reference missing
// template instances or a missing free-text component are ignored.
package wikipage

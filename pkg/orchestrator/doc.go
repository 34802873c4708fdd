// Package orchestrator wires form definitions, submissions, the page
// assembler and the output renderers into a single Generate call.
package orchestrator

// Package render defines the output side of page generation: the Page value
// produced by the orchestrator, the Renderer contract serialising it and a
// name-keyed Registry of renderers.
package render

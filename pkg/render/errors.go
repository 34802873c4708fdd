package render

import "errors"

var (
	// ErrRendererNotFound is returned when a requested output format has no
	// registered renderer.
	ErrRendererNotFound = errors.New("render: renderer not found")
	// ErrNoRenderers is returned when a registry is asked for a default but
	// holds no renderers.
	ErrNoRenderers = errors.New("render: no renderers registered")
)

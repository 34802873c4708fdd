package render

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry maps output format names to page renderers.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
}

// NewRegistry returns a registry holding renderers.
func NewRegistry(renderers ...Renderer) (*Registry, error) {
	r := &Registry{renderers: make(map[string]Renderer, len(renderers))}
	for _, renderer := range renderers {
		if err := r.Register(renderer); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds renderer under its Name. Names are unique.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return fmt.Errorf("render: renderer is required")
	}
	name := renderer.Name()
	if name == "" {
		return fmt.Errorf("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.renderers[name]; exists {
		return fmt.Errorf("render: renderer %q already registered", name)
	}
	r.renderers[name] = renderer
	return nil
}

// Lookup returns the renderer of format. Unknown formats wrap
// ErrRendererNotFound and list the known ones.
func (r *Registry) Lookup(format string) (Renderer, error) {
	r.mu.RLock()
	renderer, ok := r.renderers[format]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrRendererNotFound, format, strings.Join(r.Formats(), ", "))
	}
	return renderer, nil
}

// Resolve picks the renderer for a request. An explicit format must exist.
// Without one the preferred format is used when registered, otherwise the
// first format in sorted order.
func (r *Registry) Resolve(format, preferred string) (Renderer, error) {
	if format != "" {
		return r.Lookup(format)
	}

	r.mu.RLock()
	renderer, ok := r.renderers[preferred]
	r.mu.RUnlock()
	if ok {
		return renderer, nil
	}

	formats := r.Formats()
	if len(formats) == 0 {
		return nil, ErrNoRenderers
	}
	return r.Lookup(formats[0])
}

// Formats returns the registered format names in sorted order.
func (r *Registry) Formats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

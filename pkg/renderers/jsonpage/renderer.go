// Package jsonpage serialises assembled pages as JSON documents, for callers
// that post the result to an API rather than store it directly.
package jsonpage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/goliatone/go-pageforms/pkg/render"
)

// Name identifies the renderer in a render.Registry.
const Name = "json"

type Option func(*Renderer)

// WithIndent pretty-prints the document using indent per level.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// Renderer encodes render.Page values as JSON.
type Renderer struct {
	indent string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the JSON renderer. Output is indented with two spaces unless
// overridden.
func New(options ...Option) *Renderer {
	r := &Renderer{indent: "  "}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

func (r *Renderer) Render(ctx context.Context, page render.Page) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("json renderer: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		out []byte
		err error
	)
	if r.indent == "" {
		out, err = json.Marshal(page)
	} else {
		out, err = json.MarshalIndent(page, "", r.indent)
	}
	if err != nil {
		return nil, fmt.Errorf("json renderer: encode page: %w", err)
	}
	return append(out, '\n'), nil
}

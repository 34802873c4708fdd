package wikitext

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-pageforms/pkg/render"
)

// Name identifies the renderer in a render.Registry.
const Name = "wikitext"

type Option func(*Renderer)

// WithDisplayTitle prefixes the text with a {{DISPLAYTITLE:...}} magic word
// carrying the page title.
func WithDisplayTitle(enabled bool) Option {
	return func(r *Renderer) {
		r.displayTitle = enabled
	}
}

// Renderer emits the page text as stored wiki source.
type Renderer struct {
	displayTitle bool
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the wikitext renderer applying any provided options.
func New(options ...Option) *Renderer {
	r := &Renderer{}
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
	return "text/x-wiki; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, page render.Page) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("wikitext renderer: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var b strings.Builder
	if r.displayTitle && page.Title != "" {
		b.WriteString("{{DISPLAYTITLE:" + page.Title + "}}\n")
	}
	b.WriteString(page.Text)
	return []byte(b.String()), nil
}

package render

import "context"

// Page is an assembled wiki page ready to be serialised.
type Page struct {
	Form  string `json:"form"`
	Title string `json:"title,omitempty"`
	Text  string `json:"text"`
}

// Renderer serialises an assembled Page (raw wikitext, JSON, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, page Page) ([]byte, error)
}

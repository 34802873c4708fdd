package pageforms

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-pageforms/pkg/formdef"
	"github.com/goliatone/go-pageforms/pkg/orchestrator"
	"github.com/goliatone/go-pageforms/pkg/submission"
	"github.com/goliatone/go-pageforms/pkg/wikipage"
)

// Result aliases orchestrator.Result for callers using the root package.
type Result = orchestrator.Result

// Submission aliases submission.Submission.
type Submission = submission.Submission

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// NewPage returns an empty page assembler.
func NewPage(options ...wikipage.Option) *wikipage.Page {
	return wikipage.New(options...)
}

// GeneratePage assembles the page for a saved submission of the named form and
// returns it as wikitext.
func GeneratePage(ctx context.Context, form string, sub Submission, options ...orchestrator.Option) (Result, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Form:       form,
		Submission: sub,
		Submitted:  true,
	})
}

// GeneratePageFromDefinition renders an in-memory form definition, bypassing
// the form store.
func GeneratePageFromDefinition(ctx context.Context, form formdef.Form, sub Submission, options ...orchestrator.Option) (Result, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Definition: &form,
		Submission: sub,
		Submitted:  true,
	})
}

// LoadForms parses every form definition found in fsys.
func LoadForms(fsys fs.FS) (*formdef.Store, error) {
	return formdef.LoadFS(fsys)
}

// EmbeddedForms exposes the bundled example form definitions.
func EmbeddedForms() fs.FS {
	return formdef.EmbeddedFS()
}

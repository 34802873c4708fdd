package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"go.uber.org/zap"

	"github.com/goliatone/go-pageforms/pkg/formdef"
	"github.com/goliatone/go-pageforms/pkg/render"
	rendertemplate "github.com/goliatone/go-pageforms/pkg/render/template"
	"github.com/goliatone/go-pageforms/pkg/render/template/gotemplate"
	"github.com/goliatone/go-pageforms/pkg/renderers/jsonpage"
	"github.com/goliatone/go-pageforms/pkg/renderers/wikitext"
	"github.com/goliatone/go-pageforms/pkg/submission"
	"github.com/goliatone/go-pageforms/pkg/wikipage"
)

const defaultRendererName = wikitext.Name

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithStore injects an already loaded form definition store. It takes
// precedence over WithFormsFS.
func WithStore(store *formdef.Store) Option {
	return func(o *Orchestrator) {
		o.store = store
	}
}

// WithFormsFS supplies an fs.FS holding form definition documents. Pass nil to
// disable the embedded example forms.
func WithFormsFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.formsFS = fsys
		o.formsSpecified = true
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithTemplateRenderer injects the engine used to evaluate page name formulas.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(o *Orchestrator) {
		o.templates = renderer
	}
}

// WithTransformer registers a Transformer that can adjust the submission
// before the page is assembled.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithPageOptions forwards options to every assembled wikipage.Page.
func WithPageOptions(options ...wikipage.Option) Option {
	return func(o *Orchestrator) {
		o.pageOptions = append(o.pageOptions, options...)
	}
}

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator turns a form definition plus a submission into page text. It
// applies defaults (embedded example forms, wikitext and JSON renderers,
// pongo2 page name formulas) while remaining open to dependency injection.
type Orchestrator struct {
	store           *formdef.Store
	formsFS         fs.FS
	formsSpecified  bool
	registry        *render.Registry
	defaultRenderer string
	templates       rendertemplate.TemplateRenderer
	transformer     Transformer
	pageOptions     []wikipage.Option
	logger          *zap.Logger
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes a single page generation.
type Request struct {
	// Form names a definition in the configured store. Optional when
	// Definition is supplied.
	Form string

	// Definition lets callers bypass the store with an in-memory form.
	Definition *formdef.Form

	// Submission carries the values entered into the form.
	Submission submission.Submission

	// PageName overrides the form's page name formula.
	PageName string

	// Submitted reports whether the values come from a saved form. When false
	// translatable free text is prepared for display instead of storage.
	Submitted bool

	// Renderer names the output renderer. Empty selects the default.
	Renderer string
}

// Result is the outcome of Generate.
type Result struct {
	Form     string
	PageName string
	Text     string
	// FreeText is the free text as the form shows it: unwrapped for display
	// when the request was not submitted, wrapped for storage otherwise.
	FreeText    string
	ContentType string
	Output      []byte
}

// Store returns the form definitions the orchestrator resolves names against.
func (o *Orchestrator) Store() (*formdef.Store, error) {
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	return o.store, nil
}

// Generate assembles the page for req and serialises it with the selected
// renderer. Missing mandatory values are reported together and wrap
// ErrMandatoryField.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := o.initialiseErr; err != nil {
		return Result{}, err
	}

	form, err := o.resolveForm(req)
	if err != nil {
		return Result{}, err
	}

	sub := req.Submission.Clone()
	if o.transformer != nil {
		if err := o.transformer.Transform(ctx, &form, &sub); err != nil {
			return Result{}, fmt.Errorf("orchestrator: transform submission: %w", err)
		}
	}

	page, freeText, err := o.buildPage(form, sub, req.Submitted)
	if err != nil {
		return Result{}, err
	}

	pageName := req.PageName
	if pageName == "" {
		pageName, err = o.pageName(form, sub)
		if err != nil {
			return Result{}, err
		}
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return Result{}, err
	}

	text := page.Text()
	output, err := renderer.Render(ctx, render.Page{Form: form.Name, Title: pageName, Text: text})
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: render output: %w", err)
	}

	o.logger.Debug("Generated page",
		zap.String("form", form.Name),
		zap.String("page", pageName),
		zap.String("renderer", renderer.Name()),
		zap.Int("components", len(page.Components())),
	)

	return Result{
		Form:        form.Name,
		PageName:    pageName,
		Text:        text,
		FreeText:    freeText,
		ContentType: renderer.ContentType(),
		Output:      output,
	}, nil
}

func (o *Orchestrator) resolveForm(req Request) (formdef.Form, error) {
	if req.Definition != nil {
		return *req.Definition, nil
	}
	if req.Form == "" {
		return formdef.Form{}, errors.New("orchestrator: form name or definition is required")
	}
	if o.store == nil {
		return formdef.Form{}, fmt.Errorf("orchestrator: form %q: %w", req.Form, formdef.ErrFormNotFound)
	}
	form, ok := o.store.Form(req.Form)
	if !ok {
		return formdef.Form{}, fmt.Errorf("orchestrator: form %q: %w", req.Form, formdef.ErrFormNotFound)
	}
	return form, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}
	renderer, err := o.registry.Resolve(name, o.defaultRenderer)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.registry == nil {
		registry, err := render.NewRegistry(wikitext.New(), jsonpage.New())
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: renderers: %w", err)
			return
		}
		o.registry = registry
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}

	if o.templates == nil {
		engine, err := gotemplate.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: page name engine: %w", err)
			return
		}
		o.templates = engine
	}

	if o.store != nil {
		return
	}
	if !o.formsSpecified && o.formsFS == nil {
		o.formsFS = formdef.EmbeddedFS()
	}
	if o.formsFS == nil {
		return
	}

	store, err := formdef.LoadFS(o.formsFS)
	if err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: load forms: %w", err)
		return
	}
	o.store = store
	o.logger.Debug("Loaded form definitions", zap.Strings("forms", store.Names()))
}

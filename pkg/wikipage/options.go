package wikipage

// Option configures a Page.
type Option func(*Page)

// WithTranslatableTemplates renders template names through {{tntn|...}} so
// the translation extension can localise them.
func WithTranslatableTemplates(enabled bool) Option {
	return func(p *Page) {
		p.translatableTemplates = enabled
	}
}

// WithTranslationAvailable reports whether the wiki runs the translation
// extension. Without it translatable components are emitted verbatim.
func WithTranslationAvailable(enabled bool) Option {
	return func(p *Page) {
		p.translationAvailable = enabled
	}
}

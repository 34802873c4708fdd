package wikipage

// Component is one block of page content. The concrete variants are
// *Template, *Section and *FreeText.
type Component interface {
	component()
}

// ParamOptions controls how a template parameter is emitted.
type ParamOptions struct {
	Translatable bool
}

// Param is a single name/value pair inside a template call. Purely numeric
// names are positional.
type Param struct {
	Name    string
	Value   string
	Options ParamOptions
}

// Template is one call of a named template. Several templates on a page may
// share a name; they are addressed by their occurrence index.
type Template struct {
	Name           string
	AllowsMultiple bool
	Params         []Param
}

func (*Template) component() {}

func (t *Template) addParam(name, value string, opts ParamOptions) {
	t.Params = append(t.Params, Param{Name: name, Value: value, Options: opts})
}

// SectionOptions controls section emission.
type SectionOptions struct {
	HideIfEmpty bool
}

// Section is a headed block of text.
type Section struct {
	Header  string
	Level   int
	Text    string
	Options SectionOptions
}

func (*Section) component() {}

// FreeTextOptions controls how the free-text body is stored and emitted.
type FreeTextOptions struct {
	Translatable bool
}

// FreeText holds the page content that belongs to no template or section.
type FreeText struct {
	Text    string
	Options FreeTextOptions
}

func (*FreeText) component() {}

// TemplateSpec describes a template instance being added to a page.
// EmbedInTemplate and EmbedInField name the host parameter that will carry
// the rendered calls of this template; they are only honoured for the
// instance with InstanceNum 0.
type TemplateSpec struct {
	Name            string
	AllowsMultiple  bool
	InstanceNum     int
	EmbedInTemplate string
	EmbedInField    string
}

type embedKey struct {
	template string
	param    string
}

package wikipage

import (
	"strconv"
	"strings"
)

// Page accumulates the components of a wiki page and renders them into
// wikitext.
type Page struct {
	components      []Component
	embedRules      map[embedKey]string
	embedOrder      []embedKey
	freeTextInclude bool

	translatableTemplates bool
	translationAvailable  bool
}

// New constructs an empty Page.
func New(options ...Option) *Page {
	p := &Page{
		embedRules: make(map[embedKey]string),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}
	return p
}

// AddTemplate appends a template instance. The first instance of a template
// name registers its embedding rule when a host template and field are set.
func (p *Page) AddTemplate(spec TemplateSpec) {
	first := spec.InstanceNum == 0 && !p.hasTemplate(spec.Name)
	p.components = append(p.components, &Template{
		Name:           spec.Name,
		AllowsMultiple: spec.AllowsMultiple,
	})
	if !first || spec.EmbedInTemplate == "" || spec.EmbedInField == "" {
		return
	}
	key := embedKey{template: spec.EmbedInTemplate, param: spec.EmbedInField}
	if _, exists := p.embedRules[key]; exists {
		return
	}
	p.embedRules[key] = spec.Name
	p.embedOrder = append(p.embedOrder, key)
}

// AddTemplateParam appends a parameter to the instance-th template called
// name. Calls for an instance that does not exist are ignored.
func (p *Page) AddTemplateParam(name string, instance int, param, value string, opts ParamOptions) {
	if tpl := p.templateInstance(name, instance); tpl != nil {
		tpl.addParam(param, value, opts)
	}
}

// AddSection appends a headed section.
func (p *Page) AddSection(header string, level int, text string, opts SectionOptions) {
	p.components = append(p.components, &Section{
		Header:  header,
		Level:   level,
		Text:    text,
		Options: opts,
	})
}

// AddFreeText appends an empty free-text component. SetFreeText fills the
// first one present.
func (p *Page) AddFreeText(opts FreeTextOptions) {
	p.components = append(p.components, &FreeText{Options: opts})
}

// SetFreeText stores text in the first free-text component and returns the
// stored form. Translatable free text is unwrapped for display when the form
// has not been submitted yet and wrapped for storage once it has. Without a
// free-text component the text is returned unchanged and nothing is stored.
func (p *Page) SetFreeText(text string, submitted bool) string {
	for _, c := range p.components {
		ft, ok := c.(*FreeText)
		if !ok {
			continue
		}
		if p.translates(ft.Options.Translatable) {
			text = StripTranslation(text)
			if submitted {
				text = WrapTranslation(dropTranslateTags(text))
			}
		}
		ft.Text = text
		return text
	}
	return text
}

// MarkFreeTextOnlyInclude wraps the free text in <onlyinclude> on render.
func (p *Page) MarkFreeTextOnlyInclude() {
	p.freeTextInclude = true
}

// FreeTextOnlyInclude reports whether MarkFreeTextOnlyInclude was called.
func (p *Page) FreeTextOnlyInclude() bool {
	return p.freeTextInclude
}

// Components returns the page components in insertion order.
func (p *Page) Components() []Component {
	out := make([]Component, len(p.components))
	copy(out, p.components)
	return out
}

// EmbeddedTemplateFor returns the template embedded in the given host
// template parameter, if any.
func (p *Page) EmbeddedTemplateFor(template, param string) (string, bool) {
	name, ok := p.embedRules[embedKey{template: template, param: param}]
	return name, ok
}

// Text renders the page.
func (p *Page) Text() string {
	embedded := p.embeddedCalls()

	var b strings.Builder
	for _, c := range p.components {
		switch comp := c.(type) {
		case *Template:
			if _, ok := embedded[comp.Name]; ok {
				continue
			}
			b.WriteString(p.templateCall(comp, embedded, nil))
			b.WriteString("\n")
		case *Section:
			writeSection(&b, comp)
		case *FreeText:
			text := p.freeTextBody(comp)
			if p.freeTextInclude {
				text = "<onlyinclude>" + text + "</onlyinclude>"
			}
			b.WriteString(text)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// TemplateCallsFor renders every call of the named template, one per line,
// regardless of embedding.
func (p *Page) TemplateCallsFor(name string) string {
	embedded := p.embeddedCalls()

	var b strings.Builder
	for _, c := range p.components {
		tpl, ok := c.(*Template)
		if !ok || tpl.Name != name {
			continue
		}
		b.WriteString(p.templateCall(tpl, embedded, nil))
		b.WriteString("\n")
	}
	return b.String()
}

func (p *Page) hasTemplate(name string) bool {
	for _, c := range p.components {
		if tpl, ok := c.(*Template); ok && tpl.Name == name {
			return true
		}
	}
	return false
}

func (p *Page) templateInstance(name string, instance int) *Template {
	if instance < 0 {
		return nil
	}
	seen := 0
	for _, c := range p.components {
		tpl, ok := c.(*Template)
		if !ok || tpl.Name != name {
			continue
		}
		if seen == instance {
			return tpl
		}
		seen++
	}
	return nil
}

// embeddedCalls maps each embedded template name to its instances in page
// order.
func (p *Page) embeddedCalls() map[string][]*Template {
	calls := make(map[string][]*Template, len(p.embedOrder))
	for _, key := range p.embedOrder {
		name := p.embedRules[key]
		if _, done := calls[name]; done {
			continue
		}
		instances := []*Template{}
		for _, c := range p.components {
			if tpl, ok := c.(*Template); ok && tpl.Name == name {
				instances = append(instances, tpl)
			}
		}
		calls[name] = instances
	}
	return calls
}

// templateCall renders one call. active holds the template names currently
// being rendered so a template embedded in itself is not expanded again.
func (p *Page) templateCall(tpl *Template, embedded map[string][]*Template, active map[string]bool) string {
	if active == nil {
		active = make(map[string]bool)
	}
	active[tpl.Name] = true
	defer delete(active, tpl.Name)

	var b strings.Builder
	if p.translatableTemplates && tpl.Name != "" {
		b.WriteString("{{ {{tntn|" + tpl.Name + "}}")
	} else {
		b.WriteString("{{" + tpl.Name)
	}

	lastPosition := 0
	for _, param := range tpl.Params {
		child, hasChild := p.EmbeddedTemplateFor(tpl.Name, param.Name)
		if !hasChild && param.Value == "" {
			continue
		}

		if position, ok := positionalIndex(param.Name); ok {
			if position <= lastPosition {
				b.WriteString("|")
			}
			for lastPosition < position {
				b.WriteString("|")
				lastPosition++
			}
		} else {
			b.WriteString("\n|" + param.Name + "=")
		}

		if hasChild {
			if active[child] {
				continue
			}
			for _, inner := range embedded[child] {
				b.WriteString(p.templateCall(inner, embedded, active))
			}
			continue
		}
		b.WriteString(p.paramValue(param))
	}

	call := strings.TrimRight(b.String(), "|")
	if strings.Contains(call, "\n") {
		call += "\n"
	}
	return call + "}}"
}

func (p *Page) paramValue(param Param) string {
	value := param.Value
	if p.translates(param.Options.Translatable) && !strings.Contains(value, translateOpen) {
		value = WrapTranslation(value)
	}
	return value
}

func (p *Page) freeTextBody(ft *FreeText) string {
	if p.translates(ft.Options.Translatable) && !hasTranslateTags(ft.Text) {
		return WrapTranslation(ft.Text)
	}
	return ft.Text
}

func (p *Page) translates(translatable bool) bool {
	return translatable && p.translationAvailable
}

func writeSection(b *strings.Builder, s *Section) {
	if s.Text == "" && s.Options.HideIfEmpty {
		return
	}
	marks := strings.Repeat("=", headerLevel(s.Level))
	b.WriteString(marks + s.Header + marks + "\n")
	if s.Text != "" {
		b.WriteString(s.Text + "\n")
	}
	b.WriteString("\n")
}

func headerLevel(level int) int {
	switch {
	case level < 1:
		return 1
	case level > 6:
		return 6
	default:
		return level
	}
}

// positionalIndex reports whether name addresses a positional parameter.
func positionalIndex(name string) (int, bool) {
	if name == "" || strings.TrimLeft(name, "0123456789") != "" {
		return 0, false
	}
	position, err := strconv.Atoi(name)
	if err != nil || position < 1 {
		return 0, false
	}
	return position, true
}

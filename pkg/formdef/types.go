package formdef

import "sort"

// Input types understood by the prompt driver and the orchestrator.
const (
	InputText     = "text"
	InputTextArea = "textarea"
	InputDropdown = "dropdown"
	InputCheckbox = "checkbox"
	InputList     = "list"
)

const (
	defaultSectionLevel = 2
	defaultDelimiter    = ","
)

// Store keeps the parsed form definitions. It is safe for concurrent readers
// when treated as immutable after construction.
type Store struct {
	forms map[string]Form
}

// Form describes a page form: the ordered templates, sections and free text
// a submitted form turns into page content.
type Form struct {
	Name        string `json:"-" yaml:"-"`
	Source      string `json:"-" yaml:"-"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	// PageName is a template formula rendered against the submitted values
	// to name the target page, e.g. "People/{{ Person.Name|pagetitle }}".
	PageName string `json:"pageName,omitempty" yaml:"pageName,omitempty"`
	Items    []Item `json:"items" yaml:"items"`
}

// Item is one entry of a form. Exactly one of the pointers is set.
type Item struct {
	Template *TemplateDef `json:"template,omitempty" yaml:"template,omitempty"`
	Section  *SectionDef  `json:"section,omitempty" yaml:"section,omitempty"`
	FreeText *FreeTextDef `json:"freeText,omitempty" yaml:"freeText,omitempty"`
}

// TemplateDef declares a template call and the fields that fill its
// parameters.
type TemplateDef struct {
	Name     string       `json:"name" yaml:"name"`
	Label    string       `json:"label,omitempty" yaml:"label,omitempty"`
	Multiple bool         `json:"multiple,omitempty" yaml:"multiple,omitempty"`
	EmbedIn  *EmbedTarget `json:"embedIn,omitempty" yaml:"embedIn,omitempty"`
	Fields   []FieldDef   `json:"fields" yaml:"fields"`
}

// EmbedTarget names the host template parameter an embedded template is
// rendered into.
type EmbedTarget struct {
	Template string `json:"template" yaml:"template"`
	Field    string `json:"field" yaml:"field"`
}

// FieldDef declares a single template parameter.
type FieldDef struct {
	Name         string   `json:"name" yaml:"name"`
	Label        string   `json:"label,omitempty" yaml:"label,omitempty"`
	Input        string   `json:"input,omitempty" yaml:"input,omitempty"`
	Values       []string `json:"values,omitempty" yaml:"values,omitempty"`
	Default      string   `json:"default,omitempty" yaml:"default,omitempty"`
	Mandatory    bool     `json:"mandatory,omitempty" yaml:"mandatory,omitempty"`
	Translatable bool     `json:"translatable,omitempty" yaml:"translatable,omitempty"`
	// Sanitize selects an HTML policy applied to submitted values: "strict"
	// or "ugc". Empty leaves values untouched.
	Sanitize  string `json:"sanitize,omitempty" yaml:"sanitize,omitempty"`
	Delimiter string `json:"delimiter,omitempty" yaml:"delimiter,omitempty"`
	// HoldsTemplate names the template embedded in this parameter.
	HoldsTemplate string `json:"holdsTemplate,omitempty" yaml:"holdsTemplate,omitempty"`
}

// SectionDef declares a headed page section.
type SectionDef struct {
	Name        string `json:"name" yaml:"name"`
	Level       int    `json:"level,omitempty" yaml:"level,omitempty"`
	HideIfEmpty bool   `json:"hideIfEmpty,omitempty" yaml:"hideIfEmpty,omitempty"`
	Default     string `json:"default,omitempty" yaml:"default,omitempty"`
	Mandatory   bool   `json:"mandatory,omitempty" yaml:"mandatory,omitempty"`
}

// FreeTextDef declares the free-text block of the page.
type FreeTextDef struct {
	Label        string `json:"label,omitempty" yaml:"label,omitempty"`
	Translatable bool   `json:"translatable,omitempty" yaml:"translatable,omitempty"`
	OnlyInclude  bool   `json:"onlyInclude,omitempty" yaml:"onlyInclude,omitempty"`
	Default      string `json:"default,omitempty" yaml:"default,omitempty"`
}

// Form returns the definition registered under name.
func (s *Store) Form(name string) (Form, bool) {
	if s == nil {
		return Form{}, false
	}
	form, ok := s.forms[name]
	return form, ok
}

// Names returns the registered form names in sorted order.
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.forms))
	for name := range s.forms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Empty reports whether the store holds any forms.
func (s *Store) Empty() bool {
	return s == nil || len(s.forms) == 0
}

// Template returns the template definition called name.
func (f Form) Template(name string) (*TemplateDef, bool) {
	for _, item := range f.Items {
		if item.Template != nil && item.Template.Name == name {
			return item.Template, true
		}
	}
	return nil, false
}

// FreeText returns the free-text definition, if the form has one.
func (f Form) FreeText() (*FreeTextDef, bool) {
	for _, item := range f.Items {
		if item.FreeText != nil {
			return item.FreeText, true
		}
	}
	return nil, false
}

// Field returns the field called name.
func (t *TemplateDef) Field(name string) (*FieldDef, bool) {
	if t == nil {
		return nil, false
	}
	for i := range t.Fields {
		if t.Fields[i].Name == name {
			return &t.Fields[i], true
		}
	}
	return nil, false
}

// DisplayLabel returns the label shown to editors.
func (t *TemplateDef) DisplayLabel() string {
	if t.Label != "" {
		return t.Label
	}
	return t.Name
}

// DisplayLabel returns the label shown to editors.
func (f FieldDef) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

// ListDelimiter returns the separator used to join list values.
func (f FieldDef) ListDelimiter() string {
	if f.Delimiter != "" {
		return f.Delimiter
	}
	return defaultDelimiter
}

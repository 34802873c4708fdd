package submission

import (
	"sort"
	"strings"
)

// Values maps template field names to submitted values. List inputs carry
// several values; everything else carries exactly one.
type Values map[string][]string

// Set stores a single value for field.
func (v Values) Set(field, value string) {
	v[field] = []string{value}
}

// Lookup returns the values submitted for field.
func (v Values) Lookup(field string) ([]string, bool) {
	values, ok := v[field]
	return values, ok
}

// Submission is the content of a submitted page form, grouped by form item.
type Submission struct {
	Templates map[string][]Values
	Sections  map[string]string
	FreeText  *string
}

// New returns an empty Submission.
func New() Submission {
	return Submission{
		Templates: make(map[string][]Values),
		Sections:  make(map[string]string),
	}
}

// AddInstance appends an instance of template and returns its index.
func (s *Submission) AddInstance(template string, values Values) int {
	if s.Templates == nil {
		s.Templates = make(map[string][]Values)
	}
	if values == nil {
		values = Values{}
	}
	s.Templates[template] = append(s.Templates[template], values)
	return len(s.Templates[template]) - 1
}

// Instances returns the submitted instances of template in order.
func (s Submission) Instances(template string) []Values {
	return s.Templates[template]
}

// Value returns the values of field in the given instance of template.
func (s Submission) Value(template string, instance int, field string) ([]string, bool) {
	instances := s.Templates[template]
	if instance < 0 || instance >= len(instances) {
		return nil, false
	}
	return instances[instance].Lookup(field)
}

// SetSection stores the text of a section.
func (s *Submission) SetSection(name, text string) {
	if s.Sections == nil {
		s.Sections = make(map[string]string)
	}
	s.Sections[name] = text
}

// Section returns the submitted text of a section.
func (s Submission) Section(name string) (string, bool) {
	text, ok := s.Sections[name]
	return text, ok
}

// SetFreeText stores the free text.
func (s *Submission) SetFreeText(text string) {
	s.FreeText = &text
}

// Clone returns a deep copy of s.
func (s Submission) Clone() Submission {
	out := New()
	for name, instances := range s.Templates {
		copied := make([]Values, len(instances))
		for i, values := range instances {
			dup := make(Values, len(values))
			for field, list := range values {
				dup[field] = append([]string(nil), list...)
			}
			copied[i] = dup
		}
		out.Templates[name] = copied
	}
	for name, text := range s.Sections {
		out.Sections[name] = text
	}
	if s.FreeText != nil {
		out.SetFreeText(*s.FreeText)
	}
	return out
}

// TemplateNames returns the submitted template names in sorted order.
func (s Submission) TemplateNames() []string {
	names := make([]string, 0, len(s.Templates))
	for name := range s.Templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func trimAll(values []string) []string {
	out := make([]string, len(values))
	for i, value := range values {
		out[i] = strings.TrimSpace(value)
	}
	return out
}

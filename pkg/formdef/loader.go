package formdef

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-pageforms/pkg/sanitize"
)

// LoadFS walks the provided filesystem and parses JSON/YAML form definition
// files. When fsys is nil or holds no definition files the store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{forms: make(map[string]Form)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDefinitionFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("formdef: read %s: %w", path, err)
		}

		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		for rawName, raw := range doc.Forms {
			name := strings.TrimSpace(rawName)
			if name == "" {
				return DefinitionError{Source: path, Message: "defines a form with an empty name"}
			}
			if existing, exists := store.forms[name]; exists {
				return DefinitionError{Source: path, Form: name, Message: fmt.Sprintf("duplicate form, first defined in %s", existing.Source)}
			}
			form, err := normaliseForm(raw, name, path)
			if err != nil {
				return err
			}
			store.forms[name] = form
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return store, nil
}

// Parse reads a single definition document and returns the form called name,
// or the only form when name is empty.
func Parse(data []byte, source, name string) (Form, error) {
	doc, err := parseDocument(data, source)
	if err != nil {
		return Form{}, err
	}
	if name == "" && len(doc.Forms) == 1 {
		for only := range doc.Forms {
			name = only
		}
	}
	raw, ok := doc.Forms[name]
	if !ok {
		return Form{}, fmt.Errorf("formdef: %s: form %q: %w", source, name, ErrFormNotFound)
	}
	return normaliseForm(raw, strings.TrimSpace(name), source)
}

type documentFile struct {
	Forms map[string]Form `json:"forms" yaml:"forms"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, DefinitionError{Source: source, Message: "file is empty"}
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, DefinitionError{Source: source, Message: fmt.Sprintf("invalid JSON or YAML: %v", err)}
	}
	return doc, nil
}

func normaliseForm(raw Form, name, source string) (Form, error) {
	form := raw
	form.Name = name
	form.Source = source
	form.Items = make([]Item, 0, len(raw.Items))

	fail := func(path, format string, args ...any) error {
		return DefinitionError{Source: source, Form: name, Path: path, Message: fmt.Sprintf(format, args...)}
	}

	templates := make(map[string]*TemplateDef)
	sections := make(map[string]struct{})
	freeTexts := 0

	for idx, item := range raw.Items {
		path := fmt.Sprintf("items[%d]", idx)
		kinds := 0
		if item.Template != nil {
			kinds++
		}
		if item.Section != nil {
			kinds++
		}
		if item.FreeText != nil {
			kinds++
		}
		if kinds != 1 {
			return Form{}, fail(path, "must declare exactly one of template, section or freeText")
		}

		switch {
		case item.Template != nil:
			tpl, err := normaliseTemplate(*item.Template, path, fail)
			if err != nil {
				return Form{}, err
			}
			if _, exists := templates[tpl.Name]; exists {
				return Form{}, fail(path, "duplicate template %q", tpl.Name)
			}
			templates[tpl.Name] = tpl
			form.Items = append(form.Items, Item{Template: tpl})
		case item.Section != nil:
			section := *item.Section
			section.Name = strings.TrimSpace(section.Name)
			if section.Name == "" {
				return Form{}, fail(path, "section name is required")
			}
			if _, exists := sections[section.Name]; exists {
				return Form{}, fail(path, "duplicate section %q", section.Name)
			}
			if section.Level == 0 {
				section.Level = defaultSectionLevel
			}
			if section.Level < 1 || section.Level > 6 {
				return Form{}, fail(path, "section %q level %d outside 1-6", section.Name, section.Level)
			}
			sections[section.Name] = struct{}{}
			form.Items = append(form.Items, Item{Section: &section})
		default:
			freeTexts++
			if freeTexts > 1 {
				return Form{}, fail(path, "only one freeText item is allowed")
			}
			freeText := *item.FreeText
			form.Items = append(form.Items, Item{FreeText: &freeText})
		}
	}

	if err := linkEmbeddedTemplates(form, templates, fail); err != nil {
		return Form{}, err
	}
	return form, nil
}

func normaliseTemplate(raw TemplateDef, path string, fail func(string, string, ...any) error) (*TemplateDef, error) {
	tpl := raw
	tpl.Name = strings.TrimSpace(raw.Name)
	if tpl.Name == "" {
		return nil, fail(path, "template name is required")
	}
	if raw.EmbedIn != nil {
		target := EmbedTarget{
			Template: strings.TrimSpace(raw.EmbedIn.Template),
			Field:    strings.TrimSpace(raw.EmbedIn.Field),
		}
		if target.Template == "" || target.Field == "" {
			return nil, fail(path, "template %q embedIn needs both template and field", tpl.Name)
		}
		tpl.EmbedIn = &target
	}

	tpl.Fields = make([]FieldDef, 0, len(raw.Fields))
	seen := make(map[string]struct{}, len(raw.Fields))
	for idx, field := range raw.Fields {
		fieldPath := fmt.Sprintf("%s.fields[%d]", path, idx)
		field.Name = strings.TrimSpace(field.Name)
		if field.Name == "" {
			return nil, fail(fieldPath, "field name is required")
		}
		if _, exists := seen[field.Name]; exists {
			return nil, fail(fieldPath, "duplicate field %q in template %q", field.Name, tpl.Name)
		}
		seen[field.Name] = struct{}{}

		field.Input = strings.ToLower(strings.TrimSpace(field.Input))
		if field.Input == "" {
			field.Input = InputText
		}
		switch field.Input {
		case InputText, InputTextArea, InputCheckbox, InputList:
		case InputDropdown:
			if len(field.Values) == 0 {
				return nil, fail(fieldPath, "dropdown field %q has no values", field.Name)
			}
		default:
			return nil, fail(fieldPath, "unknown input %q", field.Input)
		}
		if !sanitize.Valid(field.Sanitize) {
			return nil, fail(fieldPath, "unknown sanitize mode %q", field.Sanitize)
		}
		field.HoldsTemplate = strings.TrimSpace(field.HoldsTemplate)
		tpl.Fields = append(tpl.Fields, field)
	}
	return &tpl, nil
}

// linkEmbeddedTemplates checks embedding declarations and completes the side
// that was left implicit: a template's embedIn or its host's holdsTemplate.
func linkEmbeddedTemplates(form Form, templates map[string]*TemplateDef, fail func(string, string, ...any) error) error {
	for _, item := range form.Items {
		tpl := item.Template
		if tpl == nil {
			continue
		}
		for i := range tpl.Fields {
			held := tpl.Fields[i].HoldsTemplate
			if held == "" {
				continue
			}
			child, ok := templates[held]
			if !ok {
				return fail(tpl.Name+"."+tpl.Fields[i].Name, "holds unknown template %q", held)
			}
			target := EmbedTarget{Template: tpl.Name, Field: tpl.Fields[i].Name}
			if child.EmbedIn == nil {
				child.EmbedIn = &target
			} else if *child.EmbedIn != target {
				return fail(child.Name, "embedIn %s[%s] conflicts with %s[%s] holdsTemplate", child.EmbedIn.Template, child.EmbedIn.Field, target.Template, target.Field)
			}
		}
	}

	for _, item := range form.Items {
		tpl := item.Template
		if tpl == nil || tpl.EmbedIn == nil {
			continue
		}
		if tpl.EmbedIn.Template == tpl.Name {
			return fail(tpl.Name, "template cannot be embedded in itself")
		}
		host, ok := templates[tpl.EmbedIn.Template]
		if !ok {
			return fail(tpl.Name, "embedIn references unknown template %q", tpl.EmbedIn.Template)
		}
		field, ok := host.Field(tpl.EmbedIn.Field)
		if !ok {
			return fail(tpl.Name, "embedIn references unknown field %q of template %q", tpl.EmbedIn.Field, host.Name)
		}
		if field.HoldsTemplate == "" {
			field.HoldsTemplate = tpl.Name
		} else if field.HoldsTemplate != tpl.Name {
			return fail(tpl.Name, "field %s[%s] already holds template %q", host.Name, field.Name, field.HoldsTemplate)
		}
	}

	for _, item := range form.Items {
		if item.Template == nil {
			continue
		}
		visited := map[string]bool{item.Template.Name: true}
		for tpl := item.Template; tpl.EmbedIn != nil; {
			host := templates[tpl.EmbedIn.Template]
			if visited[host.Name] {
				return fail(item.Template.Name, "embedding cycle through template %q", host.Name)
			}
			visited[host.Name] = true
			tpl = host
		}
	}
	return nil
}

func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

package orchestrator

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-pageforms/pkg/formdef"
	"github.com/goliatone/go-pageforms/pkg/submission"
)

// formulaForm is the form as seen by page name formulas.
type formulaForm struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// pageName evaluates the form's page name formula. Each template whose name is
// an identifier is exposed with the resolved values of its first instance,
// list fields as lists. field(template, name) returns the page text of any
// field and form carries the form name and description.
func (o *Orchestrator) pageName(form formdef.Form, sub submission.Submission) (string, error) {
	formula := strings.TrimSpace(form.PageName)
	if formula == "" {
		return "", nil
	}

	templates, text := formulaContext(form, sub)
	data := make(map[string]any, len(templates)+2)
	for name, values := range templates {
		if identifier(name) {
			data[name] = values
		}
	}
	data["field"] = func(template, name string) string {
		return text[template][name]
	}
	data["form"] = formulaForm{Name: form.Name, Description: form.Description}

	name, err := o.templates.RenderString(formula, data)
	if err != nil {
		return "", fmt.Errorf("orchestrator: page name for form %q: %w", form.Name, err)
	}
	return strings.TrimSpace(name), nil
}

func formulaContext(form formdef.Form, sub submission.Submission) (map[string]map[string]any, map[string]map[string]string) {
	data := make(map[string]map[string]any)
	text := make(map[string]map[string]string)
	for _, item := range form.Items {
		def := item.Template
		if def == nil {
			continue
		}
		var first submission.Values
		if instances := sub.Instances(def.Name); len(instances) > 0 {
			first = instances[0]
		}
		values := make(map[string]any, len(def.Fields))
		joined := make(map[string]string, len(def.Fields))
		for _, field := range def.Fields {
			raw, ok := first.Lookup(field.Name)
			if !ok {
				raw = []string{field.Default}
			}
			joined[field.Name] = joinValues(raw, field.ListDelimiter())
			if field.Input == formdef.InputList {
				values[field.Name] = listItems(raw, field.ListDelimiter())
				continue
			}
			values[field.Name] = joined[field.Name]
		}
		data[def.Name] = values
		text[def.Name] = joined
	}
	return data, text
}

// listItems splits every value of a list field on its delimiter.
func listItems(raw []string, delimiter string) []any {
	items := []any{}
	for _, value := range raw {
		for _, item := range strings.Split(value, delimiter) {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
	}
	return items
}

// identifier matches the context keys the template engine accepts.
func identifier(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if r != '_' && (r < '0' || r > '9') && (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

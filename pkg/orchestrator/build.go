package orchestrator

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-pageforms/pkg/formdef"
	"github.com/goliatone/go-pageforms/pkg/sanitize"
	"github.com/goliatone/go-pageforms/pkg/submission"
	"github.com/goliatone/go-pageforms/pkg/wikipage"
)

// buildPage walks the form items in order and feeds the submitted values into
// a wikipage.Page. It also returns the free text as prepared for the form.
// Every empty mandatory value is collected before failing.
func (o *Orchestrator) buildPage(form formdef.Form, sub submission.Submission, submitted bool) (*wikipage.Page, string, error) {
	page := wikipage.New(o.pageOptions...)
	var (
		missing  []error
		freeText string
	)

	for _, item := range form.Items {
		switch {
		case item.Template != nil:
			missing = append(missing, o.addTemplate(page, item.Template, sub)...)
		case item.Section != nil:
			if err := addSection(page, item.Section, sub); err != nil {
				missing = append(missing, err)
			}
		case item.FreeText != nil:
			freeText = addFreeText(page, item.FreeText, sub, submitted)
		}
	}

	o.logUnknownTemplates(form, sub)

	if len(missing) > 0 {
		return nil, "", errors.Join(missing...)
	}
	return page, freeText, nil
}

func (o *Orchestrator) addTemplate(page *wikipage.Page, def *formdef.TemplateDef, sub submission.Submission) []error {
	instances := sub.Instances(def.Name)
	if !def.Multiple {
		// A single template is always part of the page, defaults included.
		switch {
		case len(instances) == 0:
			instances = []submission.Values{{}}
		case len(instances) > 1:
			o.logger.Debug("Ignoring extra instances of single template",
				zap.String("template", def.Name),
				zap.Int("instances", len(instances)),
			)
			instances = instances[:1]
		}
	}

	var missing []error
	for idx, values := range instances {
		spec := wikipage.TemplateSpec{
			Name:           def.Name,
			AllowsMultiple: def.Multiple,
			InstanceNum:    idx,
		}
		if def.EmbedIn != nil {
			spec.EmbedInTemplate = def.EmbedIn.Template
			spec.EmbedInField = def.EmbedIn.Field
		}
		page.AddTemplate(spec)

		for _, field := range def.Fields {
			value := o.fieldValue(def.Name, field, values)
			if field.Mandatory && field.HoldsTemplate == "" && strings.TrimSpace(value) == "" {
				missing = append(missing, MissingFieldError{Template: def.Name, Instance: idx, Field: field.Name})
			}
			page.AddTemplateParam(def.Name, idx, field.Name, value, wikipage.ParamOptions{
				Translatable: field.Translatable,
			})
		}

		for name := range values {
			if _, known := def.Field(name); !known {
				o.logger.Debug("Ignoring unknown field",
					zap.String("template", def.Name),
					zap.Int("instance", idx),
					zap.String("field", name),
				)
			}
		}
	}
	return missing
}

// fieldValue resolves the parameter value of field: the submitted value, or
// the default when the field was not submitted at all.
func (o *Orchestrator) fieldValue(template string, field formdef.FieldDef, values submission.Values) string {
	raw, ok := values.Lookup(field.Name)
	if !ok {
		return field.Default
	}

	var value string
	switch field.Input {
	case formdef.InputCheckbox:
		value = checkboxValue(raw)
	default:
		value = joinValues(raw, field.ListDelimiter())
	}

	cleaned := sanitize.Value(field.Sanitize, value)
	if cleaned != value {
		o.logger.Warn("Sanitized field value",
			zap.String("template", template),
			zap.String("field", field.Name),
			zap.String("policy", field.Sanitize),
		)
	}
	return cleaned
}

func addSection(page *wikipage.Page, def *formdef.SectionDef, sub submission.Submission) error {
	text, ok := sub.Section(def.Name)
	if !ok {
		text = def.Default
	}
	text = strings.TrimRight(text, "\r\n")
	page.AddSection(def.Name, def.Level, text, wikipage.SectionOptions{HideIfEmpty: def.HideIfEmpty})

	if def.Mandatory && strings.TrimSpace(text) == "" {
		return MissingFieldError{Section: def.Name}
	}
	return nil
}

func addFreeText(page *wikipage.Page, def *formdef.FreeTextDef, sub submission.Submission, submitted bool) string {
	page.AddFreeText(wikipage.FreeTextOptions{Translatable: def.Translatable})

	text := def.Default
	if sub.FreeText != nil {
		text = *sub.FreeText
	}
	text = page.SetFreeText(strings.TrimRight(text, "\r\n"), submitted)

	if def.OnlyInclude {
		page.MarkFreeTextOnlyInclude()
	}
	return text
}

func (o *Orchestrator) logUnknownTemplates(form formdef.Form, sub submission.Submission) {
	for _, name := range sub.TemplateNames() {
		if _, ok := form.Template(name); !ok {
			o.logger.Debug("Ignoring submitted template not in form",
				zap.String("form", form.Name),
				zap.String("template", name),
			)
		}
	}
}

func joinValues(values []string, delimiter string) string {
	parts := make([]string, 0, len(values))
	for _, value := range values {
		if value == "" {
			continue
		}
		parts = append(parts, value)
	}
	return strings.Join(parts, delimiter)
}

func checkboxValue(values []string) string {
	if len(values) == 0 {
		return ""
	}
	switch strings.ToLower(strings.TrimSpace(values[len(values)-1])) {
	case "1", "on", "true", "yes":
		return "Yes"
	case "":
		return ""
	default:
		return "No"
	}
}

package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-pageforms/pkg/formdef"
	"github.com/goliatone/go-pageforms/pkg/submission"
)

// noneOption lets editors leave an optional dropdown empty.
const noneOption = "(none)"

// Filler walks a form definition and asks for every value through a
// PromptDriver.
type Filler struct {
	driver       PromptDriver
	theme        Theme
	maxInstances int
	logger       *zap.Logger
}

// New constructs a Filler with the survey driver unless overridden.
func New(options ...Option) *Filler {
	f := &Filler{
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	if f.driver == nil {
		f.driver = NewSurveyDriver(nil)
	}
	return f
}

// Fill prompts for the templates, sections and free text of form in order.
func (f *Filler) Fill(ctx context.Context, form *formdef.Form) (submission.Submission, error) {
	if ctx == nil {
		return submission.Submission{}, errors.New("prompt: context is required")
	}
	if form == nil {
		return submission.Submission{}, errors.New("prompt: form is required")
	}
	if f.driver == nil {
		return submission.Submission{}, ErrNoDriver
	}
	if err := ctx.Err(); err != nil {
		return submission.Submission{}, err
	}

	sub := submission.New()
	if form.Description != "" {
		if err := f.info(ctx, form.Description); err != nil {
			return submission.Submission{}, err
		}
	}

	for _, item := range form.Items {
		var err error
		switch {
		case item.Template != nil:
			err = f.fillTemplate(ctx, item.Template, &sub)
		case item.Section != nil:
			err = f.fillSection(ctx, item.Section, &sub)
		case item.FreeText != nil:
			err = f.fillFreeText(ctx, item.FreeText, &sub)
		}
		if err != nil {
			return submission.Submission{}, err
		}
	}

	f.logger.Debug("Filled form",
		zap.String("form", form.Name),
		zap.Strings("templates", sub.TemplateNames()),
	)
	return sub, nil
}

func (f *Filler) fillTemplate(ctx context.Context, def *formdef.TemplateDef, sub *submission.Submission) error {
	if !def.Multiple {
		values, err := f.fillInstance(ctx, def, def.DisplayLabel())
		if err != nil {
			return err
		}
		sub.AddInstance(def.Name, values)
		return nil
	}

	for n := 0; f.maxInstances == 0 || n < f.maxInstances; n++ {
		more, err := f.driver.Confirm(ctx, fmt.Sprintf("Add %s?", instanceLabel(def, n)), false)
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
		values, err := f.fillInstance(ctx, def, fmt.Sprintf("%s #%d", def.DisplayLabel(), n+1))
		if err != nil {
			return err
		}
		sub.AddInstance(def.Name, values)
	}
	return nil
}

func instanceLabel(def *formdef.TemplateDef, n int) string {
	if n == 0 {
		return "a " + def.DisplayLabel()
	}
	return "another " + def.DisplayLabel()
}

// fillInstance collects the values of one template instance. Fields left
// unanswered are omitted so the form default applies; an explicit "(none)"
// is kept as an empty value.
func (f *Filler) fillInstance(ctx context.Context, def *formdef.TemplateDef, heading string) (submission.Values, error) {
	if err := f.info(ctx, heading); err != nil {
		return nil, err
	}

	values := submission.Values{}
	for _, field := range def.Fields {
		if field.HoldsTemplate != "" {
			continue
		}
		answer, err := f.ask(ctx, field)
		if err != nil {
			return nil, err
		}
		if answer == nil {
			continue
		}
		values[field.Name] = answer
	}
	return values, nil
}

func (f *Filler) ask(ctx context.Context, field formdef.FieldDef) ([]string, error) {
	label := field.DisplayLabel()
	switch field.Input {
	case formdef.InputDropdown:
		return f.askDropdown(ctx, field, label)
	case formdef.InputCheckbox:
		checked, err := f.driver.Confirm(ctx, label, strings.EqualFold(field.Default, "yes"))
		if err != nil {
			return nil, err
		}
		if checked {
			return []string{"Yes"}, nil
		}
		return []string{"No"}, nil
	case formdef.InputList:
		delimiter := field.ListDelimiter()
		raw, err := f.driver.Text(ctx, Question{
			Message: label,
			Default: field.Default,
			Help:    fmt.Sprintf("Separate values with %q", delimiter),
			Validate: f.required(field.Mandatory, label, func(answer string) bool {
				return len(splitList(answer, delimiter)) == 0
			}),
		})
		if err != nil {
			return nil, err
		}
		return splitList(raw, delimiter), nil
	default:
		text, err := f.driver.Text(ctx, Question{
			Message:   label,
			Default:   field.Default,
			Multiline: field.Input == formdef.InputTextArea,
			Validate:  f.required(field.Mandatory, label, isBlank),
		})
		if err != nil {
			return nil, err
		}
		return single(text), nil
	}
}

func (f *Filler) askDropdown(ctx context.Context, field formdef.FieldDef, label string) ([]string, error) {
	options := field.Values
	if !field.Mandatory {
		options = append([]string{noneOption}, field.Values...)
	}
	choice, err := f.driver.Choose(ctx, Question{
		Message: label,
		Options: options,
		Default: field.Default,
	})
	if err != nil {
		return nil, err
	}
	if choice == noneOption {
		return []string{""}, nil
	}
	return []string{choice}, nil
}

func (f *Filler) fillSection(ctx context.Context, def *formdef.SectionDef, sub *submission.Submission) error {
	text, err := f.driver.Text(ctx, Question{
		Message:   def.Name,
		Default:   def.Default,
		Multiline: true,
		Validate:  f.required(def.Mandatory, def.Name, isBlank),
	})
	if err != nil {
		return err
	}
	sub.SetSection(def.Name, text)
	return nil
}

func (f *Filler) fillFreeText(ctx context.Context, def *formdef.FreeTextDef, sub *submission.Submission) error {
	label := def.Label
	if label == "" {
		label = "Free text"
	}
	text, err := f.driver.Text(ctx, Question{Message: label, Default: def.Default, Multiline: true})
	if err != nil {
		return err
	}
	sub.SetFreeText(text)
	return nil
}

// required returns the validator of a mandatory answer, or nil.
func (f *Filler) required(mandatory bool, label string, empty func(string) bool) func(string) error {
	if !mandatory {
		return nil
	}
	return func(answer string) error {
		if empty(answer) {
			return fmt.Errorf("%s%s is mandatory", f.theme.ErrorPrefix, label)
		}
		return nil
	}
}

func (f *Filler) info(ctx context.Context, msg string) error {
	return f.driver.Notify(ctx, f.theme.InfoPrefix+msg)
}

func single(text string) []string {
	if isBlank(text) {
		return nil
	}
	return []string{strings.TrimSpace(text)}
}

func isBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}

func splitList(raw, delimiter string) []string {
	sep := strings.TrimSpace(delimiter)
	if sep == "" {
		sep = delimiter
	}
	var out []string
	for _, part := range strings.Split(raw, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

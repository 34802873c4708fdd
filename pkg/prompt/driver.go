package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// Question is one prompt shown to the editor.
type Question struct {
	Message string
	Help    string
	Default string
	// Multiline asks for a block of text instead of a single line.
	Multiline bool
	// Options lists the choices of Choose.
	Options []string
	// Validate rejects an answer; the driver asks again until it passes.
	Validate func(answer string) error
}

// PromptDriver is the terminal seam of the fill flow. Tests script it; the
// default implementation uses survey.
type PromptDriver interface {
	// Text asks for free input, a single line or a block.
	Text(ctx context.Context, q Question) (string, error)
	// Choose returns one of q.Options.
	Choose(ctx context.Context, q Question) (string, error)
	Confirm(ctx context.Context, message string, def bool) (bool, error)
	Notify(ctx context.Context, msg string) error
}

type surveyDriver struct {
	out io.Writer
}

// NewSurveyDriver returns the terminal driver backed by survey. Notices go to
// out, or stdout when out is nil.
func NewSurveyDriver(out io.Writer) PromptDriver {
	if out == nil {
		out = os.Stdout
	}
	return &surveyDriver{out: out}
}

func (d *surveyDriver) Text(ctx context.Context, q Question) (string, error) {
	var prompt survey.Prompt = &survey.Input{Message: q.Message, Help: q.Help, Default: q.Default}
	if q.Multiline {
		prompt = &survey.Multiline{Message: q.Message, Help: q.Help, Default: q.Default}
	}
	var out string
	if err := ask(ctx, prompt, &out, q.Validate); err != nil {
		return "", err
	}
	return out, nil
}

func (d *surveyDriver) Choose(ctx context.Context, q Question) (string, error) {
	if len(q.Options) == 0 {
		return "", fmt.Errorf("prompt: %s: no options", q.Message)
	}
	prompt := &survey.Select{Message: q.Message, Help: q.Help, Options: q.Options}
	for _, option := range q.Options {
		if option == q.Default {
			prompt.Default = option
		}
	}
	var out string
	if err := ask(ctx, prompt, &out, q.Validate); err != nil {
		return "", err
	}
	return out, nil
}

func (d *surveyDriver) Confirm(ctx context.Context, message string, def bool) (bool, error) {
	var out bool
	if err := ask(ctx, &survey.Confirm{Message: message, Default: def}, &out, nil); err != nil {
		return false, err
	}
	return out, nil
}

func (d *surveyDriver) Notify(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, msg)
	return err
}

func ask(ctx context.Context, prompt survey.Prompt, out any, validate func(string) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var opts []survey.AskOpt
	if validate != nil {
		opts = append(opts, survey.WithValidator(stringValidator(validate)))
	}
	err := survey.AskOne(prompt, out, opts...)
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

// stringValidator adapts validate to survey, whose text and select prompts
// answer with a string or a survey.OptionAnswer.
func stringValidator(validate func(string) error) survey.Validator {
	return func(ans any) error {
		switch v := ans.(type) {
		case string:
			return validate(v)
		case survey.OptionAnswer:
			return validate(v.Value)
		default:
			return nil
		}
	}
}

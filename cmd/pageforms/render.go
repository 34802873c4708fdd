package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-pageforms/pkg/orchestrator"
	"github.com/goliatone/go-pageforms/pkg/submission"
)

type renderOptions struct {
	form     string
	values   string
	preset   string
	pageName string
	output   string
	format   string
	display  bool
}

func newRenderCmd(a *app) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a page from a submission document",
		Long: `Reads a YAML or JSON submission document and prints the generated page.

  templates:
    Person: {Name: Ada Lovelace, Occupation: [Mathematician, Writer]}
    Publication:
      - {Title: Notes}
  sections:
    Biography: Ada was a mathematician.
  freeText: More text.

Use "-" as --values to read the document from stdin. The page name is
printed on stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sub, err := readSubmission(cmd.InOrStdin(), opts.values)
			if err != nil {
				return err
			}
			return a.generate(cmd, opts, sub)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.form, "form", "f", "", "form name")
	flags.StringVar(&opts.values, "values", "", "submission document (YAML or JSON, - for stdin)")
	flags.StringVar(&opts.preset, "preset", "", "document with values used where the submission has none")
	flags.StringVar(&opts.pageName, "page-name", "", "override the form's page name formula")
	flags.StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	flags.StringVar(&opts.format, "format", "", "output renderer: wikitext or json")
	flags.BoolVar(&opts.display, "display", false, "treat the values as loaded for editing rather than saved")
	_ = cmd.MarkFlagRequired("form")
	_ = cmd.MarkFlagRequired("values")

	return cmd
}

func readSubmission(stdin io.Reader, path string) (submission.Submission, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return submission.Submission{}, fmt.Errorf("read values: %w", err)
	}
	return submission.Decode(data)
}

// generate runs the orchestrator for a render or fill invocation and writes
// the output.
func (a *app) generate(cmd *cobra.Command, opts *renderOptions, sub submission.Submission) error {
	store, err := a.loadStore()
	if err != nil {
		return err
	}

	var extra []orchestrator.Option
	if opts.preset != "" {
		data, err := os.ReadFile(opts.preset)
		if err != nil {
			return fmt.Errorf("read preset: %w", err)
		}
		preset, err := orchestrator.NewPresetTransformer(data)
		if err != nil {
			return err
		}
		extra = append(extra, orchestrator.WithTransformer(preset))
	}

	result, err := a.orchestrator(store, extra...).Generate(cmd.Context(), orchestrator.Request{
		Form:       opts.form,
		Submission: sub,
		PageName:   opts.pageName,
		Submitted:  !opts.display,
		Renderer:   opts.format,
	})
	if err != nil {
		return err
	}

	if result.PageName != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Page: %s\n", result.PageName)
	}

	if opts.output == "" {
		_, err = cmd.OutOrStdout().Write(result.Output)
		return err
	}
	if err := os.WriteFile(opts.output, result.Output, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Page written to %s\n", opts.output)
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-pageforms/pkg/formdef"
	"github.com/goliatone/go-pageforms/pkg/prompt"
	"github.com/goliatone/go-pageforms/pkg/submission"
)

func newFillCmd(a *app) *cobra.Command {
	opts := &renderOptions{}
	var saveValues string

	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill a form interactively and render the page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.loadStore()
			if err != nil {
				return err
			}
			form, ok := store.Form(opts.form)
			if !ok {
				return fmt.Errorf("form %q: %w", opts.form, formdef.ErrFormNotFound)
			}

			filler := prompt.New(
				prompt.WithPromptDriver(prompt.NewSurveyDriver(cmd.ErrOrStderr())),
				prompt.WithLogger(a.logger),
			)
			sub, err := filler.Fill(cmd.Context(), &form)
			if err != nil {
				return err
			}

			if saveValues != "" {
				data, err := submission.Encode(sub)
				if err != nil {
					return err
				}
				if err := os.WriteFile(saveValues, data, 0o644); err != nil {
					return fmt.Errorf("write values: %w", err)
				}
			}
			return a.generate(cmd, opts, sub)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.form, "form", "f", "", "form name")
	flags.StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	flags.StringVar(&opts.format, "format", "", "output renderer: wikitext or json")
	flags.StringVar(&opts.pageName, "page-name", "", "override the form's page name formula")
	flags.StringVar(&saveValues, "save-values", "", "also write the answers as a submission document")
	_ = cmd.MarkFlagRequired("form")

	return cmd
}

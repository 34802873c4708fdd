package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available forms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.loadStore()
			if err != nil {
				return err
			}

			names := store.Names()
			width := 0
			for _, name := range names {
				width = max(width, len(name))
			}

			out := cmd.OutOrStdout()
			for _, name := range names {
				form, _ := store.Form(name)
				line := fmt.Sprintf("%-*s  %s", width, name, form.Description)
				fmt.Fprintln(out, strings.TrimRight(line, " "))
			}
			return nil
		},
	}
}

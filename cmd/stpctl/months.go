package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMonthsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "months",
		Short: "List the months present in the readings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.dashboard(cmd.Context(), cmd)
			if err != nil {
				return err
			}

			months, err := svc.MonthOptions(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if opts.jsonOutput {
				return writeJSON(w, months)
			}
			for _, m := range months {
				fmt.Fprintf(w, "%s  %s\n", m.MonthKey, m.DisplayLabel)
			}
			return nil
		},
	}
}

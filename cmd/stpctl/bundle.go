package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"stpflow/pkg/contracts/domain"
)

func newBundleCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "bundle <YYYY-MM>",
		Short: "Show the dashboard bundle of one month",
		Long: `Show the KPIs, period deltas and flow graph of one month. A month that is
not in the readings prints an empty bundle and is not an error.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.dashboard(cmd.Context(), cmd)
			if err != nil {
				return err
			}

			bundle, err := svc.GetMonthBundle(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if opts.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), bundle)
			}
			formatBundleHuman(cmd.OutOrStdout(), bundle)
			return nil
		},
	}
}

func formatBundleHuman(w io.Writer, b domain.MonthBundle) {
	if !b.Found {
		fmt.Fprintf(w, "No readings for %s (%s)\n", b.DisplayLabel, b.MonthKey)
		return
	}

	k := b.KPIs
	versus := "no previous month"
	if b.PreviousMonthKey != "" {
		versus = "vs " + b.PreviousMonthKey
	}

	fmt.Fprintf(w, "%s (%s), %d days reported, deltas %s\n\n", b.DisplayLabel, b.MonthKey, k.DaysReported, versus)
	fmt.Fprintf(w, "Total inflow:     %8d m3  %+.1f%%\n", k.TotalInflow, k.InflowChange)
	fmt.Fprintf(w, "Tanker volume:    %8d m3  %+.1f%%\n", k.TotalTankerVolume, k.TankerVolumeChange)
	fmt.Fprintf(w, "Direct sewage:    %8d m3\n", k.TotalDirectSewage)
	fmt.Fprintf(w, "Total treated:    %8d m3  %+.1f%%\n", k.TotalTreated, k.TreatedChange)
	fmt.Fprintf(w, "Total output:     %8d m3  %+.1f%%\n", k.TotalOutflow, k.OutflowChange)
	fmt.Fprintf(w, "Avg efficiency:   %8.1f %%   %+.1f%%\n", k.AvgEfficiencyPct, k.EfficiencyChange)
	fmt.Fprintf(w, "Avg utilization:  %8.1f %%   %+.1f%%\n", k.AvgUtilizationPct, k.UtilizationChange)
	fmt.Fprintf(w, "Avg tankers/day:  %8.1f\n", k.AvgTankerCount)

	fmt.Fprintln(w, "\nFlow:")
	for _, l := range b.FlowGraph.Links {
		fmt.Fprintf(w, "  %-20s -> %-20s %8d\n", l.Source, l.Target, l.Value)
	}
}

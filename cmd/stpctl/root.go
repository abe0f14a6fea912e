package main

import (
	"context"
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"stpflow/internal/config"
	"stpflow/internal/dataprocessing"
	"stpflow/internal/dataset"
	"stpflow/internal/infrastructure"
	"stpflow/internal/services"
)

type rootOptions struct {
	source        string
	path          string
	sheet         string
	spreadsheetID string
	capacity      float64
	jsonOutput    bool
	logLevel      string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	defaults := config.Default().Plant

	cmd := &cobra.Command{
		Use:   "stpctl",
		Short: "Inspect sewage treatment plant readings",
		Long: `stpctl runs the STP processing pipeline over a readings source and prints
the month selector options or the dashboard bundle of one month.

Sources:
  embedded  readings compiled into the binary (default)
  file      tab separated text file (--path)
  excel     workbook sheet (--path, --sheet)
  sheets    Google Sheets range (--spreadsheet-id)`,
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.source, "source", defaults.SourceKind, "readings source: embedded, file, excel or sheets")
	flags.StringVar(&opts.path, "path", "", "path of the readings file or workbook")
	flags.StringVar(&opts.sheet, "sheet", defaults.SheetName, "worksheet name for the excel source")
	flags.StringVar(&opts.spreadsheetID, "spreadsheet-id", "", "spreadsheet ID for the sheets source")
	flags.Float64Var(&opts.capacity, "capacity", defaults.CapacityPerDay, "plant capacity in m3/day")
	flags.BoolVar(&opts.jsonOutput, "json", false, "output JSON instead of human-readable text")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level written to stderr")

	cmd.AddCommand(newMonthsCmd(opts), newBundleCmd(opts))
	return cmd
}

// dashboard builds a DashboardService over the source selected by the flags.
func (o *rootOptions) dashboard(ctx context.Context, cmd *cobra.Command) (*services.DashboardService, error) {
	plant := config.Default().Plant
	plant.SourceKind = o.source
	plant.SourcePath = o.path
	plant.SheetName = o.sheet
	plant.SpreadsheetID = o.spreadsheetID
	plant.CapacityPerDay = o.capacity
	if err := plant.Validate(); err != nil {
		return nil, err
	}

	logger, err := infrastructure.NewLogger(config.LoggingConfig{Level: o.logLevel, Output: "console"}, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	source, err := dataset.NewSource(ctx, plant, logger)
	if err != nil {
		return nil, err
	}

	pipeline := dataprocessing.NewPipeline(logger, dataprocessing.PipelineConfig{CapacityPerDay: plant.CapacityPerDay})
	return services.NewDashboardService(source, pipeline, nil, logger), nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

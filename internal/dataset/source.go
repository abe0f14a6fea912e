package dataset

import (
	"context"
	"fmt"
	"log/slog"

	"stpflow/internal/config"
	apperrors "stpflow/internal/errors"
)

// Source yields the raw daily readings, header row first. Sources do no
// cleaning of their own; every row goes to the parser as read.
type Source interface {
	// Name identifies the source in logs and metrics
	Name() string
	Rows(ctx context.Context) ([][]string, error)
}

// NewSource builds the source selected by cfg.SourceKind.
func NewSource(ctx context.Context, cfg config.PlantConfig, logger *slog.Logger) (Source, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "stp_dataset"))

	switch cfg.SourceKind {
	case config.SourceEmbedded, "":
		return NewEmbeddedSource(), nil
	case config.SourceFile:
		return NewFileSource(cfg.SourcePath, logger), nil
	case config.SourceExcel:
		return NewExcelSource(cfg.SourcePath, cfg.SheetName, logger), nil
	case config.SourceSheets:
		return NewSheetsSource(ctx, SheetsConfig{
			SpreadsheetID:   cfg.SpreadsheetID,
			Range:           cfg.SheetRange,
			CredentialsFile: cfg.CredentialsFile,
		}, logger)
	default:
		return nil, apperrors.NewConfigError(fmt.Sprintf("unknown source kind %q", cfg.SourceKind), nil).
			WithContext("source_kind", cfg.SourceKind)
	}
}

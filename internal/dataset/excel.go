package dataset

import (
	"context"
	"log/slog"
	"os"
	"slices"

	"github.com/xuri/excelize/v2"

	apperrors "stpflow/internal/errors"
)

// ExcelSource reads the readings worksheet of an .xlsx workbook. Cells are
// returned as formatted text, so the date column is expected to hold D/M/YYYY
// strings rather than Excel serial dates.
type ExcelSource struct {
	path      string
	sheetName string
	logger    *slog.Logger
}

// NewExcelSource creates a source for sheetName in the workbook at path. An
// empty sheetName, or one the workbook lacks, falls back to the first sheet.
func NewExcelSource(path, sheetName string, logger *slog.Logger) *ExcelSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelSource{path: path, sheetName: sheetName, logger: logger}
}

func (s *ExcelSource) Name() string { return "excel" }

func (s *ExcelSource) Rows(ctx context.Context) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewNotFoundError("readings workbook").WithContext("path", s.path)
		}
		return nil, apperrors.NewParsingError("failed to open readings workbook", err).WithContext("path", s.path)
	}
	defer f.Close()

	sheet, err := s.resolveSheet(ctx, f.GetSheetList())
	if err != nil {
		return nil, err
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read worksheet", err).
			WithContext("path", s.path).
			WithContext("sheet", sheet)
	}

	s.logger.DebugContext(ctx, "readings worksheet loaded",
		slog.String("path", s.path),
		slog.String("sheet", sheet),
		slog.Int("rows", len(rows)))

	return rows, nil
}

func (s *ExcelSource) resolveSheet(ctx context.Context, sheets []string) (string, error) {
	switch {
	case len(sheets) == 0:
		return "", apperrors.NewNotFoundError("worksheet").WithContext("path", s.path)
	case s.sheetName == "":
		return sheets[0], nil
	case slices.Contains(sheets, s.sheetName):
		return s.sheetName, nil
	}

	s.logger.WarnContext(ctx, "configured worksheet not found, using first sheet",
		slog.String("wanted", s.sheetName),
		slog.String("using", sheets[0]))
	return sheets[0], nil
}

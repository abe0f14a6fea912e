package dataset

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"stpflow/internal/config"
	apperrors "stpflow/internal/errors"
)

// SheetsConfig locates the readings range in a Google spreadsheet.
type SheetsConfig struct {
	SpreadsheetID   string
	Range           string // A1 notation, e.g. Daily!A1:G
	CredentialsFile string // service account JSON; empty uses application default credentials
}

// SheetsSource reads the readings range through the Sheets v4 API.
type SheetsSource struct {
	service *sheetsapi.Service
	cfg     SheetsConfig
	logger  *slog.Logger
}

// NewSheetsSource builds a read-only Sheets client. Extra client options are
// appended after the credentials option.
func NewSheetsSource(ctx context.Context, cfg SheetsConfig, logger *slog.Logger, opts ...option.ClientOption) (*SheetsSource, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.SpreadsheetID == "" {
		return nil, apperrors.NewConfigError("spreadsheet id is required for the sheets source", nil)
	}
	if cfg.Range == "" {
		cfg.Range = config.DefaultSheetRange
	}

	clientOpts := []option.ClientOption{option.WithScopes(sheetsapi.SpreadsheetsReadonlyScope)}
	if cfg.CredentialsFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	clientOpts = append(clientOpts, opts...)

	service, err := sheetsapi.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, apperrors.NewConfigError("failed to initialize sheets client", err)
	}

	return &SheetsSource{service: service, cfg: cfg, logger: logger}, nil
}

func (s *SheetsSource) Name() string { return "sheets" }

func (s *SheetsSource) Rows(ctx context.Context) ([][]string, error) {
	ctx, cancel := context.WithTimeout(ctx, config.SheetsFetchTimeout)
	defer cancel()

	resp, err := s.service.Spreadsheets.Values.Get(s.cfg.SpreadsheetID, s.cfg.Range).
		MajorDimension("ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return nil, apperrors.NewNetworkError(fmt.Sprintf("read range %s", s.cfg.Range), err).
			WithContext("spreadsheet_id", s.cfg.SpreadsheetID)
	}

	s.logger.DebugContext(ctx, "readings range loaded",
		slog.String("range", resp.Range),
		slog.Int("rows", len(resp.Values)))

	return cellsToStrings(resp.Values), nil
}

// cellsToStrings renders API cell values as text. The API returns formatted
// strings by default; numbers only appear under other render options.
func cellsToStrings(values [][]interface{}) [][]string {
	rows := make([][]string, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, v := range row {
			switch c := v.(type) {
			case string:
				cells[j] = c
			case nil:
				cells[j] = ""
			case float64:
				cells[j] = fmt.Sprintf("%.0f", c)
			default:
				cells[j] = fmt.Sprint(c)
			}
		}
		rows[i] = cells
	}
	return rows
}

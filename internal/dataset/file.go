package dataset

import (
	"context"
	"log/slog"
	"os"

	"stpflow/internal/dataprocessing"
	apperrors "stpflow/internal/errors"
)

// FileSource reads tab separated readings from a local file on every call.
type FileSource struct {
	path   string
	logger *slog.Logger
}

// NewFileSource creates a source for the TSV file at path
func NewFileSource(path string, logger *slog.Logger) *FileSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileSource{path: path, logger: logger}
}

func (s *FileSource) Name() string { return "file" }

func (s *FileSource) Rows(ctx context.Context) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewNotFoundError("readings file").WithContext("path", s.path)
		}
		return nil, apperrors.NewStorageError("failed to read readings file", err).WithContext("path", s.path)
	}

	s.logger.DebugContext(ctx, "readings file loaded",
		slog.String("path", s.path),
		slog.Int("bytes", len(data)))

	return dataprocessing.SplitText(string(data)), nil
}

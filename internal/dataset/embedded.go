package dataset

import (
	"context"
	_ "embed"

	"stpflow/internal/dataprocessing"
)

//go:embed data/stp_daily.tsv
var embeddedTSV string

// EmbeddedText returns the bundled sample readings as tab separated text.
func EmbeddedText() string {
	return embeddedTSV
}

// EmbeddedSource serves the readings compiled into the binary.
type EmbeddedSource struct{}

// NewEmbeddedSource creates the bundled source
func NewEmbeddedSource() *EmbeddedSource {
	return &EmbeddedSource{}
}

func (s *EmbeddedSource) Name() string { return "embedded" }

func (s *EmbeddedSource) Rows(ctx context.Context) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return dataprocessing.SplitText(embeddedTSV), nil
}

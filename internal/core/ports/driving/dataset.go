package driving

import (
	"context"

	"github.com/legalease/legalease-cli/internal/core/domain"
)

// BuildOptions configures the raw dataset build.
type BuildOptions struct {
	// DocsDir holds the statute .txt files.
	DocsDir string

	// OutputPath is where the dataset is written.
	OutputPath string

	// ChunkSize and Overlap parameterise the sliding-window chunker.
	// Zero values use the defaults (1200/200).
	ChunkSize int
	Overlap   int
}

// CleanOptions configures the dataset cleanup pass.
type CleanOptions struct {
	// InputPath is the raw dataset to clean.
	InputPath string

	// OutputPath is where the cleaned dataset is written.
	OutputPath string

	// MinTokens and MaxTokens parameterise the token-budget chunker.
	// Zero values use the defaults (300/500).
	MinTokens int
	MaxTokens int
}

// DatasetBuilder turns raw statute documents into ordered chunk-record
// datasets. Both operations are all-or-nothing: no partial dataset is ever
// persisted as if complete.
type DatasetBuilder interface {
	// Build ingests every .txt document in the docs directory, segments it
	// and emits sliding-window chunk records. A document matching no allowed
	// statute aborts the whole run.
	Build(ctx context.Context, opts BuildOptions) (domain.BuildSummary, error)

	// Clean re-segments a raw dataset, drops non-substantive sections and
	// re-chunks by token budget. Heading-free documents drop out entirely.
	Clean(ctx context.Context, opts CleanOptions) (domain.BuildSummary, error)
}

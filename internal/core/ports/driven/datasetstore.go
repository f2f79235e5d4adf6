package driven

import (
	"context"

	"github.com/legalease/legalease-cli/internal/core/domain"
)

// DatasetStore persists ordered chunk-record datasets as human-diffable
// artifacts. Records keep their order: the vector index relies on it.
type DatasetStore interface {
	// Save writes the full dataset, replacing any previous one.
	Save(ctx context.Context, path string, records []domain.ChunkRecord) error

	// Load reads a dataset in stored order.
	// Returns domain.ErrNotFound when the file does not exist.
	Load(ctx context.Context, path string) ([]domain.ChunkRecord, error)

	// Exists reports whether a dataset is present at the path.
	Exists(path string) bool
}

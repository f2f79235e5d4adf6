package driven

import (
	"context"

	"github.com/legalease/legalease-cli/internal/core/domain"
)

// IndexStore persists the two index artifacts: the embedding matrix and the
// positionally aligned metadata records. The pair is valid only as a whole -
// implementations must write both or neither, and must treat a lone artifact
// as "no index".
type IndexStore interface {
	// Save atomically replaces both artifacts. embeddings[i] and metadata[i]
	// must describe the same chunk.
	Save(ctx context.Context, embeddings [][]float32, metadata []domain.ChunkMetadata) error

	// Load reads both artifacts. Returns domain.ErrNotFound when either is
	// missing; never returns a half pair.
	Load(ctx context.Context) ([][]float32, []domain.ChunkMetadata, error)

	// Exists reports whether BOTH artifacts are present.
	Exists() bool

	// Path returns the embeddings artifact location, for build summaries.
	Path() string
}

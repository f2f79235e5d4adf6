package driving

import (
	"context"

	"github.com/legalease/legalease-cli/internal/core/domain"
)

// RetrievalService owns the vector index lifecycle: EMPTY until the first
// successful build (or a load of complete persisted artifacts), BUILT after.
// There is no reverse transition; a rebuild replaces the state wholesale.
type RetrievalService interface {
	// BuildIndex encodes the dataset into normalised embedding vectors and
	// persists them with aligned metadata. Fails with domain.ErrNotFound
	// when no dataset exists.
	BuildIndex(ctx context.Context) (domain.IndexSummary, error)

	// Search returns the topK most similar chunks, sorted by descending
	// score, ties broken by ascending index position. topK is clamped to
	// [1, indexed chunks]. Fails with domain.ErrIndexNotBuilt before the
	// first successful build.
	Search(ctx context.Context, query string, topK int) ([]domain.ScoredChunk, error)

	// Ready reports whether the index is in the BUILT state.
	Ready() bool
}

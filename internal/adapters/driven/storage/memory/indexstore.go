package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/legalease/legalease-cli/internal/core/domain"
	"github.com/legalease/legalease-cli/internal/core/ports/driven"
)

// Ensure IndexStore implements the interface.
var _ driven.IndexStore = (*IndexStore)(nil)

// IndexStore keeps the artifact pair in memory.
type IndexStore struct {
	mu         sync.RWMutex
	embeddings [][]float32
	metadata   []domain.ChunkMetadata
	saved      bool
}

// NewIndexStore creates an empty in-memory index store.
func NewIndexStore() *IndexStore {
	return &IndexStore{}
}

// Save replaces both artifacts.
func (s *IndexStore) Save(_ context.Context, embeddings [][]float32, metadata []domain.ChunkMetadata) error {
	if len(embeddings) != len(metadata) {
		return fmt.Errorf("%w: %d embeddings for %d metadata records", domain.ErrInvalidInput, len(embeddings), len(metadata))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.embeddings = make([][]float32, len(embeddings))
	for i, row := range embeddings {
		copied := make([]float32, len(row))
		copy(copied, row)
		s.embeddings[i] = copied
	}
	s.metadata = make([]domain.ChunkMetadata, len(metadata))
	copy(s.metadata, metadata)
	s.saved = true
	return nil
}

// Load returns copies of both artifacts.
func (s *IndexStore) Load(_ context.Context) ([][]float32, []domain.ChunkMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.saved {
		return nil, nil, fmt.Errorf("%w: no index saved", domain.ErrNotFound)
	}

	embeddings := make([][]float32, len(s.embeddings))
	for i, row := range s.embeddings {
		copied := make([]float32, len(row))
		copy(copied, row)
		embeddings[i] = copied
	}
	metadata := make([]domain.ChunkMetadata, len(s.metadata))
	copy(metadata, s.metadata)
	return embeddings, metadata, nil
}

// Exists reports whether an index has been saved.
func (s *IndexStore) Exists() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saved
}

// Path identifies the store in summaries.
func (s *IndexStore) Path() string {
	return "memory://index"
}

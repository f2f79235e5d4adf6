// Package memory provides in-memory implementations of the storage ports.
// Used in tests and anywhere persistence is not wanted.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/legalease/legalease-cli/internal/core/domain"
	"github.com/legalease/legalease-cli/internal/core/ports/driven"
)

// Ensure DatasetStore implements the interface.
var _ driven.DatasetStore = (*DatasetStore)(nil)

// DatasetStore keeps datasets in a map keyed by path.
type DatasetStore struct {
	mu       sync.RWMutex
	datasets map[string][]domain.ChunkRecord
}

// NewDatasetStore creates an empty in-memory dataset store.
func NewDatasetStore() *DatasetStore {
	return &DatasetStore{
		datasets: make(map[string][]domain.ChunkRecord),
	}
}

// Save stores a copy of the records under path.
func (s *DatasetStore) Save(_ context.Context, path string, records []domain.ChunkRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]domain.ChunkRecord, len(records))
	copy(copied, records)
	s.datasets[path] = copied
	return nil
}

// Load returns a copy of the records stored under path.
func (s *DatasetStore) Load(_ context.Context, path string) ([]domain.ChunkRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, ok := s.datasets[path]
	if !ok {
		return nil, fmt.Errorf("%w: dataset %s", domain.ErrNotFound, path)
	}
	copied := make([]domain.ChunkRecord, len(records))
	copy(copied, records)
	return copied, nil
}

// Exists reports whether a dataset is stored under path.
func (s *DatasetStore) Exists(path string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.datasets[path]
	return ok
}

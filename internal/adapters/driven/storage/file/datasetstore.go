package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/legalease/legalease-cli/internal/core/domain"
	"github.com/legalease/legalease-cli/internal/core/ports/driven"
)

// Ensure DatasetStore implements the interface.
var _ driven.DatasetStore = (*DatasetStore)(nil)

// DatasetStore persists chunk-record datasets as indented JSON arrays.
// The format is deliberately plain so datasets diff cleanly in review.
type DatasetStore struct{}

// NewDatasetStore creates a filesystem dataset store.
func NewDatasetStore() *DatasetStore {
	return &DatasetStore{}
}

// Save writes the full dataset to path, replacing any previous file. The
// write goes to a temp file in the same directory first, then renames over
// the target, so a crash mid-write leaves the old dataset intact.
func (s *DatasetStore) Save(ctx context.Context, path string, records []domain.ChunkRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if records == nil {
		records = []domain.ChunkRecord{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal dataset: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dataset directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp dataset file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write dataset: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close dataset file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace dataset: %w", err)
	}
	return nil
}

// Load reads a dataset in stored order.
func (s *DatasetStore) Load(ctx context.Context, path string) ([]domain.ChunkRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: dataset %s", domain.ErrNotFound, path)
		}
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	var records []domain.ChunkRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}
	return records, nil
}

// Exists reports whether a dataset is present at the path.
func (s *DatasetStore) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

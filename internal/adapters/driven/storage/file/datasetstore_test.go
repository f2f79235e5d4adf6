package file

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/legalease/legalease-cli/internal/core/domain"
)

func sampleRecords() []domain.ChunkRecord {
	start, end := 0, 38
	return []domain.ChunkRecord{
		{
			DocID:          "Contract Act, 1872",
			LawName:        "Contract Act, 1872",
			Domain:         "Contract Law",
			Jurisdiction:   domain.Jurisdiction,
			Source:         domain.SourceType,
			Language:       domain.LanguageEnglish,
			SectionID:      "5",
			SectionTitle:   "Revocation of proposals",
			ChunkID:        "Contract Act, 1872::sec-5::chunk-0",
			ChunkIndex:     0,
			ChunkCharStart: &start,
			ChunkCharEnd:   &end,
			Text:           "A proposal may be revoked at any time.",
		},
	}
}

func TestDatasetStore(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		store := NewDatasetStore()
		path := filepath.Join(t.TempDir(), "dataset.json")

		require.NoError(t, store.Save(ctx, path, sampleRecords()))
		assert.True(t, store.Exists(path))

		loaded, err := store.Load(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, sampleRecords(), loaded)
	})

	t.Run("creates missing directories", func(t *testing.T) {
		store := NewDatasetStore()
		path := filepath.Join(t.TempDir(), "deep", "nested", "dataset.json")

		require.NoError(t, store.Save(ctx, path, sampleRecords()))
		assert.True(t, store.Exists(path))
	})

	t.Run("writes reviewable json", func(t *testing.T) {
		store := NewDatasetStore()
		path := filepath.Join(t.TempDir(), "dataset.json")
		require.NoError(t, store.Save(ctx, path, sampleRecords()))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		text := string(data)
		assert.True(t, strings.HasPrefix(text, "[\n"))
		assert.True(t, strings.HasSuffix(text, "\n"))
		assert.Contains(t, text, `"chunk_id"`)
	})

	t.Run("nil records save as empty array", func(t *testing.T) {
		store := NewDatasetStore()
		path := filepath.Join(t.TempDir(), "dataset.json")

		require.NoError(t, store.Save(ctx, path, nil))
		loaded, err := store.Load(ctx, path)
		require.NoError(t, err)
		assert.Empty(t, loaded)
	})

	t.Run("save replaces previous dataset", func(t *testing.T) {
		store := NewDatasetStore()
		path := filepath.Join(t.TempDir(), "dataset.json")

		require.NoError(t, store.Save(ctx, path, sampleRecords()))
		require.NoError(t, store.Save(ctx, path, nil))

		loaded, err := store.Load(ctx, path)
		require.NoError(t, err)
		assert.Empty(t, loaded)
	})

	t.Run("missing dataset", func(t *testing.T) {
		store := NewDatasetStore()
		path := filepath.Join(t.TempDir(), "missing.json")

		assert.False(t, store.Exists(path))
		_, err := store.Load(ctx, path)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("corrupt dataset", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "dataset.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

		_, err := NewDatasetStore().Load(ctx, path)
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrNotFound)
	})
}

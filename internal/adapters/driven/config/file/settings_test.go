package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SettingsStore {
	t.Helper()
	store, err := NewSettingsStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestSettingsNormalised(t *testing.T) {
	t.Run("fills defaults", func(t *testing.T) {
		s := Settings{}.Normalised()
		assert.Equal(t, "data/statutes", s.Paths.DocsDir)
		assert.Equal(t, "data/legal_dataset.json", s.Paths.DatasetPath)
		assert.Equal(t, "data/legal_dataset_clean.json", s.Paths.CleanDatasetPath)
		assert.Equal(t, "data/index", s.Paths.IndexDir)
		assert.Equal(t, "ollama", s.Embedding.Provider)
		assert.Equal(t, "auto", s.Embedding.Device)
		assert.False(t, s.Embedding.Quantized)
		assert.Equal(t, 5, s.Retrieval.TopK)
		assert.Equal(t, 512, s.Retrieval.MaxNewTokens)
	})

	t.Run("keeps explicit values", func(t *testing.T) {
		s := Settings{}
		s.Paths.DocsDir = "corpus"
		s.Embedding.Provider = "openai"
		s.Retrieval.TopK = 10

		n := s.Normalised()
		assert.Equal(t, "corpus", n.Paths.DocsDir)
		assert.Equal(t, "openai", n.Embedding.Provider)
		assert.Equal(t, 10, n.Retrieval.TopK)
	})
}

func TestSettingsStore(t *testing.T) {
	t.Run("missing file loads defaults", func(t *testing.T) {
		store := newTestStore(t)
		settings, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, "ollama", settings.Embedding.Provider)
	})

	t.Run("round trip", func(t *testing.T) {
		store := newTestStore(t)

		settings := Settings{}.Normalised()
		settings.Embedding.Provider = "openai"
		settings.Embedding.Model = "text-embedding-3-small"
		settings.Embedding.Quantized = true
		settings.Embedding.Device = "cpu"
		settings.LLM.Provider = "anthropic"
		settings.Chunking.ChunkSize = 800
		require.NoError(t, store.Save(settings))

		loaded, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, settings, loaded)
	})

	t.Run("file is not world readable", func(t *testing.T) {
		store := newTestStore(t)
		require.NoError(t, store.Save(Settings{}.Normalised()))

		info, err := os.Stat(store.Path())
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("set api keys", func(t *testing.T) {
		store := newTestStore(t)

		require.NoError(t, store.SetEmbeddingAPIKey("embed-key"))
		require.NoError(t, store.SetLLMAPIKey("llm-key"))

		loaded, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, "embed-key", loaded.Embedding.APIKey)
		assert.Equal(t, "llm-key", loaded.LLM.APIKey)
	})

	t.Run("corrupt file surfaces a parse error", func(t *testing.T) {
		store := newTestStore(t)
		require.NoError(t, os.WriteFile(store.Path(), []byte("= not toml"), 0o600))

		_, err := store.Load()
		assert.Error(t, err)
	})

	t.Run("path points inside the config dir", func(t *testing.T) {
		dir := t.TempDir()
		store, err := NewSettingsStore(dir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
	})
}

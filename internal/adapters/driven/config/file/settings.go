// Package file provides TOML-backed settings persistence. Settings live in
// ~/.legalease/config.toml with restricted permissions; the file holds the
// embedding API key, so it is never world-readable.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// Settings is the full persisted configuration. Zero values mean "use the
// built-in default"; Normalised fills them in.
type Settings struct {
	Paths     PathSettings      `toml:"paths"`
	Chunking  ChunkingSettings  `toml:"chunking"`
	Embedding EmbeddingSettings `toml:"embedding"`
	LLM       LLMSettings       `toml:"llm"`
	Retrieval RetrievalSettings `toml:"retrieval"`
}

// PathSettings locates pipeline inputs and artifacts.
type PathSettings struct {
	DocsDir          string `toml:"docs_dir"`
	DatasetPath      string `toml:"dataset_path"`
	CleanDatasetPath string `toml:"clean_dataset_path"`
	IndexDir         string `toml:"index_dir"`
	DataDir          string `toml:"data_dir"`
}

// ChunkingSettings parameterise both chunkers.
type ChunkingSettings struct {
	ChunkSize int `toml:"chunk_size"`
	Overlap   int `toml:"overlap"`
	MinTokens int `toml:"min_tokens"`
	MaxTokens int `toml:"max_tokens"`
}

// EmbeddingSettings select and configure the embedding provider.
type EmbeddingSettings struct {
	// Provider is "ollama" or "openai".
	Provider       string  `toml:"provider"`
	Model          string  `toml:"model"`
	BaseURL        string  `toml:"base_url"`
	APIKey         string  `toml:"api_key"`
	RequestsPerSec float64 `toml:"requests_per_sec"`

	// Quantized selects the provider's low-precision encoder variant when
	// one is published for the model. Hosted providers ignore it.
	Quantized bool `toml:"quantized"`

	// Device hints where the encoder should run: "auto", "cpu" or "gpu".
	// Hosted providers ignore it.
	Device string `toml:"device"`
}

// LLMSettings select and configure the generation provider. An empty
// Provider disables generation; the ask command then fails cleanly.
type LLMSettings struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	BaseURL  string `toml:"base_url"`
	APIKey   string `toml:"api_key"`
}

// RetrievalSettings tune search and answer behaviour.
type RetrievalSettings struct {
	TopK         int `toml:"top_k"`
	MaxNewTokens int `toml:"max_new_tokens"`
}

// Normalised returns a copy with defaults filled in for zero values.
func (s Settings) Normalised() Settings {
	if s.Paths.DocsDir == "" {
		s.Paths.DocsDir = "data/statutes"
	}
	if s.Paths.DatasetPath == "" {
		s.Paths.DatasetPath = "data/legal_dataset.json"
	}
	if s.Paths.CleanDatasetPath == "" {
		s.Paths.CleanDatasetPath = "data/legal_dataset_clean.json"
	}
	if s.Paths.IndexDir == "" {
		s.Paths.IndexDir = "data/index"
	}
	if s.Embedding.Provider == "" {
		s.Embedding.Provider = "ollama"
	}
	if s.Embedding.Device == "" {
		s.Embedding.Device = "auto"
	}
	if s.Retrieval.TopK == 0 {
		s.Retrieval.TopK = 5
	}
	if s.Retrieval.MaxNewTokens == 0 {
		s.Retrieval.MaxNewTokens = 512
	}
	return s
}

// SettingsStore loads and persists Settings as TOML.
type SettingsStore struct {
	mu       sync.Mutex
	filePath string
}

// NewSettingsStore creates a settings store.
// If configDir is empty, defaults to ~/.legalease.
func NewSettingsStore(configDir string) (*SettingsStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		configDir = filepath.Join(home, ".legalease")
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	return &SettingsStore{
		filePath: filepath.Join(configDir, "config.toml"),
	}, nil
}

// Load reads settings from disk. A missing file yields defaults.
func (s *SettingsStore) Load() (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var settings Settings
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return settings.Normalised(), nil
		}
		return Settings{}, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("parse config %s: %w", s.filePath, err)
	}
	return settings.Normalised(), nil
}

// Save persists settings with restricted permissions.
func (s *SettingsStore) Save(settings Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// SetEmbeddingAPIKey stores the embedding provider API key.
func (s *SettingsStore) SetEmbeddingAPIKey(key string) error {
	settings, err := s.Load()
	if err != nil {
		return err
	}
	settings.Embedding.APIKey = key
	return s.Save(settings)
}

// SetLLMAPIKey stores the generation provider API key.
func (s *SettingsStore) SetLLMAPIKey(key string) error {
	settings, err := s.Load()
	if err != nil {
		return err
	}
	settings.LLM.APIKey = key
	return s.Save(settings)
}

// Path returns the configuration file path.
func (s *SettingsStore) Path() string {
	return s.filePath
}

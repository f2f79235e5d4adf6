package chunkers

import (
	"fmt"

	"github.com/legalease/legalease-cli/internal/core/domain"
)

// Built-in strategy names.
const (
	StrategyWindow = "window"
	StrategyTokens = "tokens"
)

// BuilderFunc creates a Chunker from generic config.
type BuilderFunc func(cfg map[string]any) (Chunker, error)

// Registry maps strategy names to builder functions so the chunking strategy
// can be selected from configuration.
type Registry struct {
	builders map[string]BuilderFunc
}

// NewRegistry creates an empty strategy registry.
func NewRegistry() *Registry {
	return &Registry{builders: make(map[string]BuilderFunc)}
}

// Register adds a builder under the given strategy name.
func (r *Registry) Register(name string, fn BuilderFunc) {
	r.builders[name] = fn
}

// Build constructs the named strategy from generic config.
func (r *Registry) Build(name string, cfg map[string]any) (Chunker, error) {
	fn, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown chunking strategy %q", domain.ErrInvalidInput, name)
	}
	return fn(cfg)
}

// RegisterDefaults registers the built-in strategies.
//
// "window" config keys:
//   - chunk_size (int): runes per chunk (default: 1200)
//   - overlap (int): overlapping runes between chunks (default: 200)
//
// "tokens" config keys:
//   - min_tokens (int): short-tail merge threshold (default: 300)
//   - max_tokens (int): flush trigger (default: 500)
func RegisterDefaults(r *Registry) {
	r.Register(StrategyWindow, func(cfg map[string]any) (Chunker, error) {
		size := intFromConfig(cfg, "chunk_size", DefaultWindowSize)
		overlap := intFromConfig(cfg, "overlap", DefaultWindowOverlap)
		return NewWindow(size, overlap)
	})
	r.Register(StrategyTokens, func(cfg map[string]any) (Chunker, error) {
		minTokens := intFromConfig(cfg, "min_tokens", DefaultMinTokens)
		maxTokens := intFromConfig(cfg, "max_tokens", DefaultMaxTokens)
		return NewTokenBudget(minTokens, maxTokens)
	})
}

// intFromConfig safely extracts an int from generic config, handling the
// int64 and float64 shapes TOML and JSON parsers produce.
func intFromConfig(cfg map[string]any, key string, fallback int) int {
	val, ok := cfg[key]
	if !ok {
		return fallback
	}
	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return fallback
	}
}

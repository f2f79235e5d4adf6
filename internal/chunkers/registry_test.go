package chunkers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/legalease/legalease-cli/internal/core/domain"
)

func TestRegistry(t *testing.T) {
	t.Run("unknown strategy", func(t *testing.T) {
		r := NewRegistry()
		_, err := r.Build("nope", nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("builds window with defaults", func(t *testing.T) {
		r := NewRegistry()
		RegisterDefaults(r)

		c, err := r.Build("window", nil)
		require.NoError(t, err)
		assert.Equal(t, "window", c.Name())
	})

	t.Run("builds tokens with config", func(t *testing.T) {
		r := NewRegistry()
		RegisterDefaults(r)

		c, err := r.Build("tokens", map[string]any{"min_tokens": 5, "max_tokens": 10})
		require.NoError(t, err)
		assert.Equal(t, "tokens", c.Name())
	})

	t.Run("config values from json decode", func(t *testing.T) {
		r := NewRegistry()
		RegisterDefaults(r)

		// JSON numbers decode as float64.
		c, err := r.Build("window", map[string]any{"chunk_size": float64(800), "overlap": float64(100)})
		require.NoError(t, err)

		pieces, err := c.Chunk("tiny")
		require.NoError(t, err)
		require.Len(t, pieces, 1)
	})

	t.Run("invalid config surfaces builder error", func(t *testing.T) {
		r := NewRegistry()
		RegisterDefaults(r)

		_, err := r.Build("window", map[string]any{"chunk_size": 100, "overlap": 100})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

package chunkers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/legalease/legalease-cli/internal/core/domain"
)

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, EstimateTokens(""))
	assert.Equal(t, 1, EstimateTokens("word"))          // 1 * 1.3 floored
	assert.Equal(t, 13, EstimateTokens(words(10)))      // 10 * 1.3
	assert.Equal(t, 130, EstimateTokens(words(100)))    // 100 * 1.3
}

func TestNewTokenBudget(t *testing.T) {
	t.Run("rejects non positive max", func(t *testing.T) {
		_, err := NewTokenBudget(0, 0)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("rejects min above max", func(t *testing.T) {
		_, err := NewTokenBudget(500, 300)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("accepts defaults", func(t *testing.T) {
		_, err := NewTokenBudget(DefaultMinTokens, DefaultMaxTokens)
		assert.NoError(t, err)
	})
}

func TestTokenBudgetChunk(t *testing.T) {
	t.Run("empty text yields no pieces", func(t *testing.T) {
		c, err := NewTokenBudget(5, 10)
		require.NoError(t, err)

		pieces, err := c.Chunk("  \n ")
		require.NoError(t, err)
		assert.Empty(t, pieces)
	})

	t.Run("single short text stays whole", func(t *testing.T) {
		c, err := NewTokenBudget(5, 10)
		require.NoError(t, err)

		pieces, err := c.Chunk("only three words")
		require.NoError(t, err)
		require.Len(t, pieces, 1)
		assert.Equal(t, "only three words", pieces[0].Text)
	})

	t.Run("flushes when estimate reaches max", func(t *testing.T) {
		c, err := NewTokenBudget(5, 10)
		require.NoError(t, err)

		// 8 words estimate to 10 tokens, triggering a flush.
		pieces, err := c.Chunk(words(16))
		require.NoError(t, err)
		require.Len(t, pieces, 2)
		assert.Len(t, strings.Fields(pieces[0].Text), 8)
		assert.Len(t, strings.Fields(pieces[1].Text), 8)
	})

	t.Run("merges short tail into previous chunk", func(t *testing.T) {
		c, err := NewTokenBudget(5, 10)
		require.NoError(t, err)

		// 10 words: 8 flush, 2 remain (2 words ~ 2 tokens < min 5).
		pieces, err := c.Chunk(words(10))
		require.NoError(t, err)
		require.Len(t, pieces, 1)
		assert.Len(t, strings.Fields(pieces[0].Text), 10)
	})

	t.Run("keeps tail at or above min", func(t *testing.T) {
		c, err := NewTokenBudget(5, 10)
		require.NoError(t, err)

		// 12 words: 8 flush, 4 remain (4 words ~ 5 tokens >= min 5).
		pieces, err := c.Chunk(words(12))
		require.NoError(t, err)
		require.Len(t, pieces, 2)
		assert.Len(t, strings.Fields(pieces[1].Text), 4)
	})

	t.Run("offsets are untracked", func(t *testing.T) {
		c, err := NewTokenBudget(5, 10)
		require.NoError(t, err)

		pieces, err := c.Chunk(words(3))
		require.NoError(t, err)
		require.Len(t, pieces, 1)
		assert.Equal(t, -1, pieces[0].Start)
		assert.Equal(t, -1, pieces[0].End)
	})

	t.Run("no word is lost", func(t *testing.T) {
		c, err := NewTokenBudget(5, 10)
		require.NoError(t, err)

		text := words(53)
		pieces, err := c.Chunk(text)
		require.NoError(t, err)

		total := 0
		for _, p := range pieces {
			total += len(strings.Fields(p.Text))
		}
		assert.Equal(t, 53, total)
	})
}

// words produces n space-separated words.
func words(n int) string {
	out := make([]string, n)
	for i := range out {
		out[i] = "provision"
	}
	return strings.Join(out, " ")
}

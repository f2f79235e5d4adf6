package chunkers

import (
	"fmt"
	"strings"

	"github.com/legalease/legalease-cli/internal/core/domain"
)

// Default token budgets, matched to the embedding model's input window.
const (
	DefaultMinTokens = 300
	DefaultMaxTokens = 500
)

// tokensPerWord is the rough words-to-tokens expansion factor. This is an
// approximation, not a tokenizer: statute English averages ~1.3 subword
// tokens per whitespace-separated word.
const tokensPerWord = 1.3

// EstimateTokens approximates the token count of text from its word count,
// rounded down.
func EstimateTokens(text string) int {
	return estimateFromWords(len(strings.Fields(text)))
}

func estimateFromWords(words int) int {
	return int(float64(words) * tokensPerWord)
}

// TokenBudget is the greedy word-packing strategy: accumulate words until the
// estimated token count reaches the max budget, flush, and merge a short
// trailing remainder back into the last chunk.
type TokenBudget struct {
	minTokens int
	maxTokens int
}

var _ Chunker = (*TokenBudget)(nil)

// NewTokenBudget creates a token-budget chunker. The max budget must be
// positive and at least the min budget.
func NewTokenBudget(minTokens, maxTokens int) (*TokenBudget, error) {
	if maxTokens <= 0 {
		return nil, fmt.Errorf("%w: max tokens must be > 0, got %d", domain.ErrInvalidInput, maxTokens)
	}
	if minTokens < 0 || minTokens > maxTokens {
		return nil, fmt.Errorf("%w: min tokens must be in [0, %d], got %d", domain.ErrInvalidInput, maxTokens, minTokens)
	}
	return &TokenBudget{minTokens: minTokens, maxTokens: maxTokens}, nil
}

// Name implements Chunker.
func (t *TokenBudget) Name() string { return "tokens" }

// Chunk packs words greedily: each chunk flushes the moment its estimate
// reaches the max budget. A non-empty remainder merges into the previous
// chunk when it estimates below the min budget, so no trailing fragment is
// left too small to carry standalone context (unless it is the only chunk).
// Span offsets are not tracked by this strategy.
func (t *TokenBudget) Chunk(text string) ([]Piece, error) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil, nil
	}

	var pieces []Piece
	var current []string
	for _, word := range words {
		current = append(current, word)
		if estimateFromWords(len(current)) >= t.maxTokens {
			pieces = append(pieces, Piece{Start: -1, End: -1, Text: strings.Join(current, " ")})
			current = nil
		}
	}

	if len(current) > 0 {
		remainder := strings.Join(current, " ")
		if len(pieces) > 0 && estimateFromWords(len(current)) < t.minTokens {
			last := &pieces[len(pieces)-1]
			last.Text = last.Text + " " + remainder
		} else {
			pieces = append(pieces, Piece{Start: -1, End: -1, Text: remainder})
		}
	}
	return pieces, nil
}

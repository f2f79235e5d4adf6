package driving

import (
	"context"

	"github.com/legalease/legalease-cli/internal/core/domain"
)

// Answer is a generated answer with the chunks that grounded it.
type Answer struct {
	Text    string
	Sources []domain.ScoredChunk
}

// AnswerService retrieves context for a question, builds a grounded prompt
// and forwards it to the generation collaborator.
type AnswerService interface {
	// Answer runs retrieval with topK, formats the context block and asks
	// the LLM for a completion within maxNewTokens. Fails with
	// domain.ErrLLMUnavailable when no generation service is configured.
	Answer(ctx context.Context, question string, topK, maxNewTokens int) (Answer, error)
}

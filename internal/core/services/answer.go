package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/legalease/legalease-cli/internal/core/domain"
	"github.com/legalease/legalease-cli/internal/core/ports/driven"
	"github.com/legalease/legalease-cli/internal/core/ports/driving"
	"github.com/legalease/legalease-cli/internal/logger"
)

// Ensure AnswerService implements the interface.
var _ driving.AnswerService = (*AnswerService)(nil)

// Generation defaults. Temperature is kept low: answers must stay close to
// the retrieved statute text.
const (
	DefaultAnswerTopK        = 5
	DefaultMaxNewTokens      = 512
	answerTemperature        = 0.2
	answerPromptInstructions = `You are a legal research assistant. Answer the question using ONLY the numbered context passages below. Cite passages by their number, e.g. [2]. If the context does not contain the answer, say so plainly. Do not provide legal advice.`
)

// AnswerService turns a question into a grounded answer: retrieve topK
// chunks, format them into a context block and ask the generation
// collaborator for a completion.
type AnswerService struct {
	retrieval driving.RetrievalService
	llm       driven.LLMService // optional
}

// NewAnswerService creates the answer service. llm may be nil; Answer then
// fails with domain.ErrLLMUnavailable.
func NewAnswerService(retrieval driving.RetrievalService, llm driven.LLMService) *AnswerService {
	return &AnswerService{retrieval: retrieval, llm: llm}
}

// Answer retrieves context for the question and generates a grounded
// completion. Sources are returned alongside the text so callers can render
// citations even when generation fails.
func (s *AnswerService) Answer(ctx context.Context, question string, topK, maxNewTokens int) (driving.Answer, error) {
	if strings.TrimSpace(question) == "" {
		return driving.Answer{}, fmt.Errorf("%w: empty question", domain.ErrInvalidInput)
	}
	if s.llm == nil {
		return driving.Answer{}, fmt.Errorf("%w: no generation service configured", domain.ErrLLMUnavailable)
	}
	if topK == 0 {
		topK = DefaultAnswerTopK
	}
	if maxNewTokens == 0 {
		maxNewTokens = DefaultMaxNewTokens
	}

	hits, err := s.retrieval.Search(ctx, question, topK)
	if err != nil {
		return driving.Answer{}, err
	}

	prompt := buildPrompt(question, hits)
	logger.Debug("Prompting %s with %d context passages", s.llm.ModelName(), len(hits))

	text, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   maxNewTokens,
		Temperature: answerTemperature,
	})
	if err != nil {
		return driving.Answer{}, fmt.Errorf("%w: %v", domain.ErrLLMUnavailable, err)
	}

	return driving.Answer{
		Text:    strings.TrimSpace(text),
		Sources: hits,
	}, nil
}

// buildPrompt formats the retrieved chunks into numbered context blocks
// followed by the question. Each block carries its statutory citation so the
// model can attribute what it quotes.
func buildPrompt(question string, hits []domain.ScoredChunk) string {
	var b strings.Builder
	b.WriteString(answerPromptInstructions)
	b.WriteString("\n\nContext:\n")
	for i, hit := range hits {
		fmt.Fprintf(&b, "\n[%d] %s\nSource: %s §%s (%s)\n", i+1, hit.Text, hit.LawName, hit.SectionID, hit.ChunkID)
	}
	b.WriteString("\nQuestion: ")
	b.WriteString(question)
	b.WriteString("\n\nAnswer:")
	return b.String()
}

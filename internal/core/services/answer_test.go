package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/legalease/legalease-cli/internal/core/domain"
	"github.com/legalease/legalease-cli/internal/core/ports/driven"
)

// fakeRetrieval serves canned hits and records the topK it was asked for.
type fakeRetrieval struct {
	hits []domain.ScoredChunk
	topK int
	err  error
}

func (f *fakeRetrieval) BuildIndex(context.Context) (domain.IndexSummary, error) {
	return domain.IndexSummary{}, nil
}

func (f *fakeRetrieval) Search(_ context.Context, _ string, topK int) ([]domain.ScoredChunk, error) {
	f.topK = topK
	if f.err != nil {
		return nil, f.err
	}
	return f.hits, nil
}

func (f *fakeRetrieval) Ready() bool { return true }

// fakeLLM captures the prompt and options and returns a canned completion.
type fakeLLM struct {
	prompt string
	opts   driven.GenerateOptions
	reply  string
	err    error
}

func (f *fakeLLM) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	f.prompt = prompt
	f.opts = opts
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeLLM) ModelName() string          { return "fake-llm" }
func (f *fakeLLM) Ping(context.Context) error { return nil }
func (f *fakeLLM) Close() error               { return nil }

func answerHits() []domain.ScoredChunk {
	return []domain.ScoredChunk{
		{
			ChunkMetadata: domain.ChunkMetadata{
				ChunkID:   "Contract Act, 1872::sec-5::chunk-0",
				LawName:   "Contract Act, 1872",
				SectionID: "5",
				Text:      "A proposal may be revoked at any time before acceptance is complete.",
			},
			Score: 0.91,
		},
		{
			ChunkMetadata: domain.ChunkMetadata{
				ChunkID:   "Contract Act, 1872::sec-6::chunk-0",
				LawName:   "Contract Act, 1872",
				SectionID: "6",
				Text:      "A proposal is revoked by the communication of notice of revocation.",
			},
			Score: 0.84,
		},
	}
}

func TestAnswerService(t *testing.T) {
	ctx := context.Background()

	t.Run("builds a grounded prompt", func(t *testing.T) {
		retrieval := &fakeRetrieval{hits: answerHits()}
		llm := &fakeLLM{reply: "  A proposal may be revoked before acceptance [1].  "}
		svc := NewAnswerService(retrieval, llm)

		answer, err := svc.Answer(ctx, "When can a proposal be revoked?", 2, 256)
		require.NoError(t, err)

		assert.Equal(t, "A proposal may be revoked before acceptance [1].", answer.Text)
		assert.Equal(t, answerHits(), answer.Sources)
		assert.Equal(t, 2, retrieval.topK)
		assert.Equal(t, 256, llm.opts.MaxTokens)
		assert.InDelta(t, answerTemperature, llm.opts.Temperature, 1e-9)

		assert.Contains(t, llm.prompt, "[1] A proposal may be revoked at any time")
		assert.Contains(t, llm.prompt, "Source: Contract Act, 1872 §5 (Contract Act, 1872::sec-5::chunk-0)")
		assert.Contains(t, llm.prompt, "[2] A proposal is revoked by the communication")
		assert.Contains(t, llm.prompt, "Question: When can a proposal be revoked?")
		assert.True(t, strings.HasSuffix(llm.prompt, "Answer:"))
	})

	t.Run("zero budgets fall back to defaults", func(t *testing.T) {
		retrieval := &fakeRetrieval{hits: answerHits()}
		llm := &fakeLLM{reply: "ok"}
		svc := NewAnswerService(retrieval, llm)

		_, err := svc.Answer(ctx, "question", 0, 0)
		require.NoError(t, err)
		assert.Equal(t, DefaultAnswerTopK, retrieval.topK)
		assert.Equal(t, DefaultMaxNewTokens, llm.opts.MaxTokens)
	})

	t.Run("empty question", func(t *testing.T) {
		svc := NewAnswerService(&fakeRetrieval{}, &fakeLLM{})
		_, err := svc.Answer(ctx, "   ", 0, 0)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("no llm configured", func(t *testing.T) {
		svc := NewAnswerService(&fakeRetrieval{hits: answerHits()}, nil)
		_, err := svc.Answer(ctx, "question", 0, 0)
		assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
	})

	t.Run("retrieval errors pass through", func(t *testing.T) {
		retrieval := &fakeRetrieval{err: domain.ErrIndexNotBuilt}
		svc := NewAnswerService(retrieval, &fakeLLM{})
		_, err := svc.Answer(ctx, "question", 0, 0)
		assert.ErrorIs(t, err, domain.ErrIndexNotBuilt)
	})

	t.Run("generation failure maps to llm unavailable", func(t *testing.T) {
		retrieval := &fakeRetrieval{hits: answerHits()}
		llm := &fakeLLM{err: errors.New("connection refused")}
		svc := NewAnswerService(retrieval, llm)

		_, err := svc.Answer(ctx, "question", 0, 0)
		assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
		assert.Contains(t, err.Error(), "connection refused")
	})
}

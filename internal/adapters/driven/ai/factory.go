// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/legalease/legalease-cli/internal/adapters/driven/config/file"
	ollamaembed "github.com/legalease/legalease-cli/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/legalease/legalease-cli/internal/adapters/driven/embedding/openai"
	anthropicllm "github.com/legalease/legalease-cli/internal/adapters/driven/llm/anthropic"
	ollamallm "github.com/legalease/legalease-cli/internal/adapters/driven/llm/ollama"
	openaillm "github.com/legalease/legalease-cli/internal/adapters/driven/llm/openai"
	"github.com/legalease/legalease-cli/internal/core/ports/driven"
)

// Provider identifiers accepted in configuration.
const (
	ProviderOllama    = "ollama"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// CreateEmbeddingService creates the embedding service selected by settings.
func CreateEmbeddingService(settings file.EmbeddingSettings) (driven.EmbeddingService, error) {
	switch settings.Provider {
	case ProviderOllama:
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL:        settings.BaseURL,
			Model:          settings.Model,
			RequestsPerSec: settings.RequestsPerSec,
			Quantized:      settings.Quantized,
			Device:         settings.Device,
		}), nil

	case ProviderOpenAI:
		// Hosted API; the quantized and device hints do not apply.
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:         settings.APIKey,
			BaseURL:        settings.BaseURL,
			Model:          settings.Model,
			RequestsPerSec: settings.RequestsPerSec,
		})

	case ProviderAnthropic:
		// Anthropic does not support embeddings.
		return nil, fmt.Errorf("anthropic does not support embeddings, use ollama or openai")

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", settings.Provider)
	}
}

// CreateLLMService creates the generation service selected by settings.
// Returns nil when no provider is configured; generation is optional.
func CreateLLMService(settings file.LLMSettings) (driven.LLMService, error) {
	switch settings.Provider {
	case "":
		return nil, nil

	case ProviderOllama:
		return ollamallm.NewLLMService(ollamallm.LLMConfig{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		}), nil

	case ProviderOpenAI:
		return openaillm.NewLLMService(openaillm.LLMConfig{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case ProviderAnthropic:
		return anthropicllm.NewLLMService(anthropicllm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", settings.Provider)
	}
}

// ValidateEmbeddingConfig creates the configured embedding service and pings
// it. Intended for use before long index builds so credential problems
// surface immediately.
func ValidateEmbeddingConfig(settings file.EmbeddingSettings) error {
	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return svc.Ping(ctx)
}

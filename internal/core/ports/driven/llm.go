package driven

import "context"

// LLMService is the external text-generation collaborator. The core only
// constructs prompts from retrieved chunks; generation happens behind this
// port. Optional - when nil, the answer command degrades to plain retrieval.
type LLMService interface {
	// Generate produces a completion for the prompt within the options'
	// output-length budget.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64
}

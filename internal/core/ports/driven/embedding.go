package driven

import "context"

// EmbeddingService generates vector embeddings from text. The encoder's
// internals are opaque to the core: the contract is "strings in, fixed-length
// vectors out". Returned vectors are NOT assumed to be normalised; the
// retrieval service normalises them itself.
//
// Implementations may include:
//   - Ollama (nomic-embed-text, multilingual e5 variants)
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts in order.
	// More efficient than calling Embed in a loop for large batches.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// ModelName returns the encoder identifier. The retrieval service uses
	// it to decide whether the e5 "query:"/"passage:" prefix convention
	// applies.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

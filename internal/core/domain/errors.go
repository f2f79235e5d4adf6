package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a required input does not exist
	// (docs directory, dataset file, index artifacts).
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input,
	// such as chunking parameters that cannot produce output.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownStatute indicates a document filename matched no entry in the
	// statute allow-list. Ingestion is all-or-nothing, so this aborts a build.
	ErrUnknownStatute = errors.New("unknown statute")

	// ErrIndexNotBuilt indicates search was called before a successful index
	// build. Surfaced as a distinct "not ready" condition, never as empty
	// results.
	ErrIndexNotBuilt = errors.New("index not built")

	// ErrLLMUnavailable indicates no generation service is configured.
	// Retrieval still works; only answer synthesis is disabled.
	ErrLLMUnavailable = errors.New("LLM service unavailable")
)

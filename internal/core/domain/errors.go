package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or empty input (empty text,
	// empty query, empty source prefix).
	ErrInvalidInput = errors.New("invalid input")

	// ErrProviderFailure indicates an embedding or chat provider call failed
	// (auth, rate limit, timeout, malformed response).
	ErrProviderFailure = errors.New("provider call failed")

	// ErrStoreUnavailable indicates the vector store is unreachable or
	// rejected a request.
	ErrStoreUnavailable = errors.New("vector store unavailable")

	// ErrDimensionMismatch indicates a vector's dimension does not match
	// the dimension configured for the index namespace.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrFetchFailed indicates a URL could not be fetched or decoded.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrLLMUnavailable indicates the chat model service is not configured.
	// Answer generation is disabled without it; retrieval still works.
	ErrLLMUnavailable = errors.New("LLM service unavailable")
)

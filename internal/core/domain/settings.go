package domain

import (
	"fmt"
	"time"
)

// Default configuration values matching the recognized options.
const (
	DefaultChunkSize      = 1000
	DefaultChunkOverlap   = 100
	DefaultDimension      = 1536
	DefaultTopK           = 3
	DefaultNamespace      = "default"
	DefaultEmbeddingModel = "text-embedding-3-small"
	DefaultChatModel      = "gpt-4o-mini"
	DefaultHistoryTurns   = 10
)

// Default network timeouts. Every outbound call is bounded.
const (
	DefaultProviderTimeout = 60 * time.Second
	DefaultStoreTimeout    = 30 * time.Second
	DefaultFetchTimeout    = 10 * time.Second
)

// Settings enumerates every option the pipeline recognizes.
// Validated once at startup; adapters receive the values they need
// at construction time.
type Settings struct {
	// EmbeddingModel is the embedding model name.
	EmbeddingModel string

	// ChatModel is the generative model name.
	ChatModel string

	// Dimension is the embedding vector size. All vectors within one
	// namespace must share it.
	Dimension int

	// Namespace is the default vector store partition key.
	Namespace string

	// TopK is the default number of nearest neighbours per query.
	TopK int

	// ChunkSize is the chunk window size in characters.
	ChunkSize int

	// ChunkOverlap is the number of characters each window extends past
	// its nominal end.
	ChunkOverlap int

	// HistoryTurns is how many recent interactions are folded into the
	// grounding context.
	HistoryTurns int

	// ProviderTimeout bounds embedding and chat model calls.
	ProviderTimeout time.Duration

	// StoreTimeout bounds vector store calls.
	StoreTimeout time.Duration

	// FetchTimeout bounds URL ingestion fetches.
	FetchTimeout time.Duration
}

// DefaultSettings returns settings populated with the named defaults.
func DefaultSettings() Settings {
	return Settings{
		EmbeddingModel:  DefaultEmbeddingModel,
		ChatModel:       DefaultChatModel,
		Dimension:       DefaultDimension,
		Namespace:       DefaultNamespace,
		TopK:            DefaultTopK,
		ChunkSize:       DefaultChunkSize,
		ChunkOverlap:    DefaultChunkOverlap,
		HistoryTurns:    DefaultHistoryTurns,
		ProviderTimeout: DefaultProviderTimeout,
		StoreTimeout:    DefaultStoreTimeout,
		FetchTimeout:    DefaultFetchTimeout,
	}
}

// Validate checks the settings are internally consistent.
func (s Settings) Validate() error {
	if s.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk size must be positive, got %d", ErrInvalidInput, s.ChunkSize)
	}
	if s.ChunkOverlap < 0 {
		return fmt.Errorf("%w: chunk overlap must not be negative, got %d", ErrInvalidInput, s.ChunkOverlap)
	}
	if s.Dimension <= 0 {
		return fmt.Errorf("%w: dimension must be positive, got %d", ErrInvalidInput, s.Dimension)
	}
	if s.TopK <= 0 {
		return fmt.Errorf("%w: top-k must be positive, got %d", ErrInvalidInput, s.TopK)
	}
	if s.Namespace == "" {
		return fmt.Errorf("%w: namespace is empty", ErrInvalidInput)
	}
	if s.EmbeddingModel == "" {
		return fmt.Errorf("%w: embedding model is empty", ErrInvalidInput)
	}
	return nil
}

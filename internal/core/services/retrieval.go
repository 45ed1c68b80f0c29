package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/clause-labs/retriva-cli/internal/core/domain"
	"github.com/clause-labs/retriva-cli/internal/core/ports/driven"
	"github.com/clause-labs/retriva-cli/internal/core/ports/driving"
	"github.com/clause-labs/retriva-cli/internal/logger"
)

// Ensure RetrieveService implements the interface.
var _ driving.RetrieveService = (*RetrieveService)(nil)

// RetrieveService turns a query into a ranked list of scored chunks.
// Pure orchestration, no caching; repeated identical queries re-embed
// and re-query every time.
type RetrieveService struct {
	embedder    driven.EmbeddingService
	store       driven.VectorStore
	defaultTopK int
}

// NewRetrieveService creates a new retrieval service.
// defaultTopK is used when a caller passes topK <= 0.
func NewRetrieveService(embedder driven.EmbeddingService, store driven.VectorStore, defaultTopK int) *RetrieveService {
	if defaultTopK <= 0 {
		defaultTopK = domain.DefaultTopK
	}
	return &RetrieveService{
		embedder:    embedder,
		store:       store,
		defaultTopK: defaultTopK,
	}
}

// Retrieve embeds the query and returns up to topK chunks ordered by
// score descending. An empty namespace yields an empty result.
func (s *RetrieveService) Retrieve(ctx context.Context, query, namespace string, topK int) ([]domain.ScoredChunk, error) {
	logger.Section("Retrieval")

	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query is empty", domain.ErrInvalidInput)
	}
	if namespace == "" {
		return nil, fmt.Errorf("%w: namespace is empty", domain.ErrInvalidInput)
	}
	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	if s.store == nil {
		return nil, domain.ErrStoreUnavailable
	}
	if topK <= 0 {
		topK = s.defaultTopK
	}

	logger.Debug("Query: %q, namespace: %q, topK: %d", query, namespace, topK)

	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	logger.Debug("Query embedding: %d dimensions", len(vector))

	results, err := s.store.Query(ctx, namespace, vector, topK)
	if err != nil {
		return nil, fmt.Errorf("query store: %w", err)
	}
	logger.Info("Retrieved %d chunks", len(results))

	return results, nil
}
